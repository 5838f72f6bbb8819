package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Link memoizes the parameter set applied to a URL per user. NewURL is always
// OriginalURL with Parameters serialized as its query string.
type Link struct {
	ID          uint              `json:"id" gorm:"primaryKey;autoIncrement"`
	OriginalURL string            `json:"originalUrl" gorm:"not null"`
	Parameters  datatypes.JSONMap `json:"parameters" gorm:"type:jsonb;default:'{}'"`
	NewURL      string            `json:"newUrl" gorm:"not null"`
	UserID      uuid.UUID         `json:"userId" gorm:"type:uuid;not null;index"`
	User        User              `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
