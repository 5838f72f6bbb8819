package domain

import (
	"github.com/google/uuid"
)

// Token is an issued JWT tracked server-side. A bearer token is only honored
// while its row still exists and its expiry has not passed, so deleting rows
// revokes otherwise-valid signatures.
type Token struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	User   User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Token  string    `json:"-" gorm:"not null"`
	// Epoch seconds, mirrors the JWT exp claim.
	ExpiresAt int64 `json:"expiresAt" gorm:"not null"`
}
