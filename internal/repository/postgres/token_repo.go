package postgres

import (
	"context"

	"github.com/dom/link-appender/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *tokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *domain.Token) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) GetByUserAndToken(ctx context.Context, userID uuid.UUID, token string) (*domain.Token, error) {
	var row domain.Token
	err := r.db.WithContext(ctx).First(&row, "user_id = ? AND token = ?", userID, token).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *tokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Token{}, "id = ?", id).Error
}

func (r *tokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Token{}, "user_id = ?", userID).Error
}
