package postgres

import (
	"context"

	"github.com/dom/link-appender/internal/domain"
	"github.com/dom/link-appender/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type linkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *linkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) GetByUserAndURL(ctx context.Context, userID uuid.UUID, originalURL string) (*domain.Link, error) {
	var link domain.Link
	err := r.db.WithContext(ctx).First(&link, "user_id = ? AND original_url = ?", userID, originalURL).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Save inserts the link, or updates it in place when its primary key is set.
func (r *linkRepository) Save(ctx context.Context, link *domain.Link) error {
	return r.db.WithContext(ctx).Save(link).Error
}

func (r *linkRepository) List(ctx context.Context, offset, limit int) ([]*domain.Link, error) {
	var links []*domain.Link
	err := r.db.WithContext(ctx).Order("id DESC").Offset(offset).Limit(limit).Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *linkRepository) Transact(ctx context.Context, fn func(repository.LinkRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&linkRepository{db: tx})
	})
}
