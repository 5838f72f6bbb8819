package service

import (
	"context"
	"errors"

	"github.com/dom/link-appender/internal/domain"
	"github.com/dom/link-appender/internal/repository"
	"github.com/dom/link-appender/internal/urlutil"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LinkService struct {
	linkRepo repository.LinkRepository
}

func NewLinkService(linkRepo repository.LinkRepository) *LinkService {
	return &LinkService{linkRepo: linkRepo}
}

// Append merges params into the parameter set stored for (userID, rawURL) and
// upserts the row. On key conflict the incoming value wins. The lookup and the
// save run in one transaction so concurrent appends from this process don't
// tear the read-modify-write.
func (s *LinkService) Append(ctx context.Context, userID uuid.UUID, rawURL string, params map[string]interface{}) (*domain.Link, error) {
	if !urlutil.IsValidURL(rawURL) {
		return nil, domain.ErrInvalidURL
	}

	var saved *domain.Link
	err := s.linkRepo.Transact(ctx, func(repo repository.LinkRepository) error {
		existing, err := repo.GetByUserAndURL(ctx, userID, rawURL)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		merged := map[string]interface{}{}
		if existing != nil {
			for key, value := range existing.Parameters {
				merged[key] = value
			}
		}
		for key, value := range params {
			merged[key] = value
		}

		newURL, err := urlutil.WithQuery(rawURL, merged)
		if err != nil {
			return domain.ErrInvalidURL
		}
		if !urlutil.IsValidURL(newURL) {
			return domain.ErrInvalidURL
		}

		link := &domain.Link{
			OriginalURL: rawURL,
			Parameters:  datatypes.JSONMap(merged),
			NewURL:      newURL,
			UserID:      userID,
		}
		if existing != nil {
			link.ID = existing.ID
		}

		if err := repo.Save(ctx, link); err != nil {
			return err
		}
		saved = link
		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// List returns links ordered by id descending, paginated by offset/limit.
func (s *LinkService) List(ctx context.Context, offset, limit int) ([]*domain.Link, error) {
	return s.linkRepo.List(ctx, offset, limit)
}
