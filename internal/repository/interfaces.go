package repository

import (
	"context"

	"github.com/dom/link-appender/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// Delete removes the user together with their tokens and links.
	Delete(ctx context.Context, id uuid.UUID) error
}

type TokenRepository interface {
	Create(ctx context.Context, token *domain.Token) error
	GetByUserAndToken(ctx context.Context, userID uuid.UUID, token string) (*domain.Token, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type LinkRepository interface {
	GetByUserAndURL(ctx context.Context, userID uuid.UUID, originalURL string) (*domain.Link, error)
	Save(ctx context.Context, link *domain.Link) error
	List(ctx context.Context, offset, limit int) ([]*domain.Link, error)
	// Transact runs fn against a repository bound to a single transaction.
	Transact(ctx context.Context, fn func(LinkRepository) error) error
}

type Repositories struct {
	User  UserRepository
	Token TokenRepository
	Link  LinkRepository
}
