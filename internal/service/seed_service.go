package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/dom/link-appender/internal/domain"
	"github.com/dom/link-appender/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SeedUser struct {
	Username string
	Password string
	Role     domain.Role
}

// DefaultSeedUsers are the demo accounts ensured at boot.
var DefaultSeedUsers = []SeedUser{
	{Username: "admin", Password: "adminpass", Role: domain.RoleAdmin},
	{Username: "user1", Password: "user1pass", Role: domain.RoleCustomer},
	{Username: "user2", Password: "user2pass", Role: domain.RoleCustomer},
}

type Seeder struct {
	userRepo repository.UserRepository
}

func NewSeeder(userRepo repository.UserRepository) *Seeder {
	return &Seeder{userRepo: userRepo}
}

// Run upserts each seed account by username. Existing rows keep their original
// createdAt; the password is rehashed and lastUpdatedAt bumped on every run.
// Re-running produces no duplicate rows.
func (s *Seeder) Run(ctx context.Context, users []SeedUser) error {
	for _, seed := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		now := time.Now().UnixMilli()

		existing, err := s.userRepo.GetByUsername(ctx, seed.Username)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			user := &domain.User{
				Username:      seed.Username,
				PasswordHash:  string(hashed),
				Role:          seed.Role,
				CreatedAt:     now,
				LastUpdatedAt: now,
			}
			if err := s.userRepo.Create(ctx, user); err != nil {
				return err
			}
			log.Printf("seeded user %q", seed.Username)
			continue
		}

		existing.PasswordHash = string(hashed)
		existing.Role = seed.Role
		existing.LastUpdatedAt = now
		if err := s.userRepo.Update(ctx, existing); err != nil {
			return err
		}
	}

	return nil
}
