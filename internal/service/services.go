package service

import (
	"github.com/dom/link-appender/internal/config"
	"github.com/dom/link-appender/internal/repository"
)

type Services struct {
	Auth   *AuthService
	User   *UserService
	Link   *LinkService
	Seeder *Seeder
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:   NewAuthService(repos.User, repos.Token, cfg),
		User:   NewUserService(repos.User),
		Link:   NewLinkService(repos.Link),
		Seeder: NewSeeder(repos.User),
	}
}
