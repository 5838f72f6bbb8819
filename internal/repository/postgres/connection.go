package postgres

import (
	"github.com/dom/link-appender/internal/domain"
	"github.com/dom/link-appender/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(dsn string, synchronize bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	if synchronize {
		err = db.AutoMigrate(
			&domain.User{},
			&domain.Token{},
			&domain.Link{},
		)
		if err != nil {
			return nil, err
		}
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:  NewUserRepository(db),
		Token: NewTokenRepository(db),
		Link:  NewLinkRepository(db),
	}
}
