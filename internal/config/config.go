package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	// Server
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	// Database
	DBHost        string `env:"DB_HOST" env-default:"localhost"`
	DBPort        int    `env:"DB_PORT" env-default:"5432"`
	DBUsername    string `env:"DB_USERNAME" env-default:"postgres"`
	DBPassword    string `env:"DB_PASSWORD" env-default:"postgres"`
	DBName        string `env:"DB_NAME" env-default:"link_appender"`
	DBSynchronize bool   `env:"DB_SYNCHRONIZE" env-default:"true"`

	// JWT
	JWTSecret          string `env:"JWT_SECRET"`
	JWTExpirationHours int    `env:"JWT_EXPIRATION_HOURS" env-default:"24"`

	// Links listing response cache
	LinksCacheTTL time.Duration `env:"LINKS_CACHE_TTL" env-default:"30s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return &cfg, nil
}

// DatabaseDSN builds the Postgres DSN from the individual DB_* settings.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUsername, c.DBPassword, c.DBName)
}
