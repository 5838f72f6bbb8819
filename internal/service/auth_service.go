package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/dom/link-appender/internal/config"
	"github.com/dom/link-appender/internal/domain"
	"github.com/dom/link-appender/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginFailed        = errors.New("login failed")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
)

type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	cfg       *config.Config
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cfg:       cfg,
	}
}

type LoginResult struct {
	TokenID   uuid.UUID
	UserID    uuid.UUID
	Username  string
	Role      domain.Role
	ExpiresAt int64
	Token     string
}

// Login validates credentials, signs a token and records it in the token
// store. Credential mismatch and downstream failures are indistinguishable to
// the caller; the underlying cause is only logged.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Printf("ERROR [service.Auth] user lookup failed for %q: %v", username, err)
		return nil, ErrLoginFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	signed, err := s.signToken(user)
	if err != nil {
		log.Printf("ERROR [service.Auth] failed to sign token for %q: %v", username, err)
		return nil, ErrLoginFailed
	}

	// Decode the signed string back out to recover the exact expiry claim.
	claims, err := s.ValidateToken(signed)
	if err != nil {
		log.Printf("ERROR [service.Auth] failed to decode issued token for %q: %v", username, err)
		return nil, ErrLoginFailed
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		log.Printf("ERROR [service.Auth] issued token missing exp claim for %q: %v", username, err)
		return nil, ErrLoginFailed
	}

	token := &domain.Token{
		UserID:    user.ID,
		Token:     signed,
		ExpiresAt: exp.Unix(),
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		log.Printf("ERROR [service.Auth] failed to persist token for %q: %v", username, err)
		return nil, ErrLoginFailed
	}

	return &LoginResult{
		TokenID:   token.ID,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: token.ExpiresAt,
		Token:     signed,
	}, nil
}

func (s *AuthService) signToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken checks the signature and shape of a bearer token. A passing
// signature alone does not grant access; callers must also cross-check the
// token store.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.tokenRepo.DeleteByUserID(ctx, userID)
}
