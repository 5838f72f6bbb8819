package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dom/link-appender/internal/domain"
	"github.com/dom/link-appender/internal/repository"
	"github.com/dom/link-appender/internal/service"
	"github.com/google/uuid"
)

type contextKey string

const (
	requestContextKey contextKey = "requestContext"
)

// RequestContext is the identity decoded from a verified bearer token.
type RequestContext struct {
	UserID    uuid.UUID
	Username  string
	Role      domain.Role
	TokenID   uuid.UUID
	ExpiresAt int64
}

// Auth gates requests on a bearer token. Access is granted only when the
// signature verifies, a matching (user, token) row still exists in the token
// store, and the expiry has not passed. Deleting the store row revokes an
// otherwise-valid token.
func Auth(authService *service.AuthService, tokenRepo repository.TokenRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("ERROR [middleware.Auth] missing authorization header")
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Printf("ERROR [middleware.Auth] invalid authorization header format")
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}
			rawToken := parts[1]

			claims, err := authService.ValidateToken(rawToken)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			userIDStr, ok := claims["sub"].(string)
			if !ok || userIDStr == "" {
				log.Printf("ERROR [middleware.Auth] missing 'sub' claim in token")
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] failed to parse user ID: %v", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			username, _ := claims["username"].(string)
			roleStr, _ := claims["role"].(string)

			exp, err := claims.GetExpirationTime()
			if err != nil || exp == nil {
				log.Printf("ERROR [middleware.Auth] missing 'exp' claim in token")
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			// Store cross-check: a valid signature alone is not enough.
			row, err := tokenRepo.GetByUserAndToken(r.Context(), userID, rawToken)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token not found in store for user %s: %v", userID, err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			if time.Now().Unix() > exp.Unix() {
				log.Printf("ERROR [middleware.Auth] token expired for user %s", userID)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			reqCtx := &RequestContext{
				UserID:    userID,
				Username:  username,
				Role:      domain.Role(roleStr),
				TokenID:   row.ID,
				ExpiresAt: exp.Unix(),
			}

			ctx := context.WithValue(r.Context(), requestContextKey, reqCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestContext returns the identity attached by Auth.
func GetRequestContext(ctx context.Context) (*RequestContext, bool) {
	reqCtx, ok := ctx.Value(requestContextKey).(*RequestContext)
	return reqCtx, ok
}
