package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/link-appender/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	password string
	role     domain.Role
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password: "testpassword123",
		role:     domain.RoleCustomer,
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithRole sets the role
func (b *UserBuilder) WithRole(role domain.Role) *UserBuilder {
	b.role = role
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now().UnixMilli()
	user := &domain.User{
		Username:      b.username,
		PasswordHash:  string(hashedPassword),
		Role:          b.role,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// LoginResponse matches the API login response
type LoginResponse struct {
	TokenID   string `json:"tokenId"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expiresAt"`
	Token     string `json:"token"`
}

// BuildAndAuthenticate creates the user in the database, logs in via the API
// and returns the user and bearer token.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, rawPassword := b.Build(t, ts.DB.DB)

	reqBody := map[string]string{
		"username": b.username,
		"password": rawPassword,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.URL("/auth/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return user, loginResp.Token
}

// LinkBuilder creates test links with a builder pattern
type LinkBuilder struct {
	user        *domain.User
	originalURL string
	parameters  map[string]interface{}
	newURL      string
}

// NewLinkBuilder creates a new LinkBuilder with default values
func NewLinkBuilder(user *domain.User) *LinkBuilder {
	return &LinkBuilder{
		user:        user,
		originalURL: "https://example.com/page",
		parameters:  map[string]interface{}{"ref": "test"},
		newURL:      "https://example.com/page?ref=test",
	}
}

// WithURL sets the original and derived URLs
func (b *LinkBuilder) WithURL(originalURL, newURL string) *LinkBuilder {
	b.originalURL = originalURL
	b.newURL = newURL
	return b
}

// WithParameters sets the parameter map
func (b *LinkBuilder) WithParameters(params map[string]interface{}) *LinkBuilder {
	b.parameters = params
	return b
}

// Build creates the link in the database
func (b *LinkBuilder) Build(t *testing.T, db *gorm.DB) *domain.Link {
	t.Helper()

	link := &domain.Link{
		OriginalURL: b.originalURL,
		Parameters:  datatypes.JSONMap(b.parameters),
		NewURL:      b.newURL,
		UserID:      b.user.ID,
	}

	if err := db.Create(link).Error; err != nil {
		t.Fatalf("failed to create link: %v", err)
	}

	return link
}

// DoJSON sends an authenticated JSON request and returns the response.
func DoJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	return resp
}
