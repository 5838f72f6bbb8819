package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/link-appender/internal/domain"
	"github.com/dom/link-appender/internal/repository/postgres"
	"github.com/dom/link-appender/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	now := time.Now().UnixMilli()
	tests := []struct {
		name    string
		user    *domain.User
		wantErr bool
	}{
		{
			name: "successful creation",
			user: &domain.User{
				Username:      "testuser",
				PasswordHash:  "hashedpassword",
				Role:          domain.RoleCustomer,
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
			wantErr: false,
		},
		{
			name: "duplicate username",
			user: &domain.User{
				Username:      "testuser", // Same as above
				PasswordHash:  "hashedpassword2",
				Role:          domain.RoleCustomer,
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, tt.user.ID)
			}
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("getbyid_user").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		id      uuid.UUID
		want    *domain.User
		wantErr bool
	}{
		{
			name:    "existing user",
			id:      user.ID,
			want:    user,
			wantErr: false,
		},
		{
			name:    "non-existent user",
			id:      uuid.New(),
			want:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.ID, got.ID)
			assert.Equal(t, tt.want.Username, got.Username)
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("username_user").
		Build(t, testDB.DB)

	tests := []struct {
		name     string
		username string
		want     *domain.User
		wantErr  bool
	}{
		{
			name:     "existing user",
			username: "username_user",
			want:     user,
			wantErr:  false,
		},
		{
			name:     "non-existent user",
			username: "nonexistent",
			want:     nil,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByUsername(ctx, tt.username)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.ID, got.ID)
			assert.Equal(t, tt.want.Username, got.Username)
		})
	}
}

func TestUserRepository_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("update_user").
		Build(t, testDB.DB)

	user.Username = "updated_user"
	err := repo.Update(ctx, user)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated_user", got.Username)
}

func TestUserRepository_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	tokenRepo := postgres.NewTokenRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	testutil.NewLinkBuilder(user).Build(t, testDB.DB)
	require.NoError(t, tokenRepo.Create(ctx, &domain.Token{
		UserID:    user.ID,
		Token:     "opaque-token",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}))

	require.NoError(t, repo.Delete(ctx, user.ID))

	// User, tokens and links are all gone.
	_, err := repo.GetByID(ctx, user.ID)
	assert.Error(t, err)

	var tokens, links int64
	require.NoError(t, testDB.DB.Model(&domain.Token{}).Where("user_id = ?", user.ID).Count(&tokens).Error)
	require.NoError(t, testDB.DB.Model(&domain.Link{}).Where("user_id = ?", user.ID).Count(&links).Error)
	assert.EqualValues(t, 0, tokens)
	assert.EqualValues(t, 0, links)

	// Deleting again reports not found
	assert.Error(t, repo.Delete(ctx, user.ID))
}
