package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/link-appender/internal/domain"
	"github.com/dom/link-appender/internal/repository/postgres"
	"github.com/dom/link-appender/internal/service"
	"github.com/dom/link-appender/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeeder_Run(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	seeder := service.NewSeeder(repos.User)
	ctx := context.Background()

	require.NoError(t, seeder.Run(ctx, service.DefaultSeedUsers))

	users, err := repos.User.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	byName := map[string]*domain.User{}
	for _, u := range users {
		byName[u.Username] = u
	}

	admin := byName["admin"]
	require.NotNil(t, admin)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("adminpass")))

	for _, name := range []string{"user1", "user2"} {
		u := byName[name]
		require.NotNil(t, u)
		assert.Equal(t, domain.RoleCustomer, u.Role)
	}
}

func TestSeeder_Run_Idempotent(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	seeder := service.NewSeeder(repos.User)
	ctx := context.Background()

	require.NoError(t, seeder.Run(ctx, service.DefaultSeedUsers))

	first, err := repos.User.GetByUsername(ctx, "admin")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, seeder.Run(ctx, service.DefaultSeedUsers))

	users, err := repos.User.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	second, err := repos.User.GetByUsername(ctx, "admin")
	require.NoError(t, err)

	// Same row: creation timestamp preserved, last-modified advanced, password rewritten.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Greater(t, second.LastUpdatedAt, first.LastUpdatedAt)
	assert.NotEqual(t, first.PasswordHash, second.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(second.PasswordHash), []byte("adminpass")))
}
