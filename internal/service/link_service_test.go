package service_test

import (
	"context"
	"testing"

	"github.com/dom/link-appender/internal/domain"
	"github.com/dom/link-appender/internal/repository/postgres"
	"github.com/dom/link-appender/internal/service"
	"github.com/dom/link-appender/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkService_Append(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	linkService := service.NewLinkService(repos.Link)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	tests := []struct {
		name       string
		url        string
		params     map[string]interface{}
		wantErr    error
		wantNewURL string
	}{
		{
			name:       "fresh append serializes params as the query string",
			url:        "https://example.com/page",
			params:     map[string]interface{}{"utm_source": "news", "b": "2"},
			wantNewURL: "https://example.com/page?b=2&utm_source=news",
		},
		{
			name:    "invalid URL",
			url:     "not a url",
			params:  map[string]interface{}{"a": "1"},
			wantErr: domain.ErrInvalidURL,
		},
		{
			name:    "unsupported protocol",
			url:     "ftp://example.com",
			params:  map[string]interface{}{"a": "1"},
			wantErr: domain.ErrInvalidURL,
		},
		{
			name:    "hostname without a dot",
			url:     "https://localhost",
			params:  map[string]interface{}{"a": "1"},
			wantErr: domain.ErrInvalidURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := linkService.Append(ctx, user.ID, tt.url, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.url, link.OriginalURL)
			assert.Equal(t, tt.wantNewURL, link.NewURL)
		})
	}
}

func TestLinkService_Append_MergesParameters(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	linkService := service.NewLinkService(repos.Link)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	const url = "https://example.com/landing"

	first, err := linkService.Append(ctx, user.ID, url, map[string]interface{}{
		"a": "1",
		"b": "old",
	})
	require.NoError(t, err)

	second, err := linkService.Append(ctx, user.ID, url, map[string]interface{}{
		"b": "new",
		"c": "3",
	})
	require.NoError(t, err)

	// Merged into the same row, later keys win on conflict.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "1", second.Parameters["a"])
	assert.Equal(t, "new", second.Parameters["b"])
	assert.Equal(t, "3", second.Parameters["c"])
	assert.Equal(t, "https://example.com/landing?a=1&b=new&c=3", second.NewURL)

	// Only one row exists for the (user, url) pair.
	var count int64
	require.NoError(t, testDB.DB.Model(&domain.Link{}).
		Where("user_id = ? AND original_url = ?", user.ID, url).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLinkService_Append_PerUserMemoization(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	linkService := service.NewLinkService(repos.Link)
	ctx := context.Background()

	alice, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	bob, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	const url = "https://example.com/shared"

	_, err := linkService.Append(ctx, alice.ID, url, map[string]interface{}{"who": "alice"})
	require.NoError(t, err)

	bobLink, err := linkService.Append(ctx, bob.ID, url, map[string]interface{}{"who": "bob"})
	require.NoError(t, err)

	// Bob's append must not see Alice's stored parameters.
	assert.Equal(t, "https://example.com/shared?who=bob", bobLink.NewURL)
	assert.NotContains(t, bobLink.Parameters, "alice")
}

func TestLinkService_List(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	linkService := service.NewLinkService(repos.Link)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	var created []*domain.Link
	for i := 0; i < 12; i++ {
		link, err := linkService.Append(ctx, user.ID,
			"https://example.com/page"+string(rune('a'+i)),
			map[string]interface{}{"n": "1"})
		require.NoError(t, err)
		created = append(created, link)
	}

	// Second page of five: rows 6-10 ordered by id descending.
	links, err := linkService.List(ctx, 5, 5)
	require.NoError(t, err)
	require.Len(t, links, 5)
	for i, link := range links {
		assert.Equal(t, created[len(created)-6-i].ID, link.ID)
	}
}
