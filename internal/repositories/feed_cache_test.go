package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/linkedup/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFeedCache(t *testing.T) *RedisFeedCache {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err())

	t.Cleanup(func() {
		_ = client.Del(context.Background(), feedCacheKey).Err()
		_ = client.Close()
	})

	return NewRedisFeedCache(client, time.Minute)
}

func TestFeedCache_RoundTrip(t *testing.T) {
	cache := setupFeedCache(t)
	ctx := context.Background()

	_, ok := cache.Get(ctx)
	assert.False(t, ok, "empty cache must miss")

	posts := []models.Post{
		{Text: "second", Likes: []string{"u1"}, User: models.DefaultAuthor()},
		{Text: "first", Likes: []string{}, User: models.DefaultAuthor()},
	}
	cache.Set(ctx, posts)

	cached, ok := cache.Get(ctx)
	require.True(t, ok)
	require.Len(t, cached, 2)
	assert.Equal(t, "second", cached[0].Text)
	assert.Equal(t, []string{"u1"}, cached[0].Likes)
}

func TestFeedCache_Invalidate(t *testing.T) {
	cache := setupFeedCache(t)
	ctx := context.Background()

	cache.Set(ctx, []models.Post{{Text: "stale"}})
	cache.Invalidate(ctx)

	_, ok := cache.Get(ctx)
	assert.False(t, ok)
}
