package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/linkedup/backend/internal/models"
	"github.com/linkedup/backend/pkg/config"
	"go.uber.org/zap"
)

const feedCacheKey = "feed:recent"

// FeedCache is a best-effort cache in front of the feed query. A broken
// cache degrades to a miss, never to a failed request.
type FeedCache interface {
	Get(ctx context.Context) ([]models.Post, bool)
	Set(ctx context.Context, posts []models.Post)
	Invalidate(ctx context.Context)
}

// RedisFeedCache implements FeedCache on Redis
type RedisFeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisFeedCache creates a new RedisFeedCache
func NewRedisFeedCache(client *redis.Client, ttl time.Duration) *RedisFeedCache {
	return &RedisFeedCache{client: client, ttl: ttl}
}

// Get returns the cached feed, or a miss when absent or unreadable
func (c *RedisFeedCache) Get(ctx context.Context) ([]models.Post, bool) {
	val, err := c.client.Get(ctx, feedCacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			config.Logger.Warn("Failed to read feed cache", zap.Error(err))
		}
		return nil, false
	}

	var posts []models.Post
	if err := json.Unmarshal([]byte(val), &posts); err != nil {
		config.Logger.Warn("Failed to decode feed cache entry", zap.Error(err))
		return nil, false
	}
	return posts, true
}

// Set stores the feed under a short TTL
func (c *RedisFeedCache) Set(ctx context.Context, posts []models.Post) {
	data, err := json.Marshal(posts)
	if err != nil {
		config.Logger.Warn("Failed to encode feed cache entry", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, feedCacheKey, data, c.ttl).Err(); err != nil {
		config.Logger.Warn("Failed to write feed cache", zap.Error(err))
	}
}

// Invalidate drops the cached feed after a write
func (c *RedisFeedCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, feedCacheKey).Err(); err != nil {
		config.Logger.Warn("Failed to invalidate feed cache", zap.Error(err))
	}
}
