package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// DashboardCache keeps rendered chart payloads in redis for a short TTL so
// the dashboard does not rescan the bookings table on every poll. A nil
// cache is valid and disables caching.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDashboardCache connects to REDIS_URL. Returns an error when redis is
// configured but unreachable; callers may choose to run without a cache.
func NewDashboardCache(ctx context.Context, ttl time.Duration) (*DashboardCache, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &DashboardCache{client: client, ttl: ttl}, nil
}

// Get returns the cached JSON payload for key, or ("", false).
func (c *DashboardCache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	data, err := c.client.Get(ctx, "dashboard:"+key).Result()
	if err != nil {
		return "", false
	}
	return data, true
}

// Set stores the JSON payload for key with the cache TTL.
func (c *DashboardCache) Set(ctx context.Context, key, payload string) {
	if c == nil {
		return
	}
	c.client.Set(ctx, "dashboard:"+key, payload, c.ttl)
}
