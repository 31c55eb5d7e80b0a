package optimize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lexdiff/internal/diff"
)

const redisKeyPrefix = "lexdiff:diffcache:"

// RedisCache shares memoized diffs across service instances. Values are the
// same JSON representation used for archived diffs.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps an existing client. TTL bounds staleness of cached
// entries; statute versions are immutable so a generous TTL is fine.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*diff.StatuteDiff, bool, error) {
	payload, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get diff: %w", err)
	}
	var d diff.StatuteDiff
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached diff: %w", err)
	}
	return &d, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, d *diff.StatuteDiff) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal diff for cache: %w", err)
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set diff: %w", err)
	}
	return nil
}
