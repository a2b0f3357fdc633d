package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache provides Redis-backed caching.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a cache backed by the given Redis client.
// All keys are namespaced with the prefix.
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

// NewRedisClient creates a Redis client from a URL, accepting both
// redis://host:port URLs and bare host:port addresses.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// Bare host:port
		return redis.NewClient(&redis.Options{Addr: redisURL}), nil
	}
	return redis.NewClient(opt), nil
}

func (c *RedisCache) key(key string) string {
	return c.prefix + key
}

// Get retrieves a value by key. Misses and transient Redis failures both
// return nil bytes; the caller treats either as "not cached".
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		slog.Warn("Redis cache get failed", "key", key, "error", err)
		return nil, nil
	}
	return data, nil
}

// Set stores a value with the given TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

// Delete removes a value by key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}
