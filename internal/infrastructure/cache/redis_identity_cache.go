// Package cache holds the device identity caches.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"laundry_desk/internal/infrastructure/config"
	"laundry_desk/internal/usecase/interfaces"
)

const defaultKeyPrefix = "identity:"

// RedisIdentityCache shares device identities across service instances.
type RedisIdentityCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

var _ interfaces.IIdentityCache = (*RedisIdentityCache)(nil)

// NewRedisIdentityCache connects to Redis and checks the connection.
func NewRedisIdentityCache(cfg config.RedisConfig) (*RedisIdentityCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisIdentityCacheWithClient(client, "", cfg.TTL), nil
}

// NewRedisIdentityCacheWithClient wraps an existing client. A zero ttl keeps
// entries forever.
func NewRedisIdentityCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisIdentityCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisIdentityCache{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (c *RedisIdentityCache) Get(ctx context.Context, key string) (string, bool, error) {
	name, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read identity: %w", err)
	}
	return name, true, nil
}

func (c *RedisIdentityCache) Set(ctx context.Context, key, name string) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, name, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write identity: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisIdentityCache) Close() error {
	return c.client.Close()
}
