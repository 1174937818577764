package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/erp/saleflow/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const defaultViewKeyPrefix = "saleflow:view:"

// RedisViewCache implements catalog.ViewCache using Redis.
// It lets every instance serve the same patched archs.
type RedisViewCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisClient connects to Redis and checks the connection
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisViewCache creates a cache on an existing client. A zero ttl keeps entries forever.
func NewRedisViewCache(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisViewCache {
	if keyPrefix == "" {
		keyPrefix = defaultViewKeyPrefix
	}
	return &RedisViewCache{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// Get returns the cached arch
func (c *RedisViewCache) Get(ctx context.Context, key string) (string, bool, error) {
	arch, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cached view: %w", err)
	}
	return arch, true, nil
}

// Set stores an arch with the cache TTL
func (c *RedisViewCache) Set(ctx context.Context, key, arch string) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, arch, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache view: %w", err)
	}
	return nil
}

// Delete evicts an arch
func (c *RedisViewCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to evict cached view: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisViewCache) Close() error {
	return c.client.Close()
}

var _ catalog.ViewCache = (*RedisViewCache)(nil)
