package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
)

// scanBatchSize bounds how many keys one SCAN iteration returns during
// prefix invalidation.
const scanBatchSize = 200

// RedisCache implements repository.Cache using Redis as the backing store.
type RedisCache struct {
	client *redis.Client
}

// Compile-time verification that RedisCache implements repository.Cache.
var _ repository.Cache = (*RedisCache)(nil)

// NewRedisCache creates a new Redis-backed response cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
	}
}

// Get retrieves a cached value.
// Returns nil, nil on cache miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss).Inc()
			return nil, nil // Cache miss
		}
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError).Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit).Inc()
	return data, nil
}

// Set stores a value with the specified TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError).Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess).Inc()
	return nil
}

// Delete removes the given keys.
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusError).Inc()
		return fmt.Errorf("redis del: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusSuccess).Inc()
	return nil
}

// DeleteByPrefix removes every key starting with prefix using SCAN, so
// large keyspaces are walked without blocking the server the way KEYS
// would.
func (c *RedisCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, prefix+"*", scanBatchSize).Result()
		if err != nil {
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDeletePrefix, metrics.CacheStatusError).Inc()
			return fmt.Errorf("redis scan: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDeletePrefix, metrics.CacheStatusError).Inc()
				return fmt.Errorf("redis del: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDeletePrefix, metrics.CacheStatusSuccess).Inc()
	return nil
}
