// Package cache holds the read-through sales report cache. The cached report
// lives in Redis under one key with a short TTL and is invalidated after
// every successful write, which is the read-your-writes guarantee the rest of
// the system relies on.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const reportKey = "shop:report:sales"

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection.
func New(addr string, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &Cache{client: client, ttl: ttl}, nil
}

// GetReport returns the cached report bytes, or nil on a miss.
func (c *Cache) GetReport(ctx context.Context) ([]byte, error) {
	data, err := c.client.Get(ctx, reportKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cached report: %w", err)
	}
	return data, nil
}

// SetReport stores the serialized report for the configured TTL.
func (c *Cache) SetReport(ctx context.Context, data []byte) error {
	if err := c.client.Set(ctx, reportKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("caching report: %w", err)
	}
	return nil
}

// Invalidate drops the cached report so the next read recomputes it.
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, reportKey).Err(); err != nil {
		return fmt.Errorf("invalidating cached report: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}
