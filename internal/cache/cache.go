// Package cache provides the Redis wrapper behind the library read cache.
// The cache is advisory: every error degrades to a miss so a Redis outage
// never takes book reads down with it.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a fail-safe wrapper around redis.Client. A nil Client is valid
// and behaves like an always-empty cache, which keeps the service layer
// testable without a Redis instance.
type Client struct {
	client *redis.Client
}

// New connects a Client to the given Redis instance.
func New(addr, password string, db int) *Client {
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Get returns the cached value, or nil on a miss or when Redis is
// unreachable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors alike read as a miss
		return nil, nil
	}
	return res, nil
}

// Set stores value with a TTL. Redis errors are swallowed; the entry will
// simply be fetched from the database next time.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
	return nil
}

// Delete invalidates a key, ignoring redis errors. Stale entries age out
// via TTL if the delete is lost.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	_ = c.client.Del(ctx, key).Err()
	return nil
}
