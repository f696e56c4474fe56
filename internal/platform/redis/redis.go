// Package redis wraps the optional shared Redis used for the second-level snapshot cache and the
// target generation lock. A nil *Client is valid and behaves as "not configured".
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"
)

// ErrLockNotObtained is returned by WithLock when another holder owns the key.
var ErrLockNotObtained = errors.New("lock not obtained")

// Client bundles the redis connection and its lock client.
type Client struct {
	rdb    *goredis.Client
	locker *redislock.Client
}

// NewClient connects to addr and verifies the connection with a ping.
func NewClient(ctx context.Context, addr, password string) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
		PoolSize: 50,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return NewFromRedis(rdb), nil
}

// NewFromRedis wraps an existing go-redis client.
func NewFromRedis(rdb *goredis.Client) *Client {
	return &Client{rdb: rdb, locker: redislock.New(rdb)}
}

// Redis exposes the underlying client, nil when not configured.
func (c *Client) Redis() *goredis.Client {
	if c == nil {
		return nil
	}
	return c.rdb
}

// GetObject decodes the JSON value at key into dest. It reports false when the key is absent.
func (c *Client) GetObject(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetObject stores obj as JSON at key with expiry exp.
func (c *Client) SetObject(ctx context.Context, key string, obj any, exp time.Duration) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, exp).Err()
}

// Delete removes keys.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// WithLock runs fn while holding the distributed lock on key. Without redis fn runs unguarded.
func (c *Client) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	if c == nil {
		return fn(ctx)
	}
	lock, err := c.locker.Obtain(ctx, "lock:"+key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return ErrLockNotObtained
	}
	if err != nil {
		return fmt.Errorf("obtain lock %s: %w", key, err)
	}
	defer func() {
		_ = lock.Release(context.WithoutCancel(ctx))
	}()
	return fn(ctx)
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
