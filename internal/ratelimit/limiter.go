package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter is the backing store for windowed counters. Implemented by Redis
// in production and by an in-memory map in tests.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}

type redisCounter struct {
	client *redis.Client
}

// NewRedisCounter wraps a go-redis client as a Counter.
func NewRedisCounter(client *redis.Client) Counter {
	return &redisCounter{client: client}
}

// Incr increments the key and sets the window expiry on first increment.
func (c *redisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 && window > 0 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

func (c *redisCounter) Reset(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Limiter is a fixed-window rate limiter keyed by an arbitrary string
// (typically client IP).
type Limiter struct {
	counter Counter
	limit   int64
	window  time.Duration
	prefix  string
}

// NewLimiter builds a limiter allowing limit requests per window per key.
func NewLimiter(counter Counter, limit int, window time.Duration, prefix string) *Limiter {
	return &Limiter{counter: counter, limit: int64(limit), window: window, prefix: prefix}
}

// Allow reports whether the key is under its limit. Counter failures allow
// the request; rate limiting is best-effort, not a gate on availability.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.counter == nil || l.limit <= 0 {
		return true
	}
	count, err := l.counter.Incr(ctx, fmt.Sprintf("%s:%s", l.prefix, key), l.window)
	if err != nil {
		return true
	}
	return count <= l.limit
}
