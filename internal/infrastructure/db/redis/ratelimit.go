package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles brute-forceable endpoints (login, forgot-password)
// with a fixed window per key backed by Redis, so the limit holds across
// replicas. Key format: ratelimit:<scope>:<client key>
type RateLimiter struct {
	client *redis.Client
	window time.Duration
	max    int64
}

// NewRateLimiter creates a limiter allowing max requests per window.
func NewRateLimiter(client *redis.Client, window time.Duration, max int64) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 10
	}
	return &RateLimiter{client: client, window: window, max: max}
}

// Allow reports whether another request is permitted for the scoped key.
// The first request in a window sets the key's expiry; the counter resets
// when the window lapses.
func (l *RateLimiter) Allow(ctx context.Context, scope, key string) (bool, error) {
	k := fmt.Sprintf("ratelimit:%s:%s", scope, key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= l.max, nil
}
