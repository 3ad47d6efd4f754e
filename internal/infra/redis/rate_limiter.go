package redis

import (
	"context"
	"fmt"
	"time"

	"universidad-sunshine/internal/domain/ports/adapter"
)

var _ adapter.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a fixed-window counter on Redis INCR+EXPIRE.
type RateLimiter struct {
	client RedisClient
}

func NewRateLimiter(client RedisClient) *RateLimiter {
	return &RateLimiter{client: client}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := r.client.Incr(ctx, rateKey(key))
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, rateKey(key), window); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

func rateKey(key string) string {
	return fmt.Sprintf("rate_limit:%s", key)
}
