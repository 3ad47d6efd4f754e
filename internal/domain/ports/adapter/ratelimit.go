package adapter

import (
	"context"
	"time"
)

// RateLimiter is a fixed-window counter; Allow reports whether the call under
// key is within limit for the window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
