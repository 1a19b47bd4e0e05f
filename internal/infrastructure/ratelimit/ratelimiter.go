package ratelimit

import (
	"context"
	"time"
)

// Config caps requests per sliding window. A zero value disables that window.
type Config struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

// Limiter throttles requests per caller key.
type Limiter interface {
	Allow(ctx context.Context, key string, config Config) (bool, error)
	Remaining(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
