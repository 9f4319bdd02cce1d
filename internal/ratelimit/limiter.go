// Package ratelimit provides per-client admission control for the
// generation endpoint. The default backend is an in-process fixed-window
// counter map; a Redis backend shares the counters across instances.
package ratelimit

import (
	"context"
	"time"
)

// Limiter admits or denies requests for a client key.
type Limiter interface {
	// Allow reports whether the key may proceed. When denied, the second
	// return value is how long until the key's window resets, suitable for
	// a Retry-After header.
	Allow(ctx context.Context, key string) (bool, time.Duration)
}

// NoopLimiter admits everything. Used when rate limiting is disabled.
type NoopLimiter struct{}

// Allow always admits.
func (NoopLimiter) Allow(context.Context, string) (bool, time.Duration) {
	return true, 0
}
