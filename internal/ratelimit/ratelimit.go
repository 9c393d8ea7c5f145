// Package ratelimit provides keyed request limiters used by the HTTP layer.
// The in-memory limiter is a token bucket per key; the Redis limiter is a fixed
// window counter shared by every instance pointing at the same Redis.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the result of a single Allow call.
type Decision struct {
	Allowed bool
	// RetryAfter is how long the caller should wait before retrying. Zero when allowed.
	RetryAfter time.Duration
}

// Limiter decides whether a request identified by key may proceed.
//
// Implementations that depend on an external store fail open: when the store
// cannot be reached they return an allowed Decision together with the error so
// the caller can log it.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// RetryAfterSeconds rounds d up to whole seconds for the Retry-After header, never below one.
func RetryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
