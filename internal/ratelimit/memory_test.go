package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestMemoryLimiter(t *testing.T, rps float64, burst int, clock *fakeClock) *MemoryLimiter {
	t.Helper()
	m := newMemoryLimiter(rps, burst, time.Hour, time.Hour, clock.Now)
	t.Cleanup(func() {
		require.NoError(t, m.Close())
	})
	return m
}

func TestMemoryLimiter_Allow(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_WithinBurst", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
		limiter := newTestMemoryLimiter(t, 1, 3, clock)

		for i := 0; i < 3; i++ {
			decision, err := limiter.Allow(ctx, "10.0.0.1")
			require.NoError(t, err)
			assert.True(t, decision.Allowed)
			assert.Zero(t, decision.RetryAfter)
		}
	})

	t.Run("Denied_AfterBurstWithRetryAfter", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
		limiter := newTestMemoryLimiter(t, 0.5, 1, clock)

		decision, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, decision.Allowed)

		decision, err = limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Equal(t, 2*time.Second, decision.RetryAfter)

		clock.Advance(2 * time.Second)
		decision, err = limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
	})

	t.Run("Success_KeysAreIndependent", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
		limiter := newTestMemoryLimiter(t, 1, 1, clock)

		first, _ := limiter.Allow(ctx, "a")
		second, _ := limiter.Allow(ctx, "b")
		third, _ := limiter.Allow(ctx, "a")

		assert.True(t, first.Allowed)
		assert.True(t, second.Allowed)
		assert.False(t, third.Allowed)
	})

	t.Run("Denied_ZeroBurst", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
		limiter := newTestMemoryLimiter(t, 1, 0, clock)

		decision, err := limiter.Allow(ctx, "a")
		require.NoError(t, err)
		assert.False(t, decision.Allowed)
	})
}

func TestMemoryLimiter_Sweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	limiter := newTestMemoryLimiter(t, 1, 1, clock)

	_, _ = limiter.Allow(context.Background(), "old")
	clock.Advance(2 * time.Hour)
	_, _ = limiter.Allow(context.Background(), "fresh")

	limiter.sweep(clock.Now().Add(-time.Hour))

	_, hasOld := limiter.limiters.Load("old")
	_, hasFresh := limiter.limiters.Load("fresh")
	assert.False(t, hasOld)
	assert.True(t, hasFresh)
}

func TestMemoryLimiter_ConcurrentAllow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	limiter := newTestMemoryLimiter(t, 1, 50, clock)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decision, _ := limiter.Allow(context.Background(), "shared")
			if decision.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 1, RetryAfterSeconds(0))
	assert.Equal(t, 1, RetryAfterSeconds(200*time.Millisecond))
	assert.Equal(t, 2, RetryAfterSeconds(1500*time.Millisecond))
	assert.Equal(t, 60, RetryAfterSeconds(time.Minute))
}
