package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultCleanupInterval = 5 * time.Minute
	defaultIdleTimeout     = time.Hour
)

type memoryEntry struct {
	limiter    *rate.Limiter
	mu         sync.Mutex
	lastAccess time.Time
}

// MemoryLimiter keeps an independent token bucket per key.
// A background goroutine drops buckets that have been idle for longer than an hour;
// call Close to stop it.
type MemoryLimiter struct {
	limiters sync.Map // map[string]*memoryEntry
	rps      rate.Limit
	burst    int
	now      func() time.Time
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewMemoryLimiter creates a limiter allowing rps requests per second per key with the given burst.
func NewMemoryLimiter(rps float64, burst int) *MemoryLimiter {
	return newMemoryLimiter(rps, burst, defaultCleanupInterval, defaultIdleTimeout, time.Now)
}

func newMemoryLimiter(
	rps float64,
	burst int,
	cleanupInterval, idleTimeout time.Duration,
	now func() time.Time,
) *MemoryLimiter {
	ctx, cancel := context.WithCancel(context.Background())
	m := &MemoryLimiter{
		rps:    rate.Limit(rps),
		burst:  burst,
		now:    now,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go m.cleanupStale(ctx, cleanupInterval, idleTimeout)
	return m
}

// Allow consumes one token from the bucket for key. It never returns an error.
func (m *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()
	entry := m.entry(key, now)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.lastAccess = now

	reservation := entry.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return Decision{Allowed: false, RetryAfter: time.Second}, nil
	}
	delay := reservation.DelayFrom(now)
	if delay == 0 {
		return Decision{Allowed: true}, nil
	}
	reservation.CancelAt(now)
	return Decision{Allowed: false, RetryAfter: delay}, nil
}

// Close stops the cleanup goroutine and waits for it to exit.
func (m *MemoryLimiter) Close() error {
	m.cancel()
	<-m.done
	return nil
}

func (m *MemoryLimiter) entry(key string, now time.Time) *memoryEntry {
	if val, ok := m.limiters.Load(key); ok {
		return val.(*memoryEntry)
	}
	fresh := &memoryEntry{limiter: rate.NewLimiter(m.rps, m.burst), lastAccess: now}
	val, _ := m.limiters.LoadOrStore(key, fresh)
	return val.(*memoryEntry)
}

func (m *MemoryLimiter) cleanupStale(ctx context.Context, interval, idleTimeout time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sweep(m.now().Add(-idleTimeout))
		}
	}
}

func (m *MemoryLimiter) sweep(threshold time.Time) {
	m.limiters.Range(func(key, value any) bool {
		entry := value.(*memoryEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if stale {
			m.limiters.Delete(key)
		}
		return true
	})
}
