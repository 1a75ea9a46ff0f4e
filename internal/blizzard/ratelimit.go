package blizzard

import (
	"context"
	"sync"
	"time"
)

// RateLimiter implements token bucket rate limiting for API requests.
// Blizzard does not advertise remaining quota in response headers, so the
// bucket refills purely on elapsed time.
type RateLimiter struct {
	mu         sync.Mutex
	limit      int
	interval   time.Duration
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter creates a new rate limiter allowing limit requests per
// interval.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:      limit,
		interval:   interval,
		tokens:     limit,
		lastRefill: time.Now(),
	}
}

// refillLocked resets the bucket if a full interval has passed. Must be
// called with the lock held.
func (r *RateLimiter) refillLocked(now time.Time) time.Duration {
	elapsed := now.Sub(r.lastRefill)
	if elapsed >= r.interval {
		r.tokens = r.limit
		r.lastRefill = now
		return 0
	}
	return r.interval - elapsed
}

// Wait blocks until a token is available or the context is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining := r.refillLocked(time.Now())

	if r.tokens <= 0 {
		// Bucket exhausted, sleep out the rest of the interval.
		r.mu.Unlock()
		select {
		case <-time.After(remaining):
			r.mu.Lock()
			r.tokens = r.limit
			r.lastRefill = time.Now()
		case <-ctx.Done():
			r.mu.Lock()
			return ctx.Err()
		}
	}

	r.tokens--
	return nil
}

// Remaining returns the number of requests left in the current interval.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refillLocked(time.Now())
	return r.tokens
}
