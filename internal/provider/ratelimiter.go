package provider

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket used to space outbound provider calls.
// It only delays requests; it never retries them.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     int
	capacity   int
	refillRate time.Duration
	lastRefill time.Time
}

// NewRateLimiter allows capacity calls up front, refilling one token
// every refillRate.
func NewRateLimiter(capacity int, refillRate time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:     capacity,
		capacity:   capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Wait blocks until a token is available or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		if r.tryAcquire() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.refillRate):
		}
	}
}

func (r *RateLimiter) tryAcquire() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	refilled := int(now.Sub(r.lastRefill) / r.refillRate)
	if refilled > 0 {
		r.tokens = min(r.tokens+refilled, r.capacity)
		r.lastRefill = r.lastRefill.Add(time.Duration(refilled) * r.refillRate)
	}

	if r.tokens == 0 {
		return false
	}
	r.tokens--
	return true
}
