package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/mos"
	"golang.org/x/time/rate"
)

var _ mos.Throttle = (*Throttle)(nil)

// Throttle keeps a fixed pause between the requests of one crawl session
// using a token bucket with a burst of 1. The first request passes
// immediately. Done drains the bucket, so the next Wait blocks until delay
// has passed since the previous request finished, however long it took.
type Throttle struct {
	mu      sync.Mutex
	limit   rate.Limit
	limiter *rate.Limiter
}

// NewThrottle creates a Throttle for the given pause between requests.
// A non-positive delay disables throttling.
func NewThrottle(delay time.Duration) *Throttle {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Throttle{limit: limit, limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next request may be sent.
// Returns an error if the context is canceled before the wait completes.
func (t *Throttle) Wait(ctx context.Context) error {
	t.mu.Lock()
	limiter := t.limiter
	t.mu.Unlock()
	return limiter.Wait(ctx)
}

// Done marks the end of a request and restarts the pause from now.
func (t *Throttle) Done() {
	if t.limit == rate.Inf {
		return
	}
	limiter := rate.NewLimiter(t.limit, 1)
	limiter.Allow()

	t.mu.Lock()
	t.limiter = limiter
	t.mu.Unlock()
}
