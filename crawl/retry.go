package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/mos"
)

// RetryFunc performs one attempt of a retryable operation.
type RetryFunc func(ctx context.Context) error

// RetryNotifyFunc is called before each retry with the upcoming attempt
// number (starting at 2) and the error of the failed attempt.
type RetryNotifyFunc func(attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// NoRetries disables retrying.
func NoRetries() []time.Duration {
	return []time.Duration{}
}

// RetryDelays returns n backoff delays doubling from one second.
func RetryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, max(n, 0))
	d := time.Second
	for i := 0; i < n; i++ {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// Retryable reports whether err is a transport failure worth another
// attempt. Only ETRANSPORT errors qualify: HTTP status, parse and local
// filesystem errors are final, as is any error once ctx is done.
func Retryable(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}
	return mos.ErrorCode(err) == mos.ETRANSPORT
}

// Retry runs fn until it succeeds, fails with a non-retryable error, or
// all delays are used up (1 initial attempt + len(delays) retries).
// The notify function, if provided, is called before each retry.
func Retry(ctx context.Context, delays []time.Duration, fn RetryFunc, notify RetryNotifyFunc) error {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 || !Retryable(ctx, err) {
			break
		}

		if notify != nil {
			notify(attempt+2, err)
		}

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return lastErr
}
