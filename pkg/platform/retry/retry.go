// Package retry provides a bounded exponential-backoff retry wrapper for the
// single remote append call. The policy is explicit data so tests can assert
// the schedule without sleeping through it.
package retry

import (
	"context"
	"time"
)

// Policy describes a bounded retry schedule. Delays double after each
// attempt: BaseDelay, 2*BaseDelay, 4*BaseDelay, ...
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the wait after the first failed attempt.
	BaseDelay time.Duration
	// Retryable reports whether an error is worth another attempt. A nil
	// predicate retries nothing.
	Retryable func(error) bool
}

// Do runs fn under the policy. It returns nil on the first success, the last
// error once attempts are exhausted, and immediately on non-retryable errors
// or context cancellation.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	delay := p.BaseDelay
	for attempt := 1; ; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= attempts || p.Retryable == nil || !p.Retryable(err) {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
