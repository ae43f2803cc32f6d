package retry

import (
	"context"
	"time"
)

// Policy configures one retried operation. A fresh Policy is built per
// logical request; it is not shared state.
type Policy struct {
	// MaxAttempts bounds the total number of invocations, first attempt
	// included. Values below 1 are treated as 1 (no retries).
	MaxAttempts int

	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       bool

	// ShouldRetry decides whether a failed attempt is worth repeating.
	// A nil predicate retries every failure.
	ShouldRetry func(err error) bool

	// OnRetry is invoked before each backoff sleep with the failure and
	// the 1-based number of the attempt that just failed.
	OnRetry func(err error, attempt int)

	// DelayHint extracts a server-supplied delay (e.g. Retry-After) from
	// the failure. A positive hint overrides the computed backoff.
	DelayHint func(err error) time.Duration
}

// Do invokes op until it succeeds, the predicate rejects a retry, the
// attempt budget is exhausted, or ctx is done. The last observed failure is
// returned, never an aggregate. Sleeping between attempts is cooperative:
// it blocks only this call, and ends early when ctx is cancelled.
func Do(ctx context.Context, op func(ctx context.Context) error, p Policy) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; ; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt >= maxAttempts {
			return lastErr
		}
		if p.ShouldRetry != nil && !p.ShouldRetry(lastErr) {
			return lastErr
		}
		if p.OnRetry != nil {
			p.OnRetry(lastErr, attempt)
		}

		delay := Delay(attempt-1, p.InitialDelay, p.MaxDelay, p.Multiplier, p.Jitter)
		if p.DelayHint != nil {
			if hint := p.DelayHint(lastErr); hint > 0 {
				delay = hint
			}
		}
		if err := sleep(ctx, delay); err != nil {
			return lastErr
		}
	}
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
