package utils

import (
	"context"
	"fmt"
	"time"
)

// Backoff computes capped exponential delays: Base, 2*Base, 4*Base ... up to Cap.
type Backoff struct {
	Base time.Duration
	Cap  time.Duration
}

// Delay returns the wait before the attempt following attempt n (1-based).
func (b Backoff) Delay(n int) time.Duration {
	if n < 1 || b.Base <= 0 {
		return 0
	}
	d := b.Base
	for i := 1; i < n; i++ {
		d *= 2
		if b.Cap > 0 && d >= b.Cap {
			return b.Cap
		}
	}
	if b.Cap > 0 && d > b.Cap {
		return b.Cap
	}
	return d
}

// RetryPolicy configures RetryWithBackoff.
type RetryPolicy struct {
	MaxRetries  int
	Backoff     Backoff
	IsRetryable func(error) bool
	// Sleep waits between attempts; nil means a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// RetryWithBackoff calls fn until it succeeds, returns a non-retryable error,
// or MaxRetries retries are used up. It returns the number of attempts made
// and the last error.
func RetryWithBackoff(ctx context.Context, policy RetryPolicy, fn func(attempt int) error, logger *Logger) (int, error) {
	sleep := policy.Sleep
	if sleep == nil {
		sleep = SleepContext
	}
	maxAttempts := policy.MaxRetries + 1
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return attempt - 1, err
		}
		lastErr = fn(attempt)
		if lastErr == nil {
			return attempt, nil
		}
		if policy.IsRetryable != nil && !policy.IsRetryable(lastErr) {
			return attempt, lastErr
		}
		if attempt == maxAttempts {
			break
		}

		backoff := policy.Backoff.Delay(attempt)
		logger.Warn("Attempt %d/%d failed: %v (retrying in %v)", attempt, maxAttempts, lastErr, backoff)
		if err := sleep(ctx, backoff); err != nil {
			return attempt, err
		}
	}
	return maxAttempts, fmt.Errorf("all %d attempts failed, last error: %w", maxAttempts, lastErr)
}

// SleepContext waits for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
