package utils_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-rooms-scraper/utils"
)

var errFlaky = errors.New("flaky")

func recordSleeps(delays *[]time.Duration) func(context.Context, time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return ctx.Err()
	}
}

func TestBackoff_Delay(t *testing.T) {
	b := utils.Backoff{Base: 100 * time.Millisecond, Cap: time.Second}

	assert.Equal(t, time.Duration(0), b.Delay(0))
	assert.Equal(t, 100*time.Millisecond, b.Delay(1))
	assert.Equal(t, 200*time.Millisecond, b.Delay(2))
	assert.Equal(t, 400*time.Millisecond, b.Delay(3))
	assert.Equal(t, 800*time.Millisecond, b.Delay(4))
	assert.Equal(t, time.Second, b.Delay(5))
	assert.Equal(t, time.Second, b.Delay(40))

	uncapped := utils.Backoff{Base: time.Second}
	assert.Equal(t, 8*time.Second, uncapped.Delay(4))
}

func TestRetryWithBackoff_SucceedsAfterRetries(t *testing.T) {
	var delays []time.Duration
	policy := utils.RetryPolicy{
		MaxRetries:  3,
		Backoff:     utils.Backoff{Base: 10 * time.Millisecond, Cap: 25 * time.Millisecond},
		IsRetryable: func(error) bool { return true },
		Sleep:       recordSleeps(&delays),
	}

	calls := 0
	attempts, err := utils.RetryWithBackoff(context.Background(), policy, func(attempt int) error {
		calls++
		assert.Equal(t, calls, attempt)
		if attempt < 4 {
			return errFlaky
		}
		return nil
	}, utils.NewNopLogger())

	require.NoError(t, err)
	assert.Equal(t, 4, attempts)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 25 * time.Millisecond}, delays)
}

func TestRetryWithBackoff_Exhausted(t *testing.T) {
	var delays []time.Duration
	policy := utils.RetryPolicy{
		MaxRetries: 2,
		Backoff:    utils.Backoff{Base: time.Millisecond},
		Sleep:      recordSleeps(&delays),
	}

	attempts, err := utils.RetryWithBackoff(context.Background(), policy, func(int) error {
		return errFlaky
	}, utils.NewNopLogger())

	require.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 3, attempts)
	assert.Len(t, delays, 2, "no sleep after the last attempt")
}

func TestRetryWithBackoff_NonRetryableStops(t *testing.T) {
	policy := utils.RetryPolicy{
		MaxRetries:  5,
		IsRetryable: func(err error) bool { return !errors.Is(err, errFlaky) },
		Sleep:       recordSleeps(new([]time.Duration)),
	}

	attempts, err := utils.RetryWithBackoff(context.Background(), policy, func(int) error {
		return errFlaky
	}, utils.NewNopLogger())

	require.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 1, attempts)
}

func TestRetryWithBackoff_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	attempts, err := utils.RetryWithBackoff(ctx, utils.RetryPolicy{MaxRetries: 3}, func(int) error {
		called = true
		return nil
	}, utils.NewNopLogger())

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, attempts)
	assert.False(t, called)
}

func TestSleepContext(t *testing.T) {
	require.NoError(t, utils.SleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, utils.SleepContext(ctx, time.Hour), context.Canceled)
}
