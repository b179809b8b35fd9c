package utils

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter paces outgoing requests with a token bucket
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter allows one request per delay with the given burst. A
// non-positive delay disables limiting.
func NewRateLimiter(delay time.Duration, burst int) *RateLimiter {
	if delay <= 0 {
		return &RateLimiter{}
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Every(delay), burst)}
}

// Wait blocks until a request may start or ctx is done
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil || r.limiter == nil {
		return ctx.Err()
	}
	return r.limiter.Wait(ctx)
}
