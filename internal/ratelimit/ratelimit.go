package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles tool calls across all clients of the server.
type Limiter struct {
	limiter *rate.Limiter
}

// New uses 0 or negative callsPerSecond for no rate limiting.
func New(callsPerSecond float64) *Limiter {
	if callsPerSecond <= 0 {
		return &Limiter{
			limiter: rate.NewLimiter(rate.Inf, 1),
		}
	}

	// Burst of 1: one call may go through immediately, subsequent calls
	// wait according to the rate limit.
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(callsPerSecond), 1),
	}
}

// Wait blocks until the next call is allowed or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow is non-blocking and useful for checking throttling.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// SetLimit changes the rate at runtime. 0 or negative removes the limit.
func (l *Limiter) SetLimit(callsPerSecond float64) {
	if callsPerSecond <= 0 {
		l.limiter.SetLimit(rate.Inf)
		return
	}
	l.limiter.SetLimit(rate.Limit(callsPerSecond))
}

// Limit reports the configured rate, 0 meaning unlimited.
func (l *Limiter) Limit() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}
