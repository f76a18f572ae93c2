package service

import (
	"context"
	"time"
)

// WithSleep exposes the retry wait hook to external tests.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) BrandKitOption {
	return withSleep(fn)
}

// Backoff exposes the jittered delay calculation.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	return p.backoff(attempt)
}
