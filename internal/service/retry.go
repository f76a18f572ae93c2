package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/phrazzld/brandkit-api/internal/generation"
)

// RetryPolicy controls how often the service re-invokes the generator after
// a retryable failure. The zero value makes a single attempt.
type RetryPolicy struct {
	// MaxAttempts is the total number of generator calls, including the first.
	MaxAttempts int
	// BaseDelay is the backoff before the second attempt. Each further
	// attempt doubles it; the actual wait is jittered to 50-100%.
	BaseDelay time.Duration
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// backoff returns the jittered delay after the given 1-based attempt.
// delay = base * 2^(attempt-1) * (0.5 + rand[0, 0.5))
func (p RetryPolicy) backoff(attempt int) time.Duration {
	base := float64(p.BaseDelay) * math.Pow(2, float64(attempt-1))
	jitter := 0.5 + rand.Float64()*0.5
	return time.Duration(base * jitter)
}

// sleepFunc waits for d or until ctx is done, returning ctx.Err() in the
// latter case.
type sleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// withRetry calls fn until it succeeds, fails with a non-retryable kind, or
// the policy is exhausted. It returns the number of attempts made.
func withRetry[T any](
	ctx context.Context,
	log *slog.Logger,
	policy RetryPolicy,
	sleep sleepFunc,
	mode generation.Mode,
	fn func(context.Context) (T, error),
) (T, int, error) {
	maxAttempts := policy.attempts()

	for attempt := 1; ; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, attempt, nil
		}

		kind, _ := generation.KindOf(err)
		if !kind.Retryable() || attempt >= maxAttempts {
			if attempt > 1 {
				log.WarnContext(ctx, "Generation failed after retries",
					slog.Int("attempts", attempt),
					slog.String("kind", string(kind)))
			}
			return result, attempt, err
		}

		delay := policy.backoff(attempt)
		log.InfoContext(ctx, "Retrying generation after delay",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", maxAttempts),
			slog.String("kind", string(kind)),
			slog.Duration("delay", delay))

		if waitErr := sleep(ctx, delay); waitErr != nil {
			log.WarnContext(ctx, "Generation cancelled during retry delay",
				slog.Int("attempt", attempt),
				slog.String("ctx_err", waitErr.Error()))

			var zero T
			return zero, attempt, contextError(ctx, mode, waitErr)
		}
	}
}

// contextError classifies a context failure the same way the client does.
func contextError(ctx context.Context, mode generation.Mode, cause error) error {
	kind := generation.KindCancelled
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		kind = generation.KindTimeout
	}
	return &generation.Error{Kind: kind, Mode: mode, Err: cause}
}
