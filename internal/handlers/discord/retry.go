package discord

import (
	"context"
	"errors"
	"time"

	"github.com/KirkDiggler/crocodile/internal/repositories"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// RetryPolicy bounds how often an idempotent operation is retried after a
// storage failure
type RetryPolicy struct {
	// Attempts counts the first try; values below 1 mean a single try
	Attempts int

	// BaseDelay doubles after every failed attempt
	BaseDelay time.Duration

	// MaxDelay caps a single wait
	MaxDelay time.Duration
}

// DefaultRetryPolicy retries twice, after 100ms and 200ms
var DefaultRetryPolicy = RetryPolicy{
	Attempts:  3,
	BaseDelay: 100 * time.Millisecond,
	MaxDelay:  2 * time.Second,
}

// backOff builds the schedule for one call. Waits are not randomized so
// the policy reads as written.
func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	opts := []backoff.ExponentialBackOffOpts{
		backoff.WithInitialInterval(p.BaseDelay),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0),
		backoff.WithMaxElapsedTime(0),
	}
	if p.MaxDelay > 0 {
		opts = append(opts, backoff.WithMaxInterval(p.MaxDelay))
	}

	retries := max(p.Attempts, 1) - 1
	return backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(opts...), uint64(retries)),
		ctx,
	)
}

func isStorageError(err error) bool {
	return errors.Is(err, repositories.ErrStorageUnavailable)
}

// withRetry runs fn until it succeeds, fails with anything other than
// repositories.ErrStorageUnavailable, or runs out of attempts
func withRetry[T any](ctx context.Context, policy RetryPolicy, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var (
		attempt int
		lastErr error
	)

	operation := func() (T, error) {
		attempt++
		result, err := fn(ctx)
		if err != nil && !isStorageError(err) {
			return result, backoff.Permanent(err)
		}
		lastErr = err
		return result, err
	}

	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).
			Str("op", op).
			Int("attempt", attempt).
			Dur("backoff", wait).
			Msg("storage unavailable, retrying")
	}

	result, err := backoff.RetryNotifyWithData(operation, policy.backOff(ctx), notify)
	if err != nil && ctx.Err() != nil && lastErr != nil && !errors.Is(err, lastErr) {
		// keep the storage failure visible next to the cancellation
		return result, errors.Join(lastErr, err)
	}
	return result, err
}
