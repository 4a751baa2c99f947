package page

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryConfig controls exponential backoff for page fetches
type RetryConfig struct {
	MaxAttempts  int           // Maximum number of attempts (0 = just run once)
	InitialDelay time.Duration // Delay before the second attempt
	MaxDelay     time.Duration // Upper bound for the delay
	Multiplier   float64       // Backoff multiplier (typically 2.0)
}

// DefaultRetryConfig returns sensible defaults for fetching documentation pages
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 250 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
	}
}

// NonRetryable marks err so that retry stops immediately
func NonRetryable(err error) error {
	return backoff.Permanent(err)
}

// IsNonRetryable checks if an error is marked as non-retryable
func IsNonRetryable(err error) bool {
	var perm *backoff.PermanentError
	return errors.As(err, &perm)
}

// backOff maps the config onto an exponential policy without jitter,
// capped by attempts and bound to ctx
func (cfg RetryConfig) backOff(ctx context.Context) backoff.BackOff {
	attempts := max(cfg.MaxAttempts, 1)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialDelay
	if b.InitialInterval <= 0 {
		b.InitialInterval = 100 * time.Millisecond
	}
	b.MaxInterval = max(cfg.MaxDelay, b.InitialInterval)
	b.Multiplier = cfg.Multiplier
	if b.Multiplier < 1 {
		b.Multiplier = 2.0
	}
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)
}

// withRetry executes fn with exponential backoff
func withRetry(ctx context.Context, cfg RetryConfig, fn func() error) error {
	attempts := 0
	var lastErr error
	err := backoff.Retry(func() error {
		attempts++
		lastErr = fn()
		return lastErr
	}, cfg.backOff(ctx))
	if err == nil {
		return nil
	}

	if IsNonRetryable(lastErr) {
		return lastErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("retry cancelled after %d attempts: %w", attempts, errors.Join(ctxErr, lastErr))
	}
	return fmt.Errorf("retry failed after %d attempts: %w", attempts, lastErr)
}
