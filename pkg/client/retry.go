package client

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for retry operations.
var (
	upstreamRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placeholder_upstream_retries_total",
		Help: "Total number of retry attempts by error class",
	}, []string{"error_class"})

	upstreamRetryExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placeholder_upstream_retry_exhausted_total",
		Help: "Total number of times retry attempts were exhausted by error class",
	}, []string{"error_class"})
)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// RetryConfig holds the configuration for retry logic.
type RetryConfig struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// Delay is the fixed wait between attempts.
	Delay time.Duration
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		Delay:      1 * time.Second,
	}
}

// Attempts returns the total number of attempts including the first one.
func (c RetryConfig) Attempts() int {
	if c.MaxRetries < 0 {
		return 1
	}
	return c.MaxRetries + 1
}

// SleepContext is the default Sleeper backed by a timer.
func SleepContext(ctx context.Context, d time.Duration) error {
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

// retryWithDelay runs fn until it succeeds or the attempts run out, waiting
// cfg.Delay between attempts. Every failure is retried the same way.
func retryWithDelay(ctx context.Context, cfg RetryConfig, sleep Sleeper, logger zerolog.Logger, fn func(attempt int) error) error {
	if sleep == nil {
		sleep = SleepContext
	}

	attempts := cfg.Attempts()
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		err := fn(attempt)
		if err == nil {
			if attempt > 1 {
				logger.Info().
					Int("attempt", attempt).
					Msg("Request succeeded after retry")
			}
			return nil
		}

		lastErr = err
		errClass := classifyError(err)

		if attempt >= attempts {
			break
		}

		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", ErrContextCancelled, lastErr)
		}

		upstreamRetriesTotal.WithLabelValues(string(errClass)).Inc()
		logger.Debug().
			Err(err).
			Str("error_class", string(errClass)).
			Int("attempt", attempt).
			Dur("delay", cfg.Delay).
			Msg("Retrying request after delay")

		if err := sleep(ctx, cfg.Delay); err != nil {
			logger.Warn().
				Int("attempt", attempt).
				Msg("Context cancelled during retry delay")
			return fmt.Errorf("%w: %v", ErrContextCancelled, err)
		}
	}

	errClass := classifyError(lastErr)
	upstreamRetryExhaustedTotal.WithLabelValues(string(errClass)).Inc()
	logger.Warn().
		Err(lastErr).
		Str("error_class", string(errClass)).
		Int("attempts", attempts).
		Msg("Retry attempts exhausted")

	return fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, attempts, lastErr)
}
