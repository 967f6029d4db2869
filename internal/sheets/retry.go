// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package sheets

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/tomtom215/steamsheet/internal/logging"
	"github.com/tomtom215/steamsheet/internal/metrics"
)

// ErrRetriesExhausted wraps the last error of a write that failed on every attempt.
var ErrRetriesExhausted = errors.New("sheet write failed after all retry attempts")

// Default write retry bounds.
const (
	DefaultMaxAttempts = 10
	DefaultRetryDelay  = 5 * time.Second
)

// RetryPolicy is a bounded, fixed-delay retry loop.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration

	// Sleep waits between attempts. Nil uses a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy returns 10 attempts with 5 seconds between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultRetryDelay}
}

// ZeroDelayPolicy returns a policy that retries immediately.
func ZeroDelayPolicy(attempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: attempts,
		Sleep:       func(ctx context.Context, _ time.Duration) error { return ctx.Err() },
	}
}

// Do runs fn until it succeeds, returns a non-retryable error, or the
// attempts run out. op names the operation in logs.
func (p RetryPolicy) Do(ctx context.Context, op string, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		err = fn()
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		metrics.SheetWriteRetries.Inc()
		logging.Warn().Err(err).Str("operation", op).Msgf("Retrying %s (%d/%d)", op, attempt, attempts)

		if sleepErr := sleep(ctx, p.Delay); sleepErr != nil {
			return sleepErr
		}
	}

	return fmt.Errorf("%w: %s after %d attempts: %w", ErrRetriesExhausted, op, attempts, err)
}

// isRetryable reports whether err is a remote API or transport failure.
// Context cancellation is never retried.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
