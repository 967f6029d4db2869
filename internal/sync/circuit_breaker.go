// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package sync

import (
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/steamsheet/internal/logging"
	"github.com/tomtom215/steamsheet/internal/metrics"
)

// Circuit breaker names, also used as metric labels.
const (
	steamBreakerName = "steam-api"
	hltbBreakerName  = "hltb-api"
)

// breakerSettings tunes when a breaker opens.
type breakerSettings struct {
	MinRequests  uint32        // requests in the window before the ratio is considered
	FailureRatio float64       // failure ratio that opens the circuit
	Timeout      time.Duration // open -> half-open delay
}

// defaultBreakerSettings opens after 60% failures across at least 10 requests
// and probes again after 2 minutes.
func defaultBreakerSettings() breakerSettings {
	return breakerSettings{
		MinRequests:  10,
		FailureRatio: 0.6,
		Timeout:      2 * time.Minute,
	}
}

// circuitBreaker wraps calls to one remote service with sony/gobreaker.
// A sync run calls each service once per game, so an outage opens the
// circuit and the remaining games degrade to "N/A" without waiting on
// timeouts.
//
// The breaker uses real time for its interval and timeout. Tests exercise
// the open state by tripping it, not by advancing a clock.
type circuitBreaker[T any] struct {
	cb   *gobreaker.CircuitBreaker[T]
	name string
}

func newCircuitBreaker[T any](name string, settings breakerSettings) *circuitBreaker[T] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1, // calls are sequential; one probe in half-open
		Interval:    0, // counts are kept for the whole closed period
		Timeout:     settings.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= settings.FailureRatio

			if shouldTrip {
				logging.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &circuitBreaker[T]{cb: cb, name: name}
}

// execute runs fn with circuit breaker protection.
// Returns the result or an error if the circuit is open or fn fails.
func (b *circuitBreaker[T]) execute(fn func() (T, error)) (T, error) {
	result, err := b.cb.Execute(fn)

	if err != nil {
		if isBreakerRejection(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Debug().Str("breaker", b.name).Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
			counts := b.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		}
		return result, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)

	return result, nil
}

// state returns the current breaker state.
func (b *circuitBreaker[T]) state() gobreaker.State {
	return b.cb.State()
}

// isBreakerRejection reports whether err came from the breaker itself
// rather than from the wrapped call.
func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
