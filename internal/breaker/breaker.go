// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package breaker wraps sony/gobreaker with the logging and Prometheus
// instrumentation shared by every outbound client (catalog, OMDb, NATS publisher).
package breaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/metrics"
)

// Settings configures a Breaker. Zero values fall back to DefaultSettings.
type Settings struct {
	// Name labels metrics and log lines.
	Name string

	// MaxRequests is the number of probe requests allowed while half-open.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state after which counts reset.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration

	// MinRequests is the minimum sample size before the failure ratio is considered.
	MinRequests uint32

	// FailureRatio opens the circuit when failures/requests reaches it.
	FailureRatio float64
}

// DefaultSettings returns the thresholds used for upstream HTTP services:
// at least 10 requests in a one minute window with 60% failures opens the
// circuit for two minutes.
func DefaultSettings(name string) Settings {
	return Settings{
		Name:         name,
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// Breaker is a named circuit breaker.
type Breaker struct {
	cb   *gobreaker.CircuitBreaker[interface{}]
	name string
}

// New creates a Breaker and initialises its state metrics.
func New(s Settings) *Breaker {
	def := DefaultSettings(s.Name)
	if s.MaxRequests == 0 {
		s.MaxRequests = def.MaxRequests
	}
	if s.Interval == 0 {
		s.Interval = def.Interval
	}
	if s.Timeout == 0 {
		s.Timeout = def.Timeout
	}
	if s.MinRequests == 0 {
		s.MinRequests = def.MinRequests
	}
	if s.FailureRatio <= 0 {
		s.FailureRatio = def.FailureRatio
	}

	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= s.FailureRatio {
				logging.Warn().
					Str("breaker", s.Name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
				return true
			}
			return false
		},
		// A caller giving up is not an upstream failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &Breaker{cb: cb, name: s.Name}
}

// Name returns the breaker name.
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state as "closed", "half-open" or "open".
func (b *Breaker) State() string {
	return stateToString(b.cb.State())
}

// Execute runs fn under circuit breaker protection.
func (b *Breaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if IsRejected(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", b.name).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(b.cb.Counts().ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

// Do runs fn under b and returns its typed result.
func Do[T any](b *Breaker, fn func() (T, error)) (T, error) {
	var zero T
	result, err := b.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil || result == nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker %s: unexpected result type %T", b.name, result)
	}
	return typed, nil
}

// IsRejected reports whether err came from the breaker refusing the call.
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

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
