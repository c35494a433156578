// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package services

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrEventBusStopped is returned by Serve when the event bus stops running
// on its own, which makes suture restart it.
var ErrEventBusStopped = errors.New("event bus stopped unexpectedly")

// EventBus is the lifecycle of the NATS components: the optional embedded
// server, the click stream and the click publisher.
type EventBus interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context)
	IsRunning() bool
}

// EventBusService runs an EventBus under suture and restarts it when it
// stops answering IsRunning.
type EventBusService struct {
	bus             EventBus
	shutdownTimeout time.Duration
	checkInterval   time.Duration
	name            string
}

// NewEventBusService wraps bus with a 10s shutdown timeout and a 5s liveness
// check interval.
func NewEventBusService(bus EventBus) *EventBusService {
	return NewEventBusServiceWithTimeouts(bus, 10*time.Second, 5*time.Second)
}

// NewEventBusServiceWithTimeouts is NewEventBusService with explicit timings.
// Non-positive values fall back to the defaults.
func NewEventBusServiceWithTimeouts(bus EventBus, shutdownTimeout, checkInterval time.Duration) *EventBusService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	if checkInterval <= 0 {
		checkInterval = 5 * time.Second
	}
	return &EventBusService{
		bus:             bus,
		shutdownTimeout: shutdownTimeout,
		checkInterval:   checkInterval,
		name:            "nats-event-bus",
	}
}

// Serve implements suture.Service.
func (s *EventBusService) Serve(ctx context.Context) error {
	if err := s.bus.Start(ctx); err != nil {
		return fmt.Errorf("event bus start failed: %w", err)
	}

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
			s.bus.Shutdown(shutdownCtx)
			cancel()
			return ctx.Err()

		case <-ticker.C:
			if !s.bus.IsRunning() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
				s.bus.Shutdown(shutdownCtx)
				cancel()
				return ErrEventBusStopped
			}
		}
	}
}

func (s *EventBusService) String() string {
	return s.name
}
