// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/reelrank/internal/eventprocessor"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// Recommender produces ranked recommendations. *recommend.Engine implements it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// ClickPublisher publishes click events. *eventprocessor.Publisher implements it.
type ClickPublisher interface {
	PublishClick(ctx context.Context, event *eventprocessor.ClickEvent) error
}

// HealthCheck reports whether one dependency is usable.
type HealthCheck func(ctx context.Context) error

// HandlerConfig holds request-level limits.
type HandlerConfig struct {
	// MaxK is the largest k accepted by /api/v1/recommendations.
	MaxK int

	// RequestTimeout bounds recommendation and click handling.
	RequestTimeout time.Duration

	// Version is reported by the health endpoint.
	Version string
}

// Handler holds the dependencies of every endpoint.
type Handler struct {
	recommender Recommender
	publisher   ClickPublisher
	checks      map[string]HealthCheck
	config      HandlerConfig
	clicks      *clickCounter
	startTime   time.Time
}

// NewHandler creates a handler. publisher may be nil, in which case click
// endpoints answer 503.
func NewHandler(recommender Recommender, publisher ClickPublisher, cfg HandlerConfig) *Handler {
	if cfg.MaxK <= 0 {
		cfg.MaxK = 50
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	return &Handler{
		recommender: recommender,
		publisher:   publisher,
		checks:      make(map[string]HealthCheck),
		config:      cfg,
		clicks:      newClickCounter(),
		startTime:   time.Now(),
	}
}

// AddHealthCheck registers a named dependency check for /api/v1/health.
// Call before serving.
func (h *Handler) AddHealthCheck(name string, check HealthCheck) {
	h.checks[name] = check
}

// clickCounter counts published clicks per movie id for the lifetime of the
// process. Entries are never evicted.
type clickCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func newClickCounter() *clickCounter {
	return &clickCounter{counts: make(map[string]int)}
}

// next is the count the movie will have once the pending click is recorded.
func (c *clickCounter) next(movieID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[movieID] + 1
}

func (c *clickCounter) increment(movieID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[movieID]++
	return c.counts[movieID]
}

func (c *clickCounter) get(movieID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[movieID]
}
