// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/breaker"
	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/eventprocessor"
	"github.com/tomtom215/reelrank/internal/metrics"
)

var (
	errEventBusNotRunning = errors.New("event bus is not running")
	errNATSDisconnected   = errors.New("NATS connection is not connected")
)

// eventBus owns the NATS side of the service: the optional embedded server,
// an admin connection used for stream setup and health, and the click
// publisher. It implements services.EventBus and api.ClickPublisher.
type eventBus struct {
	cfg    config.NATSConfig
	logger zerolog.Logger

	mu        sync.RWMutex
	server    *eventprocessor.EmbeddedServer
	conn      *natsgo.Conn
	streams   *eventprocessor.StreamManager
	publisher *eventprocessor.Publisher
	url       string
	running   bool
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newEventBus(cfg config.NATSConfig, logger zerolog.Logger) *eventBus {
	return &eventBus{
		cfg:    cfg,
		logger: logger.With().Str("component", "event-bus").Logger(),
	}
}

// Start brings up the embedded server (when configured), ensures the click
// stream and opens the publisher. It is a no-op while already running.
func (b *eventBus) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return nil
	}

	url := b.cfg.URL
	var server *eventprocessor.EmbeddedServer
	if b.cfg.EmbeddedServer {
		serverCfg := eventprocessor.DefaultServerConfig()
		serverCfg.Host = b.cfg.Host
		serverCfg.Port = b.cfg.Port
		serverCfg.StoreDir = b.cfg.StoreDir

		srv, err := eventprocessor.NewEmbeddedServer(&serverCfg)
		if err != nil {
			return fmt.Errorf("start embedded NATS server: %w", err)
		}
		server = srv
		url = srv.ClientURL()
		b.logger.Info().Str("url", url).Bool("jetstream", srv.JetStreamEnabled()).Msg("Embedded NATS server started")
	}

	cleanup := func() {
		if server != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx) //nolint:errcheck // best effort on failed start
		}
	}

	conn, err := natsgo.Connect(url,
		natsgo.Name("reelrank-admin"),
		natsgo.Timeout(5*time.Second),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2*time.Second),
	)
	if err != nil {
		cleanup()
		return fmt.Errorf("connect to NATS at %s: %w", url, err)
	}

	streamCfg := eventprocessor.DefaultStreamConfig()
	streamCfg.Name = b.cfg.StreamName
	streamCfg.Subjects = []string{b.cfg.Subject}
	streamCfg.MaxAge = b.cfg.MaxAge

	streams, err := eventprocessor.NewStreamManager(conn, &streamCfg)
	if err == nil {
		_, err = streams.EnsureStream(ctx)
	}
	if err != nil {
		conn.Close()
		cleanup()
		return fmt.Errorf("set up click stream: %w", err)
	}

	pubCfg := eventprocessor.DefaultPublisherConfig(url)
	pubCfg.Subject = b.cfg.Subject
	publisher, err := eventprocessor.NewPublisher(pubCfg, eventprocessor.NewWatermillLogger(b.logger))
	if err != nil {
		conn.Close()
		cleanup()
		return fmt.Errorf("create click publisher: %w", err)
	}
	publisher.SetCircuitBreaker(breaker.New(breaker.DefaultSettings("nats-publisher")))

	b.server = server
	b.conn = conn
	b.streams = streams
	b.publisher = publisher
	b.url = url
	b.running = true

	b.logger.Info().
		Str("stream", streamCfg.Name).
		Str("subject", b.cfg.Subject).
		Msg("Event bus started")
	return nil
}

// Shutdown closes the publisher, the admin connection and the embedded
// server, in that order.
func (b *eventBus) Shutdown(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.publisher != nil {
		if err := b.publisher.Close(); err != nil {
			b.logger.Warn().Err(err).Msg("Error closing click publisher")
		}
		b.publisher = nil
	}
	if b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
	b.streams = nil
	if b.server != nil {
		if err := b.server.Shutdown(ctx); err != nil {
			b.logger.Warn().Err(err).Msg("Error stopping embedded NATS server")
		}
		b.server = nil
	}
	if b.running {
		b.logger.Info().Msg("Event bus stopped")
	}
	b.running = false
}

// IsRunning reports whether the bus started and its admin connection and
// embedded server are still alive. A reconnecting connection counts as alive.
func (b *eventBus) IsRunning() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.running || b.conn == nil || b.conn.IsClosed() {
		return false
	}
	if b.server != nil && !b.server.IsRunning() {
		return false
	}
	return true
}

// PublishClick implements api.ClickPublisher.
func (b *eventBus) PublishClick(ctx context.Context, event *eventprocessor.ClickEvent) error {
	b.mu.RLock()
	publisher := b.publisher
	b.mu.RUnlock()

	if publisher == nil {
		return errEventBusNotRunning
	}
	return publisher.PublishClick(ctx, event)
}

// Check is the /api/v1/health check for NATS. Besides the connection it
// confirms the click stream still exists and samples its backlog.
func (b *eventBus) Check(ctx context.Context) error {
	if !b.IsRunning() {
		return errEventBusNotRunning
	}

	b.mu.RLock()
	conn, streams := b.conn, b.streams
	b.mu.RUnlock()

	if !conn.IsConnected() {
		return errNATSDisconnected
	}
	backlog, err := streams.Backlog(ctx)
	if err != nil {
		return fmt.Errorf("click stream: %w", err)
	}
	metrics.ClickStreamBacklog.Set(float64(backlog))
	return nil
}

// URL returns the client URL of the broker, known once Start succeeded.
func (b *eventBus) URL() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.url
}
