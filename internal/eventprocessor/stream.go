// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package eventprocessor

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// StreamManager owns the click stream definition.
type StreamManager struct {
	js     jetstream.JetStream
	config StreamConfig
}

// NewStreamManager validates cfg and opens a JetStream context on nc.
func NewStreamManager(nc *nats.Conn, cfg *StreamConfig) (*StreamManager, error) {
	if cfg.Name == "" || len(cfg.Subjects) == 0 {
		return nil, fmt.Errorf("%w: stream name and subjects are required", ErrInvalidConfig)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}
	return &StreamManager{js: js, config: *cfg}, nil
}

// streamConfig maps StreamConfig onto JetStream. Clicks use work-queue
// retention: an acked click is gone, so each click feeds one liked set.
func (m *StreamManager) streamConfig() jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:       m.config.Name,
		Subjects:   m.config.Subjects,
		Retention:  jetstream.WorkQueuePolicy,
		MaxAge:     m.config.MaxAge,
		MaxMsgs:    m.config.MaxMsgs,
		Duplicates: m.config.DuplicateWindow,
		Replicas:   m.config.Replicas,
		Storage:    jetstream.FileStorage,
		Discard:    jetstream.DiscardOld,
	}
}

// EnsureStream creates the stream, or updates it in place when it exists.
func (m *StreamManager) EnsureStream(ctx context.Context) (jetstream.Stream, error) {
	stream, err := m.js.CreateOrUpdateStream(ctx, m.streamConfig())
	if err != nil {
		return nil, fmt.Errorf("ensure stream %s: %w", m.config.Name, err)
	}
	return stream, nil
}

func (m *StreamManager) stream(ctx context.Context) (jetstream.Stream, error) {
	stream, err := m.js.Stream(ctx, m.config.Name)
	if errors.Is(err, jetstream.ErrStreamNotFound) {
		return nil, ErrStreamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get stream %s: %w", m.config.Name, err)
	}
	return stream, nil
}

// Info returns the stream's current config and state.
func (m *StreamManager) Info(ctx context.Context) (*jetstream.StreamInfo, error) {
	stream, err := m.stream(ctx)
	if err != nil {
		return nil, err
	}
	return stream.Info(ctx)
}

// Backlog is the number of clicks published but not yet consumed.
func (m *StreamManager) Backlog(ctx context.Context) (uint64, error) {
	info, err := m.Info(ctx)
	if err != nil {
		return 0, err
	}
	return info.State.Msgs, nil
}
