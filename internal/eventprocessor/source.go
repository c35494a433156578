// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog"
	"github.com/tomtom215/reelrank/internal/metrics"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// JetStreamSource is a recommend.EventSource backed by a durable JetStream
// pull consumer. Every Open dials a fresh connection that the session owns.
type JetStreamSource struct {
	config SourceConfig
	logger zerolog.Logger
}

// NewJetStreamSource creates a source. The stream must already exist.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewJetStreamSource(cfg SourceConfig, logger zerolog.Logger) (*JetStreamSource, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: NATS URL is required", ErrInvalidConfig)
	}
	if cfg.StreamName == "" || cfg.ConsumerName == "" {
		return nil, fmt.Errorf("%w: stream and consumer names are required", ErrInvalidConfig)
	}
	return &JetStreamSource{
		config: cfg,
		logger: logger.With().Str("component", "jetstream_source").Logger(),
	}, nil
}

// Open connects to NATS and binds the durable consumer, creating it on
// first use.
func (s *JetStreamSource) Open(ctx context.Context) (recommend.EventSession, error) {
	opts := []natsgo.Option{
		natsgo.Name("reelrank-resolver"),
		natsgo.MaxReconnects(0),
	}
	if s.config.ConnectTimeout > 0 {
		opts = append(opts, natsgo.Timeout(s.config.ConnectTimeout))
	}

	nc, err := natsgo.Connect(s.config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	consumer, err := s.bindConsumer(ctx, nc)
	if err != nil {
		nc.Close()
		return nil, err
	}

	return &jetStreamSession{
		nc:       nc,
		consumer: consumer,
		inflight: make(map[uint64]jetstream.Msg),
		logger:   s.logger,
	}, nil
}

func (s *JetStreamSource) bindConsumer(ctx context.Context, nc *natsgo.Conn) (jetstream.Consumer, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	consumer, err := js.Consumer(ctx, s.config.StreamName, s.config.ConsumerName)
	if err == nil {
		return consumer, nil
	}
	if !errors.Is(err, jetstream.ErrConsumerNotFound) {
		return nil, fmt.Errorf("lookup consumer: %w", err)
	}

	consumer, err = js.CreateOrUpdateConsumer(ctx, s.config.StreamName, jetstream.ConsumerConfig{
		Durable:       s.config.ConsumerName,
		FilterSubject: s.config.Subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       s.config.AckWait,
		DeliverPolicy: jetstream.DeliverAllPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("create consumer: %w", err)
	}
	s.logger.Info().
		Str("stream", s.config.StreamName).
		Str("consumer", s.config.ConsumerName).
		Msg("Created liked-events consumer")
	return consumer, nil
}

// jetStreamSession drains one connection. Delivered-but-unacked messages
// are tracked by consumer sequence, which doubles as the delivery tag.
type jetStreamSession struct {
	mu       sync.Mutex
	nc       *natsgo.Conn
	consumer jetstream.Consumer
	inflight map[uint64]jetstream.Msg
	closed   bool
	logger   zerolog.Logger
}

// PollNext returns the next pending event without waiting. Payloads that
// cannot be decoded are acked and skipped.
func (s *jetStreamSession) PollNext(ctx context.Context) (*recommend.LikedEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}

	for {
		msg, err := s.fetchOne()
		if err != nil || msg == nil {
			return nil, err
		}

		meta, err := msg.Metadata()
		if err != nil {
			return nil, fmt.Errorf("message metadata: %w", err)
		}

		click, err := DeserializeClick(msg.Data())
		if err != nil {
			metrics.RecordLikedEvent("malformed")
			s.logger.Warn().Err(err).Uint64("sequence", meta.Sequence.Stream).Msg("Dropping malformed click event")
			if ackErr := msg.DoubleAck(ctx); ackErr != nil {
				return nil, fmt.Errorf("ack malformed message: %w", ackErr)
			}
			continue
		}

		tag := meta.Sequence.Consumer
		s.inflight[tag] = msg
		return &recommend.LikedEvent{
			ItemID:      click.MovieID,
			Clicks:      click.Clicks,
			DeliveryTag: tag,
		}, nil
	}
}

func (s *jetStreamSession) fetchOne() (jetstream.Msg, error) {
	batch, err := s.consumer.FetchNoWait(1)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	var msg jetstream.Msg
	for m := range batch.Messages() {
		msg = m
	}
	if err := batch.Error(); err != nil && !errors.Is(err, jetstream.ErrNoMessages) {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	return msg, nil
}

// Ack confirms processing so the work-queue stream drops the message.
func (s *jetStreamSession) Ack(ctx context.Context, event *recommend.LikedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	msg, ok := s.inflight[event.DeliveryTag]
	if !ok {
		return fmt.Errorf("unknown delivery tag %d", event.DeliveryTag)
	}
	if err := msg.DoubleAck(ctx); err != nil {
		return fmt.Errorf("ack: %w", err)
	}
	delete(s.inflight, event.DeliveryTag)
	return nil
}

// Close releases the connection. Unacked messages are redelivered after the
// consumer's ack wait.
func (s *jetStreamSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	for tag, msg := range s.inflight {
		if err := msg.Nak(); err != nil {
			s.logger.Debug().Err(err).Uint64("tag", tag).Msg("Failed to nak unacked message")
		}
	}
	s.inflight = nil

	if err := s.nc.Drain(); err != nil {
		s.nc.Close()
		return fmt.Errorf("drain connection: %w", err)
	}
	return nil
}
