// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package eventprocessor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	natsgo "github.com/nats-io/nats.go"
	"github.com/tomtom215/reelrank/internal/breaker"
	"github.com/tomtom215/reelrank/internal/metrics"
)

// Publisher wraps a Watermill JetStream publisher with circuit breaker
// protection. It is safe for concurrent use.
type Publisher struct {
	publisher message.Publisher
	breaker   *breaker.Breaker
	subject   string
	mu        sync.RWMutex
	closed    bool
	logger    watermill.LoggerAdapter
}

// NewPublisher creates a resilient Watermill NATS publisher.
// The publisher is configured for JetStream with message ID tracking for deduplication.
func NewPublisher(cfg PublisherConfig, logger watermill.LoggerAdapter) (*Publisher, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: NATS URL is required", ErrInvalidConfig)
	}
	if cfg.Subject == "" {
		cfg.Subject = DefaultSubject
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	natsOpts := []natsgo.Option{
		natsgo.Name("reelrank-publisher"),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.ReconnectBufSize(cfg.ReconnectBuffer),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}

	wmConfig := wmNats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: false, // Stream is created by StreamManager
			TrackMsgId:    cfg.EnableTrackMsgID,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}

	pub, err := wmNats.NewPublisher(wmConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}

	return &Publisher{
		publisher: pub,
		subject:   cfg.Subject,
		logger:    logger,
	}, nil
}

// SetCircuitBreaker configures the circuit breaker for publish operations.
func (p *Publisher) SetCircuitBreaker(cb *breaker.Breaker) {
	p.breaker = cb
}

// Publish sends a message to topic. The message UUID is used as Nats-Msg-Id
// for deduplication if not already set.
func (p *Publisher) Publish(ctx context.Context, topic string, msg *message.Message) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrPublisherClosed
	}
	p.mu.RUnlock()

	if msg.Metadata.Get(natsgo.MsgIdHdr) == "" {
		msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)
	}
	msg.SetContext(ctx)

	var err error
	if p.breaker != nil {
		_, err = p.breaker.Execute(func() (interface{}, error) {
			return nil, p.publisher.Publish(topic, msg)
		})
	} else {
		err = p.publisher.Publish(topic, msg)
	}

	metrics.RecordClickPublish(err)
	return err
}

// PublishClick serializes a click event and publishes it on the liked-events
// subject.
func (p *Publisher) PublishClick(ctx context.Context, event *ClickEvent) error {
	data, err := SerializeClick(event)
	if err != nil {
		return fmt.Errorf("serialize click: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), data)
	msg.Metadata.Set("movie_id", event.MovieID)

	if err := p.Publish(ctx, p.subject, msg); err != nil {
		return fmt.Errorf("publish click %s: %w", event.MovieID, err)
	}
	return nil
}

// Close gracefully shuts down the publisher.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	return p.publisher.Close()
}
