// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package main

import (
	"context"
	"errors"
	"testing"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/eventprocessor"
	"github.com/tomtom215/reelrank/internal/recommend"
)

func testNATSConfig(t *testing.T) config.NATSConfig {
	t.Helper()
	return config.NATSConfig{
		EmbeddedServer: true,
		Host:           "127.0.0.1",
		Port:           -1,
		StoreDir:       t.TempDir(),
		StreamName:     "TEST_CLICKS",
		Subject:        "test_clicks",
		ConsumerName:   "test-recommender",
		AckWait:        5 * time.Second,
		MaxAge:         time.Hour,
	}
}

func TestEventBusNotStarted(t *testing.T) {
	t.Parallel()

	bus := newEventBus(testNATSConfig(t), zerolog.Nop())
	if bus.IsRunning() {
		t.Error("IsRunning() = true before Start")
	}
	if err := bus.Check(context.Background()); !errors.Is(err, errEventBusNotRunning) {
		t.Errorf("Check() = %v, want errEventBusNotRunning", err)
	}
	err := bus.PublishClick(context.Background(), &eventprocessor.ClickEvent{MovieID: "m1", Clicks: 1})
	if !errors.Is(err, errEventBusNotRunning) {
		t.Errorf("PublishClick() = %v, want errEventBusNotRunning", err)
	}

	// Shutdown on a bus that never started is a no-op.
	bus.Shutdown(context.Background())
}

func TestEventBusPublishesToStream(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := testNATSConfig(t)
	bus := newEventBus(cfg, zerolog.Nop())
	if err := bus.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer bus.Shutdown(context.Background())

	if !bus.IsRunning() {
		t.Fatal("IsRunning() = false after Start")
	}
	if err := bus.Check(ctx); err != nil {
		t.Errorf("Check() error = %v", err)
	}
	// A second Start keeps the running components.
	url := bus.URL()
	if err := bus.Start(ctx); err != nil || bus.URL() != url {
		t.Errorf("second Start() = %v, url %q -> %q", err, url, bus.URL())
	}

	if err := bus.PublishClick(ctx, &eventprocessor.ClickEvent{MovieID: "m7", Clicks: 2}); err != nil {
		t.Fatalf("PublishClick() error = %v", err)
	}

	sourceCfg := eventprocessor.DefaultSourceConfig(bus.URL())
	sourceCfg.StreamName = cfg.StreamName
	sourceCfg.Subject = cfg.Subject
	sourceCfg.ConsumerName = cfg.ConsumerName
	source, err := eventprocessor.NewJetStreamSource(sourceCfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewJetStreamSource() error = %v", err)
	}
	session, err := source.Open(ctx)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer session.Close()

	var event *recommend.LikedEvent
	for event == nil {
		event, err = session.PollNext(ctx)
		if err != nil {
			t.Fatalf("PollNext() error = %v", err)
		}
		if event == nil {
			select {
			case <-ctx.Done():
				t.Fatal("published click never arrived")
			case <-time.After(20 * time.Millisecond):
			}
		}
	}
	if event.ItemID != "m7" || event.Clicks != 2 {
		t.Errorf("event = %+v, want m7 with 2 clicks", event)
	}
	if err := session.Ack(ctx, event); err != nil {
		t.Errorf("Ack() error = %v", err)
	}
}

func TestEventBusCheckDetectsMissingStream(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := testNATSConfig(t)
	bus := newEventBus(cfg, zerolog.Nop())
	if err := bus.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer bus.Shutdown(context.Background())

	nc, err := natsgo.Connect(bus.URL())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer nc.Close()
	js, err := jetstream.New(nc)
	if err != nil {
		t.Fatalf("jetstream: %v", err)
	}
	if err := js.DeleteStream(ctx, cfg.StreamName); err != nil {
		t.Fatalf("DeleteStream() error = %v", err)
	}

	if err := bus.Check(ctx); !errors.Is(err, eventprocessor.ErrStreamNotFound) {
		t.Errorf("Check() = %v, want ErrStreamNotFound", err)
	}
}

func TestEventBusShutdown(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bus := newEventBus(testNATSConfig(t), zerolog.Nop())
	if err := bus.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	bus.Shutdown(ctx)

	if bus.IsRunning() {
		t.Error("IsRunning() = true after Shutdown")
	}
	err := bus.PublishClick(ctx, &eventprocessor.ClickEvent{MovieID: "m1", Clicks: 1})
	if !errors.Is(err, errEventBusNotRunning) {
		t.Errorf("PublishClick() after Shutdown = %v", err)
	}
}

func TestEventBusStartFailure(t *testing.T) {
	t.Parallel()

	cfg := testNATSConfig(t)
	cfg.EmbeddedServer = false
	cfg.URL = "nats://127.0.0.1:1"

	bus := newEventBus(cfg, zerolog.Nop())
	if err := bus.Start(context.Background()); err == nil {
		bus.Shutdown(context.Background())
		t.Fatal("Start() succeeded against an unreachable broker")
	}
	if bus.IsRunning() {
		t.Error("IsRunning() = true after failed Start")
	}
}
