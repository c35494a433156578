// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
)

const (
	embeddedServerName = "reelrank-events"
	serverReadyTimeout = 30 * time.Second
	maxClickPayload    = 64 * 1024
)

var errServerNotReady = errors.New("embedded NATS server not ready")

// EmbeddedServer is an in-process JetStream broker for single-node deployments.
type EmbeddedServer struct {
	ns *server.Server
}

func (c *ServerConfig) options() *server.Options {
	return &server.Options{
		ServerName:         embeddedServerName,
		Host:               c.Host,
		Port:               c.Port,
		JetStream:          true,
		StoreDir:           c.StoreDir,
		JetStreamMaxMemory: c.JetStreamMaxMem,
		JetStreamMaxStore:  c.JetStreamMaxStore,
		MaxPayload:         maxClickPayload,
		NoSigs:             true,
		NoLog:              true,
	}
}

// NewEmbeddedServer starts the broker and blocks until it accepts clients.
// Port -1 picks a free port; read it back with ClientURL.
func NewEmbeddedServer(cfg *ServerConfig) (*EmbeddedServer, error) {
	ns, err := server.NewServer(cfg.options())
	if err != nil {
		return nil, fmt.Errorf("create NATS server: %w", err)
	}

	go ns.Start()
	if !ns.ReadyForConnections(serverReadyTimeout) {
		ns.Shutdown()
		return nil, fmt.Errorf("%w after %s", errServerNotReady, serverReadyTimeout)
	}
	return &EmbeddedServer{ns: ns}, nil
}

// ClientURL is the nats:// URL clients connect to.
func (s *EmbeddedServer) ClientURL() string {
	return s.ns.ClientURL()
}

// Shutdown stops the broker. It waits for exit unless ctx is already done.
func (s *EmbeddedServer) Shutdown(ctx context.Context) error {
	s.ns.Shutdown()
	if err := ctx.Err(); err != nil {
		return err
	}
	s.ns.WaitForShutdown()
	return nil
}

// IsRunning reports whether the broker is still serving.
func (s *EmbeddedServer) IsRunning() bool {
	return s.ns.Running()
}

// JetStreamEnabled reports whether JetStream came up with the broker.
func (s *EmbeddedServer) JetStreamEnabled() bool {
	return s.ns.JetStreamEnabled()
}
