// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// HTTPServer is the lifecycle subset of *http.Server.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// defaultShutdownTimeout bounds in-flight recommendation requests on stop.
const defaultShutdownTimeout = 10 * time.Second

// HTTPServerService adapts the recommendation API server to suture. Suture
// restarts it when ListenAndServe fails; cancellation drains it gracefully.
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
}

// NewHTTPServerService wraps server. shutdownTimeout <= 0 selects 10s.
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &HTTPServerService{server: server, shutdownTimeout: shutdownTimeout}
}

// Serve implements suture.Service.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- h.server.ListenAndServe() }()

	select {
	case err := <-done:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	// ctx is canceled, so the drain needs a fresh deadline.
	drainCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()
	if err := h.server.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	<-done
	return ctx.Err()
}

func (h *HTTPServerService) String() string {
	return "http-server"
}
