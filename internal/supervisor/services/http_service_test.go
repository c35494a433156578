// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

type fakeHTTPServer struct {
	listenErr   error
	block       bool
	shutdownErr error

	listenCalls   atomic.Int32
	shutdownCalls atomic.Int32
	started       chan struct{}
	stopCh        chan struct{}
	stopOnce      sync.Once
}

func newFakeHTTPServer() *fakeHTTPServer {
	return &fakeHTTPServer{
		started: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
	}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	f.listenCalls.Add(1)
	select {
	case f.started <- struct{}{}:
	default:
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	if f.block {
		<-f.stopCh
		return http.ErrServerClosed
	}
	return nil
}

func (f *fakeHTTPServer) Shutdown(context.Context) error {
	f.shutdownCalls.Add(1)
	f.stopOnce.Do(func() { close(f.stopCh) })
	return f.shutdownErr
}

var _ suture.Service = (*HTTPServerService)(nil)

func TestNewHTTPServerService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{"explicit", 3 * time.Second, 3 * time.Second},
		{"zero uses default", 0, 10 * time.Second},
		{"negative uses default", -time.Second, 10 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewHTTPServerService(newFakeHTTPServer(), tt.timeout)
			if svc.shutdownTimeout != tt.want {
				t.Errorf("shutdownTimeout = %v, want %v", svc.shutdownTimeout, tt.want)
			}
			if svc.String() != "http-server" {
				t.Errorf("String() = %q", svc.String())
			}
		})
	}
}

func TestHTTPServerServiceServe(t *testing.T) {
	t.Parallel()

	t.Run("graceful shutdown on cancel", func(t *testing.T) {
		t.Parallel()
		server := newFakeHTTPServer()
		server.block = true
		svc := NewHTTPServerService(server, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		select {
		case <-server.started:
		case <-time.After(time.Second):
			t.Fatal("server did not start")
		}
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return")
		}
		if server.shutdownCalls.Load() != 1 {
			t.Errorf("Shutdown calls = %d, want 1", server.shutdownCalls.Load())
		}
	})

	t.Run("listen failure", func(t *testing.T) {
		t.Parallel()
		bindErr := errors.New("bind: address already in use")
		server := newFakeHTTPServer()
		server.listenErr = bindErr

		err := NewHTTPServerService(server, time.Second).Serve(context.Background())
		if !errors.Is(err, bindErr) {
			t.Errorf("Serve() = %v, want %v", err, bindErr)
		}
	})

	t.Run("shutdown failure", func(t *testing.T) {
		t.Parallel()
		shutdownErr := errors.New("shutdown timeout")
		server := newFakeHTTPServer()
		server.block = true
		server.shutdownErr = shutdownErr
		svc := NewHTTPServerService(server, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()
		<-server.started
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, shutdownErr) {
				t.Errorf("Serve() = %v, want %v", err, shutdownErr)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return")
		}
	})
}

func TestHTTPServerServiceUnderSupervisor(t *testing.T) {
	t.Parallel()

	server := newFakeHTTPServer()
	server.block = true

	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(NewHTTPServerService(server, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	select {
	case <-server.started:
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}
	cancel()
	<-errCh

	if server.shutdownCalls.Load() < 1 {
		t.Error("Shutdown was not called")
	}
}
