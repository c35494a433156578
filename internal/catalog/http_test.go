// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/tomtom215/reelrank/internal/recommend"
)

func TestHTTPProvider_FetchCatalog(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleCatalog))
	}))
	defer srv.Close()

	p, err := NewHTTPProvider(HTTPConfig{URL: srv.URL, Timeout: 2 * time.Second}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHTTPProvider() error = %v", err)
	}

	items, err := p.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("FetchCatalog() error = %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("len = %d, want 4", len(items))
	}
	if items[1].Title != "The Great Train Robbery" {
		t.Errorf("order not preserved: items[1] = %q", items[1].Title)
	}
}

func TestHTTPProvider_Unavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"oops"`))
		}},
		{"slow", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
			_, _ = w.Write([]byte(`[]`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			p, err := NewHTTPProvider(HTTPConfig{URL: srv.URL, Timeout: 100 * time.Millisecond}, zerolog.Nop())
			if err != nil {
				t.Fatalf("NewHTTPProvider() error = %v", err)
			}
			items, err := p.FetchCatalog(context.Background())
			if items != nil {
				t.Errorf("items = %v, want nil", items)
			}
			if !errors.Is(err, recommend.ErrCatalogUnavailable) {
				t.Errorf("error = %v, want ErrCatalogUnavailable", err)
			}
		})
	}
}

func TestHTTPProvider_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p, err := NewHTTPProvider(HTTPConfig{URL: url, Timeout: time.Second}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHTTPProvider() error = %v", err)
	}
	if _, err := p.FetchCatalog(context.Background()); !errors.Is(err, recommend.ErrCatalogUnavailable) {
		t.Errorf("error = %v, want ErrCatalogUnavailable", err)
	}
}

func TestHTTPProvider_CircuitOpens(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p, err := NewHTTPProvider(HTTPConfig{URL: srv.URL, Timeout: time.Second}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHTTPProvider() error = %v", err)
	}

	for i := 0; i < 20; i++ {
		if _, err := p.FetchCatalog(context.Background()); !errors.Is(err, recommend.ErrCatalogUnavailable) {
			t.Fatalf("attempt %d: error = %v, want ErrCatalogUnavailable", i, err)
		}
	}
	if n := calls.Load(); n >= 20 {
		t.Errorf("server saw %d calls; breaker never opened", n)
	}
}

func TestNewProviders_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewHTTPProvider(HTTPConfig{}, zerolog.Nop()); err == nil {
		t.Error("NewHTTPProvider(empty) error = nil")
	}
	if _, err := NewMongoProvider(context.Background(), MongoConfig{URI: "mongodb://localhost"}, zerolog.Nop()); err == nil {
		t.Error("NewMongoProvider(no database) error = nil")
	}
}
