// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/tomtom215/reelrank/internal/breaker"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// maxCatalogBytes bounds the catalog response body.
const maxCatalogBytes = 64 << 20

// HTTPConfig configures the HTTP catalog provider.
type HTTPConfig struct {
	// URL returns a JSON array of movie documents on GET.
	URL string

	// Timeout bounds a single fetch. Zero means no client-side timeout.
	Timeout time.Duration
}

// HTTPProvider fetches the catalog from a JSON endpoint.
type HTTPProvider struct {
	url     string
	client  *http.Client
	breaker *breaker.Breaker
	logger  zerolog.Logger
}

// NewHTTPProvider creates an HTTP catalog provider guarded by a circuit breaker.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHTTPProvider(cfg HTTPConfig, logger zerolog.Logger) (*HTTPProvider, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("catalog: url is required")
	}
	return &HTTPProvider{
		url:     cfg.URL,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: breaker.New(breaker.DefaultSettings("catalog_http")),
		logger:  logger.With().Str("component", "catalog_http").Logger(),
	}, nil
}

// FetchCatalog downloads and decodes the catalog. Transport failures,
// non-2xx statuses, undecodable bodies and an open circuit all wrap
// recommend.ErrCatalogUnavailable.
func (p *HTTPProvider) FetchCatalog(ctx context.Context) (recommend.Catalog, error) {
	items, err := breaker.Do(p.breaker, func() (recommend.Catalog, error) {
		return p.fetch(ctx)
	})
	if err != nil {
		if breaker.IsRejected(err) {
			p.logger.Warn().Str("state", p.breaker.State()).Msg("Catalog circuit breaker rejected request")
		}
		return nil, fmt.Errorf("%w: %w", recommend.ErrCatalogUnavailable, err)
	}

	p.logger.Debug().Int("items", len(items)).Msg("Catalog fetched")
	return items, nil
}

func (p *HTTPProvider) fetch(ctx context.Context) (recommend.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return DecodeJSON(body)
}
