// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tomtom215/reelrank/internal/metrics"
)

// Engine runs recommendation requests end to end.
type Engine struct {
	config   *Config
	catalog  CatalogProvider
	resolver *Resolver
	enricher *Enricher
	logger   zerolog.Logger
	now      func() time.Time
}

// NewEngine creates an engine. A nil cfg uses DefaultConfig. enrichment may
// be nil to disable metadata lookups.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg *Config, catalog CatalogProvider, events EventSource, enrichment EnrichmentProvider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, fmt.Errorf("%w: catalog provider is required", ErrInvalidConfig)
	}
	if events == nil {
		return nil, fmt.Errorf("%w: event source is required", ErrInvalidConfig)
	}

	logger = logger.With().Str("component", "recommend").Logger()

	return &Engine{
		config:   cfg,
		catalog:  catalog,
		resolver: NewResolver(events, logger),
		enricher: NewEnricher(enrichment, cfg.FallbackPoster, logger),
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Recommend fetches the catalog, drains the liked events, ranks the catalog
// and enriches the top results. It fails with ErrCatalogUnavailable or
// ErrTransport; partial results are never returned.
//
//nolint:gocritic // hugeParam: Request is small and passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := e.now()
	log := e.logger
	if req.RequestID != "" {
		log = log.With().Str("request_id", req.RequestID).Logger()
	}

	resp, err := e.recommend(ctx, req, log)
	metrics.RecordRecommendation(statusLabel(err), e.now().Sub(start))
	if err != nil {
		log.Error().Err(err).Msg("Recommendation request failed")
		return nil, err
	}

	resp.Metadata.LatencyMS = e.now().Sub(start).Milliseconds()
	resp.Metadata.Timestamp = start
	return resp, nil
}

//nolint:gocritic // see Recommend
func (e *Engine) recommend(ctx context.Context, req Request, log zerolog.Logger) (*Response, error) {
	catalog, err := e.catalog.FetchCatalog(ctx)
	if err != nil {
		return nil, asCatalogError(err)
	}
	metrics.RecommendCatalogSize.Set(float64(len(catalog)))

	liked, err := e.resolver.Resolve(ctx, catalog)
	if err != nil {
		return nil, err
	}

	k := e.config.effectiveK(req.K)
	items := ScoreAndRank(catalog, liked, k)
	e.enricher.Enrich(ctx, items)

	log.Debug().
		Int("catalog", len(catalog)).
		Int("liked", liked.Len()).
		Int("k", k).
		Int("returned", len(items)).
		Msg("Recommendations ranked")

	return &Response{
		Items:           items,
		TotalCandidates: len(catalog) - len(catalog.LikedPositions(liked)),
		LikedCount:      liked.Len(),
		Metadata: ResponseMetadata{
			RequestID:   req.RequestID,
			CatalogSize: len(catalog),
		},
	}, nil
}

func statusLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrCatalogUnavailable):
		return "catalog_unavailable"
	case errors.Is(err, ErrTransport):
		return "transport_error"
	default:
		return "error"
	}
}
