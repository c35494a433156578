// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tomtom215/reelrank/internal/metrics"
)

// Enricher fills missing display fields of ranked items. Lookup failures are
// logged and otherwise ignored.
type Enricher struct {
	provider       EnrichmentProvider
	fallbackPoster string
	logger         zerolog.Logger
}

// NewEnricher creates an Enricher. provider may be nil, in which case only
// the fallback poster is applied.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEnricher(provider EnrichmentProvider, fallbackPoster string, logger zerolog.Logger) *Enricher {
	return &Enricher{
		provider:       provider,
		fallbackPoster: fallbackPoster,
		logger:         logger.With().Str("component", "enricher").Logger(),
	}
}

// Enrich completes items in place. Only items missing rating, runtime, year
// or poster are looked up, once each, and only missing fields are set.
// Scores are not recomputed.
func (e *Enricher) Enrich(ctx context.Context, items []ScoredItem) {
	for i := range items {
		item := &items[i].Item
		if !item.NeedsEnrichment() {
			continue
		}

		if e.provider != nil {
			e.lookup(ctx, item)
		}

		if item.Poster == "" && e.fallbackPoster != "" {
			item.Poster = e.fallbackPoster
		}
	}
}

func (e *Enricher) lookup(ctx context.Context, item *Item) {
	data, err := e.provider.Lookup(ctx, item.Title)
	if err != nil {
		metrics.RecordEnrichment("error")
		e.logger.Warn().Err(err).Str("title", item.Title).Msg("Enrichment lookup failed")
		return
	}
	if data == nil {
		metrics.RecordEnrichment("miss")
		return
	}
	metrics.RecordEnrichment("hit")

	if item.Rating == nil && data.Rating != nil {
		item.Rating = data.Rating
	}
	if item.Runtime == nil && data.Runtime != nil {
		item.Runtime = data.Runtime
	}
	if item.Year == nil && data.Year != nil {
		item.Year = data.Year
	}
	if item.Poster == "" && data.Poster != "" {
		item.Poster = data.Poster
	}
}
