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

// Resolver derives the liked set by draining an EventSource.
type Resolver struct {
	source EventSource
	logger zerolog.Logger
}

// NewResolver creates a Resolver over source.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewResolver(source EventSource, logger zerolog.Logger) *Resolver {
	return &Resolver{
		source: source,
		logger: logger.With().Str("component", "resolver").Logger(),
	}
}

// Resolve drains every pending event, acknowledging each one, and returns the
// titles of the catalog items they reference. Events for unknown ids are
// acknowledged and dropped. The session is closed on every return path.
//
// The drain is destructive: resolving again straight away yields an empty set.
func (r *Resolver) Resolve(ctx context.Context, catalog Catalog) (LikedSet, error) {
	session, err := r.source.Open(ctx)
	if err != nil {
		return nil, asTransportError("open", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			r.logger.Warn().Err(cerr).Msg("Failed to close event session")
		}
	}()

	index := catalog.Index()
	liked := NewLikedSet()
	var matched, unmatched int

	for {
		event, err := session.PollNext(ctx)
		if err != nil {
			return nil, asTransportError("poll", err)
		}
		if event == nil {
			break
		}

		if pos, ok := index[event.ItemID]; ok {
			liked.Add(catalog[pos].Title)
			matched++
			metrics.RecordLikedEvent("matched")
		} else {
			unmatched++
			metrics.RecordLikedEvent("unmatched")
			r.logger.Debug().Str("item_id", event.ItemID).Msg("Dropping liked event for unknown item")
		}

		if err := session.Ack(ctx, event); err != nil {
			return nil, asTransportError("ack", err)
		}
	}

	r.logger.Debug().
		Int("matched", matched).
		Int("unmatched", unmatched).
		Int("liked", liked.Len()).
		Msg("Liked set resolved")

	return liked, nil
}
