// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package recommend implements the content-based scoring and ranking engine.
//
// # Architecture
//
// A request flows through four stages, all recomputed from scratch on every
// call:
//
//   - Liked-set resolution: pending "liked" events are drained from an
//     EventSource and mapped to catalog titles (Resolver).
//   - Genre affinity: tag frequencies over the liked items are summed per
//     catalog item (ScoreGenres).
//   - Text similarity: TF-IDF vectors are fitted over every description in the
//     catalog and each item keeps its best cosine similarity to a liked item
//     (ScorePlots).
//   - Ranking: genre + rating + plot, liked items excluded, stable sort, top K
//     (Rank).
//
// Ranked items missing rating, runtime, year or poster are then completed
// through an optional EnrichmentProvider. Enrichment never fails a request.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), catalogProvider,
//	    eventSource, omdbProvider, logger)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := engine.Recommend(ctx, recommend.Request{K: 5})
//	switch {
//	case errors.Is(err, recommend.ErrCatalogUnavailable):
//	    // catalog service down
//	case errors.Is(err, recommend.ErrTransport):
//	    // event source unreachable
//	}
//
// # Determinism
//
// For a fixed catalog snapshot and liked set the result is a pure function:
// the TF-IDF vocabulary is indexed in sorted term order and ties in the final
// ranking keep catalog order.
//
// # Thread Safety
//
// Engine holds no per-request state and may be shared across goroutines. The
// drain performed by the Resolver is destructive, so concurrent requests
// split the pending events between them.
package recommend
