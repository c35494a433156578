// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package enrichment fills missing display metadata (rating, runtime, year,
// poster) for recommended movies.
//
// OMDbClient queries the OMDb title endpoint behind a client-side rate
// limiter and a circuit breaker. OMDb's "N/A" values are treated as absent,
// "148 min" and "2010–2013" style values are reduced to their leading
// integer, and poster URLs can optionally be probed before use.
//
// CachedProvider puts a read-through cache (RedisCache in production) in
// front of any provider. Titles OMDb does not know are cached too, so
// repeated misses do not spend API quota.
package enrichment
