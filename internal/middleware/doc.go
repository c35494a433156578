// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package middleware provides the HTTP infrastructure middleware used by the
api router.

  - RequestID: accepts or generates X-Request-ID and stores it for logging.Ctx
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled by
    chi route pattern
  - Compression: chi's gzip compressor, limited to application/json

All three have the func(http.Handler) http.Handler shape expected by chi's
r.Use.
*/
package middleware
