// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package api exposes reelrank over HTTP using the chi router.

# Endpoints

	GET  /get-recommended-movies     legacy: bare JSON array of recommendations
	POST /register-click             legacy: record a movie click
	GET  /api/v1/recommendations     recommendations in the APIResponse envelope, ?k=1..max_k
	POST /api/v1/clicks              record a movie click, APIResponse envelope
	GET  /api/v1/health              liveness and dependency checks
	GET  /api/v1/health/live         liveness only
	GET  /metrics                    Prometheus exposition

# Errors

Every non-legacy response uses APIResponse. Errors carry a machine-readable
code:

	VALIDATION_ERROR         400  bad k or click body
	CATALOG_UNAVAILABLE      500  catalog source unreachable or non-2xx
	TRANSPORT_ERROR          500  liked-events queue failure
	INTERNAL_ERROR           500  anything else, including request timeouts
	EXTERNAL_SERVICE_FAILED  503  click could not be published

# Middleware

Global: request id, real IP, panic recovery, CORS (go-chi/cors). API routes
add per-IP rate limiting (go-chi/httprate), security headers, Prometheus
instrumentation and gzip.
*/
package api
