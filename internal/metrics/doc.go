// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package metrics provides Prometheus instrumentation for Reelrank.

Metrics are registered on the default registry through promauto and exposed at
/metrics by the API router:

	curl http://localhost:6001/metrics

# Available Metrics

	api_requests_total{method,endpoint,status_code}
	api_request_duration_seconds{method,endpoint}
	recommend_requests_total{status}
	recommend_duration_seconds
	recommend_catalog_items
	liked_events_drained_total{outcome}
	enrichment_lookups_total{outcome}
	click_events_published_total{status}
	circuit_breaker_state{name}
	circuit_breaker_requests_total{name,result}
*/
package metrics
