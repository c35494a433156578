// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total recommendation requests by outcome",
		},
		[]string{"status"}, // success, catalog_unavailable, transport_error, error
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "End-to-end recommendation latency including catalog fetch and enrichment",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	RecommendCatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_catalog_items",
			Help: "Number of items in the most recently fetched catalog snapshot",
		},
	)

	LikedEventsDrained = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "liked_events_drained_total",
			Help: "Liked events consumed by the resolver",
		},
		[]string{"outcome"}, // matched, unmatched, malformed
	)

	EnrichmentLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_lookups_total",
			Help: "Metadata enrichment lookups by outcome",
		},
		[]string{"outcome"}, // hit, miss, error
	)

	EnrichmentCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_cache_total",
			Help: "Enrichment cache lookups by result",
		},
		[]string{"result"}, // hit, miss, error
	)

	ClickEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "click_events_published_total",
			Help: "Click events published to the liked events stream",
		},
		[]string{"status"}, // success, failure
	)

	ClickStreamBacklog = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "click_stream_backlog",
			Help: "Clicks waiting in the liked events stream, sampled by the health check",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records the outcome and latency of one recommendation request.
func RecordRecommendation(status string, duration time.Duration) {
	RecommendRequests.WithLabelValues(status).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordLikedEvent counts one drained liked event.
func RecordLikedEvent(outcome string) {
	LikedEventsDrained.WithLabelValues(outcome).Inc()
}

// RecordEnrichment counts one enrichment lookup.
func RecordEnrichment(outcome string) {
	EnrichmentLookups.WithLabelValues(outcome).Inc()
}

// RecordEnrichmentCache counts one enrichment cache lookup.
func RecordEnrichmentCache(result string) {
	EnrichmentCache.WithLabelValues(result).Inc()
}

// RecordClickPublish counts one click publish attempt.
func RecordClickPublish(err error) {
	if err != nil {
		ClickEventsPublished.WithLabelValues("failure").Inc()
		return
	}
	ClickEventsPublished.WithLabelValues("success").Inc()
}
