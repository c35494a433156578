// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelrank/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi builds the HTTP handler.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)

		// Legacy paths used by the existing frontend.
		r.Get("/get-recommended-movies", router.handler.LegacyRecommendations)
		r.Post("/register-click", router.handler.RegisterClick)

		r.Get("/api/v1/recommendations", router.handler.Recommendations)
		r.Post("/api/v1/clicks", router.handler.RegisterClick)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
