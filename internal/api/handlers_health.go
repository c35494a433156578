// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"context"
	"net/http"
	"sort"
	"time"
)

// healthCheckTimeout bounds each dependency check.
const healthCheckTimeout = 2 * time.Second

// HealthStatus is the /api/v1/health payload.
type HealthStatus struct {
	Status  string                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Uptime  float64                `json:"uptime_seconds"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// Health handles GET /api/v1/health. It always answers 200 so that a
// degraded dependency does not restart the process; status reports
// "degraded" when any check fails.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := HealthStatus{
		Status:  "healthy",
		Version: h.config.Version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}
	if len(names) > 0 {
		status.Checks = make(map[string]CheckResult, len(names))
	}
	for _, name := range names {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		err := h.checks[name](ctx)
		cancel()

		result := CheckResult{Healthy: err == nil}
		if err != nil {
			result.Error = err.Error()
			status.Status = "degraded"
		}
		status.Checks[name] = result
	}

	respondSuccess(w, r, start, status, nil)
}

// HealthLive handles GET /api/v1/health/live.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, time.Now(), map[string]interface{}{
		"alive":          true,
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	}, nil)
}
