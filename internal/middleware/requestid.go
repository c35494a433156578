// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package middleware

import (
	"net/http"
	"strings"

	"github.com/tomtom215/reelrank/internal/logging"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds ids accepted from upstream proxies.
const maxRequestIDLen = 128

// RequestID reuses an upstream X-Request-ID or generates a UUID, echoes it in
// the response and stores it in the request context for logging.Ctx.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := sanitizeRequestID(r.Header.Get(RequestIDHeader))
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set(RequestIDHeader, requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sanitizeRequestID drops ids that are too long or contain characters that
// would corrupt log lines.
func sanitizeRequestID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > maxRequestIDLen {
		return ""
	}
	for _, r := range id {
		if r < 0x21 || r == 0x7F {
			return ""
		}
	}
	return id
}
