// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelrank/internal/logging"
)

// APIResponse is the envelope for every /api/v1 response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError describes a failed request.
type APIError struct {
	// Code is machine-readable, e.g. CATALOG_UNAVAILABLE.
	Code string `json:"code"`

	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`

	RequestID string `json:"request_id,omitempty"`
}

// APIMeta carries response metadata.
type APIMeta struct {
	RequestID  string    `json:"request_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMs int64     `json:"duration_ms"`

	// Recommendation specifics, omitted elsewhere.
	CatalogSize     int `json:"catalog_size,omitempty"`
	LikedCount      int `json:"liked_count,omitempty"`
	TotalCandidates int `json:"total_candidates,omitempty"`
	K               int `json:"k,omitempty"`
}

// Error codes for API responses
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests     = "TOO_MANY_REQUESTS"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeCatalogUnavailable  = "CATALOG_UNAVAILABLE"
	ErrCodeTransportError      = "TRANSPORT_ERROR"
	ErrCodeExternalServiceFail = "EXTERNAL_SERVICE_FAILED"
)

// writeJSON marshals v with goccy/go-json and writes it with status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess writes a success envelope. meta may be nil.
func respondSuccess(w http.ResponseWriter, r *http.Request, start time.Time, data interface{}, meta *APIMeta) {
	if meta == nil {
		meta = &APIMeta{}
	}
	meta.RequestID = logging.RequestIDFromContext(r.Context())
	meta.Timestamp = time.Now().UTC()
	meta.DurationMs = time.Since(start).Milliseconds()

	writeJSON(w, r, http.StatusOK, &APIResponse{Success: true, Data: data, Meta: meta})
}

// respondError writes an error envelope. err, when set, is logged but never
// sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	requestID := logging.RequestIDFromContext(r.Context())
	if err != nil {
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Str("code", code).Str("error", sanitizeLogValue(err.Error())).Msg("API error")
	}

	writeJSON(w, r, status, &APIResponse{
		Success: false,
		Error: &APIError{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
		Meta: &APIMeta{RequestID: requestID, Timestamp: time.Now().UTC()},
	})
}

// respondValidationError writes a 400 with validator details.
func respondValidationError(w http.ResponseWriter, r *http.Request, code, message string, details interface{}) {
	requestID := logging.RequestIDFromContext(r.Context())
	writeJSON(w, r, http.StatusBadRequest, &APIResponse{
		Success: false,
		Error: &APIError{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: requestID,
		},
		Meta: &APIMeta{RequestID: requestID, Timestamp: time.Now().UTC()},
	})
}

// sanitizeLogValue escapes control characters so error text cannot forge log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
