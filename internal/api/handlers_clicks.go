// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelrank/internal/eventprocessor"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/validation"
)

// maxClickBodyBytes bounds the click request body.
const maxClickBodyBytes = 4 << 10

// ClickRequest is the body of POST /register-click.
type ClickRequest struct {
	MovieID string `json:"movieId" validate:"required,notblank,max=128"`
}

// ClickResult is returned after a click is registered.
type ClickResult struct {
	MovieID string `json:"movie_id"`
	Clicks  int    `json:"clicks"`
}

// RegisterClick handles POST /register-click and POST /api/v1/clicks. It
// publishes a ClickEvent for the recommender and counts the click locally
// only once the publish succeeds.
func (h *Handler) RegisterClick(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ClickRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxClickBodyBytes+1))
	if err != nil || len(body) > maxClickBodyBytes {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Request body is too large or unreadable", nil)
		return
	}
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Request body must be a JSON object", nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondValidationError(w, r, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}
	movieID := strings.TrimSpace(req.MovieID)

	if h.publisher == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeExternalServiceFail, "Click events cannot be recorded", ErrPublisherUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()
	event := &eventprocessor.ClickEvent{MovieID: movieID, Clicks: h.clicks.next(movieID)}
	if err := h.publisher.PublishClick(ctx, event); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeExternalServiceFail, "Click events cannot be recorded", err)
		return
	}
	clicks := h.clicks.increment(movieID)

	logging.Ctx(r.Context()).Debug().Str("movie_id", movieID).Int("clicks", clicks).Msg("Click registered")
	respondSuccess(w, r, start, ClickResult{MovieID: movieID, Clicks: clicks}, nil)
}
