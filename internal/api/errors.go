// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// ErrPublisherUnavailable is returned by click handlers when no publisher is wired.
var ErrPublisherUnavailable = errors.New("click publisher is not configured")

// classifyRecommendError maps an engine error to an HTTP status and error code.
func classifyRecommendError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, recommend.ErrCatalogUnavailable):
		return http.StatusInternalServerError, ErrCodeCatalogUnavailable, "Movie catalog is unavailable"
	case errors.Is(err, recommend.ErrTransport):
		return http.StatusInternalServerError, ErrCodeTransportError, "Liked-movie events could not be read"
	default:
		return http.StatusInternalServerError, ErrCodeInternalError, "Failed to compute recommendations"
	}
}
