// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/recommend"
	"github.com/tomtom215/reelrank/internal/validation"
)

// MovieView is one recommendation in /api/v1 responses.
type MovieView struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Rating      *float64 `json:"rating"`
	Runtime     *int     `json:"runtime"`
	Year        *int     `json:"year"`
	Poster      *string  `json:"poster"`

	Score      float64 `json:"score"`
	GenreScore float64 `json:"genre_score"`
	PlotScore  float64 `json:"plot_score"`
}

// LegacyMovie is one recommendation in the /get-recommended-movies array.
// Field names follow the legacy frontend contract.
type LegacyMovie struct {
	Title   string   `json:"Title"`
	Genres  []string `json:"Genres"`
	Rating  *float64 `json:"Rating"`
	Runtime *int     `json:"runtime"`
	Year    *int     `json:"year"`
	Poster  *string  `json:"poster"`
	Plot    *string  `json:"plot"`
}

// recommendationsQuery is validated against the configured MaxK at request time.
type recommendationsQuery struct {
	K int `json:"k" validate:"min=1"`
}

// Recommendations handles GET /api/v1/recommendations?k=N.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	k, ok := h.parseK(w, r)
	if !ok {
		return
	}

	resp, err := h.recommend(r, k)
	if err != nil {
		status, code, message := classifyRecommendError(err)
		respondError(w, r, status, code, message, err)
		return
	}

	views := make([]MovieView, len(resp.Items))
	for i := range resp.Items {
		views[i] = toMovieView(&resp.Items[i])
	}

	respondSuccess(w, r, start, views, &APIMeta{
		CatalogSize:     resp.Metadata.CatalogSize,
		LikedCount:      resp.LikedCount,
		TotalCandidates: resp.TotalCandidates,
		K:               k,
	})
}

// LegacyRecommendations handles GET /get-recommended-movies. Success is a
// bare JSON array; failures use the error envelope.
func (h *Handler) LegacyRecommendations(w http.ResponseWriter, r *http.Request) {
	resp, err := h.recommend(r, 0)
	if err != nil {
		status, code, message := classifyRecommendError(err)
		respondError(w, r, status, code, message, err)
		return
	}

	movies := make([]LegacyMovie, len(resp.Items))
	for i := range resp.Items {
		movies[i] = toLegacyMovie(&resp.Items[i].Item)
	}
	writeJSON(w, r, http.StatusOK, movies)
}

// parseK reads and validates the k query parameter. Absent means the
// engine default (0). It writes the 400 itself and returns false on failure.
func (h *Handler) parseK(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("k")
	if raw == "" {
		return 0, true
	}

	k, err := strconv.Atoi(raw)
	if err != nil {
		respondValidationError(w, r, ErrCodeValidation, "k must be an integer", map[string]interface{}{
			"field": "k",
			"value": raw,
		})
		return 0, false
	}

	if verr := validation.ValidateStruct(&recommendationsQuery{K: k}); verr != nil {
		apiErr := verr.ToAPIError()
		respondValidationError(w, r, apiErr.Code, apiErr.Message, apiErr.Details)
		return 0, false
	}
	if k > h.config.MaxK {
		respondValidationError(w, r, ErrCodeValidation, "k must be at most "+strconv.Itoa(h.config.MaxK), map[string]interface{}{
			"field": "k",
			"tag":   "max",
			"value": k,
		})
		return 0, false
	}
	return k, true
}

func (h *Handler) recommend(r *http.Request, k int) (*recommend.Response, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	resp, err := h.recommender.Recommend(ctx, recommend.Request{
		K:         k,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func toMovieView(s *recommend.ScoredItem) MovieView {
	tags := s.Item.Tags
	if tags == nil {
		tags = []string{}
	}
	return MovieView{
		ID:          s.Item.ID,
		Title:       s.Item.Title,
		Tags:        tags,
		Description: s.Item.Description,
		Rating:      s.Item.Rating,
		Runtime:     s.Item.Runtime,
		Year:        s.Item.Year,
		Poster:      optionalString(s.Item.Poster),
		Score:       s.CompositeScore,
		GenreScore:  s.GenreScore,
		PlotScore:   s.PlotScore,
	}
}

func toLegacyMovie(item *recommend.Item) LegacyMovie {
	genres := item.Tags
	if genres == nil {
		genres = []string{}
	}
	return LegacyMovie{
		Title:   item.Title,
		Genres:  genres,
		Rating:  item.Rating,
		Runtime: item.Runtime,
		Year:    item.Year,
		Poster:  optionalString(item.Poster),
		Plot:    optionalString(item.Description),
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
