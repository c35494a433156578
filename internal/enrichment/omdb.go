// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package enrichment

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelrank/internal/breaker"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// notAvailable is OMDb's marker for an unknown field.
const notAvailable = "N/A"

// OMDbConfig configures the OMDb client.
type OMDbConfig struct {
	// BaseURL of the OMDb API, e.g. http://www.omdbapi.com
	BaseURL string

	// APIKey is sent as the apikey query parameter.
	APIKey string

	// Timeout bounds each HTTP call, including poster probes.
	Timeout time.Duration

	// RatePerSecond limits outgoing lookups. Zero disables the limit.
	RatePerSecond float64

	// ValidatePosters probes poster URLs and drops those that do not answer 200.
	ValidatePosters bool
}

// OMDbClient implements recommend.EnrichmentProvider against the OMDb API.
type OMDbClient struct {
	client          *http.Client
	baseURL         string
	apiKey          string
	limiter         *rate.Limiter
	breaker         *breaker.Breaker
	validatePosters bool
	logger          zerolog.Logger
}

// omdbResponse is the subset of the OMDb title response we read.
type omdbResponse struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Runtime    string `json:"Runtime"`
	Poster     string `json:"Poster"`
	IMDbRating string `json:"imdbRating"`
}

// NewOMDbClient creates an OMDb client.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewOMDbClient(cfg OMDbConfig, logger zerolog.Logger) (*OMDbClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("omdb: base url is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("omdb: api key is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	return &OMDbClient{
		client:          &http.Client{Timeout: timeout},
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:          cfg.APIKey,
		limiter:         rate.NewLimiter(limit, 1),
		breaker:         breaker.New(breaker.DefaultSettings("omdb")),
		validatePosters: cfg.ValidatePosters,
		logger:          logger.With().Str("component", "omdb").Logger(),
	}, nil
}

// Name returns the provider name for logging.
func (c *OMDbClient) Name() string {
	return "omdb"
}

// Lookup fetches metadata for title. A title OMDb does not know returns
// nil, nil.
func (c *OMDbClient) Lookup(ctx context.Context, title string) (*recommend.Enrichment, error) {
	if strings.TrimSpace(title) == "" {
		return nil, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("omdb rate limit: %w", err)
	}

	result, err := breaker.Do(c.breaker, func() (*omdbResponse, error) {
		return c.query(ctx, title)
	})
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(result.Response, "True") {
		c.logger.Debug().Str("title", title).Str("reason", result.Error).Msg("OMDb has no match")
		return nil, nil
	}

	data := convertOMDbResponse(result)
	if data.Poster != "" && c.validatePosters && !c.posterReachable(ctx, data.Poster) {
		c.logger.Debug().Str("title", title).Str("poster", data.Poster).Msg("Discarding unreachable poster")
		data.Poster = ""
	}
	return data, nil
}

func (c *OMDbClient) query(ctx context.Context, title string) (*omdbResponse, error) {
	q := url.Values{}
	q.Set("t", title)
	q.Set("apikey", c.apiKey)
	endpoint := c.baseURL + "/?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query OMDb: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp omdbResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("OMDb error (status %d): %s", resp.StatusCode, errResp.Error)
		}
		return nil, fmt.Errorf("OMDb returned status %d", resp.StatusCode)
	}

	var result omdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode OMDb response: %w", err)
	}
	return &result, nil
}

// posterReachable reports whether a GET on the poster URL answers 200.
func (c *OMDbClient) posterReachable(ctx context.Context, poster string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, poster, http.NoBody)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func convertOMDbResponse(r *omdbResponse) *recommend.Enrichment {
	return &recommend.Enrichment{
		Rating:  parseRating(r.IMDbRating),
		Runtime: parseLeadingInt(r.Runtime),
		Year:    parseLeadingInt(r.Year),
		Poster:  availableString(r.Poster),
	}
}

func availableString(s string) string {
	s = strings.TrimSpace(s)
	if s == notAvailable {
		return ""
	}
	return s
}

// parseRating parses "8.8". "N/A" and garbage yield nil.
func parseRating(s string) *float64 {
	s = availableString(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseLeadingInt reads the leading digits of values such as "148 min",
// "2010" or "2010–2013".
func parseLeadingInt(s string) *int {
	s = availableString(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return nil
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}
