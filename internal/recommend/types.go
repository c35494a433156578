// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"sort"
	"time"
)

// Item is a catalog entry. Runtime, Year and Poster are display fields that
// the scorers never read.
type Item struct {
	// ID is the opaque, unique item identifier.
	ID string `json:"id"`

	// Title is unique within a catalog snapshot.
	Title string `json:"title"`

	// Tags are the categorical labels (genres). May be empty.
	Tags []string `json:"tags"`

	// Description is the plot text. Empty when missing.
	Description string `json:"description"`

	// Rating is the numeric rating, nil when missing or non-numeric.
	Rating *float64 `json:"rating"`

	// Runtime is the runtime in minutes.
	Runtime *int `json:"runtime"`

	// Year is the release year.
	Year *int `json:"year"`

	// Poster is the poster image URL.
	Poster string `json:"poster"`
}

// RatingOrZero returns the rating, treating a missing rating as 0.
//
//nolint:gocritic // hugeParam: Catalog items are passed by value
func (i Item) RatingOrZero() float64 {
	if i.Rating == nil {
		return 0
	}
	return *i.Rating
}

// NeedsEnrichment reports whether any display field is missing.
//
//nolint:gocritic // hugeParam: see RatingOrZero
func (i Item) NeedsEnrichment() bool {
	return i.Rating == nil || i.Runtime == nil || i.Year == nil || i.Poster == ""
}

// Catalog is an ordered, read-only catalog snapshot. Order matters: it is the
// tie-breaker in ranking.
type Catalog []Item

// Index maps item IDs to their position in the catalog.
func (c Catalog) Index() map[string]int {
	idx := make(map[string]int, len(c))
	for i := range c {
		idx[c[i].ID] = i
	}
	return idx
}

// LikedPositions returns the catalog positions whose title is in liked, in
// catalog order.
func (c Catalog) LikedPositions(liked LikedSet) []int {
	if liked.Len() == 0 {
		return nil
	}
	var positions []int
	for i := range c {
		if liked.Contains(c[i].Title) {
			positions = append(positions, i)
		}
	}
	return positions
}

// LikedEvent is one "item liked" interaction delivered by an EventSource.
type LikedEvent struct {
	// ItemID references Item.ID.
	ItemID string

	// Clicks is the click count reported by the publisher. Informational only.
	Clicks int

	// DeliveryTag identifies the delivery for Ack.
	DeliveryTag uint64
}

// LikedSet is the set of liked item titles for one request.
type LikedSet map[string]struct{}

// NewLikedSet returns a set containing titles.
func NewLikedSet(titles ...string) LikedSet {
	s := make(LikedSet, len(titles))
	for _, t := range titles {
		s[t] = struct{}{}
	}
	return s
}

// Add inserts a title.
func (s LikedSet) Add(title string) {
	s[title] = struct{}{}
}

// Contains reports whether title is liked.
func (s LikedSet) Contains(title string) bool {
	_, ok := s[title]
	return ok
}

// Len returns the number of liked titles. Safe on a nil set.
func (s LikedSet) Len() int {
	return len(s)
}

// Titles returns the liked titles sorted.
func (s LikedSet) Titles() []string {
	titles := make([]string, 0, len(s))
	for t := range s {
		titles = append(titles, t)
	}
	sort.Strings(titles)
	return titles
}

// ScoredItem is a catalog item with its per-request scores.
type ScoredItem struct {
	// Item is a copy of the catalog item, possibly enriched.
	Item Item `json:"item"`

	// GenreScore is the tag affinity score, >= 0.
	GenreScore float64 `json:"genre_score"`

	// PlotScore is the best description similarity to a liked item, in [0,1].
	PlotScore float64 `json:"plot_score"`

	// CompositeScore is GenreScore + rating + PlotScore.
	CompositeScore float64 `json:"composite_score"`
}

// Request is a recommendation request.
type Request struct {
	// K is the number of results. Zero uses Config.DefaultK.
	K int `json:"k,omitempty"`

	// RequestID is propagated to logs and response metadata.
	RequestID string `json:"request_id,omitempty"`
}

// Response is the result of a recommendation request.
type Response struct {
	// Items are the ranked recommendations, best first.
	Items []ScoredItem `json:"items"`

	// TotalCandidates is the number of catalog items left after excluding liked items.
	TotalCandidates int `json:"total_candidates"`

	// LikedCount is the size of the resolved liked set.
	LikedCount int `json:"liked_count"`

	// Metadata describes the request.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains request diagnostics.
type ResponseMetadata struct {
	RequestID   string    `json:"request_id"`
	CatalogSize int       `json:"catalog_size"`
	LatencyMS   int64     `json:"latency_ms"`
	Timestamp   time.Time `json:"timestamp"`
}

// CatalogProvider loads a catalog snapshot. Implementations return an error
// wrapping ErrCatalogUnavailable when the source is unreachable or answers
// with a non-success status.
type CatalogProvider interface {
	FetchCatalog(ctx context.Context) (Catalog, error)
}

// EventSource opens sessions on the liked-events queue.
type EventSource interface {
	// Open acquires a connection to the queue.
	Open(ctx context.Context) (EventSession, error)
}

// EventSession is a single drain session. PollNext never blocks waiting for
// new events: it returns (nil, nil) when nothing is pending.
type EventSession interface {
	PollNext(ctx context.Context) (*LikedEvent, error)
	Ack(ctx context.Context, event *LikedEvent) error
	Close() error
}

// Enrichment holds metadata fields returned by an EnrichmentProvider. Nil or
// empty fields are unknown.
type Enrichment struct {
	Rating  *float64
	Runtime *int
	Year    *int
	Poster  string
}

// EnrichmentProvider looks up display metadata by title. A nil result with a
// nil error means the provider knows nothing about the title.
type EnrichmentProvider interface {
	Lookup(ctx context.Context, title string) (*Enrichment, error)
}
