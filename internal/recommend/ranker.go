// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import "sort"

// DefaultK is the number of recommendations returned when none is requested.
const DefaultK = 5

// CompositeScore combines the two signals with the raw rating. A missing
// rating counts as 0.
func CompositeScore(genre, rating, plot float64) float64 {
	return genre + rating + plot
}

// Rank scores every catalog item not in liked, sorts by composite score
// descending and returns the first k. genre and plot are indexed by catalog
// position. Equal scores keep catalog order. k <= 0 uses DefaultK.
func Rank(catalog Catalog, genre, plot []float64, liked LikedSet, k int) []ScoredItem {
	if k <= 0 {
		k = DefaultK
	}

	candidates := make([]ScoredItem, 0, len(catalog))
	for i := range catalog {
		if liked.Contains(catalog[i].Title) {
			continue
		}
		item := catalog[i]
		candidates = append(candidates, ScoredItem{
			Item:           item,
			GenreScore:     genre[i],
			PlotScore:      plot[i],
			CompositeScore: CompositeScore(genre[i], item.RatingOrZero(), plot[i]),
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].CompositeScore > candidates[b].CompositeScore
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}

// ScoreAndRank runs both scorers and the ranking over a catalog snapshot
// and liked set. It performs no I/O.
func ScoreAndRank(catalog Catalog, liked LikedSet, k int) []ScoredItem {
	return Rank(catalog, ScoreGenres(catalog, liked), ScorePlots(catalog, liked), liked, k)
}
