// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

// tagFrequencies counts tags over the liked items. A tag carried by two liked
// items counts twice.
func tagFrequencies(catalog Catalog, liked LikedSet) map[string]int {
	counts := make(map[string]int)
	for _, pos := range catalog.LikedPositions(liked) {
		for _, tag := range catalog[pos].Tags {
			counts[tag]++
		}
	}
	return counts
}

// ScoreGenres returns the genre affinity of every catalog item, indexed by
// catalog position: the sum over the item's tags of how often each tag
// appears among the liked items. With no liked items every score is 0.
func ScoreGenres(catalog Catalog, liked LikedSet) []float64 {
	scores := make([]float64, len(catalog))
	if liked.Len() == 0 {
		return scores
	}

	counts := tagFrequencies(catalog, liked)
	if len(counts) == 0 {
		return scores
	}

	for i := range catalog {
		var sum int
		for _, tag := range catalog[i].Tags {
			sum += counts[tag]
		}
		scores[i] = float64(sum)
	}
	return scores
}
