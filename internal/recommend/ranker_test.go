// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"fmt"
	"reflect"
	"testing"
)

func TestRank_DramaScenario(t *testing.T) {
	t.Parallel()

	catalog := dramaCatalog()
	liked := NewLikedSet("A")

	genre := ScoreGenres(catalog, liked)
	plot := ScorePlots(catalog, liked)

	if genre[1] != 1 {
		t.Errorf("genreScore(B) = %v, want 1", genre[1])
	}
	if genre[2] != 0 {
		t.Errorf("genreScore(C) = %v, want 0", genre[2])
	}
	if plot[1] <= plot[2] {
		t.Errorf("plotScore(B) = %v should exceed plotScore(C) = %v", plot[1], plot[2])
	}

	got := Rank(catalog, genre, plot, liked, 5)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, s := range got {
		if s.Item.Title == "A" {
			t.Fatal("liked item A was recommended")
		}
	}

	byTitle := map[string]ScoredItem{}
	for _, s := range got {
		byTitle[s.Item.Title] = s
	}
	b, c := byTitle["B"], byTitle["C"]
	if want := 1 + 6 + b.PlotScore; b.CompositeScore != want {
		t.Errorf("composite(B) = %v, want %v", b.CompositeScore, want)
	}
	if c.CompositeScore != 9 {
		t.Errorf("composite(C) = %v, want 9", c.CompositeScore)
	}

	// B only ranks first when its composite beats C's higher raw rating.
	wantFirst := "C"
	if b.CompositeScore > c.CompositeScore {
		wantFirst = "B"
	}
	if got[0].Item.Title != wantFirst {
		t.Errorf("first = %q, want %q (B=%v C=%v)", got[0].Item.Title, wantFirst, b.CompositeScore, c.CompositeScore)
	}
}

func TestRank_BoostedDramaOutranksHigherRating(t *testing.T) {
	t.Parallel()

	catalog := dramaCatalog()
	catalog[1].Rating = floatPtr(8.5)
	got := ScoreAndRank(catalog, NewLikedSet("A"), 5)

	if !reflect.DeepEqual(titles(got), []string{"B", "C"}) {
		t.Errorf("order = %v, want [B C]", titles(got))
	}
}

func TestRank_EmptyLikedSetOrdersByRating(t *testing.T) {
	t.Parallel()

	catalog := Catalog{
		{ID: "1", Title: "Low", Rating: floatPtr(3)},
		{ID: "2", Title: "TieFirst", Rating: floatPtr(7)},
		{ID: "3", Title: "NoRating"},
		{ID: "4", Title: "High", Rating: floatPtr(9)},
		{ID: "5", Title: "TieSecond", Rating: floatPtr(7)},
	}

	got := ScoreAndRank(catalog, NewLikedSet(), 10)

	want := []string{"High", "TieFirst", "TieSecond", "Low", "NoRating"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Errorf("order = %v, want %v", titles(got), want)
	}
	for _, s := range got {
		if s.GenreScore != 0 || s.PlotScore != 0 {
			t.Errorf("%s: genre=%v plot=%v, want zeros", s.Item.Title, s.GenreScore, s.PlotScore)
		}
	}
	if got[4].CompositeScore != 0 {
		t.Errorf("missing rating composite = %v, want 0", got[4].CompositeScore)
	}
}

func TestRank_LengthAndExclusion(t *testing.T) {
	t.Parallel()

	catalog := make(Catalog, 8)
	for i := range catalog {
		catalog[i] = Item{
			ID:          fmt.Sprintf("id-%d", i),
			Title:       fmt.Sprintf("Title %d", i),
			Tags:        []string{"Drama"},
			Rating:      floatPtr(float64(i)),
			Description: "a quiet drama",
		}
	}

	tests := []struct {
		name  string
		liked LikedSet
		k     int
		want  int
	}{
		{"default k", NewLikedSet(), 0, DefaultK},
		{"k larger than remaining", NewLikedSet("Title 0", "Title 1", "Title 2", "Title 3", "Title 4"), 5, 3},
		{"liked title not in catalog", NewLikedSet("Unknown"), 3, 3},
		{"all liked", NewLikedSet("Title 0", "Title 1", "Title 2", "Title 3", "Title 4", "Title 5", "Title 6", "Title 7"), 5, 0},
		{"k equals one", NewLikedSet("Title 7"), 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ScoreAndRank(catalog, tt.liked, tt.k)
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			for _, s := range got {
				if tt.liked.Contains(s.Item.Title) {
					t.Errorf("liked item %q returned", s.Item.Title)
				}
			}
			for i := 1; i < len(got); i++ {
				if got[i-1].CompositeScore < got[i].CompositeScore {
					t.Errorf("not sorted at %d: %v < %v", i, got[i-1].CompositeScore, got[i].CompositeScore)
				}
			}
		})
	}
}

func TestRank_EmptyCatalog(t *testing.T) {
	t.Parallel()

	got := ScoreAndRank(Catalog{}, NewLikedSet("A"), 5)
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestCompositeScore_Monotone(t *testing.T) {
	t.Parallel()

	base := CompositeScore(1, 5, 0.5)
	if CompositeScore(2, 5, 0.5) < base {
		t.Error("composite decreased when genre increased")
	}
	if CompositeScore(1, 6, 0.5) < base {
		t.Error("composite decreased when rating increased")
	}
	if CompositeScore(1, 5, 0.9) < base {
		t.Error("composite decreased when plot increased")
	}
}

func TestRank_DoesNotMutateCatalog(t *testing.T) {
	t.Parallel()

	catalog := dramaCatalog()
	before := fmt.Sprintf("%+v", catalog)
	got := ScoreAndRank(catalog, NewLikedSet("A"), 5)
	got[0].Item.Title = "changed"
	if after := fmt.Sprintf("%+v", catalog); after != before {
		t.Errorf("catalog mutated:\nbefore %s\nafter  %s", before, after)
	}
}
