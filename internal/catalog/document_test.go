// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package catalog

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const sampleCatalog = `[
  {"_id": {"$oid": "573a1390f29313caabcd4135"}, "title": "Blacksmith Scene",
   "genres": ["Short"], "plot": "Three men hammer on an anvil.",
   "runtime": 1, "year": 1893, "imdb": {"rating": 6.2},
   "poster": "https://m.media-amazon.com/images/blacksmith.jpg"},
  {"_id": "tt0000002", "title": "The Great Train Robbery",
   "genres": ["Short", "Western"], "plot": "A group of bandits stage a brazen train hold-up.",
   "runtime": {"$numberInt": "11"}, "year": "1903", "imdb": {"rating": "7.4"}},
  {"_id": "tt0000003", "title": "Broken Year", "year": "1995è",
   "imdb": {"rating": ""}, "runtime": null, "genres": null},
  {"_id": 42, "title": "No Imdb"}
]`

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	items, err := DecodeJSON([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("len = %d, want 4", len(items))
	}

	first := items[0]
	if first.ID != "573a1390f29313caabcd4135" {
		t.Errorf("ID = %q, want oid hex", first.ID)
	}
	if first.Rating == nil || *first.Rating != 6.2 {
		t.Errorf("Rating = %v, want 6.2", first.Rating)
	}
	if first.Year == nil || *first.Year != 1893 {
		t.Errorf("Year = %v, want 1893", first.Year)
	}
	if first.Description != "Three men hammer on an anvil." {
		t.Errorf("Description = %q", first.Description)
	}

	second := items[1]
	if second.Rating == nil || *second.Rating != 7.4 {
		t.Errorf("string rating = %v, want 7.4", second.Rating)
	}
	if second.Runtime == nil || *second.Runtime != 11 {
		t.Errorf("extended json runtime = %v, want 11", second.Runtime)
	}
	if second.Year == nil || *second.Year != 1903 {
		t.Errorf("string year = %v, want 1903", second.Year)
	}
	if second.Poster != "" {
		t.Errorf("Poster = %q, want empty", second.Poster)
	}

	broken := items[2]
	if broken.Rating != nil || broken.Year != nil || broken.Runtime != nil {
		t.Errorf("non-numeric fields decoded: rating=%v year=%v runtime=%v", broken.Rating, broken.Year, broken.Runtime)
	}
	if len(broken.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", broken.Tags)
	}

	if items[3].ID != "42" {
		t.Errorf("numeric ID = %q, want 42", items[3].ID)
	}
	if items[3].Rating != nil {
		t.Errorf("missing imdb rating = %v, want nil", items[3].Rating)
	}
}

func TestDecodeJSON_Genres(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		genres string
		want   []string
	}{
		{"array", `["Drama","Comedy"]`, []string{"Drama", "Comedy"}},
		{"scalar string", `"Comedy"`, nil},
		{"object", `{"x":1}`, nil},
		{"number", `7`, nil},
		{"null and empty elements", `["Drama",null,"","  "]`, []string{"Drama"}},
		{"mixed element types", `[1,"Western",{"x":1},["Short"]]`, []string{"Western"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			body := `[{"_id":"1","title":"Kept","genres":["Drama"]},` +
				`{"_id":"2","title":"Odd","genres":` + tt.genres + `,"imdb":{"rating":7.1}}]`

			items, err := DecodeJSON([]byte(body))
			if err != nil {
				t.Fatalf("DecodeJSON() error = %v", err)
			}
			if len(items) != 2 {
				t.Fatalf("len = %d, want 2", len(items))
			}
			if len(items[0].Tags) != 1 || items[0].Tags[0] != "Drama" {
				t.Errorf("neighbour Tags = %v, want [Drama]", items[0].Tags)
			}
			odd := items[1]
			if !equalTags(odd.Tags, tt.want) {
				t.Errorf("Tags = %q, want %q", odd.Tags, tt.want)
			}
			if odd.Rating == nil || *odd.Rating != 7.1 {
				t.Errorf("Rating = %v, want 7.1", odd.Rating)
			}
		})
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"title": "not an array"}`, `[{"title": 12}]`, `<html>`} {
		if _, err := DecodeJSON([]byte(body)); err == nil {
			t.Errorf("DecodeJSON(%s) error = nil, want error", body)
		}
	}
}

func TestDecodeJSON_EmptyArray(t *testing.T) {
	t.Parallel()

	items, err := DecodeJSON([]byte(`[]`))
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len = %d, want 0", len(items))
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"8.8", 8.8, true},
		{" 7 ", 7, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"1995è", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestBSONMovie_ToItem(t *testing.T) {
	t.Parallel()

	oid, err := primitive.ObjectIDFromHex("573a1390f29313caabcd4135")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		doc         bson.D
		wantID      string
		wantRating  *float64
		wantRuntime *int
		wantYear    *int
		wantTags    []string
	}{
		{
			name: "object id and typed numbers",
			doc: bson.D{
				{Key: "_id", Value: oid},
				{Key: "title", Value: "Blacksmith Scene"},
				{Key: "runtime", Value: int32(1)},
				{Key: "year", Value: int64(1893)},
				{Key: "genres", Value: bson.A{"Short", "Drama"}},
				{Key: "imdb", Value: bson.D{{Key: "rating", Value: 6.2}}},
			},
			wantID:      "573a1390f29313caabcd4135",
			wantRating:  ptr(6.2),
			wantRuntime: ptr(1),
			wantYear:    ptr(1893),
			wantTags:    []string{"Short", "Drama"},
		},
		{
			name: "string values",
			doc: bson.D{
				{Key: "_id", Value: "tt1"},
				{Key: "title", Value: "Strings"},
				{Key: "year", Value: "2010"},
				{Key: "imdb", Value: bson.D{{Key: "rating", Value: "8.8"}}},
			},
			wantID:     "tt1",
			wantRating: ptr(8.8),
			wantYear:   ptr(2010),
		},
		{
			name: "non numeric values are missing",
			doc: bson.D{
				{Key: "_id", Value: "tt2"},
				{Key: "title", Value: "Broken"},
				{Key: "year", Value: "1995è"},
				{Key: "runtime", Value: true},
				{Key: "imdb", Value: bson.D{{Key: "rating", Value: ""}}},
			},
			wantID: "tt2",
		},
		{
			name: "scalar genres",
			doc: bson.D{
				{Key: "_id", Value: "tt3"},
				{Key: "genres", Value: "Comedy"},
			},
			wantID: "tt3",
		},
		{
			name: "object genres",
			doc: bson.D{
				{Key: "_id", Value: "tt4"},
				{Key: "genres", Value: bson.D{{Key: "x", Value: 1}}},
			},
			wantID: "tt4",
		},
		{
			name: "null and non string genre elements",
			doc: bson.D{
				{Key: "_id", Value: "tt5"},
				{Key: "genres", Value: bson.A{"Drama", nil, "", int32(3), "Western"}},
			},
			wantID:   "tt5",
			wantTags: []string{"Drama", "Western"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw, err := bson.Marshal(tt.doc)
			if err != nil {
				t.Fatalf("bson.Marshal() error = %v", err)
			}
			var m bsonMovie
			if err := bson.Unmarshal(raw, &m); err != nil {
				t.Fatalf("bson.Unmarshal() error = %v", err)
			}
			item := m.toItem()

			if item.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", item.ID, tt.wantID)
			}
			if !equalPtr(item.Rating, tt.wantRating) {
				t.Errorf("Rating = %v, want %v", item.Rating, tt.wantRating)
			}
			if !equalPtr(item.Runtime, tt.wantRuntime) {
				t.Errorf("Runtime = %v, want %v", item.Runtime, tt.wantRuntime)
			}
			if !equalPtr(item.Year, tt.wantYear) {
				t.Errorf("Year = %v, want %v", item.Year, tt.wantYear)
			}
			if !equalTags(item.Tags, tt.wantTags) {
				t.Errorf("Tags = %q, want %q", item.Tags, tt.wantTags)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalTags(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
