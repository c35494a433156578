// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package catalog

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// movieDocument is one catalog entry as exported from the movies collection.
// Numeric fields are lenient: anything that is not a number or a numeric
// string decodes as missing. Genres that are not an array decode as none.
type movieDocument struct {
	ID      flexID     `json:"_id"`
	Title   string     `json:"title"`
	Genres  flexTags   `json:"genres"`
	Plot    string     `json:"plot"`
	Poster  string     `json:"poster"`
	Runtime flexNumber `json:"runtime"`
	Year    flexNumber `json:"year"`
	IMDb    struct {
		Rating flexNumber `json:"rating"`
	} `json:"imdb"`
}

func (d *movieDocument) toItem() recommend.Item {
	return recommend.Item{
		ID:          string(d.ID),
		Title:       d.Title,
		Tags:        []string(d.Genres),
		Description: d.Plot,
		Rating:      d.IMDb.Rating.float(),
		Runtime:     d.Runtime.positiveInt(),
		Year:        d.Year.positiveInt(),
		Poster:      d.Poster,
	}
}

// flexTags accepts an array of strings. Non-string and empty elements are
// dropped; any other JSON value decodes as an empty list.
type flexTags []string

func (t *flexTags) UnmarshalJSON(data []byte) error {
	*t = flexTags{}
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil
	}
	for _, elem := range elems {
		var tag string
		if err := json.Unmarshal(elem, &tag); err != nil {
			continue
		}
		*t = t.add(tag)
	}
	return nil
}

func (t flexTags) add(tag string) flexTags {
	if strings.TrimSpace(tag) == "" {
		return t
	}
	return append(t, tag)
}

// DecodeJSON decodes a JSON array of movie documents, keeping document order.
func DecodeJSON(data []byte) (recommend.Catalog, error) {
	var docs []movieDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	items := make(recommend.Catalog, len(docs))
	for i := range docs {
		items[i] = docs[i].toItem()
	}
	return items, nil
}

// flexID accepts a plain string id or an extended-JSON {"$oid": "..."}.
type flexID string

func (id *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case b[0] == '{':
		var oid struct {
			OID string `json:"$oid"`
		}
		if err := json.Unmarshal(b, &oid); err != nil {
			return fmt.Errorf("decode _id: %w", err)
		}
		*id = flexID(oid.OID)
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decode _id: %w", err)
		}
		*id = flexID(s)
		return nil
	default:
		// Numeric ids are kept verbatim.
		*id = flexID(b)
		return nil
	}
}

// flexNumber is a number that may arrive as a JSON number, a numeric string
// or an extended-JSON wrapper. Anything else leaves it unset.
type flexNumber struct {
	value float64
	valid bool
}

var extendedNumberKeys = []string{"$numberDouble", "$numberInt", "$numberLong", "$numberDecimal"}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	*n = flexNumber{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			n.set(s)
		}
	case '{':
		var ext map[string]string
		if err := json.Unmarshal(b, &ext); err == nil {
			for _, key := range extendedNumberKeys {
				if s, ok := ext[key]; ok {
					n.set(s)
					break
				}
			}
		}
	default:
		n.set(string(b))
	}
	return nil
}

func (n *flexNumber) set(s string) {
	if f, ok := parseNumber(s); ok {
		n.value, n.valid = f, true
	}
}

func (n flexNumber) float() *float64 {
	if !n.valid {
		return nil
	}
	v := n.value
	return &v
}

func (n flexNumber) positiveInt() *int {
	if !n.valid || n.value < 1 {
		return nil
	}
	v := int(n.value)
	return &v
}

// parseNumber parses a finite decimal number.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
