// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package enrichment

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// encodedCache is an in-process Cache that stores entries in their encoded form.
type encodedCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	setErr  error
	sets    int
}

func newEncodedCache() *encodedCache {
	return &encodedCache{entries: map[string][]byte{}}
}

func (c *encodedCache) Get(ctx context.Context, key string) (*recommend.Enrichment, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	raw, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	data, err := decodeEntry(raw)
	return data, err == nil, err
}

func (c *encodedCache) Set(ctx context.Context, key string, data *recommend.Enrichment) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	raw, err := encodeEntry(data)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

type countingProvider struct {
	data  map[string]*recommend.Enrichment
	err   error
	calls int
}

func (p *countingProvider) Lookup(ctx context.Context, title string) (*recommend.Enrichment, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.data[title], nil
}

func ptr[T any](v T) *T { return &v }

func TestCachedProvider_ReadThrough(t *testing.T) {
	t.Parallel()

	want := &recommend.Enrichment{Rating: ptr(8.1), Runtime: ptr(101), Year: ptr(1994), Poster: "http://img/p.jpg"}
	next := &countingProvider{data: map[string]*recommend.Enrichment{"Pulp Fiction": want}}
	cache := newEncodedCache()
	p := NewCachedProvider(next, cache, zerolog.Nop())

	for i := 0; i < 3; i++ {
		got, err := p.Lookup(context.Background(), "Pulp Fiction")
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Lookup() = %+v, want %+v", got, want)
		}
	}
	if next.calls != 1 {
		t.Errorf("provider calls = %d, want 1", next.calls)
	}

	// Same title with different spacing and case hits the same entry.
	if _, err := p.Lookup(context.Background(), "  pulp   FICTION "); err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if next.calls != 1 {
		t.Errorf("provider calls = %d after normalised lookup, want 1", next.calls)
	}
}

func TestCachedProvider_CachesUnknownTitles(t *testing.T) {
	t.Parallel()

	next := &countingProvider{}
	p := NewCachedProvider(next, newEncodedCache(), zerolog.Nop())

	for i := 0; i < 2; i++ {
		got, err := p.Lookup(context.Background(), "Unknown")
		if err != nil || got != nil {
			t.Fatalf("Lookup() = %v, %v, want nil, nil", got, err)
		}
	}
	if next.calls != 1 {
		t.Errorf("provider calls = %d, want 1", next.calls)
	}
}

func TestCachedProvider_ProviderErrorNotCached(t *testing.T) {
	t.Parallel()

	next := &countingProvider{err: errors.New("omdb down")}
	cache := newEncodedCache()
	p := NewCachedProvider(next, cache, zerolog.Nop())

	if _, err := p.Lookup(context.Background(), "Alien"); err == nil {
		t.Fatal("Lookup() error = nil, want provider error")
	}
	if cache.sets != 0 {
		t.Errorf("cache sets = %d, want 0", cache.sets)
	}
}

func TestCachedProvider_CacheFailuresFallThrough(t *testing.T) {
	t.Parallel()

	want := &recommend.Enrichment{Year: ptr(1979)}
	next := &countingProvider{data: map[string]*recommend.Enrichment{"Alien": want}}
	cache := newEncodedCache()
	cache.getErr = errors.New("redis: connection refused")
	cache.setErr = errors.New("redis: connection refused")
	p := NewCachedProvider(next, cache, zerolog.Nop())

	got, err := p.Lookup(context.Background(), "Alien")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup() = %+v, want %+v", got, want)
	}
}

func TestCacheEntryEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   *recommend.Enrichment
	}{
		{"unknown title", nil},
		{"empty but known", &recommend.Enrichment{}},
		{"full", &recommend.Enrichment{Rating: ptr(7.0), Runtime: ptr(90), Year: ptr(2001), Poster: "p"}},
	}

	for _, tt := range tests {
		raw, err := encodeEntry(tt.in)
		if err != nil {
			t.Fatalf("%s: encode error = %v", tt.name, err)
		}
		got, err := decodeEntry(raw)
		if err != nil {
			t.Fatalf("%s: decode error = %v", tt.name, err)
		}
		if !reflect.DeepEqual(got, tt.in) {
			t.Errorf("%s: got %+v, want %+v", tt.name, got, tt.in)
		}
	}
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"The Matrix":       "the matrix",
		"  the   MATRIX  ": "the matrix",
		"":                 "",
	}
	for in, want := range tests {
		if got := CacheKey(in); got != want {
			t.Errorf("CacheKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := NewMemoryCache(2, time.Minute)

	if _, found, err := c.Get(ctx, "heat"); found || err != nil {
		t.Fatalf("Get(empty) = found %v, err %v", found, err)
	}

	stored := &recommend.Enrichment{Rating: ptr(8.3), Poster: "p.jpg"}
	if err := c.Set(ctx, "heat", stored); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	stored.Poster = "mutated"

	got, found, err := c.Get(ctx, "heat")
	if err != nil || !found {
		t.Fatalf("Get(heat) = found %v, err %v", found, err)
	}
	if got.Poster != "p.jpg" || *got.Rating != 8.3 {
		t.Errorf("Get(heat) = %+v", got)
	}
	got.Poster = "changed by caller"
	if again, _, _ := c.Get(ctx, "heat"); again.Poster != "p.jpg" {
		t.Error("cached value shares memory with callers")
	}

	if err := c.Set(ctx, "unknown", nil); err != nil {
		t.Fatalf("Set(nil) error = %v", err)
	}
	data, found, _ := c.Get(ctx, "unknown")
	if !found || data != nil {
		t.Errorf("Get(unknown) = %v, found %v; want cached miss", data, found)
	}

	_ = c.Set(ctx, "third", &recommend.Enrichment{})
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want capacity 2", c.Len())
	}
}
