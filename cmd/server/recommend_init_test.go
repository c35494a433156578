// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/eventprocessor"
	"github.com/tomtom215/reelrank/internal/recommend"
)

const testCatalogJSON = `[
	{"_id":"a","title":"Alien","genres":["Horror","Sci-Fi"],"plot":"A crew meets a deadly creature in space.","imdb":{"rating":8.5}},
	{"_id":"b","title":"Aliens","genres":["Sci-Fi","Action"],"plot":"Marines fight creatures on a colony in space.","imdb":{"rating":8.4}},
	{"_id":"c","title":"The Notebook","genres":["Romance"],"plot":"A summer love story.","imdb":{"rating":7.8}}
]`

func testRecommendConfig(t *testing.T, catalogURL string) *config.Config {
	t.Helper()
	return &config.Config{
		Catalog: config.CatalogConfig{
			Source:  config.CatalogSourceHTTP,
			URL:     catalogURL,
			Timeout: 5 * time.Second,
		},
		NATS: testNATSConfig(t),
		Enrichment: config.EnrichmentConfig{
			Timeout:        2 * time.Second,
			FallbackPoster: "https://img/fallback.jpg",
			CacheBackend:   config.CacheBackendMemory,
			CacheSize:      100,
			CacheTTL:       time.Hour,
		},
		Recommend: config.RecommendConfig{DefaultK: 2, MaxK: 10},
	}
}

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testCatalogJSON))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestInitRecommendEndToEnd(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		mu      sync.Mutex
		lookups = map[string]int{}
	)
	omdb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		lookups[r.URL.Query().Get("t")]++
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Year":"1986","Runtime":"137 min","imdbRating":"6.1","Poster":"N/A","Response":"True"}`))
	}))
	defer omdb.Close()

	cfg := testRecommendConfig(t, newCatalogServer(t).URL)
	cfg.Enrichment.Enabled = true
	cfg.Enrichment.OMDbURL = omdb.URL
	cfg.Enrichment.OMDbAPIKey = "test-key"
	cfg.Enrichment.CacheEnabled = true

	bus := newEventBus(cfg.NATS, zerolog.Nop())
	if err := bus.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer bus.Shutdown(context.Background())

	rc, err := initRecommend(ctx, cfg, bus.URL(), zerolog.Nop())
	if err != nil {
		t.Fatalf("initRecommend() error = %v", err)
	}
	defer rc.Close(context.Background())

	if len(rc.checks) != 0 {
		t.Errorf("checks = %v, want none for http catalog and memory cache", rc.checks)
	}

	if err := bus.PublishClick(ctx, &eventprocessor.ClickEvent{MovieID: "a", Clicks: 1}); err != nil {
		t.Fatalf("PublishClick() error = %v", err)
	}

	resp, err := rc.Engine.Recommend(ctx, recommend.Request{K: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.LikedCount != 1 {
		t.Fatalf("LikedCount = %d, want 1", resp.LikedCount)
	}
	if len(resp.Items) != 1 || resp.Items[0].Item.Title != "Aliens" {
		t.Fatalf("items = %+v, want Aliens first", resp.Items)
	}
	top := resp.Items[0].Item
	if top.Rating == nil || *top.Rating != 8.4 {
		t.Errorf("Rating = %v, want catalog 8.4", top.Rating)
	}
	if top.Year == nil || *top.Year != 1986 {
		t.Errorf("Year = %v, want enriched 1986", top.Year)
	}
	if top.Poster != cfg.Enrichment.FallbackPoster {
		t.Errorf("Poster = %q, want fallback", top.Poster)
	}

	// The second request is served from the memory cache.
	if _, err := rc.Engine.Recommend(ctx, recommend.Request{}); err != nil {
		t.Fatalf("second Recommend() error = %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	for title, n := range lookups {
		if n > 1 {
			t.Errorf("OMDb looked up %q %d times, want at most 1", title, n)
		}
	}
}

func TestInitRecommendRedisCacheUnreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := testRecommendConfig(t, newCatalogServer(t).URL)
	cfg.Enrichment.Enabled = true
	cfg.Enrichment.OMDbURL = "http://127.0.0.1:1"
	cfg.Enrichment.OMDbAPIKey = "test-key"
	cfg.Enrichment.CacheEnabled = true
	cfg.Enrichment.CacheBackend = config.CacheBackendRedis
	cfg.Enrichment.RedisAddr = "127.0.0.1:1"

	// Startup continues without the cache; the health check reports it.
	rc, err := initRecommend(ctx, cfg, "nats://127.0.0.1:4222", zerolog.Nop())
	if err != nil {
		t.Fatalf("initRecommend() error = %v", err)
	}
	defer rc.Close(context.Background())

	check, ok := rc.checks["enrichment_cache"]
	if !ok {
		t.Fatal("enrichment_cache health check not registered")
	}
	if err := check(ctx); err == nil {
		t.Error("enrichment_cache check passed against an unreachable redis")
	}
}
