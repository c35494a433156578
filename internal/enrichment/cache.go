// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package enrichment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/cache"
	"github.com/tomtom215/reelrank/internal/metrics"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// Cache stores lookup results by key. A cached nil Enrichment records that
// the provider had no data for the key.
type Cache interface {
	Get(ctx context.Context, key string) (data *recommend.Enrichment, found bool, err error)
	Set(ctx context.Context, key string, data *recommend.Enrichment) error
}

// cacheEntry is the stored form of a lookup result.
type cacheEntry struct {
	Known   bool     `json:"known"`
	Rating  *float64 `json:"rating,omitempty"`
	Runtime *int     `json:"runtime,omitempty"`
	Year    *int     `json:"year,omitempty"`
	Poster  string   `json:"poster,omitempty"`
}

func encodeEntry(data *recommend.Enrichment) ([]byte, error) {
	entry := cacheEntry{}
	if data != nil {
		entry = cacheEntry{
			Known:   true,
			Rating:  data.Rating,
			Runtime: data.Runtime,
			Year:    data.Year,
			Poster:  data.Poster,
		}
	}
	return json.Marshal(entry)
}

func decodeEntry(raw []byte) (*recommend.Enrichment, error) {
	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, err
	}
	if !entry.Known {
		return nil, nil
	}
	return &recommend.Enrichment{
		Rating:  entry.Rating,
		Runtime: entry.Runtime,
		Year:    entry.Year,
		Poster:  entry.Poster,
	}, nil
}

// RedisCache is a Cache backed by Redis string keys with a TTL.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache wraps an existing client. Keys are stored as prefix+key.
func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

// Get returns the cached result for key.
func (c *RedisCache) Get(ctx context.Context, key string) (*recommend.Enrichment, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	data, err := decodeEntry(raw)
	if err != nil {
		return nil, false, fmt.Errorf("decode cache entry: %w", err)
	}
	return data, true, nil
}

// Set stores the result for key.
func (c *RedisCache) Set(ctx context.Context, key string, data *recommend.Enrichment) error {
	raw, err := encodeEntry(data)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// MemoryCache is a per-process Cache backed by an LRU.
type MemoryCache struct {
	lru *cache.LRU[*recommend.Enrichment]
}

// NewMemoryCache creates a cache holding up to size entries for ttl each.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: cache.NewLRU[*recommend.Enrichment](size, ttl)}
}

// Get returns the cached result for key. It never fails.
func (c *MemoryCache) Get(_ context.Context, key string) (*recommend.Enrichment, bool, error) {
	data, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if data == nil {
		return nil, true, nil
	}
	cp := *data
	return &cp, true, nil
}

// Set stores a copy of data for key.
func (c *MemoryCache) Set(_ context.Context, key string, data *recommend.Enrichment) error {
	if data == nil {
		c.lru.Add(key, nil)
		return nil
	}
	cp := *data
	c.lru.Add(key, &cp)
	return nil
}

// Len returns the number of cached titles.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

// CachedProvider is a read-through cache in front of another provider.
// Cache failures are logged and bypassed; provider errors are never cached.
type CachedProvider struct {
	next   recommend.EnrichmentProvider
	cache  Cache
	logger zerolog.Logger
}

// NewCachedProvider wraps next with cache.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCachedProvider(next recommend.EnrichmentProvider, store Cache, logger zerolog.Logger) *CachedProvider {
	return &CachedProvider{
		next:   next,
		cache:  store,
		logger: logger.With().Str("component", "enrichment_cache").Logger(),
	}
}

// Lookup serves from cache when possible.
func (p *CachedProvider) Lookup(ctx context.Context, title string) (*recommend.Enrichment, error) {
	key := CacheKey(title)

	data, found, err := p.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.RecordEnrichmentCache("error")
		p.logger.Warn().Err(err).Str("key", key).Msg("Enrichment cache read failed")
	case found:
		metrics.RecordEnrichmentCache("hit")
		return data, nil
	default:
		metrics.RecordEnrichmentCache("miss")
	}

	data, err = p.next.Lookup(ctx, title)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, data); err != nil {
		p.logger.Warn().Err(err).Str("key", key).Msg("Enrichment cache write failed")
	}
	return data, nil
}

// CacheKey normalises a title: lower case, single spaces, trimmed.
func CacheKey(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
