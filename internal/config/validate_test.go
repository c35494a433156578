// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Catalog.URL = "http://catalog:8080/api/movies"
	return cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults with catalog url", func(*Config) {}, ""},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"zero request timeout", func(c *Config) { c.Server.RequestTimeout = 0 }, "server.request_timeout"},
		{"unknown catalog source", func(c *Config) { c.Catalog.Source = "ftp" }, "catalog.source"},
		{"missing catalog url", func(c *Config) { c.Catalog.URL = "" }, "CATALOG_URL is required"},
		{"catalog url scheme", func(c *Config) { c.Catalog.URL = "ftp://catalog/movies" }, "scheme must be http or https"},
		{"mongo without uri", func(c *Config) { c.Catalog.Source = CatalogSourceMongo }, "MONGO_URI is required"},
		{"mongo bad scheme", func(c *Config) {
			c.Catalog.Source = CatalogSourceMongo
			c.Catalog.MongoURI = "postgres://db"
		}, "invalid MONGO_URI"},
		{"mongo ok", func(c *Config) {
			c.Catalog.Source = CatalogSourceMongo
			c.Catalog.MongoURI = "mongodb+srv://cluster.example.net"
		}, ""},
		{"external nats bad url", func(c *Config) {
			c.NATS.EmbeddedServer = false
			c.NATS.URL = "http://broker:4222"
		}, "invalid NATS_URL"},
		{"blank subject", func(c *Config) { c.NATS.Subject = "  " }, "nats.subject"},
		{"max below default k", func(c *Config) { c.Recommend.MaxK = 3 }, "recommend.max_k"},
		{"enrichment without key", func(c *Config) { c.Enrichment.Enabled = true }, "OMDB_API_KEY is required"},
		{"enrichment bad fallback", func(c *Config) {
			c.Enrichment.Enabled = true
			c.Enrichment.OMDbAPIKey = "k"
			c.Enrichment.FallbackPoster = "not a url"
		}, "FALLBACK_POSTER"},
		{"cache without redis", func(c *Config) {
			c.Enrichment.Enabled = true
			c.Enrichment.OMDbAPIKey = "k"
			c.Enrichment.CacheEnabled = true
			c.Enrichment.CacheBackend = CacheBackendRedis
			c.Enrichment.RedisAddr = ""
		}, "REDIS_ADDR"},
		{"memory cache needs no redis", func(c *Config) {
			c.Enrichment.Enabled = true
			c.Enrichment.OMDbAPIKey = "k"
			c.Enrichment.CacheEnabled = true
			c.Enrichment.RedisAddr = ""
		}, ""},
		{"unknown cache backend", func(c *Config) { c.Enrichment.CacheBackend = "memcached" }, "cache_backend"},
		{"rate limit window", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, "RATE_LIMIT_WINDOW"},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestHasWildcardCORS(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if !cfg.HasWildcardCORS() {
		t.Error("default CORS should be wildcard")
	}
	cfg.Security.CORSOrigins = []string{"https://app.example"}
	if cfg.HasWildcardCORS() {
		t.Error("explicit origin reported as wildcard")
	}
}
