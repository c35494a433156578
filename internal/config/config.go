// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package config

import "time"

// Config holds all application configuration.
//
// Loading order (koanf v2):
//  1. Defaults from defaultConfig()
//  2. Optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables (explicit mapping in envTransformFunc)
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	NATS       NATSConfig       `koanf:"nats"`
	Enrichment EnrichmentConfig `koanf:"enrichment"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host string `koanf:"host" validate:"required"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`

	// RequestTimeout bounds each recommendation or click request.
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gt=0"`

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// Catalog sources.
const (
	CatalogSourceHTTP  = "http"
	CatalogSourceMongo = "mongo"
)

// CatalogConfig selects and configures the movie catalog source.
type CatalogConfig struct {
	// Source is "http" (JSON endpoint) or "mongo" (direct collection read).
	Source string `koanf:"source" validate:"oneof=http mongo"`

	// URL of the JSON catalog endpoint. Required for source=http.
	URL string `koanf:"url"`

	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// MongoURI, MongoDatabase and MongoCollection are required for source=mongo.
	MongoURI        string `koanf:"mongo_uri"`
	MongoDatabase   string `koanf:"mongo_database"`
	MongoCollection string `koanf:"mongo_collection"`
}

// NATSConfig configures the JetStream transport for liked-movie events.
type NATSConfig struct {
	// URL of the NATS server. Ignored when EmbeddedServer is true.
	URL string `koanf:"url"`

	// EmbeddedServer runs an in-process NATS server with JetStream.
	EmbeddedServer bool `koanf:"embedded_server"`

	// Host and Port the embedded server listens on.
	Host string `koanf:"host"`
	Port int    `koanf:"port" validate:"min=-1,max=65535"`

	// StoreDir is the JetStream storage directory of the embedded server.
	StoreDir string `koanf:"store_dir"`

	StreamName   string        `koanf:"stream_name" validate:"required,notblank"`
	Subject      string        `koanf:"subject" validate:"required,notblank"`
	ConsumerName string        `koanf:"consumer_name" validate:"required,notblank"`
	AckWait      time.Duration `koanf:"ack_wait" validate:"gt=0"`

	// MaxAge bounds how long unconsumed clicks stay in the stream.
	MaxAge time.Duration `koanf:"max_age" validate:"gte=0"`
}

// EnrichmentConfig configures OMDb metadata enrichment.
type EnrichmentConfig struct {
	Enabled bool `koanf:"enabled"`

	OMDbURL    string        `koanf:"omdb_url"`
	OMDbAPIKey string        `koanf:"omdb_api_key"`
	Timeout    time.Duration `koanf:"timeout" validate:"gt=0"`

	// RatePerSecond caps outgoing OMDb lookups. Zero disables the limit.
	RatePerSecond float64 `koanf:"rate_per_second" validate:"gte=0"`

	ValidatePosters bool   `koanf:"validate_posters"`
	FallbackPoster  string `koanf:"fallback_poster"`

	// CacheEnabled puts a read-through cache in front of OMDb. The memory
	// backend is per process; redis is shared between replicas.
	CacheEnabled bool          `koanf:"cache_enabled"`
	CacheBackend string        `koanf:"cache_backend" validate:"oneof=memory redis"`
	CacheSize    int           `koanf:"cache_size" validate:"gte=1"`
	RedisAddr    string        `koanf:"redis_addr"`
	RedisDB      int           `koanf:"redis_db" validate:"gte=0"`
	CacheTTL     time.Duration `koanf:"cache_ttl" validate:"gt=0"`
}

// Enrichment cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// RecommendConfig configures result sizes.
type RecommendConfig struct {
	DefaultK int `koanf:"default_k" validate:"min=1"`
	MaxK     int `koanf:"max_k" validate:"min=1,gtefield=DefaultK"`
}

// SecurityConfig configures CORS and request rate limiting.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error. Default: info
	Level string `koanf:"level"`

	// Format is json or console. Default: json
	Format string `koanf:"format"`

	// Caller adds file:line to each entry.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
