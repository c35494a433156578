// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelrank/config.yaml",
	"/etc/reelrank/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Catalog: CatalogConfig{
			Source:          CatalogSourceHTTP,
			URL:             "",
			Timeout:         10 * time.Second,
			MongoDatabase:   "sample_mflix",
			MongoCollection: "movies",
		},
		NATS: NATSConfig{
			URL:            "nats://127.0.0.1:4222",
			EmbeddedServer: true,
			Host:           "127.0.0.1",
			Port:           4222,
			StoreDir:       "/data/nats/jetstream",
			StreamName:     "MOVIE_CLICKS",
			Subject:        "movie_clicks",
			ConsumerName:   "recommender",
			AckWait:        30 * time.Second,
			MaxAge:         7 * 24 * time.Hour,
		},
		Enrichment: EnrichmentConfig{
			Enabled:         false,
			OMDbURL:         "http://www.omdbapi.com",
			Timeout:         5 * time.Second,
			RatePerSecond:   10,
			ValidatePosters: false,
			FallbackPoster:  "",
			CacheEnabled:    false,
			CacheBackend:    CacheBackendMemory,
			CacheSize:       10000,
			RedisAddr:       "127.0.0.1:6379",
			CacheTTL:        24 * time.Hour,
		},
		Recommend: RecommendConfig{
			DefaultK: 5,
			MaxK:     50,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf layers defaults, the config file and environment variables,
// then validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// CATALOG_URL -> catalog.url, OMDB_API_KEY -> enrichment.omdb_api_key
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are keys that accept comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	"http_host":        "server.host",
	"http_port":        "server.port",
	"request_timeout":  "server.request_timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	"catalog_source":           "catalog.source",
	"catalog_url":              "catalog.url",
	"catalog_timeout":          "catalog.timeout",
	"mongo_uri":                "catalog.mongo_uri",
	"mongo_database":           "catalog.mongo_database",
	"mongo_collection":         "catalog.mongo_collection",
	"catalog_mongo_uri":        "catalog.mongo_uri",
	"catalog_mongo_database":   "catalog.mongo_database",
	"catalog_mongo_collection": "catalog.mongo_collection",

	"nats_url":           "nats.url",
	"nats_embedded":      "nats.embedded_server",
	"nats_host":          "nats.host",
	"nats_port":          "nats.port",
	"nats_store_dir":     "nats.store_dir",
	"nats_stream_name":   "nats.stream_name",
	"nats_subject":       "nats.subject",
	"nats_consumer_name": "nats.consumer_name",
	"nats_ack_wait":      "nats.ack_wait",
	"nats_max_age":       "nats.max_age",

	"enrichment_enabled":       "enrichment.enabled",
	"omdb_url":                 "enrichment.omdb_url",
	"omdb_api_key":             "enrichment.omdb_api_key",
	"omdb_timeout":             "enrichment.timeout",
	"omdb_rate_per_second":     "enrichment.rate_per_second",
	"validate_posters":         "enrichment.validate_posters",
	"fallback_poster":          "enrichment.fallback_poster",
	"enrichment_cache":         "enrichment.cache_enabled",
	"enrichment_cache_backend": "enrichment.cache_backend",
	"enrichment_cache_size":    "enrichment.cache_size",
	"redis_addr":               "enrichment.redis_addr",
	"redis_db":                 "enrichment.redis_db",
	"enrichment_cache_ttl":     "enrichment.cache_ttl",

	"recommend_default_k": "recommend.default_k",
	"recommend_max_k":     "recommend.max_k",

	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc returns "" for unmapped names so unrelated environment
// variables never reach the config.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
