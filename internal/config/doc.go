// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package config loads reelrank configuration with koanf v2.

Values are layered, later sources winning:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: $CONFIG_PATH, else config.yaml, config.yml,
    /etc/reelrank/config.yaml, /etc/reelrank/config.yml
 3. Environment variables, through an explicit name mapping

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default 0.0.0.0:5000)
  - REQUEST_TIMEOUT (default 10s), SHUTDOWN_TIMEOUT (default 15s)

Catalog:
  - CATALOG_SOURCE: http or mongo (default http)
  - CATALOG_URL: JSON catalog endpoint, required for http
  - CATALOG_TIMEOUT (default 10s)
  - MONGO_URI, MONGO_DATABASE (default sample_mflix), MONGO_COLLECTION (default movies)

NATS JetStream:
  - NATS_EMBEDDED (default true), NATS_HOST, NATS_PORT, NATS_STORE_DIR
  - NATS_URL: external server when NATS_EMBEDDED=false
  - NATS_STREAM_NAME (MOVIE_CLICKS), NATS_SUBJECT (movie_clicks), NATS_CONSUMER_NAME (recommender)
  - NATS_ACK_WAIT (30s), NATS_MAX_AGE (168h)

Enrichment:
  - ENRICHMENT_ENABLED, OMDB_URL, OMDB_API_KEY, OMDB_TIMEOUT, OMDB_RATE_PER_SECOND
  - VALIDATE_POSTERS, FALLBACK_POSTER
  - ENRICHMENT_CACHE, ENRICHMENT_CACHE_BACKEND (memory, redis),
    ENRICHMENT_CACHE_SIZE, REDIS_ADDR, REDIS_DB, ENRICHMENT_CACHE_TTL

Recommendations:
  - RECOMMEND_DEFAULT_K (5), RECOMMEND_MAX_K (50)

Security:
  - CORS_ORIGINS: comma-separated (default *)
  - RATE_LIMIT_REQUESTS (100), RATE_LIMIT_WINDOW (1m), DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL (info), LOG_FORMAT (json), LOG_CALLER

# Validation

Struct tags are checked with go-playground/validator through the validation
package. Cross-field rules (catalog source requirements, external NATS URL,
enrichment credentials, rate limit bounds) are checked afterwards.
*/
package config
