// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/reelrank/internal/validation"
)

// Validate checks field constraints declared in struct tags, then the
// cross-field rules that depend on which sources are enabled.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateNATS(); err != nil {
		return err
	}

	if err := c.validateEnrichment(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Source {
	case CatalogSourceHTTP:
		if c.Catalog.URL == "" {
			return fmt.Errorf("CATALOG_URL is required when catalog source is http")
		}
		return validateEndpointURL(c.Catalog.URL, "CATALOG_URL")
	case CatalogSourceMongo:
		if c.Catalog.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when catalog source is mongo")
		}
		if err := validateMongoURI(c.Catalog.MongoURI); err != nil {
			return fmt.Errorf("invalid MONGO_URI: %w", err)
		}
		if c.Catalog.MongoDatabase == "" || c.Catalog.MongoCollection == "" {
			return fmt.Errorf("MONGO_DATABASE and MONGO_COLLECTION are required when catalog source is mongo")
		}
		return nil
	default:
		return fmt.Errorf("CATALOG_SOURCE must be one of: http, mongo")
	}
}

func (c *Config) validateNATS() error {
	if c.NATS.EmbeddedServer {
		if c.NATS.StoreDir == "" {
			return fmt.Errorf("NATS_STORE_DIR is required for the embedded server")
		}
		return nil
	}
	if err := validateNATSURL(c.NATS.URL); err != nil {
		return fmt.Errorf("invalid NATS_URL: %w", err)
	}
	return nil
}

func (c *Config) validateEnrichment() error {
	if !c.Enrichment.Enabled {
		return nil
	}
	if err := validateHTTPURL(c.Enrichment.OMDbURL, "OMDB_URL"); err != nil {
		return err
	}
	if c.Enrichment.OMDbAPIKey == "" {
		return fmt.Errorf("OMDB_API_KEY is required when enrichment is enabled")
	}
	if c.Enrichment.CacheEnabled && c.Enrichment.CacheBackend == CacheBackendRedis && c.Enrichment.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when the enrichment cache uses redis")
	}
	if c.Enrichment.FallbackPoster != "" {
		if err := validateEndpointURL(c.Enrichment.FallbackPoster, "FALLBACK_POSTER"); err != nil {
			return err
		}
	}
	return nil
}

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
