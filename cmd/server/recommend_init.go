// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/api"
	"github.com/tomtom215/reelrank/internal/catalog"
	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/enrichment"
	"github.com/tomtom215/reelrank/internal/eventprocessor"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// enrichmentCachePrefix namespaces OMDb lookups in Redis.
const enrichmentCachePrefix = "reelrank:omdb:"

// RecommendComponents holds the engine and everything that must be closed
// with it.
type RecommendComponents struct {
	Engine *recommend.Engine

	// closers run in reverse order on shutdown.
	closers []func(ctx context.Context) error
	// checks are registered as health checks on the API handler.
	checks map[string]api.HealthCheck
	logger zerolog.Logger
}

// Close releases the catalog client and the enrichment cache.
func (c *RecommendComponents) Close(ctx context.Context) {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			c.logger.Warn().Err(err).Msg("Error closing recommendation component")
		}
	}
}

// initRecommend builds the catalog provider, the liked-events source, the
// optional enrichment chain and the engine.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(ctx context.Context, cfg *config.Config, natsURL string, logger zerolog.Logger) (*RecommendComponents, error) {
	components := &RecommendComponents{checks: make(map[string]api.HealthCheck), logger: logger}

	catalogProvider, err := initCatalog(ctx, cfg, logger, components)
	if err != nil {
		return nil, err
	}

	sourceCfg := eventprocessor.DefaultSourceConfig(natsURL)
	sourceCfg.StreamName = cfg.NATS.StreamName
	sourceCfg.Subject = cfg.NATS.Subject
	sourceCfg.ConsumerName = cfg.NATS.ConsumerName
	sourceCfg.AckWait = cfg.NATS.AckWait
	source, err := eventprocessor.NewJetStreamSource(sourceCfg, logger)
	if err != nil {
		components.Close(ctx)
		return nil, fmt.Errorf("create liked-events source: %w", err)
	}

	provider, err := initEnrichment(ctx, cfg, logger, components)
	if err != nil {
		components.Close(ctx)
		return nil, err
	}

	engineCfg := recommend.DefaultConfig()
	engineCfg.DefaultK = cfg.Recommend.DefaultK
	engineCfg.MaxK = cfg.Recommend.MaxK
	engineCfg.FallbackPoster = cfg.Enrichment.FallbackPoster

	engine, err := recommend.NewEngine(engineCfg, catalogProvider, source, provider, logger)
	if err != nil {
		components.Close(ctx)
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	components.Engine = engine

	logger.Info().
		Str("catalog_source", cfg.Catalog.Source).
		Bool("enrichment", provider != nil).
		Int("default_k", engineCfg.DefaultK).
		Int("max_k", engineCfg.MaxK).
		Msg("Recommendation engine initialized")
	return components, nil
}

//nolint:gocritic // hugeParam: see initRecommend
func initCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger, components *RecommendComponents) (recommend.CatalogProvider, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceMongo:
		provider, err := catalog.NewMongoProvider(ctx, catalog.MongoConfig{
			URI:        cfg.Catalog.MongoURI,
			Database:   cfg.Catalog.MongoDatabase,
			Collection: cfg.Catalog.MongoCollection,
			Timeout:    cfg.Catalog.Timeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("connect catalog database: %w", err)
		}
		components.closers = append(components.closers, provider.Close)
		components.checks["catalog"] = provider.Ping
		logger.Info().Str("database", cfg.Catalog.MongoDatabase).Str("collection", cfg.Catalog.MongoCollection).Msg("Using MongoDB catalog")
		return provider, nil

	default:
		provider, err := catalog.NewHTTPProvider(catalog.HTTPConfig{
			URL:     cfg.Catalog.URL,
			Timeout: cfg.Catalog.Timeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("create catalog client: %w", err)
		}
		logger.Info().Str("url", cfg.Catalog.URL).Msg("Using HTTP catalog")
		return provider, nil
	}
}

// initEnrichment returns nil when enrichment is disabled, so the engine
// applies only the fallback poster.
//
//nolint:gocritic // hugeParam: see initRecommend
func initEnrichment(ctx context.Context, cfg *config.Config, logger zerolog.Logger, components *RecommendComponents) (recommend.EnrichmentProvider, error) {
	ec := cfg.Enrichment
	if !ec.Enabled {
		logger.Info().Msg("Metadata enrichment disabled (ENRICHMENT_ENABLED=false)")
		return nil, nil
	}

	omdb, err := enrichment.NewOMDbClient(enrichment.OMDbConfig{
		BaseURL:         ec.OMDbURL,
		APIKey:          ec.OMDbAPIKey,
		Timeout:         ec.Timeout,
		RatePerSecond:   ec.RatePerSecond,
		ValidatePosters: ec.ValidatePosters,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create OMDb client: %w", err)
	}

	if !ec.CacheEnabled {
		return omdb, nil
	}

	var store enrichment.Cache
	switch ec.CacheBackend {
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr: ec.RedisAddr,
			DB:   ec.RedisDB,
		})
		redisCache := enrichment.NewRedisCache(client, enrichmentCachePrefix, ec.CacheTTL)
		if err := redisCache.Ping(ctx); err != nil {
			// Lookups bypass an unreachable cache, so startup continues.
			logger.Warn().Err(err).Str("addr", ec.RedisAddr).Msg("Enrichment cache unreachable, continuing")
		}
		components.closers = append(components.closers, func(context.Context) error { return redisCache.Close() })
		components.checks["enrichment_cache"] = redisCache.Ping
		store = redisCache
	default:
		store = enrichment.NewMemoryCache(ec.CacheSize, ec.CacheTTL)
	}

	logger.Info().Str("backend", ec.CacheBackend).Dur("ttl", ec.CacheTTL).Msg("Enrichment cache enabled")
	return enrichment.NewCachedProvider(omdb, store, logger), nil
}
