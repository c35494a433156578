// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/reelrank/internal/api"
	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/supervisor"
	"github.com/tomtom215/reelrank/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Caller:  cfg.Logging.Caller,
		Version: version,
	})

	logging.Info().
		Str("catalog_source", cfg.Catalog.Source).
		Bool("nats_embedded", cfg.NATS.EmbeddedServer).
		Bool("enrichment", cfg.Enrichment.Enabled).
		Msg("Starting Reelrank")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Reelrank stopped with an error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := logging.Logger()

	// The bus starts here so that a misconfigured broker fails startup
	// instead of sending the supervisor into backoff.
	bus := newEventBus(cfg.NATS, logger)
	if err := bus.Start(ctx); err != nil {
		return err
	}

	rc, err := initRecommend(ctx, cfg, bus.URL(), logger)
	if err != nil {
		bus.Shutdown(context.Background())
		return err
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer closeCancel()
		rc.Close(closeCtx)
	}()

	handler := api.NewHandler(rc.Engine, bus, api.HandlerConfig{
		MaxK:           cfg.Recommend.MaxK,
		RequestTimeout: cfg.Server.RequestTimeout,
		Version:        version,
	})
	handler.AddHealthCheck("nats", bus.Check)
	for name, check := range rc.checks {
		handler.AddHealthCheck(name, check)
	}

	mwCfg := api.DefaultChiMiddlewareConfig()
	mwCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwCfg.RateLimitRequests = cfg.Security.RateLimitReqs
	mwCfg.RateLimitWindow = cfg.Security.RateLimitWindow
	mwCfg.RateLimitDisabled = cfg.Security.RateLimitDisabled
	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin")
	}
	router := api.NewRouter(handler, api.NewChiMiddleware(mwCfg))

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		bus.Shutdown(context.Background())
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	tree.AddMessagingService(services.NewEventBusService(bus))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport() //nolint:errcheck // report is diagnostic only
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	// The supervisor normally stops the bus; this covers a tree that never
	// reached the messaging layer.
	bus.Shutdown(context.Background())
	return nil
}
