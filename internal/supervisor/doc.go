// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package supervisor runs reelrank's long-lived services under a suture v4 tree.

	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(services.NewEventBusService(bus))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)

Supervisor events (service failures, backoff, restarts) are logged through
sutureslog, which writes to the zerolog-backed slog.Logger from the logging
package.
*/
package supervisor
