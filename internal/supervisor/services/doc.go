// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package services adapts the long-running parts of reelrank to suture.Service.

  - HTTPServerService runs the chi router behind an *http.Server.
  - EventBusService runs the NATS components (embedded server, click stream,
    click publisher) and restarts them when they stop running.

Each service blocks in Serve until its context is canceled, then shuts down
with its own timeout because the supervisor context is already done.
*/
package services
