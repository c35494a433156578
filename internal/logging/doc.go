// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package logging provides the process-wide zerolog logger for Reelrank.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Msg("Server starting")
//	logging.Error().Err(err).Msg("Catalog fetch failed")
//
//	// Request-scoped logging carries the request_id field
//	logging.Ctx(ctx).Debug().Int("liked", n).Msg("Liked set resolved")
//
// # Configuration
//
// The config package maps these environment variables onto Config:
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// Components that are constructed with an explicit zerolog.Logger derive a
// child logger with a "component" field instead of calling the globals.
//
// # Suture Integration
//
// NewSlogLogger bridges zerolog to log/slog so the supervisor tree can use
// sutureslog for its event hook.
package logging
