// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package eventprocessor

import "errors"

// ErrPublisherClosed is returned when publishing on a closed publisher.
var ErrPublisherClosed = errors.New("publisher is closed")

// ErrStreamNotFound is returned when the NATS stream doesn't exist.
var ErrStreamNotFound = errors.New("stream not found")

// ErrInvalidConfig is returned when configuration is invalid.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrSessionClosed is returned by a source session used after Close.
var ErrSessionClosed = errors.New("event session closed")

// ErrInvalidEvent is returned for click events missing required fields.
var ErrInvalidEvent = errors.New("invalid click event")
