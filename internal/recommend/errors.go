// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"errors"
	"fmt"
)

// ErrCatalogUnavailable is returned when the catalog provider is unreachable
// or answers with a non-success status.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// ErrTransport is returned when the liked-events source cannot be reached.
var ErrTransport = errors.New("event transport error")

// ErrInvalidConfig is returned for an invalid engine configuration.
var ErrInvalidConfig = errors.New("invalid recommend configuration")

// TransportError records which event source operation failed.
// It matches ErrTransport with errors.Is.
type TransportError struct {
	// Op is one of "open", "poll", "ack".
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("event source %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports ErrTransport as a match.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// asTransportError wraps err as a *TransportError unless it already is one.
func asTransportError(op string, err error) error {
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	return &TransportError{Op: op, Err: err}
}

// asCatalogError makes sure err matches ErrCatalogUnavailable.
func asCatalogError(err error) error {
	if errors.Is(err, ErrCatalogUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
}
