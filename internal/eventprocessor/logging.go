// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package eventprocessor

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

// WatermillLogger adapts a zerolog.Logger to watermill.LoggerAdapter so that
// publisher and NATS connection events land in the service log.
type WatermillLogger struct {
	logger zerolog.Logger
}

var _ watermill.LoggerAdapter = (*WatermillLogger)(nil)

// NewWatermillLogger wraps logger with component=watermill.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewWatermillLogger(logger zerolog.Logger) *WatermillLogger {
	return &WatermillLogger{logger: logger.With().Str("component", "watermill").Logger()}
}

func (l *WatermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.logger.Error().Err(err).Fields(map[string]interface{}(fields)).Msg(msg)
}

func (l *WatermillLogger) Info(msg string, fields watermill.LogFields) {
	l.logger.Info().Fields(map[string]interface{}(fields)).Msg(msg)
}

func (l *WatermillLogger) Debug(msg string, fields watermill.LogFields) {
	l.logger.Debug().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Trace maps to zerolog's trace level, which is below debug.
func (l *WatermillLogger) Trace(msg string, fields watermill.LogFields) {
	l.logger.Trace().Fields(map[string]interface{}(fields)).Msg(msg)
}

// With returns a logger that adds fields to every entry.
func (l *WatermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &WatermillLogger{logger: l.logger.With().Fields(map[string]interface{}(fields)).Logger()}
}
