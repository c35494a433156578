// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the level, encoding and static fields of the global logger.
type Config struct {
	// Level is parsed with zerolog.ParseLevel; "warning" is accepted as "warn".
	// Unknown or empty values fall back to info.
	Level string

	// Format is "json" (default) or "console".
	Format string

	// Caller adds file:line to each entry.
	Caller bool

	// Version, when set, is attached to every entry as "version".
	Version string

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig is info-level JSON on stderr.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Output: os.Stderr}
}

var (
	mu     sync.RWMutex
	global zerolog.Logger
)

//nolint:gochecknoinits // logging must work before main calls Init
func init() {
	global = build(DefaultConfig())
}

// Init replaces the global logger. It may be called more than once.
func Init(cfg Config) {
	l := build(cfg)
	mu.Lock()
	global = l
	mu.Unlock()
}

func build(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"

	lc := zerolog.New(out).With().Timestamp().Str("service", "reelrank")
	if cfg.Version != "" {
		lc = lc.Str("version", cfg.Version)
	}
	if cfg.Caller {
		lc = lc.Caller()
	}
	return lc.Logger()
}

func parseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	if level == "" {
		return zerolog.InfoLevel
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Info starts an info event on the global logger.
func Info() *zerolog.Event {
	l := Logger()
	return l.Info()
}

// Warn starts a warning event.
func Warn() *zerolog.Event {
	l := Logger()
	return l.Warn()
}

// Error starts an error event.
func Error() *zerolog.Event {
	l := Logger()
	return l.Error()
}

// Fatal starts a fatal event. The process exits once it is sent.
func Fatal() *zerolog.Event {
	l := Logger()
	return l.Fatal()
}

// NewTestLogger writes JSON entries to w, for asserting on log output.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
