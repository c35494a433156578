// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import "fmt"

// Config contains the recommendation engine settings.
type Config struct {
	// DefaultK is the result size when a request does not set one.
	// Default: 5.
	DefaultK int `json:"default_k"`

	// MaxK caps the result size a request may ask for.
	// Default: 50.
	MaxK int `json:"max_k"`

	// FallbackPoster is applied to recommended items that still have no
	// poster after enrichment. Empty leaves the poster absent.
	FallbackPoster string `json:"fallback_poster"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultK: DefaultK,
		MaxK:     50,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.DefaultK < 1 {
		return fmt.Errorf("%w: default_k must be at least 1, got %d", ErrInvalidConfig, c.DefaultK)
	}
	if c.MaxK < c.DefaultK {
		return fmt.Errorf("%w: max_k (%d) must be >= default_k (%d)", ErrInvalidConfig, c.MaxK, c.DefaultK)
	}
	return nil
}

// effectiveK resolves the requested result size against the limits.
func (c *Config) effectiveK(k int) int {
	if k <= 0 {
		return c.DefaultK
	}
	if k > c.MaxK {
		return c.MaxK
	}
	return k
}
