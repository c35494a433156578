// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package cache provides an in-process LRU cache with TTL expiry. The
// enrichment package uses it as the memory backend for OMDb lookups.
package cache
