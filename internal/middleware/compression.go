// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// gzipLevel trades a little ratio for speed on small recommendation lists.
const gzipLevel = 5

var jsonCompressor = chimiddleware.Compress(gzipLevel, "application/json")

// Compression gzips JSON responses for clients that accept it. Other content
// types pass through untouched.
func Compression(next http.Handler) http.Handler {
	return jsonCompressor(next)
}
