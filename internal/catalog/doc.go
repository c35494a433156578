// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package catalog implements recommend.CatalogProvider over the movie
// documents store.
//
// Two providers read the same document shape:
//
//   - HTTPProvider: GET on a JSON export endpoint, guarded by a circuit breaker
//   - MongoProvider: reads the collection directly, sorted by _id
//
// Documents follow the movies collection layout: _id (string or ObjectId),
// title, genres, plot, poster, runtime, year and imdb.rating. Ratings, years
// and runtimes that are not numeric (empty strings, stray characters) decode
// as missing rather than failing the whole catalog.
package catalog
