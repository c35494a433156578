// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package testinfra starts throwaway Docker containers for integration tests.
//
// Everything here is behind the "integration" build tag and uses
// testcontainers-go. Two backends are provided:
//
//   - MongoContainer, for the MongoDB catalog provider
//   - RedisContainer, for the Redis enrichment cache
//
// Tests call SkipIfNoDocker first so that `go test -tags integration` still
// passes on machines without a Docker daemon:
//
//	func TestMongoProvider_Integration(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    mongo, err := testinfra.NewMongoContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, mongo)
//	    // ... catalog.NewMongoProvider(ctx, catalog.MongoConfig{URI: mongo.URI, ...})
//	}
//
// The first run pulls images; later runs use the local image cache.
package testinfra
