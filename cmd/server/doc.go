// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package main is the entry point for the Reelrank recommendation server.

Reelrank recommends movies that resemble the ones a user clicked. Clicks are
published to a NATS JetStream stream; each recommendation request drains that
stream, scores the catalog by genre overlap and plot similarity (TF-IDF
cosine) and returns the best K movies, enriched from OMDb when the catalog
lacks display fields.

# Process Layout

	reelrank (suture root)
	├── messaging-layer
	│   └── nats-event-bus (embedded NATS server, click stream, publisher)
	└── api-layer
	    └── http-server (chi router)

Startup order:

 1. Configuration: koanf v2 (defaults, YAML file, environment)
 2. Logging: zerolog, JSON or console
 3. Event bus: embedded or external NATS, stream creation, click publisher
 4. Recommendation engine: catalog (HTTP or MongoDB), JetStream liked-events
    source, optional OMDb enrichment behind a Redis cache
 5. Supervisor tree and HTTP server

# Endpoints

	GET  /get-recommended-movies     legacy array response
	POST /register-click             {"movieId": "..."}
	GET  /api/v1/recommendations?k=N enveloped response with scores
	POST /api/v1/clicks              same body as /register-click
	GET  /api/v1/health[/live]
	GET  /metrics

# Configuration

Common environment variables (see internal/config for all of them):

	HTTP_PORT=5000
	CATALOG_SOURCE=http            # http or mongo
	CATALOG_URL=http://catalog:3000/movies
	MONGO_URI=mongodb://mongo:27017
	NATS_EMBEDDED=true
	NATS_URL=nats://nats:4222      # when NATS_EMBEDDED=false
	ENRICHMENT_ENABLED=true
	OMDB_API_KEY=<key>
	ENRICHMENT_CACHE=true
	REDIS_ADDR=redis:6379
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests within SHUTDOWN_TIMEOUT, then the event bus closes
the publisher and stops the embedded NATS server.
*/
package main
