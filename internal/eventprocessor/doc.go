// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package eventprocessor carries "movie liked" click events over NATS
// JetStream.
//
// Clicks are published by the HTTP layer through a Watermill publisher and
// drained by the recommendation engine through a durable pull consumer:
//
//	POST /register-click ──► Publisher ──► JetStream (MOVIE_CLICKS, work queue)
//	                                              │
//	GET  /get-recommended-movies ──► Resolver ◄───┘ JetStreamSource.FetchNoWait
//
// # Components
//
//   - EmbeddedServer: in-process NATS server with JetStream for single-node
//     deployments and tests
//   - StreamManager: creates or updates the work-queue stream
//   - Publisher: Watermill publisher with Nats-Msg-Id deduplication and an
//     optional circuit breaker
//   - JetStreamSource: recommend.EventSource implementation; each Open owns
//     one connection, PollNext never blocks, Ack is a double ack
//
// # Wire Format
//
// Each message body is a JSON ClickEvent:
//
//	{"movieId": "573a1390f29313caabcd4135", "clicks": 3}
//
// Messages that do not decode are acked and dropped by the source so a bad
// payload cannot wedge the queue.
package eventprocessor
