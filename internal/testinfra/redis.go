// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

//go:build integration

package testinfra

import (
	"context"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultRedisImage is the Redis image used for enrichment cache tests.
	DefaultRedisImage = "redis:7-alpine"

	redisPort = "6379"
)

// RedisContainer is a disposable Redis instance.
type RedisContainer struct {
	testcontainers.Container
	Addr string
}

// NewRedisContainer starts Redis and returns its host:port address.
func NewRedisContainer(ctx context.Context) (*RedisContainer, error) {
	container, addr, err := startSingle(ctx, DefaultRedisImage, redisPort, nil,
		wait.ForAll(
			wait.ForListeningPort(redisPort+"/tcp"),
			wait.ForLog("Ready to accept connections"),
		).WithStartupTimeout(60*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return &RedisContainer{Container: container, Addr: addr}, nil
}
