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
	// DefaultMongoImage matches the server version the catalog is tested against.
	DefaultMongoImage = "mongo:7.0"

	mongoPort = "27017"
)

// MongoContainer is a disposable MongoDB instance.
type MongoContainer struct {
	testcontainers.Container
	URI string
}

// NewMongoContainer starts MongoDB and waits until it accepts connections.
//
//	mongo, err := testinfra.NewMongoContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer testinfra.CleanupContainer(t, ctx, mongo)
func NewMongoContainer(ctx context.Context) (*MongoContainer, error) {
	container, addr, err := startSingle(ctx, DefaultMongoImage, mongoPort, nil,
		wait.ForAll(
			wait.ForListeningPort(mongoPort+"/tcp"),
			wait.ForLog("Waiting for connections"),
		).WithStartupTimeout(90*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return &MongoContainer{Container: container, URI: "mongodb://" + addr}, nil
}
