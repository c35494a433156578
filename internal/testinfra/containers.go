// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SkipIfNoDocker skips the test when no Docker daemon answers.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	if !IsDockerAvailable() {
		t.Skip("Skipping test: Docker not available")
	}
}

// IsDockerAvailable reports whether `docker info` succeeds.
func IsDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

// CleanupContainer terminates a container and logs, rather than fails, on error.
func CleanupContainer(t *testing.T, ctx context.Context, container testcontainers.Container) {
	t.Helper()

	if container == nil {
		return
	}
	if err := container.Terminate(ctx); err != nil {
		t.Logf("Warning: failed to terminate container: %v", err)
	}
}

// startSingle starts a single-port container and returns it with its host:port.
func startSingle(ctx context.Context, image, port string, env map[string]string, waitFor wait.Strategy) (testcontainers.Container, string, error) {
	req := testcontainers.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{port + "/tcp"},
		Env:          env,
		WaitingFor:   waitFor,
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", fmt.Errorf("create %s container: %w", image, err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, "", fmt.Errorf("get container host: %w", err)
	}

	mapped, err := container.MappedPort(ctx, port)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, "", fmt.Errorf("get mapped port: %w", err)
	}

	return container, fmt.Sprintf("%s:%s", host, mapped.Port()), nil
}
