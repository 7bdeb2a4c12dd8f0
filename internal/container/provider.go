// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package container defines the backend-agnostic Provider abstraction
// (spec.md §4.4) and the shared naming/base-image logic every backend
// uses. The concrete Docker Engine API backend lives in
// internal/container/docker; internal/container/fake provides an
// in-memory stand-in for tests that don't need a real daemon.
package container

import (
	"context"

	"github.com/gizzahub/lpci-go/internal/artifact"
)

// Handle is a scoped, already-staged instance yielded by
// Provider.LaunchedEnvironment. Its Release method tears the instance
// down (unmount, stop, optional delete) and must run on every exit path,
// success, error or panic.
type Handle interface {
	artifact.Instance
	Name() string
	// Release tears the instance down: always unmounts/stops; deletes
	// the instance outright only when deleteInstance is true (the
	// --clean contract), otherwise it is left for reuse by a later run.
	Release(ctx context.Context, deleteInstance bool) error
}

// Provider is the backend-agnostic single-host container runtime
// abstraction spec.md §4.4 describes; a concrete implementation speaks
// to one runtime (this module's is Docker).
type Provider interface {
	IsAvailable(ctx context.Context) bool
	EnsureAvailable(ctx context.Context) error
	GetInstanceName(projectName, projectPath, series, arch string) (string, error)
	CleanProjectEnvironments(ctx context.Context, projectName, projectPath string, instances []string) ([]string, error)
	LaunchedEnvironment(ctx context.Context, projectName, projectPath, series, arch string, gpuNvidia bool) (Handle, error)
	GetCommandEnvironment() map[string]string
}

// BackendCompatTag is embedded in every launched instance's configuration
// label; bumping it invalidates every cached base instance across every
// project, because the launch sequence (profile shape, staging layout)
// changed underneath them.
const BackendCompatTag = "lpci-docker-v1.0"
