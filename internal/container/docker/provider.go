// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package docker is the Docker Engine API-backed implementation of
// container.Provider: spec.md §1 calls for "a single provider type...
// with LXD as the reference", and this module targets the single-host
// container runtime most of the example corpus already depends on
// (github.com/docker/docker/client, pulled in by the teacher's
// testcontainers-go integration tests).
package docker

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	dockerclient "github.com/docker/docker/client"

	lpcicontainer "github.com/gizzahub/lpci-go/internal/container"
)

const (
	projectLabel = "dev.lpci.project"
	compatLabel  = "dev.lpci.compat"
	projectPathFileInContainer = "/root/tmp-project"
	stagedProjectDir           = "/build/lpci/project"
)

// Provider implements container.Provider against a local or remote
// Docker Engine daemon.
type Provider struct {
	cli *dockerclient.Client
}

// New connects to the Docker daemon using the standard DOCKER_HOST/
// DOCKER_CERT_PATH environment conventions, negotiating the API version
// against whatever the daemon supports.
func New() (*Provider, error) {
	cli, err := dockerclient.NewClientWithOpts(
		dockerclient.FromEnv,
		dockerclient.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to docker: %w", err)
	}
	return &Provider{cli: cli}, nil
}

func (p *Provider) IsAvailable(ctx context.Context) bool {
	_, err := p.cli.Ping(ctx)
	return err == nil
}

// EnsureAvailable implements spec.md §4.4's EnsureAvailable: when the
// daemon isn't reachable, prompt only on an interactive terminal (never
// under a managed/CI invocation, and never when stdin isn't a TTY), and
// fail with a message pointing at the installer docs either way.
func (p *Provider) EnsureAvailable(ctx context.Context) error {
	if p.IsAvailable(ctx) {
		return nil
	}
	if isInteractiveTTY() && os.Getenv("LPCI_MANAGED_MODE") == "" {
		fmt.Fprintln(os.Stderr, "Docker does not appear to be running or installed.")
		fmt.Fprint(os.Stderr, "Install and start Docker now? [y/N] ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if strings.EqualFold(strings.TrimSpace(answer), "y") {
			// Best-effort: actual installation is host-specific and left
			// to the operator; we only re-check availability afterward.
		}
	}
	if p.IsAvailable(ctx) {
		return nil
	}
	return fmt.Errorf("docker is not available; see https://docs.docker.com/engine/install/ for installation instructions")
}

func isInteractiveTTY() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func (p *Provider) GetInstanceName(projectName, projectPath, series, arch string) (string, error) {
	return lpcicontainer.InstanceName(projectName, projectPath, series, arch)
}

func (p *Provider) GetCommandEnvironment() map[string]string {
	return lpcicontainer.CommandEnvironment()
}

// CleanProjectEnvironments implements spec.md §4.4's deletion-by-regex
// contract: when instances is empty every container in this project's
// namespace is considered; either way only names matching the project's
// pattern are removed.
func (p *Provider) CleanProjectEnvironments(ctx context.Context, projectName, projectPath string, instances []string) ([]string, error) {
	pattern, err := lpcicontainer.CleanPattern(projectName, projectPath)
	if err != nil {
		return nil, err
	}

	var candidates []string
	if len(instances) > 0 {
		candidates = instances
	} else {
		f := filters.NewArgs(filters.Arg("label", projectLabel+"="+projectName))
		list, err := p.cli.ContainerList(ctx, container.ListOptions{All: true, Filters: f})
		if err != nil {
			return nil, fmt.Errorf("list containers: %w", err)
		}
		for _, c := range list {
			for _, name := range c.Names {
				candidates = append(candidates, strings.TrimPrefix(name, "/"))
			}
		}
	}

	var deleted []string
	for _, name := range candidates {
		if !pattern.MatchString(name) {
			continue
		}
		if err := p.cli.ContainerRemove(ctx, name, container.RemoveOptions{Force: true}); err != nil {
			return deleted, fmt.Errorf("remove container %s: %w", name, err)
		}
		deleted = append(deleted, name)
	}
	return deleted, nil
}
