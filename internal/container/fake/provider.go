// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package fake is an in-memory container.Provider used by tests that
// exercise C1/C2/C3/C5 without a Docker daemon: it records every
// RunCapture argv in Provider.Commands and keeps a simple in-memory
// filesystem per instance, which PushFile and PullFile write and read.
package fake

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lpcicontainer "github.com/gizzahub/lpci-go/internal/container"
)

// Provider is a deterministic, in-process stand-in for a real backend.
type Provider struct {
	mu        sync.Mutex
	instances map[string]*Handle

	// Commands records every argv executed across every instance, in
	// call order, for test assertions.
	Commands [][]string
}

func New() *Provider {
	return &Provider{instances: make(map[string]*Handle)}
}

func (p *Provider) IsAvailable(ctx context.Context) bool { return true }
func (p *Provider) EnsureAvailable(ctx context.Context) error { return nil }

func (p *Provider) GetInstanceName(projectName, projectPath, series, arch string) (string, error) {
	return lpcicontainer.InstanceName(projectName, projectPath, series, arch)
}

func (p *Provider) GetCommandEnvironment() map[string]string {
	return lpcicontainer.CommandEnvironment()
}

func (p *Provider) CleanProjectEnvironments(ctx context.Context, projectName, projectPath string, instances []string) ([]string, error) {
	pattern, err := lpcicontainer.CleanPattern(projectName, projectPath)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	candidates := instances
	if len(candidates) == 0 {
		for name := range p.instances {
			candidates = append(candidates, name)
		}
	}
	var deleted []string
	for _, name := range candidates {
		if pattern.MatchString(name) {
			delete(p.instances, name)
			deleted = append(deleted, name)
		}
	}
	return deleted, nil
}

func (p *Provider) LaunchedEnvironment(ctx context.Context, projectName, projectPath, series, arch string, gpuNvidia bool) (lpcicontainer.Handle, error) {
	if _, err := lpcicontainer.BaseImage(series); err != nil {
		return nil, err
	}
	name, err := lpcicontainer.InstanceName(projectName, projectPath, series, arch)
	if err != nil {
		return nil, err
	}
	h := &Handle{provider: p, name: name, files: make(map[string][]byte), released: false}

	p.mu.Lock()
	p.instances[name] = h
	p.mu.Unlock()
	return h, nil
}

// Handle is the fake container.Handle: an in-memory byte-map filesystem.
type Handle struct {
	provider *Provider
	name     string

	mu       sync.Mutex
	files    map[string][]byte
	released bool

	// OnRunCapture, if set, lets a test script canned responses or
	// forced failures per-command instead of the default no-op.
	OnRunCapture func(argv []string) ([]byte, error)
}

func (h *Handle) Name() string { return h.name }

func (h *Handle) RunCapture(ctx context.Context, argv []string) ([]byte, error) {
	h.provider.mu.Lock()
	h.provider.Commands = append(h.provider.Commands, argv)
	h.provider.mu.Unlock()

	if h.OnRunCapture != nil {
		return h.OnRunCapture(argv)
	}
	return nil, nil
}

func (h *Handle) PushFile(ctx context.Context, hostPath, containerPath string) error {
	data, err := os.ReadFile(hostPath)
	if err != nil {
		return fmt.Errorf("read host file %s: %w", hostPath, err)
	}
	h.mu.Lock()
	h.files[filepath.Clean(containerPath)] = data
	h.mu.Unlock()
	return nil
}

func (h *Handle) PullFile(ctx context.Context, containerPath, hostPath string) error {
	h.mu.Lock()
	data, ok := h.files[filepath.Clean(containerPath)]
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("no such file in instance: %s", containerPath)
	}
	if err := os.MkdirAll(filepath.Dir(hostPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(hostPath, data, 0o644)
}

// PutFile seeds the in-memory filesystem directly, for test setup.
func (h *Handle) PutFile(containerPath string, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.files[filepath.Clean(containerPath)] = data
}

// GetFile reads back a file previously pushed or seeded, for test
// assertions on what a production code path wrote into the instance.
func (h *Handle) GetFile(containerPath string) ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	data, ok := h.files[filepath.Clean(containerPath)]
	return data, ok
}

func (h *Handle) Release(ctx context.Context, deleteInstance bool) error {
	h.mu.Lock()
	h.released = true
	h.mu.Unlock()
	if deleteInstance {
		h.provider.mu.Lock()
		delete(h.provider.instances, h.name)
		h.provider.mu.Unlock()
	}
	return nil
}

// Released reports whether Release has been called, for test assertions
// that teardown ran on every exit path.
func (h *Handle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}
