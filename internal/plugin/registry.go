// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a fresh Plugin instance. Plugins are stateless
// beyond their Context, so a Factory is typically a bare struct literal.
type Factory func() Plugin

// Registry is a process-wide, init()-time-populated mapping from plugin
// name to constructor, grounded on the teacher's pkg/cloud/factory.go
// Register/globalRegistry pattern and pkg/cloud/providers/aws/provider.go's
// func init() { cloud.Register(...) }.
type Registry struct {
	mu         sync.RWMutex
	factories  map[string]Factory
}

// Global is the process-wide registry every builtin plugin package
// registers itself into from its own init().
var Global = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a plugin constructor under name. Re-registering the same
// name panics, since it can only happen from a programming mistake at
// init() time, never from user input.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("plugin: duplicate registration for %q", name))
	}
	r.factories[name] = factory
}

// New constructs the named plugin, reporting false if no such plugin is
// registered.
func (r *Registry) New(name string) (Plugin, bool) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return factory(), true
}

// ConfigKeys satisfies config.PluginKeyLookup, letting the config package
// delegate plugin-owned keys without importing this package.
func (r *Registry) ConfigKeys(name string) (map[string]bool, bool) {
	p, ok := r.New(name)
	if !ok {
		return nil, false
	}
	return p.ConfigKeys(), true
}

// Names returns every registered plugin name, sorted, for --help text and
// error messages.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register is a convenience wrapper around Global.Register, used by
// builtin plugin packages' init() functions.
func Register(name string, factory Factory) {
	Global.Register(name, factory)
}
