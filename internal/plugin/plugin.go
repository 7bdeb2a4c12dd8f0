// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package plugin implements the plugin/hook system (spec.md §4.2): named
// plugins contribute install steps, pre/run/post commands and environment
// variables; user configuration can override the run command.
package plugin

import "github.com/gizzahub/lpci-go/internal/config"

// Context is the per-job state a hook contributor sees when producing its
// contribution.
type Context struct {
	Job      *config.Job
	Settings map[string]string // assembled from repeated --plugin-setting K=V flags
}

// Plugin is the closed, shared interface every registered plugin kind
// implements; spec.md §9 models this as "a closed tagged variant of known
// plugin kinds plus a shared interface providing the seven hook methods."
type Plugin interface {
	// Name is the wire name used in a job's "plugin" key.
	Name() string
	// ConfigKeys is the set of root-schema keys this plugin owns, used by
	// the config model's plugin-configuration delegation rule.
	ConfigKeys() map[string]bool
	// InterpolatesRunCommand reports whether this plugin's ExecuteRun
	// hook should win over a user-supplied "run" fragment.
	InterpolatesRunCommand() bool

	InstallPackages(ctx Context) []string
	InstallSnaps(ctx Context) []config.Snap
	SetEnvironment(ctx Context) map[string]*string
	ExecuteBeforeRun(ctx Context) string
	ExecuteRun(ctx Context) string
	ExecuteAfterRun(ctx Context) string
}

// Hooks is the aggregated result of running every contributor's hooks for
// one job variant, per the aggregation rules in spec.md §4.2's hook table.
type Hooks struct {
	Packages    []string
	Snaps       []config.Snap
	Environment map[string]*string
	Before      string
	Run         string
	After       string
}

// Commands is the fully resolved set of shell fragments for a job,
// after applying the command-resolution rule.
type Commands struct {
	Before string
	Run    string
	After  string
}
