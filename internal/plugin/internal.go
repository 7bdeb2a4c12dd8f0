// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package plugin

import "github.com/gizzahub/lpci-go/internal/config"

// internalContributor is the always-present, non-selectable contributor
// that surfaces a job's own "packages" and "snaps" keys through the same
// hook path as named plugins, per spec.md §9's "closed tagged variant...
// plus a shared interface" design note. It never touches the run
// commands or environment: those stay purely what the job variant (and
// any selected plugin) say.
type internalContributor struct{}

func (internalContributor) Name() string                    { return "" }
func (internalContributor) ConfigKeys() map[string]bool      { return nil }
func (internalContributor) InterpolatesRunCommand() bool     { return false }

func (internalContributor) InstallPackages(ctx Context) []string {
	return append([]string(nil), ctx.Job.Packages...)
}

func (internalContributor) InstallSnaps(ctx Context) []config.Snap {
	return append([]config.Snap(nil), ctx.Job.Snaps...)
}

func (internalContributor) SetEnvironment(ctx Context) map[string]*string { return nil }
func (internalContributor) ExecuteBeforeRun(ctx Context) string           { return "" }
func (internalContributor) ExecuteRun(ctx Context) string                { return "" }
func (internalContributor) ExecuteAfterRun(ctx Context) string           { return "" }
