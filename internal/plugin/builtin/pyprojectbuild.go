// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package builtin

import (
	"github.com/gizzahub/lpci-go/internal/config"
	"github.com/gizzahub/lpci-go/internal/plugin"
)

func init() {
	plugin.Register("pyproject-build", func() plugin.Plugin { return pyprojectBuildPlugin{} })
}

// pyprojectBuildPlugin builds a PEP 517 sdist/wheel via the "build"
// front-end, pinned to the version the original tooling shipped.
type pyprojectBuildPlugin struct{}

func (pyprojectBuildPlugin) Name() string                { return "pyproject-build" }
func (pyprojectBuildPlugin) ConfigKeys() map[string]bool { return nil }
func (pyprojectBuildPlugin) InterpolatesRunCommand() bool { return false }

func (pyprojectBuildPlugin) InstallPackages(plugin.Context) []string {
	return []string{"python3-pip", "python3-venv"}
}

func (pyprojectBuildPlugin) InstallSnaps(plugin.Context) []config.Snap { return nil }
func (pyprojectBuildPlugin) SetEnvironment(plugin.Context) map[string]*string {
	return nil
}
func (pyprojectBuildPlugin) ExecuteBeforeRun(plugin.Context) string { return "" }

func (pyprojectBuildPlugin) ExecuteRun(plugin.Context) string {
	return "python3 -m pip install build==0.7.0; python3 -m build"
}

func (pyprojectBuildPlugin) ExecuteAfterRun(plugin.Context) string { return "" }
