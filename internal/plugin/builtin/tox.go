// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package builtin

import (
	"github.com/gizzahub/lpci-go/internal/config"
	"github.com/gizzahub/lpci-go/internal/plugin"
)

func init() {
	plugin.Register("tox", func() plugin.Plugin { return toxPlugin{} })
}

// toxPlugin runs a job's tests through tox, pinned to the version the
// original Launchpad tooling shipped.
type toxPlugin struct{}

func (toxPlugin) Name() string                { return "tox" }
func (toxPlugin) ConfigKeys() map[string]bool { return nil }
func (toxPlugin) InterpolatesRunCommand() bool { return false }

func (toxPlugin) InstallPackages(plugin.Context) []string {
	return []string{"python3-pip"}
}

func (toxPlugin) InstallSnaps(plugin.Context) []config.Snap { return nil }

func (toxPlugin) SetEnvironment(plugin.Context) map[string]*string {
	return map[string]*string{
		"TOX_TESTENV_PASSENV": str("http_proxy https_proxy"),
	}
}

func (toxPlugin) ExecuteBeforeRun(plugin.Context) string { return "" }

func (toxPlugin) ExecuteRun(plugin.Context) string {
	return "python3 -m pip install tox==3.24.5; tox"
}

func (toxPlugin) ExecuteAfterRun(plugin.Context) string { return "" }
