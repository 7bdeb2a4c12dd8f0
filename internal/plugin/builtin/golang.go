// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package builtin

import (
	"fmt"

	"github.com/gizzahub/lpci-go/internal/config"
	"github.com/gizzahub/lpci-go/internal/plugin"
)

func init() {
	plugin.Register("golang", func() plugin.Plugin { return golangPlugin{} })
}

const defaultGoVersion = "1.18"

// golangPlugin installs a distro Go toolchain package and puts it ahead
// of the job's own run fragment on PATH, rather than replacing it: it
// interpolates the user's run command (as miniconda and conda-build do).
type golangPlugin struct{}

func (golangPlugin) Name() string { return "golang" }

func (golangPlugin) ConfigKeys() map[string]bool {
	return map[string]bool{"golang-version": true}
}

func (golangPlugin) InterpolatesRunCommand() bool { return true }

func (golangPlugin) InstallPackages(ctx plugin.Context) []string {
	version := configString(pluginConfig(ctx), "golang-version", defaultGoVersion)
	return []string{fmt.Sprintf("golang-%s", version)}
}

func (golangPlugin) InstallSnaps(plugin.Context) []config.Snap { return nil }
func (golangPlugin) SetEnvironment(plugin.Context) map[string]*string {
	return nil
}
func (golangPlugin) ExecuteBeforeRun(plugin.Context) string { return "" }

func (golangPlugin) ExecuteRun(ctx plugin.Context) string {
	version := configString(pluginConfig(ctx), "golang-version", defaultGoVersion)
	path := fmt.Sprintf("export PATH=/usr/lib/go-%s/bin/:$PATH", version)
	if ctx.Job.Run == "" {
		return path
	}
	return fmt.Sprintf("%s; %s", path, ctx.Job.Run)
}

func (golangPlugin) ExecuteAfterRun(plugin.Context) string { return "" }
