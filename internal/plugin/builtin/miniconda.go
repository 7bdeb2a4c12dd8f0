// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package builtin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gizzahub/lpci-go/internal/config"
	"github.com/gizzahub/lpci-go/internal/plugin"
)

func init() {
	plugin.Register("miniconda", func() plugin.Plugin { return minicondaPlugin{} })
}

const (
	defaultCondaEnv    = "lpci"
	defaultCondaPython = "3.8"
	minicondaInstaller = "https://repo.anaconda.com/miniconda/Miniconda3-latest-Linux-x86_64.sh"
)

var defaultCondaPackages = []string{"pip", "python"}

// minicondaPlugin bootstraps a Miniconda installation on first use and
// runs jobs inside a dedicated named environment.
type minicondaPlugin struct{}

func (minicondaPlugin) Name() string { return "miniconda" }

func (minicondaPlugin) ConfigKeys() map[string]bool {
	return map[string]bool{"conda-packages": true, "conda-channels": true, "conda-python": true}
}

func (minicondaPlugin) InterpolatesRunCommand() bool { return true }

func (minicondaPlugin) InstallPackages(plugin.Context) []string {
	return []string{"git", "python3-dev", "python3-pip", "python3-venv", "wget"}
}

func (minicondaPlugin) InstallSnaps(plugin.Context) []config.Snap { return nil }

func (minicondaPlugin) SetEnvironment(plugin.Context) map[string]*string {
	return map[string]*string{"CONDA_ENV": str(defaultCondaEnv)}
}

// bootstrapScript installs Miniconda into $HOME/miniconda3 if it is not
// already present; idempotent across re-runs of the same instance.
func (minicondaPlugin) ExecuteBeforeRun(plugin.Context) string {
	return fmt.Sprintf(
		`test -d "$HOME/miniconda3" || (wget -q %s -O /tmp/miniconda.sh && bash /tmp/miniconda.sh -b -p "$HOME/miniconda3")`,
		minicondaInstaller,
	)
}

func channelFlags(ctx plugin.Context) []string {
	channels := configStringList(pluginConfig(ctx), "conda-channels")
	if extra := ctx.Settings["miniconda_conda_channel"]; extra != "" {
		channels = append(channels, extra)
	}
	flags := make([]string, 0, len(channels))
	for _, c := range channels {
		flags = append(flags, "-c", c)
	}
	return flags
}

func condaPackageSet(ctx plugin.Context) []string {
	cfg := pluginConfig(ctx)
	python := configString(cfg, "conda-python", defaultCondaPython)
	packages := map[string]bool{fmt.Sprintf("PYTHON=%s", python): true}
	for _, p := range defaultCondaPackages {
		packages[p] = true
	}
	for _, p := range configStringList(cfg, "conda-packages") {
		packages[p] = true
	}
	out := make([]string, 0, len(packages))
	for p := range packages {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (minicondaPlugin) ExecuteRun(ctx plugin.Context) string {
	return runInCondaEnv(ctx, ctx.Job.Run)
}

func (minicondaPlugin) ExecuteAfterRun(plugin.Context) string { return "" }

// runInCondaEnv builds the shell fragment that creates (if needed) and
// activates the job's named conda environment, then runs fragment inside
// it. Shared by miniconda and conda-build.
func runInCondaEnv(ctx plugin.Context, fragment string) string {
	args := append([]string{"-n", defaultCondaEnv, "-y"}, condaPackageSet(ctx)...)
	args = append(args, channelFlags(ctx)...)
	create := fmt.Sprintf(`"$HOME/miniconda3/bin/conda" create %s`, strings.Join(args, " "))
	activate := fmt.Sprintf(`source "$HOME/miniconda3/etc/profile.d/conda.sh" && conda activate %s`, defaultCondaEnv)
	if fragment == "" {
		return fmt.Sprintf("%s; %s", create, activate)
	}
	return fmt.Sprintf("%s; %s; %s", create, activate, fragment)
}
