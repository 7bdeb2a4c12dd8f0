// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package builtin

import (
	"fmt"
	"strings"

	"github.com/gizzahub/lpci-go/internal/config"
	"github.com/gizzahub/lpci-go/internal/plugin"
)

func init() {
	plugin.Register("conda-build", func() plugin.Plugin { return condaBuildPlugin{} })
}

const defaultRecipeFolder = "./info"

// condaBuildPlugin extends miniconda with the conda-build toolchain and a
// recipe-discovery run fragment: it locates a directory named "recipe"
// under the configured recipe folder (preferring a sibling "parent"
// directory's recipe when present), materializes meta.yaml from
// meta.yaml.template on the fly, and passes every conda_build_config.yaml
// found under the recipe, most specific first, as -m flags.
type condaBuildPlugin struct {
	miniconda minicondaPlugin
}

func (condaBuildPlugin) Name() string { return "conda-build" }

func (condaBuildPlugin) ConfigKeys() map[string]bool {
	return map[string]bool{
		"conda-packages": true,
		"conda-channels": true,
		"conda-python":   true,
		"recipe-folder":  true,
	}
}

func (condaBuildPlugin) InterpolatesRunCommand() bool { return true }

func (p condaBuildPlugin) InstallPackages(ctx plugin.Context) []string {
	pkgs := p.miniconda.InstallPackages(ctx)
	return append(pkgs, "conda-build", "patch", "python3-setuptools")
}

func (condaBuildPlugin) InstallSnaps(plugin.Context) []config.Snap { return nil }

func (p condaBuildPlugin) SetEnvironment(ctx plugin.Context) map[string]*string {
	return p.miniconda.SetEnvironment(ctx)
}

func (p condaBuildPlugin) ExecuteBeforeRun(ctx plugin.Context) string {
	return p.miniconda.ExecuteBeforeRun(ctx)
}

func (condaBuildPlugin) ExecuteRun(ctx plugin.Context) string {
	folder := configString(pluginConfig(ctx), "recipe-folder", defaultRecipeFolder)
	fragment := strings.Join([]string{
		fmt.Sprintf(`RECIPE_DIR=$(find %q/parent -maxdepth 2 -type d -name recipe 2>/dev/null | head -n1)`, folder),
		fmt.Sprintf(`test -n "$RECIPE_DIR" || RECIPE_DIR=$(find %q -maxdepth 3 -type d -name recipe 2>/dev/null | head -n1)`, folder),
		`test -n "$RECIPE_DIR" || { echo "conda-build: no recipe directory found under ` + folder + `" >&2; exit 1; }`,
		`test -f "$RECIPE_DIR/meta.yaml" || cp "$RECIPE_DIR/meta.yaml.template" "$RECIPE_DIR/meta.yaml"`,
		`CONFIGS=$(find "$RECIPE_DIR" -name conda_build_config.yaml | sort -r)`,
		`MFLAGS=""; for c in $CONFIGS; do MFLAGS="$MFLAGS -m $c"; done`,
		`conda-build $MFLAGS "$RECIPE_DIR"`,
	}, "\n")
	return runInCondaEnv(ctx, fragment)
}

func (p condaBuildPlugin) ExecuteAfterRun(ctx plugin.Context) string {
	return p.miniconda.ExecuteAfterRun(ctx)
}
