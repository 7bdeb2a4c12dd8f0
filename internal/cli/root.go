// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package cli wires the cobra/viper command surface spec.md §6 names
// onto internal/pipeline's Executor.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gizzahub/lpci-go/internal/config"
	"github.com/gizzahub/lpci-go/internal/container/docker"
	"github.com/gizzahub/lpci-go/internal/emitter"
	"github.com/gizzahub/lpci-go/internal/lpclog"
	"github.com/gizzahub/lpci-go/internal/pipeline"
	"github.com/gizzahub/lpci-go/internal/plugin"
	_ "github.com/gizzahub/lpci-go/internal/plugin/builtin"
	"github.com/gizzahub/lpci-go/internal/yamlconfig"
)

const defaultConfigPath = ".launchpad.yaml"

// NewRootCommand builds the "lpci" command tree: run, run-one, clean,
// version, with the shared flag set spec.md §6 describes.
func NewRootCommand(version string) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "lpci",
		Short:         "Run Launchpad-style CI pipelines in disposable containers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", defaultConfigPath, "path to the pipeline document, relative to the project directory")
	flags.String("output-directory", "", "directory to collect job outputs into")
	flags.Bool("clean", false, "delete instances after each job instead of leaving them for reuse")
	flags.StringSlice("replace-package-repositories", nil, "replace /etc/apt/sources.list wholesale with these lines")
	flags.StringSlice("package-repository", nil, "extra apt source line, applied before per-job package-repositories")
	flags.StringSlice("set-env", nil, "KEY=VALUE environment override, repeatable")
	flags.StringSlice("plugin-setting", nil, "KEY=VALUE plugin setting, repeatable")
	flags.String("secrets", "", "path to a YAML file of secrets for package-repository URL templating")
	flags.StringSlice("apt-replace-repositories", nil, "deprecated alias for --replace-package-repositories")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix("lpci")
	v.AutomaticEnv()

	root.AddCommand(newRunCommand(v))
	root.AddCommand(newRunOneCommand(v))
	root.AddCommand(newCleanCommand(v))
	root.AddCommand(newVersionCommand(version))
	return root
}

// runOptions gathers the flag values common to run and run-one into
// pipeline.Options, applying the legacy flag alias and its deprecation
// notice.
func runOptions(v *viper.Viper) (pipeline.Options, error) {
	replace := v.GetStringSlice("replace-package-repositories")
	if legacy := v.GetStringSlice("apt-replace-repositories"); len(legacy) > 0 {
		fmt.Fprintln(os.Stderr, "warning: --apt-replace-repositories is deprecated, use --replace-package-repositories")
		replace = append(replace, legacy...)
	}

	envOverrides, err := parseKeyValueList(v.GetStringSlice("set-env"))
	if err != nil {
		return pipeline.Options{}, err
	}
	pluginSettings, err := parseKeyValueList(v.GetStringSlice("plugin-setting"))
	if err != nil {
		return pipeline.Options{}, err
	}

	var secrets map[string]string
	if path := v.GetString("secrets"); path != "" {
		secrets, err = loadSecrets(path)
		if err != nil {
			return pipeline.Options{}, err
		}
	}

	return pipeline.Options{
		OutputDir:                  v.GetString("output-directory"),
		Clean:                      v.GetBool("clean"),
		ReplacePackageRepositories: replace,
		ExtraPackageRepositories:   v.GetStringSlice("package-repository"),
		EnvOverrides:               envOverrides,
		PluginSettings:             pluginSettings,
		Secrets:                    secrets,
		HostArch:                   runtime.GOARCH,
	}, nil
}

func loadSecrets(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read secrets file: %w", err)
	}
	m, err := yamlconfig.UnmarshalStringMap(raw)
	if err != nil {
		return nil, fmt.Errorf("parse secrets file: %w", err)
	}
	return m, nil
}

func newExecutor(v *viper.Viper, projectDir string) (*pipeline.Executor, error) {
	logCfg := lpclog.DefaultConfig()
	logger, err := lpclog.New("lpci", logCfg)
	if err != nil {
		return nil, err
	}

	provider, err := docker.New()
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &pipeline.Executor{
		Provider:    provider,
		Plugins:     plugin.Global,
		Emitter:     emitter.NewLogEmitter(logger),
		Logger:      logger,
		ProjectName: projectName(projectDir),
		ProjectPath: projectDir,
	}, nil
}

func projectName(projectDir string) string {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return filepath.Base(projectDir)
	}
	return filepath.Base(abs)
}

func loadConfig(v *viper.Viper, projectDir string) (*config.Config, error) {
	return config.Load(projectDir, v.GetString("config"), plugin.Global)
}
