// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package pipeline implements the pipeline executor (spec.md §4.5):
// per-job orchestration (snaps, packages, input copy-in, run commands,
// output copy-out, properties) and stage/pipeline scheduling with the
// run-all-then-stop failure contract.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/docker/go-units"

	"github.com/gizzahub/lpci-go/internal/artifact"
	"github.com/gizzahub/lpci-go/internal/config"
	"github.com/gizzahub/lpci-go/internal/container"
	"github.com/gizzahub/lpci-go/internal/emitter"
	"github.com/gizzahub/lpci-go/internal/lpcerr"
	"github.com/gizzahub/lpci-go/internal/lpclog"
	"github.com/gizzahub/lpci-go/internal/plugin"
)

// Options carries the per-run knobs spec.md §6 lists as CLI flags,
// already parsed by the cobra/viper front-end.
type Options struct {
	OutputDir                  string
	Clean                      bool
	ReplacePackageRepositories []string
	ExtraPackageRepositories   []string
	EnvOverrides               map[string]string
	PluginSettings             map[string]string
	Secrets                    map[string]string
	HostArch                   string
}

// Executor runs jobs and pipelines against a concrete container
// provider and plugin registry.
type Executor struct {
	Provider    container.Provider
	Plugins     *plugin.Registry
	Emitter     emitter.Emitter
	Logger      *lpclog.Logger
	ProjectName string
	ProjectPath string
}

// RunOne runs exactly one job variant, identified by name and matrix
// index, per spec.md §4.5's entry point of the same name.
func (e *Executor) RunOne(ctx context.Context, cfg *config.Config, jobName string, index int, opts Options) error {
	variants, ok := cfg.Jobs[jobName]
	if !ok {
		return fmt.Errorf("%w: no such job %q", lpcerr.ErrConfig, jobName)
	}
	if index < 0 || index >= len(variants) {
		return fmt.Errorf("%w: job %q has no variant %d", lpcerr.ErrConfig, jobName, index)
	}
	return e.runVariant(ctx, cfg, jobName, index, variants[index], opts)
}

// runVariant implements the nine-step per-job algorithm of spec.md
// §4.5. It returns nil (not an error) when the variant's architecture
// list doesn't include the host architecture: the dispatcher contract
// is that such variants are skipped silently, never dispatched at all.
func (e *Executor) runVariant(ctx context.Context, cfg *config.Config, jobName string, index int, job *config.Job, opts Options) error {
	hostArch := opts.HostArch
	if !containsString(job.Architectures, hostArch) {
		return nil
	}

	hooks, selected, err := plugin.Assemble(job, opts.PluginSettings, e.Plugins)
	if err != nil {
		return err
	}
	commands := plugin.ResolveCommands(job, hooks, selected)
	if commands.Run == "" {
		return fmt.Errorf("Job %s for %s/%s does not set 'run'", jobName, job.Series, hostArch)
	}

	env, err := MergeEnvironment(hooks.Environment, job.Environment, opts.EnvOverrides)
	if err != nil {
		return err
	}

	handle, err := e.Provider.LaunchedEnvironment(ctx, e.ProjectName, e.ProjectPath, job.Series, hostArch, false)
	if err != nil {
		return fmt.Errorf("%w: %w", lpcerr.ErrProviderRuntime, err)
	}
	defer func() {
		// Teardown must still run after an interrupt has cancelled ctx.
		if relErr := handle.Release(context.WithoutCancel(ctx), opts.Clean); relErr != nil && e.Logger != nil {
			e.Logger.Sugar().Errorw("release instance failed", "instance", handle.Name(), "error", relErr)
		}
	}()

	e.progress(jobName, job.Series, hostArch, "snaps", "")
	for _, snap := range hooks.Snaps {
		argv := []string{"snap", "install", "--channel=latest/stable", snap.Name}
		if snap.Classic {
			argv = append(argv, "--classic")
		}
		if _, err := handle.RunCapture(ctx, argv); err != nil {
			return e.commandError(jobName, job, hostArch, err)
		}
	}

	if len(hooks.Packages) > 0 {
		if err := e.installPackages(ctx, handle, job, hooks.Packages, opts); err != nil {
			return e.commandError(jobName, job, hostArch, err)
		}
	}

	if job.Input != nil {
		if err := e.copyIn(ctx, handle, job, opts); err != nil {
			return err
		}
	}

	buildTree := "/build/lpci/project"
	for _, fragment := range []string{commands.Before, commands.Run, commands.After} {
		if fragment == "" {
			continue
		}
		e.progress(jobName, job.Series, hostArch, "run", fragment)
		var stop func()
		if e.Logger != nil {
			stop = e.Logger.Verbose()
		}
		_, err := handle.RunCapture(ctx, envPrefixedCommand(env, "bash", "--noprofile", "--norc", "-ec", fragment))
		if stop != nil {
			stop()
		}
		if err != nil {
			return e.commandError(jobName, job, hostArch, err)
		}
	}

	if job.Output != nil && opts.OutputDir != "" {
		if err := e.copyOut(ctx, handle, jobName, index, hostArch, buildTree, job, cfg.License, opts); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) installPackages(ctx context.Context, handle container.Handle, job *config.Job, packages []string, opts Options) error {
	lines, err := buildSources(ctx, handle, opts.ReplacePackageRepositories, opts.ExtraPackageRepositories, job.PackageRepositories)
	if err != nil {
		return err
	}
	text := joinLines(lines)
	if len(opts.Secrets) > 0 {
		text, err = renderSecrets(text, opts.Secrets)
		if err != nil {
			return err
		}
	}
	if err := pushSources(ctx, handle, text); err != nil {
		return err
	}
	if _, err := handle.RunCapture(ctx, []string{"apt", "update"}); err != nil {
		return err
	}
	argv := append([]string{"apt", "install", "-y"}, packages...)
	if _, err := handle.RunCapture(ctx, argv); err != nil {
		return err
	}
	return nil
}

func (e *Executor) copyIn(ctx context.Context, handle container.Handle, job *config.Job, opts Options) error {
	sourceDir := filepath.Join(opts.OutputDir, job.Input.JobName)
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return fmt.Errorf("%w: input job %q has no recorded output: %w", lpcerr.ErrInput, job.Input.JobName, err)
	}
	if len(entries) != 1 {
		return fmt.Errorf("%w: input job %q has %d output variants; expected exactly one", lpcerr.ErrInput, job.Input.JobName, len(entries))
	}
	variantDir := filepath.Join(sourceDir, entries[0].Name())
	filesDir := filepath.Join(variantDir, "files")
	propertiesPath := filepath.Join(variantDir, "properties")
	return artifact.CopyIn(ctx, handle, filesDir, "/build/lpci/project", job.Input.TargetDirectory, propertiesPath)
}

func (e *Executor) copyOut(ctx context.Context, handle container.Handle, jobName string, index int, arch string, buildTree string, job *config.Job, license *config.License, opts Options) error {
	destRoot := filepath.Join(opts.OutputDir, jobName, strconv.Itoa(index))
	filesDir := filepath.Join(destRoot, "files")

	if len(job.Output.Paths) > 0 {
		copied, err := artifact.CopyOut(ctx, handle, buildTree, job.Output.Paths, filesDir)
		if err != nil {
			return fmt.Errorf("%w: %w", lpcerr.ErrNoMatch, err)
		}
		e.progress(jobName, job.Series, arch, "copy-out", units.HumanSize(float64(copied)))
	}

	var dynamic map[string]*string
	if job.Output.DynamicProperties != "" {
		d, err := artifact.ReadDynamicProperties(ctx, handle, buildTree, job.Output.DynamicProperties)
		if err != nil {
			return err
		}
		dynamic = d
	}
	props := artifact.BuildProperties(job.Output.Properties, dynamic, license)

	return artifact.WriteProperties(filepath.Join(destRoot, "properties"), props)
}

func (e *Executor) commandError(jobName string, job *config.Job, arch string, cause error) error {
	status := 1
	var cmdErr *container.CommandError
	if errors.As(cause, &cmdErr) {
		status = cmdErr.ExitCode
	}
	return &lpcerr.ExitError{Job: jobName, Series: job.Series, Arch: arch, Status: status, Cause: cause}
}

func (e *Executor) progress(job, series, arch, stage, detail string) {
	if e.Emitter == nil {
		return
	}
	e.Emitter.Progress(emitter.Event{Job: job, Series: series, Arch: arch, Stage: stage, Detail: detail})
}

// envPrefixedCommand wraps argv with "env KEY=VALUE..." so the merged
// job environment (spec.md §4.5 step 3) is visible to the run fragment,
// since the container execution surface takes a bare argv.
func envPrefixedCommand(env map[string]string, argv ...string) []string {
	if len(env) == 0 {
		return argv
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys)+1+len(argv))
	out = append(out, "env")
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s=%s", k, env[k]))
	}
	return append(out, argv...)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func joinLines(lines []string) string {
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}
