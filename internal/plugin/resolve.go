// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package plugin

import (
	"fmt"

	"github.com/gizzahub/lpci-go/internal/config"
	"github.com/gizzahub/lpci-go/internal/lpcerr"
)

// Assemble runs every hook contributor for one job variant (the always-on
// internal contributor, plus the job's selected plugin if any) and
// aggregates their results per spec.md §4.2's hook table: packages and
// snaps are concatenated across contributors in order, while
// environment/before/run/after take the first non-empty contribution.
func Assemble(job *config.Job, settings map[string]string, reg *Registry) (*Hooks, Plugin, error) {
	contributors := []Plugin{internalContributor{}}
	var selected Plugin
	if job.Plugin != "" {
		p, ok := reg.New(job.Plugin)
		if !ok {
			return nil, nil, fmt.Errorf("job %q: %w: %q", job.Name, lpcerr.ErrUnknownPlugin, job.Plugin)
		}
		selected = p
		contributors = append(contributors, p)
	}

	ctx := Context{Job: job, Settings: settings}
	hooks := &Hooks{}
	for _, c := range contributors {
		hooks.Packages = append(hooks.Packages, c.InstallPackages(ctx)...)
		hooks.Snaps = append(hooks.Snaps, c.InstallSnaps(ctx)...)
		if hooks.Environment == nil {
			if env := c.SetEnvironment(ctx); env != nil {
				hooks.Environment = env
			}
		}
		if hooks.Before == "" {
			hooks.Before = c.ExecuteBeforeRun(ctx)
		}
		if hooks.Run == "" {
			hooks.Run = c.ExecuteRun(ctx)
		}
		if hooks.After == "" {
			hooks.After = c.ExecuteAfterRun(ctx)
		}
	}
	return hooks, selected, nil
}

// ResolveCommands applies the command-resolution rule: a user-supplied
// fragment wins unless the selected plugin declares that it interpolates
// the run command (in which case the hook's own output, which may itself
// read the job's fragment, wins instead).
func ResolveCommands(job *config.Job, hooks *Hooks, selected Plugin) Commands {
	interpolates := selected != nil && selected.InterpolatesRunCommand()
	resolve := func(userFragment, hookValue string) string {
		if userFragment != "" && !interpolates {
			return userFragment
		}
		return hookValue
	}
	return Commands{
		Before: resolve(job.RunBefore, hooks.Before),
		Run:    resolve(job.Run, hooks.Run),
		After:  resolve(job.RunAfter, hooks.After),
	}
}
