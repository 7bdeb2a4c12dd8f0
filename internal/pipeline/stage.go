// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"

	"github.com/gizzahub/lpci-go/internal/config"
	"github.com/gizzahub/lpci-go/internal/lpcerr"
)

// RunPipeline runs every stage of cfg.Pipeline in order, per spec.md
// §4.5's pipeline algorithm: within a stage all named jobs are
// attempted (each job's matrix variants in declared order, up to that
// job's first failing variant) before the stage's aggregated failure
// (if any) stops the pipeline; stages themselves run strictly in
// sequence.
func (e *Executor) RunPipeline(ctx context.Context, cfg *config.Config, opts Options) error {
	for _, stage := range cfg.Pipeline {
		if err := e.runStage(ctx, cfg, stage, opts); err != nil {
			return err
		}
	}
	return nil
}

// runStage implements the "parallel group" failure contract: every job
// in the stage is attempted exactly once (each of its matrix variants
// run in declared order) even after an earlier member fails; a
// single-job stage re-raises its job's error unchanged, while a
// multi-job stage aggregates failures into a StageError.
func (e *Executor) runStage(ctx context.Context, cfg *config.Config, stage []string, opts Options) error {
	failed := make(map[string]error)

	for _, jobName := range stage {
		variants := cfg.Jobs[jobName]
		for index := range variants {
			if err := e.RunOne(ctx, cfg, jobName, index, opts); err != nil {
				failed[jobName] = err
				break // remaining variants of this job are not attempted past its first failure
			}
		}
	}

	if len(failed) == 0 {
		return nil
	}
	if len(stage) == 1 {
		return failed[stage[0]]
	}
	return &lpcerr.StageError{Stage: stage, Failed: failed}
}
