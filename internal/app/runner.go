// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package app provides application bootstrapping and lifecycle
// management: signal-driven graceful shutdown and command dispatch,
// mirroring the teacher's internal/app.Runner shape but wired to this
// program's own dependencies instead of a generic DI container.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gizzahub/lpci-go/internal/cli"
)

// Runner handles process lifecycle: signal handling and command
// execution, keeping main() minimal.
type Runner struct {
	version string
}

func NewRunner(version string) *Runner {
	return &Runner{version: version}
}

// Run executes the root command under a context cancelled on SIGINT/
// SIGTERM, per spec.md §5's "cancellation is cooperative via process
// signal" contract.
func (r *Runner) Run() error {
	ctx, cancel := r.setupGracefulShutdown()
	defer cancel()

	root := cli.NewRootCommand(r.version)
	root.SetContext(ctx)
	if err := root.Execute(); err != nil {
		if ctx.Err() != nil {
			return errors.New("Interrupted.")
		}
		return err
	}
	return nil
}

func (r *Runner) setupGracefulShutdown() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, tearing down running instances...")
		cancel()
	}()

	return ctx, cancel
}
