// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gizzahub/lpci-go/internal/app"
	"github.com/gizzahub/lpci-go/internal/lpcerr"
)

var version = "dev"

func main() {
	runner := app.NewRunner(version)

	if err := runner.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var exitErr *lpcerr.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Status
	}
	return 1
}
