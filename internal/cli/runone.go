// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRunOneCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "run-one <job> <index>",
		Short: "Run a single job variant by name and matrix index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index must be an integer: %w", err)
			}

			projectDir := "."
			cfg, err := loadConfig(v, projectDir)
			if err != nil {
				return err
			}
			opts, err := runOptions(v)
			if err != nil {
				return err
			}
			exec, err := newExecutor(v, projectDir)
			if err != nil {
				return err
			}
			return exec.RunOne(cmd.Context(), cfg, args[0], index, opts)
		},
	}
}
