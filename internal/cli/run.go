// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRunCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run every stage of the pipeline document",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			return exec.RunPipeline(cmd.Context(), cfg, opts)
		},
	}
}
