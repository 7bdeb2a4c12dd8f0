// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gizzahub/lpci-go/internal/container/docker"
)

func newCleanCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete every instance belonging to this project",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir := "."
			provider, err := docker.New()
			if err != nil {
				return err
			}
			deleted, err := provider.CleanProjectEnvironments(cmd.Context(), projectName(projectDir), projectDir, nil)
			if err != nil {
				return err
			}
			for _, name := range deleted {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
