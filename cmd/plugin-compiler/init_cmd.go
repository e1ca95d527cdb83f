package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"plugin-compiler/internal/config"
)

func (a *app) initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fileExists(a.cfgFile) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.cfgFile)
			}

			if err := config.WriteFile(config.Default(), a.cfgFile); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", a.cfgFile)

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
