package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) opsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "ops <file>",
		Short: "Print the operation sequence of a descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.compiler().CompileFile(args[0])
			if err != nil {
				report(cmd.ErrOrStderr(), res, err)
				return errFailed
			}

			switch format {
			case "text":
				return res.Program.WriteText(cmd.OutOrStdout())
			case "yaml":
				data, err := res.Program.YAML()
				if err != nil {
					return err
				}

				_, err = cmd.OutOrStdout().Write(data)

				return err
			default:
				return fmt.Errorf("unknown format %q (text or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "listing format: text or yaml")

	return cmd
}
