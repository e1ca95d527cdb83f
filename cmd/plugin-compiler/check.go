package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func (a *app) checkCmd() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Validate descriptors without writing anything",
		Long: `Parse and validate descriptors and print every diagnostic.

Examples:
  plugin-compiler check
  plugin-compiler check foo.desc --dump`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.sources(args)
			if err != nil {
				return err
			}

			c := a.compiler()
			failed := 0

			for _, path := range files {
				res, err := c.CompileFile(path)
				report(cmd.ErrOrStderr(), res, err)

				if err != nil {
					failed++
					continue
				}

				if dump {
					cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
					cfg.Fdump(cmd.OutOrStdout(), res.Module)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d warnings)\n", path, len(res.Diagnostics.Warnings))
			}

			if failed > 0 {
				return errFailed
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "print the parsed descriptor tree")

	return cmd
}
