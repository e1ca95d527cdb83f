package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"plugin-compiler/internal/descriptor"
	"plugin-compiler/internal/lower"
	"plugin-compiler/internal/naming"
)

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the names and parameters derived from a descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.compiler().CompileFile(args[0])
			if err != nil {
				report(cmd.ErrOrStderr(), res, err)
				return errFailed
			}

			w := cmd.OutOrStdout()
			printModule(w, res.Module, res.Names, "")

			for i, sub := range res.Module.Children() {
				printModule(w, sub, res.Names.Submodules[i], "  ")
			}

			return nil
		},
	}
}

func printModule(w io.Writer, m *descriptor.Module, names naming.Names, indent string) {
	fmt.Fprintf(w, "%smodule %s\n", indent, names.Kind)

	if indent == "" {
		fmt.Fprintf(w, "%s  name:      %s\n", indent, names.Module)
	}

	fmt.Fprintf(w, "%s  open:      %s\n", indent, names.Open)
	fmt.Fprintf(w, "%s  close:     %s\n", indent, names.Close)
	fmt.Fprintf(w, "%s  category:  %s\n", indent, m.Category.Name)

	params := m.Parameters()
	if len(params) == 0 {
		return
	}

	fmt.Fprintf(w, "%s  args:      %s\n", indent, names.ArgsType)

	for i, p := range params {
		n := names.Params[i]

		fmt.Fprintf(w, "%s  param %s\n", indent, n.Name)
		fmt.Fprintf(w, "%s    key:     %s\n", indent, n.Key)
		fmt.Fprintf(w, "%s    field:   %s %s\n", indent, n.Field, p.Type.GoType())
		fmt.Fprintf(w, "%s    kind:    %s\n", indent, lower.ItemKindOf(p))
		fmt.Fprintf(w, "%s    default: %s\n", indent, lower.DefaultValue(p))

		if lo, hi, ok := lower.RangeOf(p); ok {
			fmt.Fprintf(w, "%s    range:   %s..=%s\n", indent, lo, hi)
		}

		if tags := p.Tags.List(); len(tags) > 0 {
			fmt.Fprintf(w, "%s    tags:    %v\n", indent, tags)
		}
	}
}
