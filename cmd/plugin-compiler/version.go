package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"plugin-compiler/internal/protocol"
)

var (
	// Set via ldflags at build time
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "plugin-compiler %s\n", version)
			fmt.Fprintf(w, "  commit:   %s\n", commit)
			fmt.Fprintf(w, "  built:    %s\n", buildDate)
			fmt.Fprintf(w, "  protocol: %s\n", protocol.APIVersion)
		},
	}
}
