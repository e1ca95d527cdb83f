package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"plugin-compiler/internal/watch"
)

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Recompile configured sources when they change",
		Long: `Compile every configured source, then watch the config directory and
recompile descriptors as they are saved. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.watch(ctx, cmd)
		},
	}
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command) error {
	w, err := watch.New(watch.Config{
		Root:   a.root,
		Match:  func(path string) bool { return a.cfg.Matches(a.root, path) },
		Logger: a.log,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if files, err := a.cfg.Files(a.root); err == nil && len(files) > 0 {
		a.compileAll(cmd, files)
	}

	a.log.Info().Str("root", a.root).Msg("watching for changes")

	return w.Run(ctx, func(paths []string) {
		var existing []string

		for _, p := range paths {
			if fileExists(p) {
				existing = append(existing, p)
			}
		}

		if len(existing) > 0 {
			a.compileAll(cmd, existing)
		}
	})
}
