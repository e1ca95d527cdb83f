package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"plugin-compiler/internal/compiler"
	"plugin-compiler/internal/config"
	"plugin-compiler/internal/logging"
)

// errFailed is returned after diagnostics were already printed.
var errFailed = errors.New("compilation failed")

// app holds global flags and the state built from them.
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string
	strict    bool

	cfg  *config.Config
	root string
	log  zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "plugin-compiler",
		Short: "Compile module descriptors into registration operations",
		Long: `plugin-compiler reads module descriptors, validates them and lowers
them into the ordered registration operations of the plugin protocol.

Quick start:
  plugin-compiler init              # write plugin-compiler.yaml
  plugin-compiler check foo.desc    # report problems
  plugin-compiler compile           # build every configured source`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", config.DefaultFile, "config file path")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (overrides config)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: console or json (overrides config)")
	flags.BoolVar(&a.strict, "strict", false, "treat warnings as errors")

	cmd.AddCommand(
		a.compileCmd(),
		a.checkCmd(),
		a.opsCmd(),
		a.inspectCmd(),
		a.watchCmd(),
		a.initCmd(),
		versionCmd(),
	)

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}

		return 1
	}

	return 0
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOrDefault(a.cfgFile)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}

	if cmd.Flags().Changed("strict") {
		cfg.Strict = a.strict
	}

	log, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(filepath.Dir(a.cfgFile))
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}

	a.cfg = cfg
	a.root = root
	a.log = log

	return nil
}

func (a *app) compiler() *compiler.Compiler {
	return compiler.New(compiler.Options{
		Strict:  a.cfg.Strict,
		Loaders: a.cfg.Registry(),
		Logger:  a.log,
	})
}

// sources returns args, or the configured sources when args is empty.
func (a *app) sources(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	files, err := a.cfg.Files(a.root)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no descriptors match %v under %s", a.cfg.Sources, a.root)
	}

	return files, nil
}
