package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"plugin-compiler/internal/compiler"
	"plugin-compiler/internal/config"
	"plugin-compiler/internal/gen"
	"plugin-compiler/internal/wire"
)

func (a *app) compileCmd() *cobra.Command {
	var (
		outDir  string
		formats []string
	)

	cmd := &cobra.Command{
		Use:   "compile [files...]",
		Short: "Compile descriptors and write the outputs",
		Long: `Compile descriptors and write every configured output format.

Formats:
  go    Go constants and parameter holder (<kind>_module.go)
  ops   operation listing (<kind>.ops.txt)
  yaml  operation listing as YAML (<kind>.ops.yaml)
  wire  encoded operation stream (<kind>.pcop)

Without arguments the sources configured in plugin-compiler.yaml are used.

Examples:
  plugin-compiler compile
  plugin-compiler compile foo.desc --format go,wire --out build`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.sources(args)
			if err != nil {
				return err
			}

			if outDir != "" {
				a.cfg.Output.Dir = outDir
			}

			if len(formats) > 0 {
				a.cfg.Output.Formats = formats
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}

			failed := a.compileAll(cmd, files)
			if failed > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d descriptors failed\n", failed, len(files))
				return errFailed
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (overrides config)")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "output formats (overrides config)")

	return cmd
}

// compileAll builds every file and returns how many failed.
func (a *app) compileAll(cmd *cobra.Command, files []string) int {
	c := a.compiler()
	failed := 0

	for _, path := range files {
		res, err := c.CompileFile(path)
		if err == nil {
			err = a.writeOutputs(res)
		}

		if err != nil {
			report(cmd.ErrOrStderr(), res, err)
			failed++

			continue
		}

		a.log.Info().Str("file", path).Str("module", res.Names.Module).Msg("compiled")
	}

	return failed
}

func (a *app) writeOutputs(res *compiler.Result) error {
	out := a.cfg.Output
	base := strings.ToLower(res.Names.Kind)

	var files []gen.GeneratedFile

	if a.cfg.HasFormat(config.FormatGo) {
		f, err := gen.NewGenerator(a.cfg.Generator()).Generate(res.Module, res.Names)
		if err != nil {
			return fmt.Errorf("generating code: %w", err)
		}

		files = append(files, *f)
	}

	if a.cfg.HasFormat(config.FormatOps) {
		var b strings.Builder
		if err := res.Program.WriteText(&b); err != nil {
			return err
		}

		files = append(files, gen.GeneratedFile{Filename: base + ".ops.txt", Content: []byte(b.String())})
	}

	if a.cfg.HasFormat(config.FormatYAML) {
		data, err := res.Program.YAML()
		if err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}

		files = append(files, gen.GeneratedFile{Filename: base + ".ops.yaml", Content: data})
	}

	if a.cfg.HasFormat(config.FormatWire) {
		enc := wire.NewEncoder()
		if err := res.Program.Replay(enc); err != nil {
			return fmt.Errorf("encoding stream: %w", err)
		}

		files = append(files, gen.GeneratedFile{Filename: base + ".pcop", Content: enc.Bytes()})
	}

	if err := gen.WriteFiles(files, out.Dir); err != nil {
		return err
	}

	for _, f := range files {
		a.log.Debug().Str("path", filepath.Join(out.Dir, f.Filename)).Msg("wrote")
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
