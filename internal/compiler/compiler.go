package compiler

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"plugin-compiler/internal/descriptor"
	"plugin-compiler/internal/diagnostic"
	"plugin-compiler/internal/lower"
	"plugin-compiler/internal/naming"
	"plugin-compiler/internal/protocol"
	"plugin-compiler/internal/syntax"
	"plugin-compiler/internal/validate"
)

// ErrStrict is returned in strict mode when a descriptor produced warnings.
var ErrStrict = errors.New("warnings are treated as errors")

// Options configure a Compiler.
type Options struct {
	// Strict turns every warning into a failure.
	Strict bool
	// Loaders resolves loader identifiers. When nil every loader resolves
	// by convention.
	Loaders *protocol.Registry
	Logger  zerolog.Logger
}

// Result is everything known about one compiled descriptor. Fields are
// filled up to the stage that failed.
type Result struct {
	Filename    string
	Source      []byte
	Module      *descriptor.Module
	Diagnostics diagnostic.Diagnostics
	Names       naming.Names
	Program     *lower.Program
}

// Compiler runs descriptors through the pipeline. It holds no per-file
// state and can be reused.
type Compiler struct {
	strict  bool
	loaders *protocol.Registry
	log     zerolog.Logger
}

// New creates a Compiler.
func New(opts Options) *Compiler {
	loaders := opts.Loaders
	if loaders == nil {
		loaders = protocol.NewRegistry()
		loaders.Fallback = protocol.ConventionLoader
	}

	return &Compiler{
		strict:  opts.Strict,
		loaders: loaders,
		log:     opts.Logger.With().Str("component", "compiler").Logger(),
	}
}

// Check parses and validates src without lowering it.
func (c *Compiler) Check(filename string, src []byte) (*Result, error) {
	res := &Result{Filename: filename, Source: src}

	log := c.log.With().Str("file", filename).Logger()

	m, diags, err := syntax.Parse(filename, src)
	res.Diagnostics.Merge(diags)

	if err != nil {
		if derr := asDiagnostic(err); derr != nil {
			res.Diagnostics.AddErr(derr)
		}

		log.Debug().Err(err).Msg("parse failed")
		return res, fmt.Errorf("parsing %s: %w", filename, err)
	}

	res.Module = m

	vdiags, err := validate.Validate(m)
	if vdiags != nil {
		res.Diagnostics.Merge(*vdiags)
	}

	if err != nil {
		log.Debug().Err(err).Msg("validation failed")
		return res, fmt.Errorf("validating %s: %w", filename, err)
	}

	for _, w := range res.Diagnostics.Warnings {
		log.Warn().Str("code", w.Code).Str("key", w.Key).Msg(w.Message)
	}

	if c.strict && res.Diagnostics.HasWarnings() {
		return res, fmt.Errorf("%s: %w (%d warnings)", filename, ErrStrict, len(res.Diagnostics.Warnings))
	}

	names, err := naming.Derive(m)
	if err != nil {
		return res, fmt.Errorf("deriving names for %s: %w", filename, err)
	}

	res.Names = names

	return res, nil
}

// Compile checks src and lowers it into a recorded Program.
func (c *Compiler) Compile(filename string, src []byte) (*Result, error) {
	res, err := c.Check(filename, src)
	if err != nil {
		return res, err
	}

	program, err := lower.Record(res.Module, c.loaders)
	res.Program = program

	if err != nil {
		if derr := asDiagnostic(err); derr != nil {
			res.Diagnostics.AddErr(derr)
		}

		return res, fmt.Errorf("lowering %s: %w", filename, err)
	}

	c.log.Debug().
		Str("file", filename).
		Str("module", program.Names.Module).
		Int("ops", len(program.Entries)).
		Msg("compiled")

	return res, nil
}

// Register compiles src and sends the operations to emitter. Nothing is
// sent unless compilation succeeds; the first refused operation stops the
// sequence and the error matches lower.ErrEmitFailed.
func (c *Compiler) Register(filename string, src []byte, emitter protocol.Emitter) (*Result, error) {
	res, err := c.Compile(filename, src)
	if err != nil {
		return res, err
	}

	if err := res.Program.Replay(emitter); err != nil {
		c.log.Error().Err(err).Str("file", filename).Msg("registration refused")
		return res, fmt.Errorf("registering %s: %w", filename, err)
	}

	return res, nil
}

// CompileFile reads path and compiles it.
func (c *Compiler) CompileFile(path string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return &Result{Filename: path}, fmt.Errorf("reading descriptor: %w", err)
	}

	return c.Compile(path, src)
}

// StatusOf maps the outcome of a compilation to the protocol status a
// registration entry point reports.
func StatusOf(err error) protocol.Status {
	if err != nil {
		return protocol.FailureCode
	}

	return protocol.StatusOK
}

func asDiagnostic(err error) *diagnostic.Error {
	var derr *diagnostic.Error
	if errors.As(err, &derr) {
		return derr
	}

	return nil
}
