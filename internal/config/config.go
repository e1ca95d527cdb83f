// Package config loads the compiler configuration file.
package config

import (
	"plugin-compiler/internal/gen"
	"plugin-compiler/internal/protocol"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "plugin-compiler.yaml"

// Output formats.
const (
	FormatGo   = "go"
	FormatOps  = "ops"
	FormatYAML = "yaml"
	FormatWire = "wire"
)

var knownFormats = []string{FormatGo, FormatOps, FormatYAML, FormatWire}

// Config is the root of plugin-compiler.yaml.
type Config struct {
	Version string `yaml:"version"`
	// Sources are doublestar globs relative to the config file.
	Sources []string `yaml:"sources"`
	Output  Output   `yaml:"output"`
	// Strict turns warnings into errors.
	Strict bool      `yaml:"strict,omitempty"`
	Log    LogConfig `yaml:"log"`
	// Loaders lists the loader identifiers descriptors may reference.
	Loaders []LoaderConfig `yaml:"loaders,omitempty"`
	// ImplicitLoaders resolves unlisted loaders by naming convention.
	ImplicitLoaders bool `yaml:"implicit_loaders,omitempty"`
}

// Output controls what is written and where.
type Output struct {
	Dir     string   `yaml:"dir"`
	Package string   `yaml:"package"`
	Formats []string `yaml:"formats"`
	// Comments toggles doc comments in generated Go code.
	Comments *bool `yaml:"comments,omitempty"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LoaderConfig declares one loader. Symbols may contain {kind}.
type LoaderConfig struct {
	Name       string `yaml:"name"`
	Activate   string `yaml:"activate"`
	Deactivate string `yaml:"deactivate,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{ImplicitLoaders: true}
	applyDefaults(cfg)

	return cfg
}

// HasFormat reports whether format is enabled.
func (c *Config) HasFormat(format string) bool {
	for _, f := range c.Output.Formats {
		if f == format {
			return true
		}
	}

	return false
}

// Registry builds the loader registry described by the configuration.
func (c *Config) Registry() *protocol.Registry {
	reg := protocol.NewRegistry()

	for _, l := range c.Loaders {
		reg.Register(l.Name, protocol.SymbolLoader{
			Name:             l.Name,
			ActivateSymbol:   l.Activate,
			DeactivateSymbol: l.Deactivate,
		})
	}

	if c.ImplicitLoaders {
		reg.Fallback = protocol.ConventionLoader
	}

	return reg
}

// Generator returns the code generator settings.
func (c *Config) Generator() gen.GeneratorConfig {
	g := gen.DefaultGeneratorConfig()
	g.PackageName = c.Output.Package
	g.OutputDir = c.Output.Dir

	if c.Output.Comments != nil {
		g.GenerateComments = *c.Output.Comments
	}

	return g
}
