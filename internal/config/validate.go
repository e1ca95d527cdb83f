package config

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/rs/zerolog"
)

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Version != "1" {
		errs = append(errs, fmt.Errorf("unsupported config version %q", c.Version))
	}

	for _, f := range c.Output.Formats {
		if !contains(knownFormats, f) {
			errs = append(errs, fmt.Errorf("unknown output format %q (known: %s)", f, strings.Join(knownFormats, ", ")))
		}
	}

	if !token.IsIdentifier(c.Output.Package) {
		errs = append(errs, fmt.Errorf("output package %q is not a valid Go identifier", c.Output.Package))
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}

	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log format %q must be console or json", c.Log.Format))
	}

	seen := make(map[string]bool, len(c.Loaders))

	for i, l := range c.Loaders {
		switch {
		case l.Name == "":
			errs = append(errs, fmt.Errorf("loaders[%d]: missing name", i))
		case seen[l.Name]:
			errs = append(errs, fmt.Errorf("loaders[%d]: duplicate loader %q", i, l.Name))
		}

		seen[l.Name] = true
	}

	return errors.Join(errs...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
