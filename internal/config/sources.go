package config

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Files expands the source globs relative to root. Duplicates are dropped
// and the result is sorted.
func (c *Config) Files(root string) ([]string, error) {
	return ExpandSources(root, c.Sources)
}

// ExpandSources resolves doublestar patterns against root. Absolute
// patterns are used as they are.
func ExpandSources(root string, patterns []string) ([]string, error) {
	seen := map[string]bool{}

	var files []string

	for _, pattern := range patterns {
		abs := pattern
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(root, pattern)
		}

		matches, err := doublestar.FilepathGlob(abs, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}

		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	sort.Strings(files)

	return files, nil
}

// Matches reports whether path is selected by the source globs relative
// to root.
func (c *Config) Matches(root, path string) bool {
	for _, pattern := range c.Sources {
		abs := pattern
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(root, pattern)
		}

		if ok, _ := doublestar.PathMatch(abs, path); ok {
			return true
		}
	}

	return false
}
