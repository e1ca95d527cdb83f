// Package naming derives the identifiers a module is registered under.
// Every function here is pure; the same descriptor always yields the same
// names.
package naming

import (
	"strings"
	"unicode"
)

const (
	// OriginSuffix marks modules that are not built from native sources.
	OriginSuffix = "-rs"

	keySeparator = "-"
)

// ModuleName returns the registration name of a top-level module.
func ModuleName(kind string) string {
	return strings.ToLower(kind) + OriginSuffix
}

// ParamKey joins prefix and name into a registration key. Underscores in
// name become dashes, and no separator is added when prefix already ends
// with one.
func ParamKey(prefix, name string) string {
	var b strings.Builder

	b.Grow(len(prefix) + len(name) + 1)
	b.WriteString(prefix)

	if !strings.HasSuffix(prefix, "-") && !strings.HasSuffix(prefix, "_") {
		b.WriteString(keySeparator)
	}

	b.WriteString(strings.ReplaceAll(name, "_", keySeparator))

	return b.String()
}

// OpenLabel is the name of the activation callback for kind.
func OpenLabel(kind string) string {
	return kind + "-open"
}

// CloseLabel is the name of the deactivation callback for kind.
func CloseLabel(kind string) string {
	return kind + "-close"
}

// ArgsTypeName is the name of the generated parameter holder for kind.
func ArgsTypeName(kind string) string {
	return kind + "Args"
}

// GoFieldName turns a parameter name into an exported Go identifier:
// "bg_color" becomes "BgColor".
func GoFieldName(name string) string {
	var b strings.Builder

	upper := true

	for _, r := range name {
		if r == '_' || r == '-' {
			upper = true
			continue
		}

		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}

		b.WriteRune(r)
	}

	if b.Len() == 0 {
		return "X"
	}

	out := b.String()
	if first := []rune(out)[0]; !unicode.IsLetter(first) {
		out = "X" + out
	}

	return out
}
