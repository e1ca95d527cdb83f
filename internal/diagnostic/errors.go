package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind classifies a fatal compilation error.
type Kind int

const (
	_ Kind = iota // invalid

	KindGrammar            // GrammarError
	KindUnknownKey         // UnknownKeyError
	KindMissingRequiredKey // MissingRequiredKeyError
	KindTypeConstraint     // TypeConstraintError
	KindRangeConstraint    // RangeConstraintError
	KindAnnotationConflict // AnnotationConflictError
	KindPrefixMissing      // PrefixMissingError
	KindNesting            // NestingError
	KindLoader             // LoaderError
	KindEmit               // EmitError
)

// Sentinels for errors.Is matching on the error kind alone.
var (
	ErrGrammar            = &Error{Kind: KindGrammar}
	ErrUnknownKey         = &Error{Kind: KindUnknownKey}
	ErrMissingRequiredKey = &Error{Kind: KindMissingRequiredKey}
	ErrTypeConstraint     = &Error{Kind: KindTypeConstraint}
	ErrRangeConstraint    = &Error{Kind: KindRangeConstraint}
	ErrAnnotationConflict = &Error{Kind: KindAnnotationConflict}
	ErrPrefixMissing      = &Error{Kind: KindPrefixMissing}
	ErrNesting            = &Error{Kind: KindNesting}
	ErrLoader             = &Error{Kind: KindLoader}
	ErrEmit               = &Error{Kind: KindEmit}
)

// Error is a fatal, positioned compilation error.
type Error struct {
	Kind Kind
	// Key is the offending key, parameter or annotation name (if any).
	Key string
	// Message is the human-readable description.
	Message string
	// Range points at the offending token.
	Range hcl.Range
	// Suggestion is an optional fix hint.
	Suggestion string
}

// Newf creates an error of the given kind located at rng.
func Newf(kind Kind, rng hcl.Range, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Range:   rng,
	}
}

// WithKey sets the offending key and returns the error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithSuggestion sets the fix hint and returns the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if hasRange(e.Range) {
		b.WriteString(e.Range.String())
		b.WriteString(": ")
	}

	b.WriteString(e.Kind.String())

	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	if e.Suggestion != "" {
		b.WriteString(" (")
		b.WriteString(e.Suggestion)
		b.WriteString(")")
	}

	return b.String()
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Message == "" && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or zero.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

func hasRange(r hcl.Range) bool {
	return r.Filename != "" || r.Start.Line > 0
}
