package diagnostic

import (
	"errors"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Diagnostics collects what one compilation reported. Warnings never stop
// a compilation; Errors holds at most the single fatal error in practice.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Severity Severity
	// Code names the problem: an error Kind or a warning code.
	Code    string
	Message string
	// Module is the kind of the module body involved (if any).
	Module string
	// Key is the key, parameter or annotation involved (if any).
	Key   string
	Range *hcl.Range
	// Suggestion is an optional fix hint.
	Suggestion string
}

// Severity tells warnings from errors.
type Severity int

const (
	SeverityWarning Severity = iota + 1
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}

	return "warning"
}

// AddWarningAt records a warning located at rng.
func (d *Diagnostics) AddWarningAt(rng hcl.Range, code, message, module, key string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Module:   module,
		Key:      key,
		Range:    rng.Ptr(),
	})
}

// AddErr records a taxonomy error.
func (d *Diagnostics) AddErr(err *Error) {
	diag := Diagnostic{
		Severity:   SeverityError,
		Code:       err.Kind.String(),
		Message:    err.Message,
		Key:        err.Key,
		Suggestion: err.Suggestion,
	}
	if hasRange(err.Range) {
		diag.Range = err.Range.Ptr()
	}

	d.Errors = append(d.Errors, diag)
}

// HasErrors reports whether an error was recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasWarnings reports whether a warning was recorded.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// Merge appends everything other holds.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// Err joins the recorded errors into one, or returns nil.
func (d *Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		parts[i] = e.String()
	}

	return errors.New(strings.Join(parts, "; "))
}

// String renders the diagnostic on one line, location first.
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.Range != nil {
		b.WriteString(d.Range.String())
		b.WriteString(": ")
	}

	if d.Module != "" {
		b.WriteString("[")
		b.WriteString(d.Module)
		b.WriteString("] ")
	}

	if d.Key != "" {
		b.WriteString(d.Key)
		b.WriteString(": ")
	}

	if d.Code != "" {
		b.WriteString(d.Code)
		b.WriteString(": ")
	}

	b.WriteString(d.Message)

	return b.String()
}
