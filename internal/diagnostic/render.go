package diagnostic

import (
	"errors"
	"io"

	"github.com/hashicorp/hcl/v2"
)

// defaultWrapWidth is the column at which rendered details are wrapped.
const defaultWrapWidth = 100

// HCL converts the collected diagnostics into hcl.Diagnostics so they can be
// rendered with source snippets.
func (d *Diagnostics) HCL() hcl.Diagnostics {
	var out hcl.Diagnostics
	for _, e := range d.Errors {
		out = append(out, toHCL(hcl.DiagError, e))
	}

	for _, w := range d.Warnings {
		out = append(out, toHCL(hcl.DiagWarning, w))
	}

	return out
}

// FromError converts err into a single-entry hcl.Diagnostics. Errors that are
// not *Error are reported without a subject range.
func FromError(err error) hcl.Diagnostics {
	if err == nil {
		return nil
	}

	var e *Error
	if !errors.As(err, &e) {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "compilation failed",
			Detail:   err.Error(),
		}}
	}

	diag := &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  e.Kind.String(),
		Detail:   e.Message,
	}
	if e.Suggestion != "" {
		diag.Detail += "; " + e.Suggestion
	}

	if hasRange(e.Range) {
		diag.Subject = e.Range.Ptr()
	}

	return hcl.Diagnostics{diag}
}

// Write renders diags to w. sources maps file names to their contents and is
// used to print the offending source line under each diagnostic.
func Write(w io.Writer, sources map[string][]byte, diags hcl.Diagnostics, color bool) error {
	files := make(map[string]*hcl.File, len(sources))
	for name, src := range sources {
		files[name] = &hcl.File{Bytes: src}
	}

	return hcl.NewDiagnosticTextWriter(w, files, defaultWrapWidth, color).WriteDiagnostics(diags)
}

func toHCL(sev hcl.DiagnosticSeverity, d Diagnostic) *hcl.Diagnostic {
	summary := d.Code
	if summary == "" {
		summary = d.Severity.String()
	}

	detail := d.Message
	if d.Key != "" {
		detail = d.Key + ": " + detail
	}

	if d.Suggestion != "" {
		detail += "; " + d.Suggestion
	}

	return &hcl.Diagnostic{
		Severity: sev,
		Summary:  summary,
		Detail:   detail,
		Subject:  d.Range,
	}
}
