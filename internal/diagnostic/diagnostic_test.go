package diagnostic

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRange() hcl.Range {
	return hcl.Range{
		Filename: "foo.desc",
		Start:    hcl.Pos{Line: 1, Column: 1, Byte: 0},
		End:      hcl.Pos{Line: 1, Column: 10, Byte: 9},
	}
}

func TestError_IsMatchesKindSentinel(t *testing.T) {
	err := Newf(KindNesting, testRange(), "nested submodules are not allowed")
	wrapped := fmt.Errorf("compiling: %w", err)

	assert.ErrorIs(t, wrapped, ErrNesting)
	assert.NotErrorIs(t, wrapped, ErrGrammar)
	assert.Equal(t, KindNesting, KindOf(wrapped))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
}

func TestError_String(t *testing.T) {
	err := Newf(KindUnknownKey, testRange(), "unknown key %q", "capabilty").
		WithKey("capabilty").
		WithSuggestion(`did you mean "capability"?`)

	assert.Equal(t,
		`foo.desc:1,1-10: UnknownKeyError: unknown key "capabilty" (did you mean "capability"?)`,
		err.Error())
}

func TestError_StringWithoutRange(t *testing.T) {
	err := Newf(KindEmit, hcl.Range{}, "status -1 at operation 3")
	assert.Equal(t, "EmitError: status -1 at operation 3", err.Error())
}

func TestDiagnostics_ErrJoinsErrors(t *testing.T) {
	var d Diagnostics
	assert.NoError(t, d.Err())

	d.AddErr(Newf(KindUnknownKey, testRange(), "unknown key").WithKey("capabilty"))
	d.AddErr(Newf(KindNesting, hcl.Range{}, "too deep"))
	d.AddWarningAt(testRange(), "w", "ignored", "Foo", "")

	require.True(t, d.HasErrors())
	assert.True(t, d.HasWarnings())
	assert.Equal(t,
		"foo.desc:1,1-10: capabilty: UnknownKeyError: unknown key; NestingError: too deep",
		d.Err().Error())
	assert.Equal(t, "foo.desc:1,1-10: [Foo] w: ignored", d.Warnings[0].String())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.AddWarningAt(testRange(), "w1", "one", "", "")
	b.AddWarningAt(testRange(), "w2", "two", "", "")
	b.AddErr(Newf(KindGrammar, testRange(), "bad"))

	a.Merge(b)

	assert.Len(t, a.Warnings, 2)
	assert.Len(t, a.Errors, 1)
	assert.Equal(t, SeverityError, a.Errors[0].Severity)
}

func TestDiagnostics_HCLCarriesSuggestion(t *testing.T) {
	var d Diagnostics
	d.AddErr(Newf(KindUnknownKey, testRange(), "unknown key").WithSuggestion(`did you mean "help"?`))

	diags := d.HCL()
	require.Len(t, diags, 1)
	assert.Equal(t, hcl.DiagError, diags[0].Severity)
	assert.Contains(t, diags[0].Detail, `did you mean "help"?`)
}

func TestWrite_RendersSnippet(t *testing.T) {
	src := []byte("capabilty: \"decoder\" @ 50\n")
	err := Newf(KindUnknownKey, testRange(), "unknown key %q", "capabilty")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string][]byte{"foo.desc": src}, FromError(err), false))

	out := buf.String()
	assert.Contains(t, out, "UnknownKeyError")
	assert.Contains(t, out, "foo.desc line 1")
	assert.Contains(t, out, "capabilty")
}

func TestDiagnostics_HCLIncludesWarnings(t *testing.T) {
	var d Diagnostics
	d.AddWarningAt(testRange(), "rgb_range_override", "explicit range is replaced", "Foo", "color")

	diags := d.HCL()
	require.Len(t, diags, 1)
	assert.Equal(t, hcl.DiagWarning, diags[0].Severity)
	assert.Equal(t, "rgb_range_override", diags[0].Summary)
	require.NotNil(t, diags[0].Subject)
	assert.Equal(t, "foo.desc", diags[0].Subject.Filename)
}
