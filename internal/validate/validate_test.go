package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugin-compiler/internal/descriptor"
	"plugin-compiler/internal/diagnostic"
	"plugin-compiler/internal/syntax"
)

const head = `type: Foo(FooLoader), capability: "decoder" @ 50, category: Video, description: "Foo decoder", `

func mustParse(t *testing.T, src string) *descriptor.Module {
	t.Helper()

	m, _, err := syntax.Parse("t.desc", []byte(src))
	require.NoError(t, err)

	return m
}

func withParam(decl string) string {
	return head + `#[prefix = "foo"] params: { ` + decl + ` }`
}

func TestValidate_Valid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "minimal", src: head},
		{name: "int", src: withParam(`x: i64 { default: -3, range: -10..=10, text: "x", long_text: "x" }`)},
		{name: "float from int", src: withParam(`x: f32 { default: 1, range: 0..=2.5, text: "x", long_text: "x" }`)},
		{name: "bool", src: withParam(`x: bool { default: false, text: "x", long_text: "x" }`)},
		{name: "string", src: withParam(`#[password] x: str { default: "", text: "x", long_text: "x" }`)},
		{name: "rgb", src: withParam(`#[rgb] x: i64 { default: 0xFFFFFF, text: "x", long_text: "x" }`)},
		{name: "submodule", src: head + `submodules: [{ type: Bar(L), capability: "c" @ 1, category: Video, description: "d" }]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Validate(mustParse(t, tt.src))
			require.NoError(t, err)
			assert.False(t, res.HasErrors())
			assert.False(t, res.HasWarnings())
		})
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind error
		msg  string
	}{
		{
			name: "missing type",
			src:  `capability: "c" @ 1, category: Video, description: "d"`,
			kind: diagnostic.ErrMissingRequiredKey,
			msg:  "missing `type` key in module",
		},
		{
			name: "missing capability",
			src:  `type: Foo(L), category: Video, description: "d"`,
			kind: diagnostic.ErrMissingRequiredKey,
			msg:  "missing `capability` key in module `Foo`",
		},
		{
			name: "missing category",
			src:  `type: Foo(L), capability: "c" @ 1, description: "d"`,
			kind: diagnostic.ErrMissingRequiredKey,
			msg:  "missing `category` key",
		},
		{
			name: "missing description",
			src:  `type: Foo(L), capability: "c" @ 1, category: Video`,
			kind: diagnostic.ErrMissingRequiredKey,
			msg:  "missing `description` key",
		},
		{
			name: "float score",
			src:  `type: Foo(L), capability: "c" @ 1.5, category: Video, description: "d"`,
			kind: diagnostic.ErrTypeConstraint,
			msg:  "capability score must be an integer",
		},
		{
			name: "score overflow",
			src:  `type: Foo(L), capability: "c" @ 3000000000, category: Video, description: "d"`,
			kind: diagnostic.ErrTypeConstraint,
			msg:  "does not fit in a 32-bit integer",
		},
		{
			name: "empty prefix",
			src:  head + `#[prefix = ""] params: { x: bool { default: true, text: "x", long_text: "x" } }`,
			kind: diagnostic.ErrPrefixMissing,
			msg:  "prefix of parameter `x` is empty",
		},
		{
			name: "unsupported type",
			src:  withParam(`x: u8 { default: 1, text: "x", long_text: "x" }`),
			kind: diagnostic.ErrTypeConstraint,
			msg:  "unsupported type `u8`",
		},
		{
			name: "string with integer default",
			src:  withParam(`x: string { default: 1, text: "x", long_text: "x" }`),
			kind: diagnostic.ErrTypeConstraint,
			msg:  "default of `x` must be a string, found integer 1",
		},
		{
			name: "int with float default",
			src:  withParam(`x: i64 { default: 1.5, text: "x", long_text: "x" }`),
			kind: diagnostic.ErrTypeConstraint,
			msg:  "must be an integer",
		},
		{
			name: "bool with string default",
			src:  withParam(`x: bool { default: "yes", text: "x", long_text: "x" }`),
			kind: diagnostic.ErrTypeConstraint,
			msg:  "must be `true` or `false`",
		},
		{
			name: "int overflow",
			src:  withParam(`x: i64 { default: 99999999999999999999, text: "x", long_text: "x" }`),
			kind: diagnostic.ErrTypeConstraint,
			msg:  "does not fit in int64",
		},
		{
			name: "float32 overflow",
			src:  withParam(`x: f32 { default: 1e40, text: "x", long_text: "x" }`),
			kind: diagnostic.ErrTypeConstraint,
			msg:  "outside the float32 range",
		},
		{
			name: "range on bool",
			src:  withParam(`x: bool { default: true, range: 0..=1, text: "x", long_text: "x" }`),
			kind: diagnostic.ErrRangeConstraint,
			msg:  "`range` is not supported on bool parameter `x`",
		},
		{
			name: "range on string",
			src:  withParam(`x: str { default: "a", range: 0..=1, text: "x", long_text: "x" }`),
			kind: diagnostic.ErrRangeConstraint,
			msg:  "not supported on string parameter",
		},
		{
			name: "half open range",
			src:  withParam(`x: i64 { default: 1, range: 0.., text: "x", long_text: "x" }`),
			kind: diagnostic.ErrRangeConstraint,
			msg:  "must be closed",
		},
		{
			name: "missing upper bound",
			src:  withParam(`x: i64 { default: 1, range: 0..=, text: "x", long_text: "x" }`),
			kind: diagnostic.ErrRangeConstraint,
			msg:  "must be closed",
		},
		{
			name: "exclusive range",
			src:  withParam(`x: i64 { default: 1, range: 0..5, text: "x", long_text: "x" }`),
			kind: diagnostic.ErrRangeConstraint,
			msg:  "must be closed",
		},
		{
			name: "float bound on int",
			src:  withParam(`x: i64 { default: 1, range: 0..=1.5, text: "x", long_text: "x" }`),
			kind: diagnostic.ErrRangeConstraint,
			msg:  "must use integers, found 1.5",
		},
		{
			name: "rgb on string",
			src:  withParam(`#[rgb] x: str { default: "a", text: "x", long_text: "x" }`),
			kind: diagnostic.ErrAnnotationConflict,
			msg:  "`#[rgb]` only applies to int64 parameters",
		},
		{
			name: "font on int",
			src:  withParam(`#[font] x: i64 { default: 1, text: "x", long_text: "x" }`),
			kind: diagnostic.ErrAnnotationConflict,
			msg:  "`#[font]` only applies to string parameters",
		},
		{
			name: "nested submodules",
			src: head + `submodules: [{ type: Bar(L), capability: "c" @ 1, category: Video, description: "d",
				submodules: [{ type: Baz(L), capability: "c" @ 1, category: Video, description: "d" }] }]`,
			kind: diagnostic.ErrNesting,
			msg:  "submodule `Bar` declares its own submodules",
		},
		{
			name: "nested empty submodules",
			src: head + `submodules: [{ type: Bar(L), capability: "c" @ 1, category: Video, description: "d",
				submodules: [] }]`,
			kind: diagnostic.ErrNesting,
			msg:  "submodule `Bar` declares its own submodules",
		},
		{
			name: "parameter declared twice",
			src: withParam(`x: bool { default: true, text: "x", long_text: "x" },
				x: bool { default: false, text: "x", long_text: "x" }`),
			kind: diagnostic.ErrGrammar,
			msg:  "parameter `x` is declared twice",
		},
		{
			name: "parameters share a field",
			src: withParam(`a_b: bool { default: true, text: "x", long_text: "x" },
				aB: bool { default: false, text: "x", long_text: "x" }`),
			kind: diagnostic.ErrGrammar,
			msg:  "parameters `a_b` and `aB` both map to field `AB`",
		},
		{
			name: "parameters share a key",
			src: withParam(`a_b: bool { default: true, text: "x", long_text: "x" },
				#[prefix = "foo-a"] b: bool { default: false, text: "x", long_text: "x" }`),
			kind: diagnostic.ErrGrammar,
			msg:  "parameters `a_b` and `b` are both registered as `foo-a-b`",
		},
		{
			name: "error inside submodule",
			src:  head + `submodules: [{ type: Bar(L), capability: "c" @ 1, category: Video }]`,
			kind: diagnostic.ErrMissingRequiredKey,
			msg:  "missing `description` key in module `Bar`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Validate(mustParse(t, tt.src))
			require.Error(t, err)

			assert.ErrorIs(t, err, tt.kind)
			assert.Contains(t, err.Error(), tt.msg)
			assert.True(t, res.HasErrors())
		})
	}
}

func TestValidate_MissingPrefixOnBuiltModule(t *testing.T) {
	m := mustParse(t, head)
	m.Params = &descriptor.ParamList{Items: []*descriptor.Parameter{{
		Name:    descriptor.Ident{Name: "x"},
		Type:    descriptor.ScalarBool,
		Default: descriptor.BoolLiteral(true, m.Span),
	}}}

	_, err := Validate(m)
	assert.ErrorIs(t, err, diagnostic.ErrPrefixMissing)
}

func TestValidate_ParamPrefixOverride(t *testing.T) {
	m := mustParse(t, withParam(`#[prefix = "osd"] x: bool { default: true, text: "x", long_text: "x" }`))
	m.Prefix = nil

	_, err := Validate(m)
	assert.NoError(t, err)
}

func TestValidate_Warnings(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{
			name: "rgb with range",
			src:  withParam(`#[rgb] x: i64 { default: 0, range: 1..=2, text: "x", long_text: "x" }`),
			code: CodeRGBRangeOverride,
		},
		{
			name: "unknown category",
			src:  `type: Foo(L), capability: "c" @ 1, category: Vidoe, description: "d"`,
			code: CodeUnknownCategory,
		},
		{
			name: "empty range",
			src:  withParam(`x: f32 { default: 0, range: 5..=-5, text: "x", long_text: "x" }`),
			code: CodeEmptyRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Validate(mustParse(t, tt.src))
			require.NoError(t, err)
			require.Len(t, res.Warnings, 1)

			assert.Equal(t, tt.code, res.Warnings[0].Code)
			assert.NotNil(t, res.Warnings[0].Range)
		})
	}
}

func TestValidate_UnknownCategoryHint(t *testing.T) {
	res, err := Validate(mustParse(t, `type: Foo(L), capability: "c" @ 1, category: Vidoe, description: "d"`))
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)

	assert.Contains(t, res.Warnings[0].Message, `did you mean "Video"?`)
	assert.Equal(t, "Foo", res.Warnings[0].Module)
}

func TestValidate_RejectsNUL(t *testing.T) {
	_, err := Validate(mustParse(t, `type: Foo(L), capability: "c" @ 1, category: Video, description: "a\0b"`))
	require.Error(t, err)

	assert.ErrorIs(t, err, diagnostic.ErrTypeConstraint)
	assert.Contains(t, err.Error(), "contains a NUL byte")
}
