package syntax

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugin-compiler/internal/descriptor"
	"plugin-compiler/internal/diagnostic"
)

const minimal = `type: Foo(Loader), capability: "decoder" @ 50, category: Video, description: "Foo decoder"`

func parse(t *testing.T, src string) *descriptor.Module {
	t.Helper()

	m, diags, err := Parse("t.desc", []byte(src))
	require.NoError(t, err)
	require.False(t, diags.HasWarnings(), "unexpected warnings: %v", diags.Warnings)

	return m
}

func TestParse_Minimal(t *testing.T) {
	m := parse(t, minimal)

	assert.Equal(t, "Foo", m.Kind.Name)
	assert.Equal(t, "Loader", m.Loader.Name)
	assert.Equal(t, "Video", m.Category.Name)
	require.NotNil(t, m.Capability)
	assert.Equal(t, "decoder", m.Capability.Name.Value)

	score, err := m.Capability.Score.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(50), score)

	require.NotNil(t, m.Description)
	assert.Equal(t, "Foo decoder", m.Description.Value)
	assert.Nil(t, m.Help)
	assert.Nil(t, m.Params)
	assert.Nil(t, m.Submodules)
}

func TestParse_TrailingComma(t *testing.T) {
	m := parse(t, minimal+",\n")
	assert.Equal(t, "Foo", m.Kind.Name)
}

func TestParse_FullFile(t *testing.T) {
	src, err := os.ReadFile("testdata/full.desc")
	require.NoError(t, err)

	m := parse(t, string(src))

	assert.Equal(t, "Decodes foo streams", m.Help.Value)
	assert.Equal(t, "foo", m.Shortname.Value)
	assert.Equal(t, []string{"foo", "foodec"}, m.Shortcuts.Values())
	require.NotNil(t, m.Prefix)
	assert.Equal(t, "foo-", m.Prefix.Value)

	params := m.Parameters()
	require.Len(t, params, 5)

	threads := params[0]
	assert.Equal(t, "threads", threads.Name.Name)
	assert.Equal(t, descriptor.ScalarInt64, threads.Type)
	require.NotNil(t, threads.Section)
	assert.Equal(t, "Main", threads.Section.Name.Value)
	assert.Equal(t, "Main options", threads.Section.Description.Value)
	require.NotNil(t, threads.Range)
	assert.True(t, threads.Range.Closed)
	assert.True(t, threads.Range.Bounded())
	assert.Equal(t, "Number of decoding threads", threads.LongText.Value)

	gain := params[1]
	assert.Equal(t, descriptor.ScalarFloat32, gain.Type)
	assert.Equal(t, descriptor.LitFloat, gain.Default.Kind)
	assert.Equal(t, "-1.5", gain.Default.Raw)
	from, err := gain.Range.From.Float64()
	require.NoError(t, err)
	assert.InDelta(t, -10.0, from, 0)

	assert.True(t, params[2].HasTag(descriptor.TagDeprecated))
	assert.True(t, params[2].Default.Bool())

	color := params[3]
	assert.True(t, color.HasTag(descriptor.TagRGB))
	v, err := color.Default.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(0x00FF00), v)

	font := params[4]
	assert.Equal(t, descriptor.ScalarString, font.Type)
	assert.True(t, font.HasTag(descriptor.TagFont))
	require.NotNil(t, font.Prefix)
	assert.Equal(t, "osd", font.Prefix.Value)
	assert.Equal(t, "Sans", font.Default.Text())

	subs := m.Children()
	require.Len(t, subs, 1)
	assert.Equal(t, "FooOut", subs[0].Kind.Name)
	assert.Equal(t, "video filter", subs[0].Capability.Name.Value)
}

func TestParse_BareCapabilityName(t *testing.T) {
	m := parse(t, `type: Foo(L), capability: decoder @ 1, category: Video, description: "d"`)
	assert.Equal(t, "decoder", m.Capability.Name.Value)
}

func TestParse_NegativeScore(t *testing.T) {
	m := parse(t, `type: Foo(L), capability: "decoder" @ -5, category: Video, description: "d"`)

	score, err := m.Capability.Score.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(-5), score)
}

func TestParse_LeadingZeroIsDecimal(t *testing.T) {
	m := parse(t, `type: Foo(L), capability: "decoder" @ 010, category: Video, description: "d"`)

	score, err := m.Capability.Score.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(10), score)
}

func TestParse_DuplicateKeyWarns(t *testing.T) {
	m, diags, err := Parse("t.desc", []byte(minimal+`, description: "Bar decoder"`))
	require.NoError(t, err)

	assert.Equal(t, "Bar decoder", m.Description.Value)
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "duplicate_key", diags.Warnings[0].Code)
	assert.Equal(t, "description", diags.Warnings[0].Key)
}

func TestParse_HalfOpenRangeIsKept(t *testing.T) {
	m := parse(t, `type: Foo(L), capability: "c" @ 1, category: Video, description: "d",
		#[prefix = "foo"]
		params: { x: i64 { default: 1, range: 1.., text: "x", long_text: "x" } }`)

	iv := m.Parameters()[0].Range
	require.NotNil(t, iv)
	assert.False(t, iv.Closed)
	assert.NotNil(t, iv.From)
	assert.Nil(t, iv.To)
}

func TestParse_Errors(t *testing.T) {
	const head = `type: Foo(L), capability: "c" @ 1, category: Video, description: "d", `

	tests := []struct {
		name string
		src  string
		kind error
		msg  string
	}{
		{
			name: "unknown key with hint",
			src:  `type: Foo(L), capabilty: "c" @ 1`,
			kind: diagnostic.ErrUnknownKey,
			msg:  `did you mean "capability"?`,
		},
		{
			name: "missing separator",
			src:  `type: Foo(L) capability: "c" @ 1`,
			kind: diagnostic.ErrGrammar,
			msg:  "expected ',' between module entries, found identifier `capability`",
		},
		{
			name: "missing loader",
			src:  `type: Foo, category: Video`,
			kind: diagnostic.ErrGrammar,
			msg:  "expected '('",
		},
		{
			name: "missing score separator",
			src:  `capability: "c" 50`,
			kind: diagnostic.ErrGrammar,
			msg:  "expected '@'",
		},
		{
			name: "unclosed params",
			src:  head + `#[prefix = "p"] params: { x: bool { default: true, text: "x", long_text: "x" }`,
			kind: diagnostic.ErrGrammar,
			msg:  "to close the parameter list",
		},
		{
			name: "params without prefix",
			src:  head + `params: {}`,
			kind: diagnostic.ErrAnnotationConflict,
			msg:  "exactly one annotation",
		},
		{
			name: "params with two prefixes",
			src:  head + `#[prefix = "a"] #[prefix = "b"] params: {}`,
			kind: diagnostic.ErrAnnotationConflict,
			msg:  "exactly one annotation",
		},
		{
			name: "annotation on other key",
			src:  `#[prefix = "a"] category: Video`,
			kind: diagnostic.ErrAnnotationConflict,
			msg:  "no annotations are expected on `category`",
		},
		{
			name: "inner annotation on module",
			src:  `#![section(name = "s")] category: Video`,
			kind: diagnostic.ErrAnnotationConflict,
			msg:  "no inner annotations",
		},
		{
			name: "unknown parameter key",
			src:  head + `#[prefix = "p"] params: { x: bool { defualt: true } }`,
			kind: diagnostic.ErrUnknownKey,
			msg:  `did you mean "default"?`,
		},
		{
			name: "missing long_text",
			src:  head + `#[prefix = "p"] params: { x: bool { default: true, text: "x" } }`,
			kind: diagnostic.ErrMissingRequiredKey,
			msg:  "missing `long_text` key in parameter `x`",
		},
		{
			name: "unsupported tag",
			src:  head + `#[prefix = "p"] params: { #[colour] x: i64 { default: 1, text: "x", long_text: "x" } }`,
			kind: diagnostic.ErrAnnotationConflict,
			msg:  "unsupported annotation `#[colour]`",
		},
		{
			name: "tag with argument",
			src:  head + `#[prefix = "p"] params: { #[rgb = 1] x: i64 { default: 1, text: "x", long_text: "x" } }`,
			kind: diagnostic.ErrAnnotationConflict,
			msg:  "doesn't take any argument",
		},
		{
			name: "repeated tag",
			src:  head + `#[prefix = "p"] params: { #[rgb] #[rgb] x: i64 { default: 1, text: "x", long_text: "x" } }`,
			kind: diagnostic.ErrAnnotationConflict,
			msg:  "more than once",
		},
		{
			name: "section without name",
			src:  head + `#[prefix = "p"] params: { #![section(description = "d")] x: i64 { default: 1, text: "x", long_text: "x" } }`,
			kind: diagnostic.ErrMissingRequiredKey,
			msg:  "missing `name` key in section annotation",
		},
		{
			name: "section with unknown key",
			src:  head + `#[prefix = "p"] params: { #![section(title = "d")] x: i64 { default: 1, text: "x", long_text: "x" } }`,
			kind: diagnostic.ErrUnknownKey,
			msg:  "unknown key `title`",
		},
		{
			name: "range without operator",
			src:  head + `#[prefix = "p"] params: { x: i64 { default: 1, range: 1 5, text: "x", long_text: "x" } }`,
			kind: diagnostic.ErrGrammar,
			msg:  "expected '..='",
		},
		{
			name: "not a literal",
			src:  head + `#[prefix = "p"] params: { x: i64 { default: nope, text: "x", long_text: "x" } }`,
			kind: diagnostic.ErrGrammar,
			msg:  "expected a literal as default value, found identifier `nope`",
		},
		{
			name: "bad binary digits",
			src:  `capability: "c" @ 0b12`,
			kind: diagnostic.ErrGrammar,
			msg:  "invalid integer literal 0b12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, err := Parse("t.desc", []byte(tt.src))
			require.Error(t, err)
			assert.Nil(t, m)

			assert.ErrorIs(t, err, tt.kind)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	_, _, err := Parse("t.desc", []byte("type: Foo(L),\n  capabilty: \"c\" @ 1"))
	require.Error(t, err)

	var derr *diagnostic.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "capabilty", derr.Key)
	assert.Equal(t, 2, derr.Range.Start.Line)
	assert.Equal(t, 3, derr.Range.Start.Column)
}
