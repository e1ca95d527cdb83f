package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugin-compiler/internal/descriptor"
)

func TestParamKey(t *testing.T) {
	tests := []struct {
		prefix string
		name   string
		want   string
	}{
		{prefix: "foo-", name: "bar_baz", want: "foo-bar-baz"},
		{prefix: "foo", name: "bar", want: "foo-bar"},
		{prefix: "foo_", name: "bar", want: "foo_bar"},
		{prefix: "foo", name: "a_b_c", want: "foo-a-b-c"},
		{prefix: "", name: "x", want: "-x"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ParamKey(tt.prefix, tt.name))
		})
	}
}

func TestModuleNameAndLabels(t *testing.T) {
	assert.Equal(t, "foo-rs", ModuleName("Foo"))
	assert.Equal(t, "mydecoder-rs", ModuleName("MyDecoder"))
	assert.Equal(t, "Foo-open", OpenLabel("Foo"))
	assert.Equal(t, "Foo-close", CloseLabel("Foo"))
	assert.Equal(t, "FooArgs", ArgsTypeName("Foo"))
}

func TestGoFieldName(t *testing.T) {
	tests := map[string]string{
		"bg_color":  "BgColor",
		"threads":   "Threads",
		"_private":  "Private",
		"x2":        "X2",
		"3d":        "X3d",
		"__":        "X",
		"already_C": "AlreadyC",
	}

	for in, want := range tests {
		assert.Equal(t, want, GoFieldName(in), in)
	}
}

func TestDerive(t *testing.T) {
	m := &descriptor.Module{
		Kind:   descriptor.Ident{Name: "Foo"},
		Prefix: &descriptor.Prefix{Value: "foo"},
		Params: &descriptor.ParamList{Items: []*descriptor.Parameter{
			{Name: descriptor.Ident{Name: "bg_color"}},
			{Name: descriptor.Ident{Name: "font"}, Prefix: &descriptor.Prefix{Value: "osd-"}},
		}},
		Submodules: &descriptor.ModuleList{Items: []*descriptor.Module{
			{Kind: descriptor.Ident{Name: "FooOut"}},
		}},
	}

	n, err := Derive(m)
	require.NoError(t, err)

	assert.Equal(t, "foo-rs", n.Module)
	assert.Equal(t, "Foo-open", n.Open)
	assert.Equal(t, []Param{
		{Name: "bg_color", Key: "foo-bg-color", Field: "BgColor"},
		{Name: "font", Key: "osd-font", Field: "Font"},
	}, n.Params)

	require.Len(t, n.Submodules, 1)
	assert.Equal(t, "FooOut-close", n.Submodules[0].Close)

	key, ok := n.Key("font")
	assert.True(t, ok)
	assert.Equal(t, "osd-font", key)

	again, err := Derive(m)
	require.NoError(t, err)
	assert.Equal(t, n, again)
}

func TestDerive_MissingPrefix(t *testing.T) {
	m := &descriptor.Module{
		Kind:   descriptor.Ident{Name: "Foo"},
		Params: &descriptor.ParamList{Items: []*descriptor.Parameter{{Name: descriptor.Ident{Name: "x"}}}},
	}

	_, err := Derive(m)
	assert.ErrorContains(t, err, `parameter "x" of Foo has no prefix`)
}
