package protocol

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugin-compiler/internal/diagnostic"
)

type testOp Opcode

func (o testOp) Opcode() Opcode { return Opcode(o) }

func TestOpcode_Names(t *testing.T) {
	assert.Equal(t, "CREATE_MODULE", OpCreateModule.String())
	assert.Equal(t, "SET_CONFIG_RANGE", OpSetConfigRange.String())
	assert.Equal(t, "Opcode(0)", Opcode(0).String())

	op, ok := ParseOpcode("SET_CONFIG_SECTION_DESC")
	require.True(t, ok)
	assert.Equal(t, OpSetConfigSectionDesc, op)

	_, ok = ParseOpcode("SET_NOTHING")
	assert.False(t, ok)
}

func TestRecorder_AllocatesHandles(t *testing.T) {
	r := NewRecorder()

	mod, st := r.Emit(0, testOp(OpCreateModule))
	require.Equal(t, StatusOK, st)
	assert.Equal(t, Handle(1), mod)

	same, _ := r.Emit(mod, testOp(OpSetName))
	assert.Equal(t, mod, same)

	cfg, _ := r.Emit(0, testOp(OpCreateConfigItem))
	assert.Equal(t, Handle(2), cfg)

	assert.Equal(t, []Opcode{OpCreateModule, OpSetName, OpCreateConfigItem}, r.Opcodes())
	assert.Equal(t, Handle(1), r.Entries[1].Target)
	assert.Equal(t, "#2", cfg.String())
	assert.Equal(t, "nil", Handle(0).String())
}

func TestRecorder_FailAt(t *testing.T) {
	r := NewRecorder().FailAt(2, FailureCode)

	for i := 0; i < 2; i++ {
		_, st := r.Emit(0, testOp(OpSetName))
		require.Equal(t, StatusOK, st)
	}

	_, st := r.Emit(0, testOp(OpSetName))
	assert.Equal(t, FailureCode, st)
	assert.Len(t, r.Entries, 2)
	assert.Equal(t, 3, r.Calls)

	r.Reset()
	assert.Empty(t, r.Ops())
	assert.Equal(t, 0, r.Calls)
}

func TestEmitterFunc(t *testing.T) {
	var seen []Opcode

	var e Emitter = EmitterFunc(func(target Handle, op Op) (Handle, Status) {
		seen = append(seen, op.Opcode())
		return target, StatusOK
	})

	_, st := e.Emit(3, testOp(OpSetHelp))
	assert.Equal(t, StatusOK, st)
	assert.Equal(t, []Opcode{OpSetHelp}, seen)
}

func TestItemKind(t *testing.T) {
	assert.Equal(t, "RGB", ItemRGB.String())
	assert.Equal(t, "ItemKind(7)", ItemKind(7).String())
	assert.True(t, ItemFont.IsString())
	assert.False(t, ItemBool.IsString())

	k, ok := ParseItemKind("DIRECTORY")
	require.True(t, ok)
	assert.Equal(t, ItemDirectory, k)
}

func TestLookupSubcategory(t *testing.T) {
	tests := []struct {
		name  string
		want  int64
		found bool
	}{
		{name: "VIDEO_VFILTER", want: 303, found: true},
		{name: "VideoVfilter", want: 303, found: true},
		{name: "Video", want: 301, found: true},
		{name: "InputStreamFilter", want: 407, found: true},
		{name: "Hidden", want: -1, found: true},
		{name: "Vidoe", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, ok := LookupSubcategory(tt.name)
			require.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, sc.Value)
		})
	}

	assert.Contains(t, SubcategoryNames(), "SoutRenderer")
	assert.Len(t, Subcategories(), 34)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register("FooLoader", SymbolLoader{
		Name:             "FooLoader",
		ActivateSymbol:   "open_{kind}",
		DeactivateSymbol: "close_{kind}",
	})

	l, err := reg.Lookup("FooLoader", hcl.Range{})
	require.NoError(t, err)

	assert.Equal(t, FuncRef{Loader: "FooLoader", Symbol: "open_Foo"}, l.Activate("Foo"))

	ref, ok := l.Deactivate("Foo")
	require.True(t, ok)
	assert.Equal(t, "FooLoader::close_Foo", ref.String())

	_, err = reg.Lookup("BarLoader", hcl.Range{})
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.ErrLoader)
	assert.Contains(t, err.Error(), "known loaders: FooLoader")

	reg.Fallback = ConventionLoader
	l, err = reg.Lookup("BarLoader", hcl.Range{})
	require.NoError(t, err)
	assert.Equal(t, "activate_Bar", l.Activate("Bar").Symbol)

	_, ok = l.Deactivate("Bar")
	assert.False(t, ok)
}
