package lower

import (
	"errors"
	"fmt"

	"plugin-compiler/internal/descriptor"
	"plugin-compiler/internal/diagnostic"
	"plugin-compiler/internal/naming"
	"plugin-compiler/internal/protocol"
)

// ErrEmitFailed is matched by every error caused by the emitter refusing
// an operation.
var ErrEmitFailed = errors.New("registration refused")

// rgbMax is the fixed upper bound of rgb parameters.
const rgbMax = 0xFFFFFF

// EmitError reports the operation the emitter refused.
type EmitError struct {
	// Index is the zero-based position of the operation in the sequence.
	Index  int
	Opcode protocol.Opcode
	Status protocol.Status
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("%v: operation %d (%s) returned status %d", ErrEmitFailed, e.Index, e.Opcode, e.Status)
}

// Is matches ErrEmitFailed and diagnostic.ErrEmit.
func (e *EmitError) Is(target error) bool {
	return target == ErrEmitFailed || target == diagnostic.ErrEmit
}

// Engine lowers validated modules into registration operations.
type Engine struct {
	emitter protocol.Emitter
	loaders *protocol.Registry

	count  int
	module protocol.Handle
	config protocol.Handle
}

// NewEngine returns an Engine that sends operations to emitter and
// resolves loaders through loaders.
func NewEngine(emitter protocol.Emitter, loaders *protocol.Registry) *Engine {
	return &Engine{emitter: emitter, loaders: loaders}
}

// Emitted returns how many operations were sent, refused ones included.
func (e *Engine) Emitted() int {
	return e.count
}

// Lower emits the full operation sequence for m. m must have passed
// validation. Loaders are resolved before anything is emitted; after that
// the first refused operation stops the sequence.
func (e *Engine) Lower(m *descriptor.Module) (naming.Names, error) {
	names, err := naming.Derive(m)
	if err != nil {
		return naming.Names{}, err
	}

	loaders, err := e.resolveLoaders(m)
	if err != nil {
		return names, err
	}

	e.count, e.module, e.config = 0, 0, 0

	if e.module, err = e.emit(0, CreateModule{}); err != nil {
		return names, err
	}

	if _, err := e.emit(e.module, SetName{Name: names.Module}); err != nil {
		return names, err
	}

	if err := e.body(m, names, loaders[0]); err != nil {
		return names, err
	}

	for i, sub := range m.Children() {
		if e.module, err = e.emit(e.module, CreateModule{}); err != nil {
			return names, err
		}

		if err := e.body(sub, names.Submodules[i], loaders[i+1]); err != nil {
			return names, err
		}
	}

	return names, nil
}

// resolveLoaders returns the loader of m followed by those of its
// submodules.
func (e *Engine) resolveLoaders(m *descriptor.Module) ([]protocol.Loader, error) {
	modules := append([]*descriptor.Module{m}, m.Children()...)
	out := make([]protocol.Loader, 0, len(modules))

	for _, mod := range modules {
		if e.loaders == nil {
			return nil, diagnostic.Newf(diagnostic.KindLoader, mod.Loader.Span,
				"loader `%s` cannot be resolved, no registry is configured", mod.Loader.Name).WithKey(mod.Loader.Name)
		}

		l, err := e.loaders.Lookup(mod.Loader.Name, mod.Loader.Span)
		if err != nil {
			return nil, err
		}

		out = append(out, l)
	}

	return out, nil
}

func (e *Engine) emit(target protocol.Handle, op protocol.Op) (protocol.Handle, error) {
	index := e.count
	e.count++

	h, status := e.emitter.Emit(target, op)
	if status != protocol.StatusOK {
		return 0, &EmitError{Index: index, Opcode: op.Opcode(), Status: status}
	}

	return h, nil
}

// emitModule sends ops to the current module handle.
func (e *Engine) emitModule(ops ...protocol.Op) error {
	for _, op := range ops {
		if _, err := e.emit(e.module, op); err != nil {
			return err
		}
	}

	return nil
}

// emitConfig sends ops to the current config handle.
func (e *Engine) emitConfig(ops ...protocol.Op) error {
	for _, op := range ops {
		if _, err := e.emit(e.config, op); err != nil {
			return err
		}
	}

	return nil
}

// createConfig creates a config entry and makes it current. Creation is
// not bound to the module handle.
func (e *Engine) createConfig(op protocol.Op) error {
	h, err := e.emit(0, op)
	if err != nil {
		return err
	}

	e.config = h

	return nil
}

func (e *Engine) body(m *descriptor.Module, names naming.Names, loader protocol.Loader) error {
	// Validation guarantees the score fits.
	score, _ := m.Capability.Score.Int32()

	ops := []protocol.Op{
		SetCapability{Capability: m.Capability.Name.Value},
		SetScore{Score: score},
		SetDescription{Text: m.Description.Value},
	}

	if m.Help != nil {
		ops = append(ops, SetHelp{Text: m.Help.Value})
	}

	if m.Shortname != nil {
		ops = append(ops, SetShortname{Text: m.Shortname.Value})
	}

	if m.Shortcuts != nil {
		ops = append(ops, SetShortcuts{Shortcuts: m.Shortcuts.Values()})
	}

	ops = append(ops, SetOpenCallback{Label: names.Open, Ref: loader.Activate(names.Kind)})

	if ref, ok := loader.Deactivate(names.Kind); ok {
		ops = append(ops, SetCloseCallback{Label: names.Close, Ref: ref})
	}

	if err := e.emitModule(ops...); err != nil {
		return err
	}

	if err := e.createConfig(CreateConfigSubcategory{Category: m.Category.Name}); err != nil {
		return err
	}

	for i, p := range m.Parameters() {
		if err := e.param(p, names.Params[i]); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) param(p *descriptor.Parameter, name naming.Param) error {
	if s := p.Section; s != nil {
		desc := SetConfigSectionDesc{Name: s.Name.Value}
		if s.Description != nil {
			text := s.Description.Value
			desc.Description = &text
		}

		if err := e.createConfig(CreateConfigSection{}); err != nil {
			return err
		}

		if err := e.emitConfig(desc); err != nil {
			return err
		}
	}

	if err := e.createConfig(CreateConfigItem{Kind: ItemKindOf(p)}); err != nil {
		return err
	}

	ops := []protocol.Op{
		SetConfigDesc{Text: p.Text.Value, LongText: p.LongText.Value},
		SetConfigName{Key: name.Key},
		SetConfigValue{Value: DefaultValue(p)},
	}

	if p.HasTag(descriptor.TagDeprecated) {
		ops = append(ops, SetConfigRemoved{})
	}

	if lo, hi, ok := RangeOf(p); ok {
		ops = append(ops, SetConfigRange{Min: lo, Max: hi})
	}

	return e.emitConfig(ops...)
}

// ItemKindOf returns the protocol item kind of p. Tags refine the plain
// kind of the scalar type; string tags are checked in a fixed order.
func ItemKindOf(p *descriptor.Parameter) protocol.ItemKind {
	switch p.Type {
	case descriptor.ScalarInt64:
		if p.HasTag(descriptor.TagRGB) {
			return protocol.ItemRGB
		}

		return protocol.ItemInteger
	case descriptor.ScalarFloat32:
		return protocol.ItemFloat
	case descriptor.ScalarBool:
		return protocol.ItemBool
	}

	switch {
	case p.HasTag(descriptor.TagFont):
		return protocol.ItemFont
	case p.HasTag(descriptor.TagSavefile):
		return protocol.ItemSavefile
	case p.HasTag(descriptor.TagLoadfile):
		return protocol.ItemLoadfile
	case p.HasTag(descriptor.TagPassword):
		return protocol.ItemPassword
	case p.HasTag(descriptor.TagDirectory):
		return protocol.ItemDirectory
	default:
		return protocol.ItemString
	}
}

// DefaultValue converts the default of p to its fixed-width form.
func DefaultValue(p *descriptor.Parameter) Value {
	return literalValue(p.Type, p.Default)
}

// RangeOf returns the bounds registered for p. rgb parameters always get
// [0, 0xFFFFFF], whatever range they declare.
func RangeOf(p *descriptor.Parameter) (lo, hi Value, ok bool) {
	if p.HasTag(descriptor.TagRGB) {
		return IntValue(0), IntValue(rgbMax), true
	}

	if !p.Range.Bounded() || !p.Type.IsNumeric() {
		return Value{}, Value{}, false
	}

	return literalValue(p.Type, *p.Range.From), literalValue(p.Type, *p.Range.To), true
}

func literalValue(t descriptor.ScalarType, lit descriptor.Literal) Value {
	switch t {
	case descriptor.ScalarInt64:
		v, _ := lit.Int64()
		return IntValue(v)
	case descriptor.ScalarFloat32:
		v, _ := lit.Float64()
		return FloatValue(v)
	case descriptor.ScalarBool:
		return BoolValue(lit.Bool())
	default:
		return StringValue(lit.Text())
	}
}
