package lower

import (
	"fmt"
	"strings"

	"plugin-compiler/internal/protocol"
)

// The operation set. Every type here implements protocol.Op, and there is
// exactly one type per protocol.Opcode.

type CreateModule struct{}

type SetName struct {
	Name string `yaml:"name"`
}

type SetCapability struct {
	Capability string `yaml:"capability"`
}

type SetScore struct {
	Score int32 `yaml:"score"`
}

type SetDescription struct {
	Text string `yaml:"text"`
}

type SetHelp struct {
	Text string `yaml:"text"`
}

type SetShortname struct {
	Text string `yaml:"text"`
}

type SetShortcuts struct {
	Shortcuts []string `yaml:"shortcuts"`
}

type SetOpenCallback struct {
	Label string           `yaml:"label"`
	Ref   protocol.FuncRef `yaml:"ref"`
}

type SetCloseCallback struct {
	Label string           `yaml:"label"`
	Ref   protocol.FuncRef `yaml:"ref"`
}

// CreateConfigSubcategory carries the category identifier as written.
// Resolving it to a protocol value is left to the emitter.
type CreateConfigSubcategory struct {
	Category string `yaml:"category"`
}

type CreateConfigSection struct{}

// SetConfigSectionDesc names a section. Description is nil when the
// section has none.
type SetConfigSectionDesc struct {
	Name        string  `yaml:"name"`
	Description *string `yaml:"description,omitempty"`
}

type CreateConfigItem struct {
	Kind protocol.ItemKind `yaml:"kind"`
}

type SetConfigDesc struct {
	Text     string `yaml:"text"`
	LongText string `yaml:"long_text"`
}

type SetConfigName struct {
	Key string `yaml:"key"`
}

type SetConfigValue struct {
	Value Value `yaml:"value"`
}

type SetConfigRemoved struct{}

type SetConfigRange struct {
	Min Value `yaml:"min"`
	Max Value `yaml:"max"`
}

func (CreateModule) Opcode() protocol.Opcode            { return protocol.OpCreateModule }
func (SetName) Opcode() protocol.Opcode                 { return protocol.OpSetName }
func (SetCapability) Opcode() protocol.Opcode           { return protocol.OpSetCapability }
func (SetScore) Opcode() protocol.Opcode                { return protocol.OpSetScore }
func (SetDescription) Opcode() protocol.Opcode          { return protocol.OpSetDescription }
func (SetHelp) Opcode() protocol.Opcode                 { return protocol.OpSetHelp }
func (SetShortname) Opcode() protocol.Opcode            { return protocol.OpSetShortname }
func (SetShortcuts) Opcode() protocol.Opcode            { return protocol.OpSetShortcuts }
func (SetOpenCallback) Opcode() protocol.Opcode         { return protocol.OpSetOpenCallback }
func (SetCloseCallback) Opcode() protocol.Opcode        { return protocol.OpSetCloseCallback }
func (CreateConfigSubcategory) Opcode() protocol.Opcode { return protocol.OpCreateConfigSubcategory }
func (CreateConfigSection) Opcode() protocol.Opcode     { return protocol.OpCreateConfigSection }
func (SetConfigSectionDesc) Opcode() protocol.Opcode    { return protocol.OpSetConfigSectionDesc }
func (CreateConfigItem) Opcode() protocol.Opcode        { return protocol.OpCreateConfigItem }
func (SetConfigDesc) Opcode() protocol.Opcode           { return protocol.OpSetConfigDesc }
func (SetConfigName) Opcode() protocol.Opcode           { return protocol.OpSetConfigName }
func (SetConfigValue) Opcode() protocol.Opcode          { return protocol.OpSetConfigValue }
func (SetConfigRemoved) Opcode() protocol.Opcode        { return protocol.OpSetConfigRemoved }
func (SetConfigRange) Opcode() protocol.Opcode          { return protocol.OpSetConfigRange }

// Format renders op the way listings show it, for example
// `SET_SCORE(50)`. Operations without operands are just the opcode.
func Format(op protocol.Op) string {
	args := operands(op)
	if args == nil {
		return op.Opcode().String()
	}

	return op.Opcode().String() + "(" + strings.Join(args, ", ") + ")"
}

func operands(op protocol.Op) []string {
	q := func(s string) string { return fmt.Sprintf("%q", s) }

	switch o := op.(type) {
	case SetName:
		return []string{q(o.Name)}
	case SetCapability:
		return []string{q(o.Capability)}
	case SetScore:
		return []string{fmt.Sprint(o.Score)}
	case SetDescription:
		return []string{q(o.Text)}
	case SetHelp:
		return []string{q(o.Text)}
	case SetShortname:
		return []string{q(o.Text)}
	case SetShortcuts:
		items := make([]string, len(o.Shortcuts))
		for i, s := range o.Shortcuts {
			items[i] = q(s)
		}

		return []string{"[" + strings.Join(items, ", ") + "]"}
	case SetOpenCallback:
		return []string{q(o.Label), o.Ref.String()}
	case SetCloseCallback:
		return []string{q(o.Label), o.Ref.String()}
	case CreateConfigSubcategory:
		return []string{o.Category}
	case SetConfigSectionDesc:
		if o.Description == nil {
			return []string{q(o.Name), "nil"}
		}

		return []string{q(o.Name), q(*o.Description)}
	case CreateConfigItem:
		return []string{o.Kind.String()}
	case SetConfigDesc:
		return []string{q(o.Text), q(o.LongText)}
	case SetConfigName:
		return []string{q(o.Key)}
	case SetConfigValue:
		return []string{o.Value.String()}
	case SetConfigRange:
		return []string{o.Min.String(), o.Max.String()}
	default:
		return nil
	}
}
