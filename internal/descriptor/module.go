package descriptor

import (
	"github.com/hashicorp/hcl/v2"
)

// Ident is an identifier together with its source span.
type Ident struct {
	Name string
	Span hcl.Range
}

// IsSet reports whether the identifier was present in the source.
func (i Ident) IsSet() bool {
	return i.Name != ""
}

// Text is a string literal together with its source span.
type Text struct {
	Value string
	Span  hcl.Range
}

// TextList is a bracketed list of string literals.
type TextList struct {
	Items []Text
	Span  hcl.Range
}

// Values returns the plain string values of the list.
func (l *TextList) Values() []string {
	if l == nil {
		return nil
	}

	out := make([]string, len(l.Items))
	for i, t := range l.Items {
		out[i] = t.Value
	}

	return out
}

// Capability is the role a module fulfills and its selection score.
type Capability struct {
	Name  Text
	Score Literal
	Span  hcl.Range
}

// Prefix is the namespace prepended to parameter registration keys.
type Prefix struct {
	Value string
	Span  hcl.Range
}

// Section groups the parameters that follow it under a labeled heading.
type Section struct {
	Name        Text
	Description *Text
	Span        hcl.Range
}

// Interval is a parameter range as written. From and To are nil when the
// corresponding bound is omitted; Closed is false for `a..b`.
type Interval struct {
	From   *Literal
	To     *Literal
	Closed bool
	Span   hcl.Range
}

// Bounded reports whether the interval is closed with both endpoints given.
func (iv *Interval) Bounded() bool {
	return iv != nil && iv.Closed && iv.From != nil && iv.To != nil
}

// Parameter is one configuration item exposed by a module.
type Parameter struct {
	Name Ident
	// TypeName is the scalar type as spelled in the source.
	TypeName Ident
	// Type is ScalarInvalid when TypeName is not a supported type.
	Type     ScalarType
	Default  Literal
	Range    *Interval
	Text     Text
	LongText Text
	// Prefix overrides the module prefix for this parameter only.
	Prefix  *Prefix
	Section *Section
	Tags    TagSet
	// TagSpans points at each tag annotation for diagnostics.
	TagSpans map[Tag]hcl.Range
	// DeprecationNote is the optional value of `#[deprecated = "..."]`.
	DeprecationNote string
	Span            hcl.Range
}

// HasTag reports whether the parameter carries tag.
func (p *Parameter) HasTag(tag Tag) bool {
	return p.Tags.Has(tag)
}

// ParamList is the braced `params` block.
type ParamList struct {
	Items []*Parameter
	Span  hcl.Range
}

// ModuleList is the bracketed `submodules` block.
type ModuleList struct {
	Items []*Module
	Span  hcl.Range
}

// Module is a fully parsed module body.
type Module struct {
	Kind        Ident
	Loader      Ident
	Category    Ident
	Capability  *Capability
	Description *Text
	Help        *Text
	Shortname   *Text
	Prefix      *Prefix
	Params      *ParamList
	Shortcuts   *TextList
	Submodules  *ModuleList
	Span        hcl.Range
	// TypeSpan points at the `type` key, used when the loader is missing.
	TypeSpan hcl.Range
}

// Parameters returns the declared parameters in order.
func (m *Module) Parameters() []*Parameter {
	if m.Params == nil {
		return nil
	}

	return m.Params.Items
}

// Children returns the declared sub-modules in order.
func (m *Module) Children() []*Module {
	if m.Submodules == nil {
		return nil
	}

	return m.Submodules.Items
}

// ResolvePrefix returns the prefix that applies to p: its own override, or
// the module prefix. ok is false when neither is set.
func (m *Module) ResolvePrefix(p *Parameter) (prefix string, ok bool) {
	if p.Prefix != nil {
		return p.Prefix.Value, true
	}

	if m.Prefix != nil {
		return m.Prefix.Value, true
	}

	return "", false
}
