package descriptor

import (
	"fmt"
	"math"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

//go:generate go tool stringer -type=LiteralKind -linecomment -output=literal_string.go

// LiteralKind is the lexical class of a literal.
type LiteralKind int

const (
	_ LiteralKind = iota // invalid

	LitInt    // integer
	LitFloat  // float
	LitBool   // bool
	LitString // string
)

// Literal is a constant value written in the source.
type Literal struct {
	Kind LiteralKind
	// Raw is the literal as written, including any sign.
	Raw   string
	Value cty.Value
	Span  hcl.Range
}

// IntLiteral builds an integer literal.
func IntLiteral(raw string, v *big.Int, span hcl.Range) Literal {
	return Literal{
		Kind:  LitInt,
		Raw:   raw,
		Value: cty.NumberVal(new(big.Float).SetInt(v)),
		Span:  span,
	}
}

// FloatLiteral builds a floating point literal from its decimal text.
func FloatLiteral(raw, text string, span hcl.Range) (Literal, error) {
	v, err := cty.ParseNumberVal(text)
	if err != nil {
		return Literal{}, fmt.Errorf("invalid float literal %q: %w", raw, err)
	}

	return Literal{Kind: LitFloat, Raw: raw, Value: v, Span: span}, nil
}

// BoolLiteral builds a boolean literal.
func BoolLiteral(v bool, span hcl.Range) Literal {
	raw := "false"
	if v {
		raw = "true"
	}

	return Literal{Kind: LitBool, Raw: raw, Value: cty.BoolVal(v), Span: span}
}

// StringLiteral builds a string literal. raw keeps the quoted source form.
func StringLiteral(raw, v string, span hcl.Range) Literal {
	return Literal{Kind: LitString, Raw: raw, Value: cty.StringVal(v), Span: span}
}

// Negate returns the literal with its sign flipped. Only numeric literals
// can be negated.
func (l Literal) Negate(span hcl.Range) (Literal, error) {
	if !l.IsNumeric() {
		return Literal{}, fmt.Errorf("cannot negate %s literal %s", l.Kind, l.Raw)
	}

	return Literal{
		Kind:  l.Kind,
		Raw:   "-" + l.Raw,
		Value: l.Value.Negate(),
		Span:  span,
	}, nil
}

// IsSet reports whether the literal was present in the source.
func (l Literal) IsSet() bool {
	return l.Kind != 0
}

// IsNumeric reports whether the literal is an integer or a float.
func (l Literal) IsNumeric() bool {
	return l.Kind == LitInt || l.Kind == LitFloat
}

// Int64 returns the value as an int64, failing on fractions and overflow.
func (l Literal) Int64() (int64, error) {
	if !l.Value.Type().Equals(cty.Number) {
		return 0, fmt.Errorf("%s literal %s is not a number", l.Kind, l.Raw)
	}

	var out int64
	if err := gocty.FromCtyValue(l.Value, &out); err != nil {
		return 0, fmt.Errorf("literal %s: %w", l.Raw, err)
	}

	return out, nil
}

// Int32 returns the value as an int32, failing on fractions and overflow.
func (l Literal) Int32() (int32, error) {
	v, err := l.Int64()
	if err != nil {
		return 0, err
	}

	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("literal %s does not fit in 32 bits", l.Raw)
	}

	return int32(v), nil
}

// Float64 returns the value as a double precision float.
func (l Literal) Float64() (float64, error) {
	if !l.Value.Type().Equals(cty.Number) {
		return 0, fmt.Errorf("%s literal %s is not a number", l.Kind, l.Raw)
	}

	var out float64
	if err := gocty.FromCtyValue(l.Value, &out); err != nil {
		return 0, fmt.Errorf("literal %s: %w", l.Raw, err)
	}

	return out, nil
}

// Bool returns the value of a boolean literal.
func (l Literal) Bool() bool {
	return l.Kind == LitBool && l.Value.True()
}

// Text returns the value of a string literal.
func (l Literal) Text() string {
	if l.Kind != LitString {
		return ""
	}

	return l.Value.AsString()
}
