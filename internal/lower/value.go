package lower

import (
	"strconv"
)

// ValueKind is the fixed-width representation of a config value.
type ValueKind int

const (
	// ValueInt holds integers and booleans as a 64-bit signed integer.
	ValueInt ValueKind = iota + 1
	// ValueFloat holds floats as a double.
	ValueFloat
	// ValueString holds text, sent as a NUL-terminated byte sequence.
	ValueString
)

// Value is a config value or range bound as the protocol receives it.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Str   string
}

// IntValue returns an integer value.
func IntValue(v int64) Value { return Value{Kind: ValueInt, Int: v} }

// FloatValue returns a float value.
func FloatValue(v float64) Value { return Value{Kind: ValueFloat, Float: v} }

// StringValue returns a string value.
func StringValue(v string) Value { return Value{Kind: ValueString, Str: v} }

// BoolValue returns 1 or 0 as an integer value.
func BoolValue(v bool) Value {
	if v {
		return IntValue(1)
	}

	return IntValue(0)
}

func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ValueString:
		return strconv.Quote(v.Str)
	default:
		return "<unset>"
	}
}

// MarshalYAML renders the value as a plain scalar.
func (v Value) MarshalYAML() (any, error) {
	switch v.Kind {
	case ValueInt:
		return v.Int, nil
	case ValueFloat:
		return v.Float, nil
	default:
		return v.Str, nil
	}
}

// CString returns s followed by a NUL byte.
func CString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)

	return b
}
