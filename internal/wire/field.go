package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"plugin-compiler/internal/lower"
)

// FieldType tags the payload of a field.
type FieldType uint8

const (
	// FieldInt is a signed 64-bit integer.
	FieldInt FieldType = iota + 1
	// FieldFloat is an IEEE 754 double.
	FieldFloat
	// FieldString is a NUL-terminated byte string.
	FieldString
	// FieldStringList is a run of NUL-terminated byte strings.
	FieldStringList
)

// Field is one operand of an encoded operation.
type Field struct {
	ID   uint16
	Type FieldType
	Data []byte
}

func intField(id uint16, v int64) Field {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, uint64(v))

	return Field{ID: id, Type: FieldInt, Data: data}
}

func floatField(id uint16, v float64) Field {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, math.Float64bits(v))

	return Field{ID: id, Type: FieldFloat, Data: data}
}

func stringField(id uint16, s string) Field {
	return Field{ID: id, Type: FieldString, Data: lower.CString(s)}
}

func stringListField(id uint16, items []string) Field {
	var data []byte
	for _, s := range items {
		data = append(data, lower.CString(s)...)
	}

	return Field{ID: id, Type: FieldStringList, Data: data}
}

func valueField(id uint16, v lower.Value) Field {
	switch v.Kind {
	case lower.ValueFloat:
		return floatField(id, v.Float)
	case lower.ValueString:
		return stringField(id, v.Str)
	default:
		return intField(id, v.Int)
	}
}

// Int decodes an integer field.
func (f Field) Int() (int64, error) {
	if f.Type != FieldInt || len(f.Data) != 8 {
		return 0, fmt.Errorf("field %d: %w: want int", f.ID, ErrFieldType)
	}

	return int64(binary.BigEndian.Uint64(f.Data)), nil
}

// Float decodes a float field.
func (f Field) Float() (float64, error) {
	if f.Type != FieldFloat || len(f.Data) != 8 {
		return 0, fmt.Errorf("field %d: %w: want float", f.ID, ErrFieldType)
	}

	return math.Float64frombits(binary.BigEndian.Uint64(f.Data)), nil
}

// Text decodes a string field without its terminator.
func (f Field) Text() (string, error) {
	if f.Type != FieldString {
		return "", fmt.Errorf("field %d: %w: want string", f.ID, ErrFieldType)
	}

	if len(f.Data) == 0 || f.Data[len(f.Data)-1] != 0 {
		return "", fmt.Errorf("field %d: %w", f.ID, ErrUnterminated)
	}

	return string(f.Data[:len(f.Data)-1]), nil
}

// TextList decodes a string list field.
func (f Field) TextList() ([]string, error) {
	if f.Type != FieldStringList {
		return nil, fmt.Errorf("field %d: %w: want string list", f.ID, ErrFieldType)
	}

	if len(f.Data) == 0 {
		return nil, nil
	}

	if f.Data[len(f.Data)-1] != 0 {
		return nil, fmt.Errorf("field %d: %w", f.ID, ErrUnterminated)
	}

	parts := bytes.Split(f.Data[:len(f.Data)-1], []byte{0})

	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}

	return out, nil
}

// Value decodes a config value of any kind.
func (f Field) Value() (lower.Value, error) {
	switch f.Type {
	case FieldInt:
		v, err := f.Int()
		return lower.IntValue(v), err
	case FieldFloat:
		v, err := f.Float()
		return lower.FloatValue(v), err
	case FieldString:
		v, err := f.Text()
		return lower.StringValue(v), err
	default:
		return lower.Value{}, fmt.Errorf("field %d: %w: want value", f.ID, ErrFieldType)
	}
}
