package descriptor

//go:generate go tool stringer -type=ScalarType -linecomment -output=scalar_string.go

// ScalarType is one of the four supported parameter types.
type ScalarType int

const (
	ScalarInvalid ScalarType = iota // invalid

	ScalarInt64   // int64
	ScalarFloat32 // float32
	ScalarBool    // bool
	ScalarString  // string
)

// scalarSpellings maps every accepted spelling to its type.
var scalarSpellings = map[string]ScalarType{
	"int64":   ScalarInt64,
	"i64":     ScalarInt64,
	"float32": ScalarFloat32,
	"f32":     ScalarFloat32,
	"bool":    ScalarBool,
	"string":  ScalarString,
	"str":     ScalarString,
}

// ParseScalarType resolves a type name. It returns ScalarInvalid and false
// for anything outside the supported set.
func ParseScalarType(name string) (ScalarType, bool) {
	t, ok := scalarSpellings[name]
	return t, ok
}

// IsNumeric reports whether ranges are meaningful for the type.
func (t ScalarType) IsNumeric() bool {
	return t == ScalarInt64 || t == ScalarFloat32
}

// GoType returns the Go type used for the type in the parameter holder.
// Strings are owned text.
func (t ScalarType) GoType() string {
	switch t {
	case ScalarInt64:
		return "int64"
	case ScalarFloat32:
		return "float32"
	case ScalarBool:
		return "bool"
	case ScalarString:
		return "string"
	default:
		return ""
	}
}
