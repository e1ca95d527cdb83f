package naming

import (
	"fmt"

	"plugin-compiler/internal/descriptor"
)

// Names holds every identifier derived from one module body.
type Names struct {
	Kind     string
	Module   string
	Open     string
	Close    string
	ArgsType string
	Params   []Param
	// Submodules are derived in declaration order.
	Submodules []Names
}

// Param is the derived naming of one parameter.
type Param struct {
	Name  string
	Key   string
	Field string
}

// Derive computes the names of m and its submodules. m must have passed
// validation; a parameter without a resolvable prefix is an error.
func Derive(m *descriptor.Module) (Names, error) {
	kind := m.Kind.Name

	n := Names{
		Kind:     kind,
		Module:   ModuleName(kind),
		Open:     OpenLabel(kind),
		Close:    CloseLabel(kind),
		ArgsType: ArgsTypeName(kind),
	}

	for _, p := range m.Parameters() {
		prefix, ok := m.ResolvePrefix(p)
		if !ok {
			return Names{}, fmt.Errorf("parameter %q of %s has no prefix", p.Name.Name, kind)
		}

		n.Params = append(n.Params, Param{
			Name:  p.Name.Name,
			Key:   ParamKey(prefix, p.Name.Name),
			Field: GoFieldName(p.Name.Name),
		})
	}

	for _, sub := range m.Children() {
		sn, err := Derive(sub)
		if err != nil {
			return Names{}, err
		}

		n.Submodules = append(n.Submodules, sn)
	}

	return n, nil
}

// Key returns the registration key of the named parameter.
func (n Names) Key(param string) (string, bool) {
	for _, p := range n.Params {
		if p.Name == param {
			return p.Key, true
		}
	}

	return "", false
}
