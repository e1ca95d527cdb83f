package descriptor

// ArgsShape is the shape of the parameter holder generated for a module:
// one field per parameter, in declaration order.
type ArgsShape struct {
	TypeName string
	Fields   []ArgsField
}

// ArgsField is one field of the parameter holder.
type ArgsField struct {
	// Name is the parameter name as declared.
	Name string
	// Type is the Go type of the field.
	Type string
}

// Shape returns the parameter holder shape, or nil when the module declares
// no `params` block.
func (m *Module) Shape() *ArgsShape {
	if m.Params == nil {
		return nil
	}

	shape := &ArgsShape{TypeName: m.Kind.Name + "Args"}
	for _, p := range m.Params.Items {
		shape.Fields = append(shape.Fields, ArgsField{
			Name: p.Name.Name,
			Type: p.Type.GoType(),
		})
	}

	return shape
}
