package validate

import (
	"fmt"
	"math"

	"plugin-compiler/internal/descriptor"
	"plugin-compiler/internal/diagnostic"
	"plugin-compiler/internal/naming"
	"plugin-compiler/internal/suggest"
)

// rgbMax is the upper bound an rgb parameter is registered with.
const rgbMax = 0xFFFFFF

func checkPrefix(m *descriptor.Module, p *descriptor.Parameter) error {
	prefix, ok := m.ResolvePrefix(p)
	if !ok {
		return diagnostic.Newf(diagnostic.KindPrefixMissing, p.Name.Span,
			"parameter `%s` has no prefix, add `#[prefix = \"...\"]` to `params` or to the parameter", p.Name.Name).
			WithKey(p.Name.Name)
	}

	if prefix == "" {
		rng := p.Name.Span
		if p.Prefix != nil {
			rng = p.Prefix.Span
		} else if m.Prefix != nil {
			rng = m.Prefix.Span
		}

		return diagnostic.Newf(diagnostic.KindPrefixMissing, rng,
			"prefix of parameter `%s` is empty", p.Name.Name).WithKey(p.Name.Name)
	}

	return nil
}

// checkCollisions rejects parameters that would share a Go field or a
// registration key. Prefixes must already be resolvable.
func checkCollisions(m *descriptor.Module) error {
	fields := map[string]*descriptor.Parameter{}
	keys := map[string]*descriptor.Parameter{}

	for _, p := range m.Parameters() {
		field := naming.GoFieldName(p.Name.Name)
		if prev, ok := fields[field]; ok {
			if prev.Name.Name == p.Name.Name {
				return diagnostic.Newf(diagnostic.KindGrammar, p.Name.Span,
					"parameter `%s` is declared twice, first at %s", p.Name.Name, prev.Name.Span).
					WithKey(p.Name.Name)
			}

			return diagnostic.Newf(diagnostic.KindGrammar, p.Name.Span,
				"parameters `%s` and `%s` both map to field `%s`", prev.Name.Name, p.Name.Name, field).
				WithKey(p.Name.Name)
		}

		fields[field] = p

		prefix, _ := m.ResolvePrefix(p)

		key := naming.ParamKey(prefix, p.Name.Name)
		if prev, ok := keys[key]; ok {
			return diagnostic.Newf(diagnostic.KindGrammar, p.Name.Span,
				"parameters `%s` and `%s` are both registered as `%s`", prev.Name.Name, p.Name.Name, key).
				WithKey(p.Name.Name)
		}

		keys[key] = p
	}

	return nil
}

func (v *validator) param(m *descriptor.Module, p *descriptor.Parameter) error {
	if p.Type == descriptor.ScalarInvalid {
		err := diagnostic.Newf(diagnostic.KindTypeConstraint, p.TypeName.Span,
			"unsupported type `%s` for parameter `%s`, expected one of %s", p.TypeName.Name, p.Name.Name, scalarNames()).
			WithKey(p.Name.Name)

		return err.WithSuggestion(suggest.Hint(p.TypeName.Name, []string{"int64", "i64", "float32", "f32", "bool", "string", "str"}))
	}

	if err := checkDefault(p); err != nil {
		return err
	}

	if err := v.checkRange(m, p); err != nil {
		return err
	}

	return v.checkTags(m, p)
}

// checkDefault makes sure the default literal can be stored in the
// parameter's type.
func checkDefault(p *descriptor.Parameter) error {
	lit := p.Default
	mismatch := func() error {
		return diagnostic.Newf(diagnostic.KindTypeConstraint, lit.Span,
			"default of `%s` must be %s, found %s %s", p.Name.Name, expected(p.Type), lit.Kind, lit.Raw).
			WithKey(p.Name.Name)
	}

	switch p.Type {
	case descriptor.ScalarInt64:
		if lit.Kind != descriptor.LitInt {
			return mismatch()
		}

		if _, err := lit.Int64(); err != nil {
			return diagnostic.Newf(diagnostic.KindTypeConstraint, lit.Span,
				"default of `%s` does not fit in int64: %v", p.Name.Name, err).WithKey(p.Name.Name)
		}
	case descriptor.ScalarFloat32:
		if !lit.IsNumeric() {
			return mismatch()
		}

		return checkFloat32(p, lit)
	case descriptor.ScalarBool:
		if lit.Kind != descriptor.LitBool {
			return mismatch()
		}
	case descriptor.ScalarString:
		if lit.Kind != descriptor.LitString {
			return mismatch()
		}
	}

	return nil
}

func checkFloat32(p *descriptor.Parameter, lit descriptor.Literal) error {
	f, err := lit.Float64()
	if err == nil && (math.IsInf(f, 0) || math.IsNaN(f) || math.Abs(f) > math.MaxFloat32) {
		err = fmt.Errorf("%s is outside the float32 range", lit.Raw)
	}

	if err != nil {
		return diagnostic.Newf(diagnostic.KindTypeConstraint, lit.Span,
			"value of `%s` is not a valid float32: %v", p.Name.Name, err).WithKey(p.Name.Name)
	}

	return nil
}

func expected(t descriptor.ScalarType) string {
	switch t {
	case descriptor.ScalarInt64:
		return "an integer"
	case descriptor.ScalarFloat32:
		return "a number"
	case descriptor.ScalarBool:
		return "`true` or `false`"
	default:
		return "a string"
	}
}

func (v *validator) checkRange(m *descriptor.Module, p *descriptor.Parameter) error {
	iv := p.Range
	if iv == nil {
		return nil
	}

	if !p.Type.IsNumeric() {
		return diagnostic.Newf(diagnostic.KindRangeConstraint, iv.Span,
			"`range` is not supported on %s parameter `%s`", p.Type, p.Name.Name).WithKey(p.Name.Name)
	}

	if !iv.Bounded() {
		return diagnostic.Newf(diagnostic.KindRangeConstraint, iv.Span,
			"range of `%s` must be closed with both ends given, for example `-200..=100`", p.Name.Name).
			WithKey(p.Name.Name)
	}

	for _, end := range []*descriptor.Literal{iv.From, iv.To} {
		switch {
		case p.Type == descriptor.ScalarInt64 && end.Kind != descriptor.LitInt:
			return diagnostic.Newf(diagnostic.KindRangeConstraint, end.Span,
				"range of int64 parameter `%s` must use integers, found %s", p.Name.Name, end.Raw).
				WithKey(p.Name.Name)
		case p.Type == descriptor.ScalarInt64:
			if _, err := end.Int64(); err != nil {
				return diagnostic.Newf(diagnostic.KindRangeConstraint, end.Span,
					"range bound %s of `%s` does not fit in int64", end.Raw, p.Name.Name).WithKey(p.Name.Name)
			}
		case p.Type == descriptor.ScalarFloat32:
			if err := checkFloat32(p, *end); err != nil {
				return diagnostic.Newf(diagnostic.KindRangeConstraint, end.Span,
					"range bound %s of `%s` is not a valid float32", end.Raw, p.Name.Name).WithKey(p.Name.Name)
			}
		}
	}

	if from, to := iv.From.Value, iv.To.Value; from.GreaterThan(to).True() {
		v.res.AddWarningAt(iv.Span, CodeEmptyRange,
			fmt.Sprintf("range %s..=%s of `%s` is empty", iv.From.Raw, iv.To.Raw, p.Name.Name),
			m.Kind.Name, p.Name.Name)
	}

	return nil
}

func (v *validator) checkTags(m *descriptor.Module, p *descriptor.Parameter) error {
	for _, tag := range p.Tags.List() {
		span := p.TagSpans[tag]

		switch {
		case tag == descriptor.TagRGB && p.Type != descriptor.ScalarInt64:
			return diagnostic.Newf(diagnostic.KindAnnotationConflict, span,
				"`#[rgb]` only applies to int64 parameters, `%s` is %s", p.Name.Name, p.Type).WithKey(p.Name.Name)
		case tag.IsStringSubtype() && p.Type != descriptor.ScalarString:
			return diagnostic.Newf(diagnostic.KindAnnotationConflict, span,
				"`#[%s]` only applies to string parameters, `%s` is %s", tag, p.Name.Name, p.Type).WithKey(p.Name.Name)
		}
	}

	if p.HasTag(descriptor.TagRGB) && p.Range != nil {
		v.res.AddWarningAt(p.Range.Span, CodeRGBRangeOverride,
			fmt.Sprintf("`%s` is tagged rgb, its range is replaced by 0..=0x%X", p.Name.Name, rgbMax),
			m.Kind.Name, p.Name.Name)
	}

	return nil
}
