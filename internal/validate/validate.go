package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"plugin-compiler/internal/descriptor"
	"plugin-compiler/internal/diagnostic"
	"plugin-compiler/internal/protocol"
	"plugin-compiler/internal/suggest"
)

// Warning codes.
const (
	CodeRGBRangeOverride = "rgb_range_override"
	CodeUnknownCategory  = "unknown_category"
	CodeEmptyRange       = "empty_range"
)

// Validate checks m and its submodules. The returned Diagnostics holds the
// warnings found so far and, on failure, the error as well.
func Validate(m *descriptor.Module) (*diagnostic.Diagnostics, error) {
	res := &diagnostic.Diagnostics{}
	if m == nil {
		err := diagnostic.Newf(diagnostic.KindGrammar, hcl.Range{}, "module is nil")
		res.AddErr(err)

		return res, err
	}

	v := &validator{res: res}
	if err := v.module(m, 0); err != nil {
		var derr *diagnostic.Error
		if errors.As(err, &derr) {
			res.AddErr(derr)
		}

		return res, err
	}

	return res, nil
}

type validator struct {
	res *diagnostic.Diagnostics
}

func (v *validator) module(m *descriptor.Module, depth int) error {
	if err := requiredKeys(m); err != nil {
		return err
	}

	kind := m.Kind.Name

	if err := checkTexts(m); err != nil {
		return err
	}

	if err := checkScore(m.Capability); err != nil {
		return err
	}

	if _, ok := protocol.LookupSubcategory(m.Category.Name); !ok {
		msg := fmt.Sprintf("category `%s` is not a known subcategory and is passed through verbatim", m.Category.Name)
		if hint := suggest.Hint(m.Category.Name, protocol.SubcategoryNames()); hint != "" {
			msg += ", " + hint
		}

		v.res.AddWarningAt(m.Category.Span, CodeUnknownCategory, msg, kind, "category")
	}

	for _, p := range m.Parameters() {
		if err := checkPrefix(m, p); err != nil {
			return err
		}
	}

	if err := checkCollisions(m); err != nil {
		return err
	}

	for _, p := range m.Parameters() {
		if err := v.param(m, p); err != nil {
			return err
		}
	}

	for _, sub := range m.Children() {
		if depth > 0 || sub.Submodules != nil {
			rng := sub.Span
			if sub.Submodules != nil {
				rng = sub.Submodules.Span
			}

			return diagnostic.Newf(diagnostic.KindNesting, rng,
				"submodule `%s` declares its own submodules; only one level of nesting is allowed", sub.Kind.Name).
				WithKey("submodules")
		}

		if err := v.module(sub, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// requiredKeys checks `type` with its loader, `capability`, `category`
// and `description`, in that order.
func requiredKeys(m *descriptor.Module) error {
	var missing string

	switch {
	case !m.Kind.IsSet():
		missing = "type"
	case !m.Loader.IsSet():
		return diagnostic.Newf(diagnostic.KindMissingRequiredKey, m.TypeSpan,
			"module `%s` has no loader, try `type: %s(Loader)`", m.Kind.Name, m.Kind.Name).WithKey("type")
	case m.Capability == nil:
		missing = "capability"
	case !m.Category.IsSet():
		missing = "category"
	case m.Description == nil:
		missing = "description"
	default:
		return nil
	}

	what := "module"
	if m.Kind.IsSet() {
		what = fmt.Sprintf("module `%s`", m.Kind.Name)
	}

	return diagnostic.Newf(diagnostic.KindMissingRequiredKey, startOf(m.Span),
		"missing `%s` key in %s", missing, what).WithKey(missing)
}

// checkTexts rejects text that cannot be sent as a NUL-terminated string.
func checkTexts(m *descriptor.Module) error {
	texts := []descriptor.Text{m.Capability.Name, *m.Description}
	for _, t := range []*descriptor.Text{m.Help, m.Shortname} {
		if t != nil {
			texts = append(texts, *t)
		}
	}

	if m.Shortcuts != nil {
		texts = append(texts, m.Shortcuts.Items...)
	}

	for _, p := range m.Parameters() {
		texts = append(texts, p.Text, p.LongText)
		if p.Default.Kind == descriptor.LitString {
			texts = append(texts, descriptor.Text{Value: p.Default.Text(), Span: p.Default.Span})
		}

		if p.Section != nil {
			texts = append(texts, p.Section.Name)
			if p.Section.Description != nil {
				texts = append(texts, *p.Section.Description)
			}
		}
	}

	for _, t := range texts {
		if strings.IndexByte(t.Value, 0) >= 0 {
			return diagnostic.Newf(diagnostic.KindTypeConstraint, t.Span,
				"text %q contains a NUL byte", t.Value)
		}
	}

	return nil
}

func checkScore(c *descriptor.Capability) error {
	if c.Score.Kind != descriptor.LitInt {
		return diagnostic.Newf(diagnostic.KindTypeConstraint, c.Score.Span,
			"capability score must be an integer, found %s %s", c.Score.Kind, c.Score.Raw).WithKey("capability")
	}

	if _, err := c.Score.Int32(); err != nil {
		return diagnostic.Newf(diagnostic.KindTypeConstraint, c.Score.Span,
			"capability score %s does not fit in a 32-bit integer", c.Score.Raw).WithKey("capability")
	}

	return nil
}

// startOf narrows r to its first position, so diagnostics about a whole
// body point at its start instead of underlining all of it.
func startOf(r hcl.Range) hcl.Range {
	return hcl.Range{Filename: r.Filename, Start: r.Start, End: r.Start}
}

func scalarNames() string {
	names := make([]string, 0, 4)
	for _, t := range []descriptor.ScalarType{
		descriptor.ScalarInt64, descriptor.ScalarFloat32, descriptor.ScalarBool, descriptor.ScalarString,
	} {
		names = append(names, t.String())
	}

	return strings.Join(names, ", ")
}
