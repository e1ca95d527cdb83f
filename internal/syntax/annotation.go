package syntax

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"plugin-compiler/internal/descriptor"
	"plugin-compiler/internal/diagnostic"
	"plugin-compiler/internal/suggest"
)

// annotation is a parsed `#[name]`, `#[name = lit]` or `#[name(k = lit, ...)]`.
// inner is set for the `#![...]` form.
type annotation struct {
	name    Token
	inner   bool
	value   *descriptor.Literal
	args    []annotationArg
	hasArgs bool
	span    hcl.Range
}

type annotationArg struct {
	key   Token
	value descriptor.Literal
}

func (p *parser) annotations() ([]annotation, error) {
	var out []annotation

	for p.at(Hash) {
		a, err := p.annotation()
		if err != nil {
			return nil, err
		}

		out = append(out, a)
	}

	return out, nil
}

func (p *parser) annotation() (annotation, error) {
	hash := p.advance()
	a := annotation{}

	if p.at(Bang) {
		p.advance()
		a.inner = true
	}

	if _, err := p.expect(LBracket, "after '#'"); err != nil {
		return a, err
	}

	name, err := p.expect(Ident, "as annotation name")
	if err != nil {
		return a, err
	}

	a.name = name

	switch {
	case p.at(Equals):
		p.advance()

		lit, err := p.literal(fmt.Sprintf("as value of `%s`", name.Text))
		if err != nil {
			return a, err
		}

		a.value = &lit
	case p.at(LParen):
		p.advance()
		a.hasArgs = true

		_, err := p.list(RParen, "annotation arguments", func() error {
			key, err := p.expect(Ident, "as argument name")
			if err != nil {
				return err
			}

			if _, err := p.expect(Equals, fmt.Sprintf("after `%s`", key.Text)); err != nil {
				return err
			}

			lit, err := p.literal(fmt.Sprintf("as value of `%s`", key.Text))
			if err != nil {
				return err
			}

			a.args = append(a.args, annotationArg{key: key, value: lit})

			return nil
		})
		if err != nil {
			return a, err
		}
	}

	end, err := p.expect(RBracket, "to close the annotation")
	if err != nil {
		return a, err
	}

	a.span = hcl.RangeBetween(hash.Range, end.Range)

	return a, nil
}

func prefixAnnotation(a annotation) (*descriptor.Prefix, error) {
	if a.inner || a.hasArgs || a.value == nil || a.value.Kind != descriptor.LitString {
		return nil, diagnostic.Newf(diagnostic.KindAnnotationConflict, a.span,
			"malformed prefix annotation, try `#[prefix = \"...\"]`").WithKey("prefix")
	}

	return &descriptor.Prefix{Value: a.value.Text(), Span: a.span}, nil
}

func applyParamAnnotation(param *descriptor.Parameter, a annotation) error {
	name := a.name.Text

	if a.inner && name != "section" {
		return diagnostic.Newf(diagnostic.KindAnnotationConflict, a.span,
			"`#![%s]` is not allowed here, only `#![section(...)]` is", name).WithKey(name)
	}

	switch name {
	case "section":
		if param.Section != nil {
			return diagnostic.Newf(diagnostic.KindAnnotationConflict, a.span,
				"more than one section annotation").WithKey(name)
		}

		sec, err := sectionAnnotation(a)
		if err != nil {
			return err
		}

		param.Section = sec

		return nil
	case "prefix":
		if param.Prefix != nil {
			return diagnostic.Newf(diagnostic.KindAnnotationConflict, a.span,
				"more than one prefix annotation").WithKey(name)
		}

		prefix, err := prefixAnnotation(a)
		if err != nil {
			return err
		}

		param.Prefix = prefix

		return nil
	}

	tag, ok := descriptor.ParseTag(name)
	if !ok {
		return diagnostic.Newf(diagnostic.KindAnnotationConflict, a.span,
			"unsupported annotation `#[%s]`", name).
			WithKey(name).
			WithSuggestion(suggest.Hint(name, annotationNames()))
	}

	if param.Tags.Has(tag) {
		return diagnostic.Newf(diagnostic.KindAnnotationConflict, a.span,
			"`#[%s]` is given more than once", name).WithKey(name)
	}

	if tag == descriptor.TagDeprecated {
		note, err := deprecationNote(a)
		if err != nil {
			return err
		}

		param.DeprecationNote = note
	} else if a.value != nil || a.hasArgs {
		return diagnostic.Newf(diagnostic.KindAnnotationConflict, a.span,
			"`#[%s]` doesn't take any argument", name).WithKey(name)
	}

	param.Tags = param.Tags.Add(tag)
	param.TagSpans[tag] = a.span

	return nil
}

// deprecationNote accepts `#[deprecated]`, `#[deprecated = "..."]` and
// `#[deprecated(note = "...")]`.
func deprecationNote(a annotation) (string, error) {
	if a.value != nil {
		if a.value.Kind != descriptor.LitString {
			return "", diagnostic.Newf(diagnostic.KindAnnotationConflict, a.value.Span,
				"deprecation note must be a string").WithKey("deprecated")
		}

		return a.value.Text(), nil
	}

	var note string

	for _, arg := range a.args {
		if arg.key.Text != "note" && arg.key.Text != "since" {
			return "", diagnostic.Newf(diagnostic.KindUnknownKey, arg.key.Range,
				"unknown key `%s`", arg.key.Text).
				WithKey(arg.key.Text).
				WithSuggestion(suggest.Hint(arg.key.Text, []string{"note", "since"}))
		}

		if arg.key.Text == "note" && arg.value.Kind == descriptor.LitString {
			note = arg.value.Text()
		}
	}

	return note, nil
}

func sectionAnnotation(a annotation) (*descriptor.Section, error) {
	if !a.hasArgs {
		return nil, diagnostic.Newf(diagnostic.KindAnnotationConflict, a.span,
			"malformed section annotation, try `#![section(name = \"...\")]`").WithKey("section")
	}

	sec := &descriptor.Section{Span: a.span}

	var named bool

	for _, arg := range a.args {
		key := arg.key.Text
		if key != "name" && key != "description" {
			return nil, diagnostic.Newf(diagnostic.KindUnknownKey, arg.key.Range, "unknown key `%s`", key).
				WithKey(key).
				WithSuggestion(suggest.Hint(key, sectionKeys))
		}

		if arg.value.Kind != descriptor.LitString {
			return nil, diagnostic.Newf(diagnostic.KindTypeConstraint, arg.value.Span,
				"section %s must be a string, found %s %s", key, arg.value.Kind, arg.value.Raw).WithKey(key)
		}

		text := descriptor.Text{Value: arg.value.Text(), Span: arg.value.Span}
		if key == "name" {
			sec.Name = text
			named = true
		} else {
			sec.Description = &text
		}
	}

	if !named {
		return nil, diagnostic.Newf(diagnostic.KindMissingRequiredKey, a.span,
			"missing `name` key in section annotation").WithKey("name")
	}

	return sec, nil
}

func annotationNames() []string {
	names := []string{"prefix", "section"}
	for _, t := range descriptor.Tags() {
		names = append(names, t.String())
	}

	return names
}
