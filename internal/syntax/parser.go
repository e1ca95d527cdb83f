package syntax

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"plugin-compiler/internal/descriptor"
	"plugin-compiler/internal/diagnostic"
	"plugin-compiler/internal/suggest"
)

// Keys accepted in each body, in the order they are usually written.
var (
	moduleKeys  = []string{"type", "capability", "category", "description", "help", "shortname", "shortcuts", "params", "submodules"}
	paramKeys   = []string{"default", "range", "text", "long_text"}
	sectionKeys = []string{"name", "description"}
)

// Parse parses a module description. It stops at the first structural
// error. Warnings (such as duplicate keys) are returned in both cases.
func Parse(filename string, src []byte) (*descriptor.Module, diagnostic.Diagnostics, error) {
	tokens, err := Lex(filename, src)
	if err != nil {
		return nil, diagnostic.Diagnostics{}, err
	}

	p := &parser{tokens: tokens}

	m, err := p.moduleBody(EOF)
	if err != nil {
		return nil, p.diags, err
	}

	return m, p.diags, nil
}

type parser struct {
	tokens []Token
	pos    int
	diags  diagnostic.Diagnostics
}

// current returns the current token. Past the end it keeps returning EOF.
func (p *parser) current() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[p.pos]
}

func (p *parser) at(tt TokenType) bool {
	return p.current().Type == tt
}

func (p *parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}

	return tok
}

func (p *parser) expect(tt TokenType, context string) (Token, error) {
	if p.at(tt) {
		return p.advance(), nil
	}

	return Token{}, p.errorExpected(tt.String(), context)
}

func (p *parser) errorExpected(what, context string) error {
	cur := p.current()

	return diagnostic.Newf(diagnostic.KindGrammar, cur.Range,
		"expected %s %s, found %s", what, context, cur.describe())
}

// list parses `item (',' item)* ','? close` and returns the close token.
func (p *parser) list(closing TokenType, context string, item func() error) (Token, error) {
	for !p.at(closing) {
		if p.at(EOF) {
			return Token{}, p.errorExpected(closing.String(), "to close the "+context)
		}

		if err := item(); err != nil {
			return Token{}, err
		}

		if p.at(closing) {
			break
		}

		if p.at(EOF) {
			return Token{}, p.errorExpected(closing.String(), "to close the "+context)
		}

		if _, err := p.expect(Comma, "between "+context); err != nil {
			return Token{}, err
		}
	}

	return p.advance(), nil
}

func (p *parser) duplicate(seen map[string]hcl.Range, key Token) {
	if prev, ok := seen[key.Text]; ok {
		p.diags.AddWarningAt(key.Range, "duplicate_key",
			fmt.Sprintf("`%s` is declared again, replacing the value at %s", key.Text, prev), "", key.Text)
	}

	seen[key.Text] = key.Range
}

func (p *parser) moduleBody(closing TokenType) (*descriptor.Module, error) {
	m := &descriptor.Module{}
	start := p.current().Range
	seen := map[string]hcl.Range{}

	end, err := p.list(closing, "module entries", func() error {
		return p.moduleEntry(m, seen)
	})
	if err != nil {
		return nil, err
	}

	m.Span = hcl.RangeBetween(start, end.Range)

	return m, nil
}

func (p *parser) moduleEntry(m *descriptor.Module, seen map[string]hcl.Range) error {
	annots, err := p.annotations()
	if err != nil {
		return err
	}

	for _, a := range annots {
		if a.inner {
			return diagnostic.Newf(diagnostic.KindAnnotationConflict, a.span,
				"no inner annotations are expected here").WithKey(a.name.Text)
		}
	}

	key, err := p.expect(Ident, "as module key")
	if err != nil {
		return err
	}

	if !contains(moduleKeys, key.Text) {
		return diagnostic.Newf(diagnostic.KindUnknownKey, key.Range, "unknown key `%s`", key.Text).
			WithKey(key.Text).
			WithSuggestion(suggest.Hint(key.Text, moduleKeys))
	}

	if key.Text != "params" && len(annots) > 0 {
		return diagnostic.Newf(diagnostic.KindAnnotationConflict, annots[0].span,
			"no annotations are expected on `%s`", key.Text).WithKey(annots[0].name.Text)
	}

	p.duplicate(seen, key)

	if _, err := p.expect(Colon, fmt.Sprintf("after `%s`", key.Text)); err != nil {
		return err
	}

	switch key.Text {
	case "type":
		return p.typeEntry(m, key)
	case "capability":
		return p.capabilityEntry(m)
	case "category":
		ident, err := p.expect(Ident, "as category")
		if err != nil {
			return err
		}

		m.Category = descriptor.Ident{Name: ident.Text, Span: ident.Range}
	case "description":
		m.Description, err = p.text("as description")
	case "help":
		m.Help, err = p.text("as help")
	case "shortname":
		m.Shortname, err = p.text("as shortname")
	case "shortcuts":
		m.Shortcuts, err = p.shortcuts()
	case "params":
		return p.paramsEntry(m, key, annots)
	case "submodules":
		m.Submodules, err = p.submodules()
	}

	return err
}

func (p *parser) typeEntry(m *descriptor.Module, key Token) error {
	kind, err := p.expect(Ident, "as module type")
	if err != nil {
		return err
	}

	if _, err := p.expect(LParen, "after the module type, try `type: "+kind.Text+"(Loader)`"); err != nil {
		return err
	}

	loader, err := p.expect(Ident, "as module loader")
	if err != nil {
		return err
	}

	if _, err := p.expect(RParen, "after the module loader"); err != nil {
		return err
	}

	m.Kind = descriptor.Ident{Name: kind.Text, Span: kind.Range}
	m.Loader = descriptor.Ident{Name: loader.Text, Span: loader.Range}
	m.TypeSpan = key.Range

	return nil
}

func (p *parser) capabilityEntry(m *descriptor.Module) error {
	// The name is normally quoted; a bare identifier is accepted too.
	name := p.current()

	switch name.Type {
	case String:
	case Ident:
		name.Value = name.Text
	default:
		return p.errorExpected("a string", "as capability name")
	}

	p.advance()

	if _, err := p.expect(At, "between capability name and score"); err != nil {
		return err
	}

	score, err := p.number("as capability score")
	if err != nil {
		return err
	}

	m.Capability = &descriptor.Capability{
		Name:  descriptor.Text{Value: name.Value, Span: name.Range},
		Score: score,
		Span:  hcl.RangeBetween(name.Range, score.Span),
	}

	return nil
}

func (p *parser) text(context string) (*descriptor.Text, error) {
	tok, err := p.expect(String, context)
	if err != nil {
		return nil, err
	}

	return &descriptor.Text{Value: tok.Value, Span: tok.Range}, nil
}

func (p *parser) shortcuts() (*descriptor.TextList, error) {
	open, err := p.expect(LBracket, "to open the shortcut list")
	if err != nil {
		return nil, err
	}

	list := &descriptor.TextList{}

	end, err := p.list(RBracket, "shortcut list", func() error {
		t, err := p.text("as shortcut")
		if err != nil {
			return err
		}

		list.Items = append(list.Items, *t)

		return nil
	})
	if err != nil {
		return nil, err
	}

	list.Span = hcl.RangeBetween(open.Range, end.Range)

	return list, nil
}

func (p *parser) submodules() (*descriptor.ModuleList, error) {
	open, err := p.expect(LBracket, "to open the submodule list")
	if err != nil {
		return nil, err
	}

	list := &descriptor.ModuleList{}

	end, err := p.list(RBracket, "submodule list", func() error {
		if _, err := p.expect(LBrace, "to open a submodule body"); err != nil {
			return err
		}

		sub, err := p.moduleBody(RBrace)
		if err != nil {
			return err
		}

		list.Items = append(list.Items, sub)

		return nil
	})
	if err != nil {
		return nil, err
	}

	list.Span = hcl.RangeBetween(open.Range, end.Range)

	return list, nil
}

func (p *parser) paramsEntry(m *descriptor.Module, key Token, annots []annotation) error {
	if len(annots) != 1 {
		return diagnostic.Newf(diagnostic.KindAnnotationConflict, key.Range,
			"exactly one annotation is expected on `params`, try `#[prefix = \"...\"]`").WithKey("params")
	}

	if annots[0].name.Text != "prefix" {
		return diagnostic.Newf(diagnostic.KindAnnotationConflict, annots[0].span,
			"`#[%s]` was not expected here, only `#[prefix = \"...\"]` is", annots[0].name.Text).
			WithKey(annots[0].name.Text)
	}

	prefix, err := prefixAnnotation(annots[0])
	if err != nil {
		return err
	}

	open, err := p.expect(LBrace, "to open the parameter list")
	if err != nil {
		return err
	}

	list := &descriptor.ParamList{}

	end, err := p.list(RBrace, "parameter list", func() error {
		param, err := p.param()
		if err != nil {
			return err
		}

		list.Items = append(list.Items, param)

		return nil
	})
	if err != nil {
		return err
	}

	list.Span = hcl.RangeBetween(open.Range, end.Range)
	m.Prefix = prefix
	m.Params = list

	return nil
}

func (p *parser) param() (*descriptor.Parameter, error) {
	start := p.current().Range

	annots, err := p.annotations()
	if err != nil {
		return nil, err
	}

	param := &descriptor.Parameter{TagSpans: map[descriptor.Tag]hcl.Range{}}
	for _, a := range annots {
		if err := applyParamAnnotation(param, a); err != nil {
			return nil, err
		}
	}

	name, err := p.expect(Ident, "as parameter name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(Colon, fmt.Sprintf("after parameter `%s`", name.Text)); err != nil {
		return nil, err
	}

	typ, err := p.expect(Ident, "as parameter type")
	if err != nil {
		return nil, err
	}

	param.Name = descriptor.Ident{Name: name.Text, Span: name.Range}
	param.TypeName = descriptor.Ident{Name: typ.Text, Span: typ.Range}
	param.Type, _ = descriptor.ParseScalarType(typ.Text)

	if _, err := p.expect(LBrace, fmt.Sprintf("to open the body of parameter `%s`", name.Text)); err != nil {
		return nil, err
	}

	seen := map[string]hcl.Range{}

	end, err := p.list(RBrace, "parameter fields", func() error {
		return p.paramField(param, seen)
	})
	if err != nil {
		return nil, err
	}

	for _, required := range []string{"default", "text", "long_text"} {
		if _, ok := seen[required]; !ok {
			return nil, diagnostic.Newf(diagnostic.KindMissingRequiredKey, name.Range,
				"missing `%s` key in parameter `%s`", required, name.Text).WithKey(required)
		}
	}

	param.Span = hcl.RangeBetween(start, end.Range)

	return param, nil
}

func (p *parser) paramField(param *descriptor.Parameter, seen map[string]hcl.Range) error {
	key, err := p.expect(Ident, "as parameter field")
	if err != nil {
		return err
	}

	if !contains(paramKeys, key.Text) {
		return diagnostic.Newf(diagnostic.KindUnknownKey, key.Range, "unknown key `%s`", key.Text).
			WithKey(key.Text).
			WithSuggestion(suggest.Hint(key.Text, paramKeys))
	}

	p.duplicate(seen, key)

	if _, err := p.expect(Colon, fmt.Sprintf("after `%s`", key.Text)); err != nil {
		return err
	}

	switch key.Text {
	case "default":
		param.Default, err = p.literal("as default value")
	case "range":
		param.Range, err = p.interval()
	case "text":
		var t *descriptor.Text
		if t, err = p.text("as parameter text"); err == nil {
			param.Text = *t
		}
	case "long_text":
		var t *descriptor.Text
		if t, err = p.text("as parameter long text"); err == nil {
			param.LongText = *t
		}
	}

	return err
}

func (p *parser) startsNumber() bool {
	return p.at(Int) || p.at(Float) || p.at(Minus)
}

// interval parses `[a] ('..' | '..=') [b]`. Well-formedness is left to the
// validator so it can report a range error instead of a grammar error.
func (p *parser) interval() (*descriptor.Interval, error) {
	start := p.current().Range
	iv := &descriptor.Interval{}

	if p.startsNumber() {
		from, err := p.number("as range start")
		if err != nil {
			return nil, err
		}

		iv.From = &from
	}

	switch {
	case p.at(DotDotEq):
		iv.Closed = true
	case p.at(DotDot):
	default:
		return nil, p.errorExpected("'..='", "in range, try `0..=10`")
	}

	end := p.advance().Range

	if p.startsNumber() {
		to, err := p.number("as range end")
		if err != nil {
			return nil, err
		}

		iv.To = &to
		end = to.Span
	}

	iv.Span = hcl.RangeBetween(start, end)

	return iv, nil
}

func (p *parser) literal(context string) (descriptor.Literal, error) {
	tok := p.current()

	switch tok.Type {
	case String:
		p.advance()
		return descriptor.StringLiteral(tok.Text, tok.Value, tok.Range), nil
	case Ident:
		if tok.Text == "true" || tok.Text == "false" {
			p.advance()
			return descriptor.BoolLiteral(tok.Text == "true", tok.Range), nil
		}
	case Int, Float, Minus:
		return p.number(context)
	}

	return descriptor.Literal{}, p.errorExpected("a literal", context)
}

func (p *parser) number(context string) (descriptor.Literal, error) {
	if !p.at(Minus) {
		return p.unsignedNumber(context)
	}

	minus := p.advance()

	lit, err := p.unsignedNumber(context)
	if err != nil {
		return descriptor.Literal{}, err
	}

	return lit.Negate(hcl.RangeBetween(minus.Range, lit.Span))
}

func (p *parser) unsignedNumber(context string) (descriptor.Literal, error) {
	tok := p.current()

	switch tok.Type {
	case Int:
		base := 10
		if len(tok.Value) > 1 && tok.Value[0] == '0' && strings.ContainsAny(tok.Value[1:2], "xob") {
			base = 0
		}

		v, ok := new(big.Int).SetString(tok.Value, base)
		if !ok {
			return descriptor.Literal{}, diagnostic.Newf(diagnostic.KindGrammar, tok.Range,
				"invalid integer literal %s", tok.Text)
		}

		p.advance()

		return descriptor.IntLiteral(tok.Text, v, tok.Range), nil
	case Float:
		lit, err := descriptor.FloatLiteral(tok.Text, tok.Value, tok.Range)
		if err != nil {
			return descriptor.Literal{}, diagnostic.Newf(diagnostic.KindGrammar, tok.Range, "%v", err)
		}

		p.advance()

		return lit, nil
	}

	return descriptor.Literal{}, p.errorExpected("a number", context)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
