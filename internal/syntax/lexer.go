package syntax

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"

	"plugin-compiler/internal/diagnostic"
)

// lexer turns source bytes into tokens. Line and column are 1-based and
// columns count runes.
type lexer struct {
	filename string
	src      []byte
	pos      hcl.Pos
	tokens   []Token
}

// Lex tokenizes src. The returned slice always ends with an EOF token.
func Lex(filename string, src []byte) ([]Token, error) {
	lx := &lexer{
		filename: filename,
		src:      src,
		pos:      hcl.Pos{Line: 1, Column: 1, Byte: 0},
	}

	for {
		if err := lx.skipTrivia(); err != nil {
			return nil, err
		}

		if lx.eof() {
			lx.tokens = append(lx.tokens, Token{Type: EOF, Range: lx.rangeFrom(lx.pos)})
			return lx.tokens, nil
		}

		if err := lx.next(); err != nil {
			return nil, err
		}
	}
}

func (lx *lexer) eof() bool {
	return lx.pos.Byte >= len(lx.src)
}

func (lx *lexer) peek() rune {
	if lx.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(lx.src[lx.pos.Byte:])

	return r
}

func (lx *lexer) peekAt(offset int) byte {
	if lx.pos.Byte+offset >= len(lx.src) {
		return 0
	}

	return lx.src[lx.pos.Byte+offset]
}

func (lx *lexer) advance() rune {
	r, size := utf8.DecodeRune(lx.src[lx.pos.Byte:])
	lx.pos.Byte += size

	if r == '\n' {
		lx.pos.Line++
		lx.pos.Column = 1
	} else {
		lx.pos.Column++
	}

	return r
}

func (lx *lexer) rangeFrom(start hcl.Pos) hcl.Range {
	return hcl.Range{Filename: lx.filename, Start: start, End: lx.pos}
}

func (lx *lexer) errorf(start hcl.Pos, format string, args ...any) error {
	return diagnostic.Newf(diagnostic.KindGrammar, lx.rangeFrom(start), format, args...)
}

func (lx *lexer) emit(tt TokenType, start hcl.Pos, value string) {
	lx.tokens = append(lx.tokens, Token{
		Type:  tt,
		Text:  string(lx.src[start.Byte:lx.pos.Byte]),
		Value: value,
		Range: lx.rangeFrom(start),
	})
}

// skipTrivia skips whitespace, line comments and block comments.
func (lx *lexer) skipTrivia() error {
	for !lx.eof() {
		r := lx.peek()

		switch {
		case unicode.IsSpace(r):
			lx.advance()
		case r == '/' && lx.peekAt(1) == '/':
			for !lx.eof() && lx.peek() != '\n' {
				lx.advance()
			}
		case r == '/' && lx.peekAt(1) == '*':
			start := lx.pos
			lx.advance()
			lx.advance()

			for {
				if lx.eof() {
					return lx.errorf(start, "unterminated block comment")
				}

				if lx.peek() == '*' && lx.peekAt(1) == '/' {
					lx.advance()
					lx.advance()

					break
				}

				lx.advance()
			}
		default:
			return nil
		}
	}

	return nil
}

var punctuation = map[rune]TokenType{
	':': Colon,
	',': Comma,
	'(': LParen,
	')': RParen,
	'{': LBrace,
	'}': RBrace,
	'[': LBracket,
	']': RBracket,
	'@': At,
	'#': Hash,
	'!': Bang,
	'=': Equals,
	'-': Minus,
}

func (lx *lexer) next() error {
	start := lx.pos
	r := lx.peek()

	switch {
	case isIdentStart(r):
		for !lx.eof() && isIdentPart(lx.peek()) {
			lx.advance()
		}

		lx.emit(Ident, start, "")

		return nil
	case r >= '0' && r <= '9':
		return lx.number(start)
	case r == '"':
		return lx.str(start)
	case r == '.':
		if lx.peekAt(1) != '.' {
			lx.advance()
			return lx.errorf(start, "unexpected '.'; ranges are written `a..=b`")
		}

		lx.advance()
		lx.advance()

		if lx.peek() == '=' {
			lx.advance()
			lx.emit(DotDotEq, start, "")
		} else {
			lx.emit(DotDot, start, "")
		}

		return nil
	}

	if tt, ok := punctuation[r]; ok {
		lx.advance()
		lx.emit(tt, start, "")

		return nil
	}

	lx.advance()

	return lx.errorf(start, "unexpected character %q", r)
}

// number scans an integer or float literal. Digit separators (`_`) are
// dropped from Value; base prefixes are kept so the parser can pick the base.
func (lx *lexer) number(start hcl.Pos) error {
	var digits strings.Builder

	if lx.peek() == '0' {
		switch lx.peekAt(1) {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			digits.WriteRune(lx.advance())
			digits.WriteRune(unicode.ToLower(lx.advance()))

			n := lx.digits(&digits, isHexDigit)
			if n == 0 {
				return lx.errorf(start, "missing digits after base prefix")
			}

			return lx.finishNumber(start, Int, digits.String())
		}
	}

	lx.digits(&digits, isDecDigit)

	tt := Int
	// A '.' followed by a digit starts a fraction; `1..=2` stays an integer.
	if lx.peek() == '.' && isDecDigit(rune(lx.peekAt(1))) {
		tt = Float
		digits.WriteRune(lx.advance())
		lx.digits(&digits, isDecDigit)
	}

	if p := lx.peek(); p == 'e' || p == 'E' {
		tt = Float
		digits.WriteRune(lx.advance())

		if s := lx.peek(); s == '+' || s == '-' {
			digits.WriteRune(lx.advance())
		}

		if lx.digits(&digits, isDecDigit) == 0 {
			return lx.errorf(start, "missing exponent digits")
		}
	}

	return lx.finishNumber(start, tt, digits.String())
}

func (lx *lexer) finishNumber(start hcl.Pos, tt TokenType, value string) error {
	if !lx.eof() && isIdentPart(lx.peek()) {
		for !lx.eof() && isIdentPart(lx.peek()) {
			lx.advance()
		}

		return lx.errorf(start, "invalid suffix on number %q", string(lx.src[start.Byte:lx.pos.Byte]))
	}

	lx.emit(tt, start, value)

	return nil
}

func (lx *lexer) digits(b *strings.Builder, accept func(rune) bool) int {
	n := 0

	for !lx.eof() {
		r := lx.peek()

		switch {
		case r == '_':
			lx.advance()
		case accept(r):
			b.WriteRune(lx.advance())
			n++
		default:
			return n
		}
	}

	return n
}

// str scans a double quoted string literal and decodes its escapes.
func (lx *lexer) str(start hcl.Pos) error {
	lx.advance()

	var b strings.Builder

	for {
		if lx.eof() {
			return lx.errorf(start, "unterminated string literal")
		}

		if r, size := utf8.DecodeRune(lx.src[lx.pos.Byte:]); r == utf8.RuneError && size == 1 {
			at := lx.pos
			lx.advance()

			return lx.errorf(at, "invalid UTF-8 byte 0x%02X in string literal", lx.src[at.Byte])
		}

		r := lx.advance()

		switch r {
		case '"':
			lx.emit(String, start, b.String())
			return nil
		case '\\':
			if err := lx.escape(&b); err != nil {
				return err
			}
		default:
			b.WriteRune(r)
		}
	}
}

func (lx *lexer) escape(b *strings.Builder) error {
	escStart := lx.pos
	if lx.eof() {
		return lx.errorf(escStart, "unterminated escape sequence")
	}

	switch r := lx.advance(); r {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case '0':
		b.WriteByte(0)
	case '\\', '"', '\'':
		b.WriteRune(r)
	case 'u':
		return lx.unicodeEscape(b, escStart)
	default:
		return lx.errorf(escStart, "unknown escape sequence \\%c", r)
	}

	return nil
}

// unicodeEscape decodes `\u{XXXX}`.
func (lx *lexer) unicodeEscape(b *strings.Builder, escStart hcl.Pos) error {
	if lx.peek() != '{' {
		return lx.errorf(escStart, "expected `{` in unicode escape")
	}

	lx.advance()

	var hex strings.Builder
	for !lx.eof() && lx.peek() != '}' {
		hex.WriteRune(lx.advance())
	}

	if lx.eof() {
		return lx.errorf(escStart, "unterminated unicode escape")
	}

	lx.advance()

	v, err := strconv.ParseUint(hex.String(), 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return lx.errorf(escStart, "invalid unicode escape \\u{%s}", hex.String())
	}

	b.WriteRune(rune(v))

	return nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDecDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDecDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
