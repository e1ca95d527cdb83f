package syntax

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

//go:generate go tool stringer -type=TokenType -linecomment -output=token_string.go

// TokenType classifies a lexical token.
type TokenType int

const (
	_ TokenType = iota // invalid

	EOF      // end of input
	Ident    // identifier
	Int      // integer literal
	Float    // float literal
	String   // string literal
	Colon    // ':'
	Comma    // ','
	LParen   // '('
	RParen   // ')'
	LBrace   // '{'
	RBrace   // '}'
	LBracket // '['
	RBracket // ']'
	At       // '@'
	Hash     // '#'
	Bang     // '!'
	Equals   // '='
	Minus    // '-'
	DotDot   // '..'
	DotDotEq // '..='
)

// Token is a lexical token with its source span.
type Token struct {
	Type TokenType
	// Text is the token exactly as written.
	Text string
	// Value is the decoded content of a string literal, or the digits of a
	// number with separators removed.
	Value string
	Range hcl.Range
}

// describe renders the token for diagnostics.
func (t Token) describe() string {
	switch t.Type {
	case Ident:
		return fmt.Sprintf("identifier `%s`", t.Text)
	case Int, Float, String:
		return fmt.Sprintf("%s %s", t.Type, t.Text)
	default:
		return t.Type.String()
	}
}
