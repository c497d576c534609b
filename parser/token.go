package parser

import (
	"fmt"
	"strings"

	"github.com/shibukawa/tsqlschema/tokenizer"
)

// TokenKind classifies a normalized token
type TokenKind int

const (
	Identifier TokenKind = iota
	Keyword
	Punctuation
	NumericLiteral
	StringLiteral
	ParenGroup // DEFAULT/CHECK expression kept as one unit, see Token.Children
)

func (k TokenKind) String() string {
	switch k {
	case Identifier:
		return "Identifier"
	case Keyword:
		return "Keyword"
	case Punctuation:
		return "Punctuation"
	case NumericLiteral:
		return "NumericLiteral"
	case StringLiteral:
		return "StringLiteral"
	case ParenGroup:
		return "ParenGroup"
	default:
		return "Unknown"
	}
}

// Token is one element of a normalized statement.
type Token struct {
	Kind     TokenKind
	Text     string // raw text, case as written
	Children []Token
	Pos      tokenizer.Position
}

// Is reports whether the token is the given keyword, ignoring case.
func (t Token) Is(keyword string) bool {
	return t.Kind == Keyword && strings.EqualFold(t.Text, keyword)
}

// IsWord is like Is but also matches a bare identifier. It serves words that
// are only meaningful in context (MAX, NO ACTION) and stay usable as names.
func (t Token) IsWord(word string) bool {
	return (t.Kind == Keyword || t.Kind == Identifier) && strings.EqualFold(t.Text, word)
}

// IsPunct reports whether the token is the given punctuation.
func (t Token) IsPunct(punct string) bool {
	return t.Kind == Punctuation && t.Text == punct
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
}
