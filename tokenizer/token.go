package tokenizer

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrUnterminatedString     = errors.New("unterminated string literal")
	ErrUnterminatedComment    = errors.New("unterminated block comment")
	ErrUnterminatedIdentifier = errors.New("unterminated delimited identifier")
	ErrInvalidNumber          = errors.New("invalid number format")
	ErrUnmatchedParenthesis   = errors.New("unmatched parenthesis")
)

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	WHITESPACE
	WORD                 // bare words: identifiers, keywords and type names
	DELIMITED_IDENTIFIER // [name] or "name"
	STRING               // 'text', N'text'
	NUMBER               // numeric literals
	OPENED_PARENS        // (
	CLOSED_PARENS        // )
	COMMA                // ,
	SEMICOLON            // ;
	DOT                  // .

	// Operators
	EQUAL    // =
	PLUS     // +
	MINUS    // -
	MULTIPLY // *
	DIVIDE   // /
	OPERATOR // <, >, <=, >=, <>, !=, %, &, |, ^, ~

	// Comments
	LINE_COMMENT  // -- line comment
	BLOCK_COMMENT // /* block comment */

	// Others
	OTHER // variables (@x), temp table markers and everything else
)

var tokenTypeNames = map[TokenType]string{
	EOF:                  "EOF",
	WHITESPACE:           "WHITESPACE",
	WORD:                 "WORD",
	DELIMITED_IDENTIFIER: "DELIMITED_IDENTIFIER",
	STRING:               "STRING",
	NUMBER:               "NUMBER",
	OPENED_PARENS:        "OPENED_PARENS",
	CLOSED_PARENS:        "CLOSED_PARENS",
	COMMA:                "COMMA",
	SEMICOLON:            "SEMICOLON",
	DOT:                  "DOT",
	EQUAL:                "EQUAL",
	PLUS:                 "PLUS",
	MINUS:                "MINUS",
	MULTIPLY:             "MULTIPLY",
	DIVIDE:               "DIVIDE",
	OPERATOR:             "OPERATOR",
	LINE_COMMENT:         "LINE_COMMENT",
	BLOCK_COMMENT:        "BLOCK_COMMENT",
	OTHER:                "OTHER",
}

// String returns the string representation of TokenType
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}

	return "UNKNOWN"
}

// Position represents a position in the source code
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was filled in by the tokenizer.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}

// IsTrivia reports whether the token carries no syntax (whitespace or comment).
func (t Token) IsTrivia() bool {
	return t.Type == WHITESPACE || t.Type == LINE_COMMENT || t.Type == BLOCK_COMMENT
}
