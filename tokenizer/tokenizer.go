package tokenizer

import (
	"fmt"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// SqlTokenizer is a T-SQL tokenizer that returns an iterator
type SqlTokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipWhitespace bool
	SkipComments   bool
}

// NewSqlTokenizer creates a new SqlTokenizer
func NewSqlTokenizer(input string, options ...TokenizerOptions) *SqlTokenizer {
	opts := TokenizerOptions{}
	if len(options) > 0 {
		opts = options[0]
	}

	return &SqlTokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens
func (t *SqlTokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		tokenizer := &tokenizer{
			input: t.input,
			line:  1,
		}

		tokenizer.readChar()

		for {
			token, err := tokenizer.nextToken()
			if err != nil {
				// lexing can't resume reliably after an unterminated span
				yield(Token{}, err)
				return
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			if t.options.SkipWhitespace && token.Type == WHITESPACE {
				continue
			}

			if t.options.SkipComments && (token.Type == LINE_COMMENT || token.Type == BLOCK_COMMENT) {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice. The trailing EOF token is included.
func (t *SqlTokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)

	for token, err := range t.Tokens() {
		if err != nil {
			return tokens, err
		}

		tokens = append(tokens, token)
		if token.Type == EOF {
			break
		}
	}

	return tokens, nil
}

// Internal tokenizer implementation
type tokenizer struct {
	input string

	// next read offset
	next int

	// current rune and where it starts
	current rune
	offset  int
	line    int
	column  int
}

// nextToken gets the next token
func (t *tokenizer) nextToken() (Token, error) {
	if t.eof() {
		return t.newToken(EOF, "", t.mark()), nil
	}

	switch t.current {
	case '(':
		return t.single(OPENED_PARENS), nil
	case ')':
		return t.single(CLOSED_PARENS), nil
	case ',':
		return t.single(COMMA), nil
	case ';':
		return t.single(SEMICOLON), nil
	case '.':
		return t.single(DOT), nil
	case '=':
		return t.single(EQUAL), nil
	case '+':
		return t.single(PLUS), nil
	case '*':
		return t.single(MULTIPLY), nil
	case '\'':
		return t.readString(t.mark())
	case '[':
		return t.readDelimited(']')
	case '"':
		return t.readDelimited('"')
	case '-':
		if t.peekChar() == '-' {
			return t.readLineComment(), nil
		}

		return t.single(MINUS), nil
	case '/':
		if t.peekChar() == '*' {
			return t.readBlockComment()
		}

		return t.single(DIVIDE), nil
	case '<', '>', '!':
		return t.readOperator(), nil
	case '%', '&', '|', '^', '~':
		return t.single(OPERATOR), nil
	}

	switch {
	case unicode.IsSpace(t.current):
		return t.readWhitespace(), nil
	case (t.current == 'N' || t.current == 'n') && t.peekChar() == '\'':
		start := t.mark()
		t.readChar()

		return t.readString(start)
	case unicode.IsDigit(t.current):
		return t.readNumber()
	case isWordStart(t.current):
		return t.readWord(), nil
	default:
		return t.single(OTHER), nil
	}
}

type mark struct {
	offset int
	line   int
	column int
}

func (t *tokenizer) mark() mark {
	return mark{offset: t.offset, line: t.line, column: t.column}
}

// readChar reads the next character
func (t *tokenizer) readChar() {
	if t.current == '\n' {
		t.line++
		t.column = 0
	}

	t.offset = t.next

	if t.next >= len(t.input) {
		t.current = 0
		t.column++

		return
	}

	r, size := utf8.DecodeRuneInString(t.input[t.next:])
	t.current = r
	t.next += size
	t.column++
}

// eof reports whether the input is exhausted. The current rune can't be used
// for this since the input may contain NUL.
func (t *tokenizer) eof() bool {
	return t.offset >= len(t.input)
}

// peekChar looks ahead at the next character
func (t *tokenizer) peekChar() rune {
	if t.next >= len(t.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(t.input[t.next:])

	return r
}

func (t *tokenizer) single(tokenType TokenType) Token {
	start := t.mark()
	t.readChar()

	return t.newToken(tokenType, t.input[start.offset:t.offset], start)
}

// readWhitespace reads whitespace characters
func (t *tokenizer) readWhitespace() Token {
	start := t.mark()
	for !t.eof() && unicode.IsSpace(t.current) {
		t.readChar()
	}

	return t.newToken(WHITESPACE, t.input[start.offset:t.offset], start)
}

func isWordStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '@' || r == '#'
}

func isWordPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '@' || r == '#' || r == '$'
}

// readWord reads words (identifiers, keywords and variables). Case is preserved.
func (t *tokenizer) readWord() Token {
	start := t.mark()
	for !t.eof() && isWordPart(t.current) {
		t.readChar()
	}

	return t.newToken(WORD, t.input[start.offset:t.offset], start)
}

// readString reads string literals; a doubled quote escapes itself
func (t *tokenizer) readString(start mark) (Token, error) {
	t.readChar() // opening quote

	for {
		if t.eof() {
			return Token{}, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedString, start.line, start.column)
		}

		if t.current == '\'' {
			t.readChar()
			if t.eof() || t.current != '\'' {
				return t.newToken(STRING, t.input[start.offset:t.offset], start), nil
			}
		}

		t.readChar()
	}
}

// readDelimited reads [bracketed] or "quoted" identifiers
func (t *tokenizer) readDelimited(closer rune) (Token, error) {
	start := t.mark()
	t.readChar()

	for {
		if t.eof() {
			return Token{}, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedIdentifier, start.line, start.column)
		}

		if t.current == closer {
			t.readChar()
			if t.eof() || t.current != closer {
				return t.newToken(DELIMITED_IDENTIFIER, t.input[start.offset:t.offset], start), nil
			}
		}

		t.readChar()
	}
}

// readNumber reads numeric literals, including 0x binary constants
func (t *tokenizer) readNumber() (Token, error) {
	start := t.mark()

	if t.current == '0' && (t.peekChar() == 'x' || t.peekChar() == 'X') {
		t.readChar()
		t.readChar()

		for unicode.Is(unicode.ASCII_Hex_Digit, t.current) {
			t.readChar()
		}

		return t.newToken(NUMBER, t.input[start.offset:t.offset], start), nil
	}

	// Integer part
	for unicode.IsDigit(t.current) {
		t.readChar()
	}

	// Decimal part
	if t.current == '.' {
		t.readChar()

		for unicode.IsDigit(t.current) {
			t.readChar()
		}
	}

	// Exponential part
	if t.current == 'e' || t.current == 'E' {
		t.readChar()

		if t.current == '+' || t.current == '-' {
			t.readChar()
		}

		if !unicode.IsDigit(t.current) {
			return Token{}, fmt.Errorf("%w: invalid exponent at line %d, column %d", ErrInvalidNumber, start.line, start.column)
		}

		for unicode.IsDigit(t.current) {
			t.readChar()
		}
	}

	return t.newToken(NUMBER, t.input[start.offset:t.offset], start), nil
}

// readLineComment reads line comments
func (t *tokenizer) readLineComment() Token {
	start := t.mark()
	for !t.eof() && t.current != '\n' {
		t.readChar()
	}

	return t.newToken(LINE_COMMENT, strings.TrimRight(t.input[start.offset:t.offset], "\r"), start)
}

// readBlockComment reads block comments. SQL Server allows them to nest.
func (t *tokenizer) readBlockComment() (Token, error) {
	start := t.mark()
	depth := 0

	for !t.eof() {
		switch {
		case t.current == '/' && t.peekChar() == '*':
			depth++

			t.readChar()
		case t.current == '*' && t.peekChar() == '/':
			depth--

			t.readChar()
			if depth == 0 {
				t.readChar()
				return t.newToken(BLOCK_COMMENT, t.input[start.offset:t.offset], start), nil
			}
		}

		t.readChar()
	}

	return Token{}, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedComment, start.line, start.column)
}

// readOperator reads comparison operators
func (t *tokenizer) readOperator() Token {
	start := t.mark()
	first := t.current
	t.readChar()

	switch {
	case first == '<' && (t.current == '=' || t.current == '>'),
		first == '>' && t.current == '=',
		first == '!' && (t.current == '=' || t.current == '<' || t.current == '>'):
		t.readChar()
	case first == '!':
		return t.newToken(OTHER, "!", start)
	}

	return t.newToken(OPERATOR, t.input[start.offset:t.offset], start)
}

// newToken creates a new token
func (t *tokenizer) newToken(tokenType TokenType, value string, start mark) Token {
	return Token{
		Type:  tokenType,
		Value: value,
		Position: Position{
			Line:   start.line,
			Column: start.column,
			Offset: start.offset,
		},
	}
}
