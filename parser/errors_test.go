package parser

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/tsqlschema"
	"github.com/shibukawa/tsqlschema/tokenizer"
)

func TestParseErrorUnwrap(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		sentinel error
	}{
		{ExpectedTableName, ErrExpectedTableName},
		{ExpectedOpenParen, ErrExpectedOpenParen},
		{ExpectedCloseParen, ErrExpectedCloseParen},
		{ExpectedComma, ErrExpectedComma},
		{ExpectedKeyword, ErrExpectedKeyword},
		{ExpectedIdentifier, ErrExpectedIdentifier},
		{ExpectedDataType, ErrExpectedDataType},
		{ExpectedNumericLiteral, ErrExpectedNumericLiteral},
		{UnknownColumnReference, ErrUnknownColumnReference},
		{UnexpectedEndOfInput, ErrUnexpectedEndOfInput},
		{UnexpectedToken, ErrUnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := &ParseError{Kind: tt.kind, Statement: -1}
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.True(t, errors.Is(err, tsqlschema.ErrInvalidSQL))
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{
		Kind:      UnknownColumnReference,
		Pos:       12,
		Token:     &Token{Kind: Identifier, Text: "code", Pos: tokenizer.Position{Line: 3, Column: 17, Offset: 40}},
		Detail:    "code",
		Statement: 2,
	}

	assert.Equal(t, `statement 2: unknown column reference code at token 12 (3:17) near "code"`, err.Error())

	err = &ParseError{Kind: ExpectedKeyword, Pos: 4, Token: &Token{Kind: Identifier, Text: "x"}, Detail: "KEY", Statement: -1}
	assert.Equal(t, `expected keyword KEY at token 4 near "x"`, err.Error())
}
