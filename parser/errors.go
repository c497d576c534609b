package parser

import (
	"fmt"
	"strings"

	"github.com/shibukawa/tsqlschema"
)

// Sentinel errors. Every one of them wraps tsqlschema.ErrInvalidSQL.
var (
	ErrExpectedTableName      = fmt.Errorf("%w: expected table name", tsqlschema.ErrInvalidSQL)
	ErrExpectedOpenParen      = fmt.Errorf("%w: expected '('", tsqlschema.ErrInvalidSQL)
	ErrExpectedCloseParen     = fmt.Errorf("%w: expected ')'", tsqlschema.ErrInvalidSQL)
	ErrExpectedComma          = fmt.Errorf("%w: expected ','", tsqlschema.ErrInvalidSQL)
	ErrExpectedKeyword        = fmt.Errorf("%w: expected keyword", tsqlschema.ErrInvalidSQL)
	ErrExpectedIdentifier     = fmt.Errorf("%w: expected identifier", tsqlschema.ErrInvalidSQL)
	ErrExpectedDataType       = fmt.Errorf("%w: expected data type", tsqlschema.ErrInvalidSQL)
	ErrExpectedNumericLiteral = fmt.Errorf("%w: expected numeric literal", tsqlschema.ErrInvalidSQL)
	ErrUnknownColumnReference = fmt.Errorf("%w: unknown column reference", tsqlschema.ErrInvalidSQL)
	ErrUnexpectedEndOfInput   = fmt.Errorf("%w: unexpected end of input", tsqlschema.ErrInvalidSQL)
	ErrUnexpectedToken        = fmt.Errorf("%w: unexpected token", tsqlschema.ErrInvalidSQL)
)

// ErrorKind names the expectation a ParseError reports
type ErrorKind int

const (
	ExpectedTableName ErrorKind = iota + 1
	ExpectedOpenParen
	ExpectedCloseParen
	ExpectedComma
	ExpectedKeyword
	ExpectedIdentifier
	ExpectedDataType
	ExpectedNumericLiteral
	UnknownColumnReference
	UnexpectedEndOfInput
	UnexpectedToken
)

var errorKinds = map[ErrorKind]struct {
	message  string
	sentinel error
}{
	ExpectedTableName:      {"expected table name", ErrExpectedTableName},
	ExpectedOpenParen:      {"expected '('", ErrExpectedOpenParen},
	ExpectedCloseParen:     {"expected ')'", ErrExpectedCloseParen},
	ExpectedComma:          {"expected ','", ErrExpectedComma},
	ExpectedKeyword:        {"expected keyword", ErrExpectedKeyword},
	ExpectedIdentifier:     {"expected identifier", ErrExpectedIdentifier},
	ExpectedDataType:       {"expected data type", ErrExpectedDataType},
	ExpectedNumericLiteral: {"expected numeric literal", ErrExpectedNumericLiteral},
	UnknownColumnReference: {"unknown column reference", ErrUnknownColumnReference},
	UnexpectedEndOfInput:   {"unexpected end of input", ErrUnexpectedEndOfInput},
	UnexpectedToken:        {"unexpected token", ErrUnexpectedToken},
}

func (k ErrorKind) String() string {
	if kind, ok := errorKinds[k]; ok {
		return kind.message
	}

	return "unknown error"
}

// ParseError reports where and why a CREATE TABLE statement was rejected.
type ParseError struct {
	Kind      ErrorKind
	Pos       int    // index of the offending token in the normalized statement
	Token     *Token // nil when the input ended
	Detail    string // expected keyword, or the referenced column name
	Statement int    // ordinal in the batch, -1 when parsed on its own
}

func (e *ParseError) Error() string {
	var builder strings.Builder

	if e.Statement >= 0 {
		fmt.Fprintf(&builder, "statement %d: ", e.Statement)
	}

	builder.WriteString(e.Kind.String())

	if e.Detail != "" {
		builder.WriteString(" ")
		builder.WriteString(e.Detail)
	}

	fmt.Fprintf(&builder, " at token %d", e.Pos)

	if e.Token != nil {
		if e.Token.Pos.IsValid() {
			fmt.Fprintf(&builder, " (%s)", e.Token.Pos)
		}

		fmt.Fprintf(&builder, " near %q", e.Token.Text)
	}

	return builder.String()
}

func (e *ParseError) Unwrap() error {
	if kind, ok := errorKinds[e.Kind]; ok {
		return kind.sentinel
	}

	return tsqlschema.ErrInvalidSQL
}
