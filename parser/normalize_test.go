package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/tsqlschema/tokenizer"
)

func normalizeOne(t *testing.T, sql string) []Token {
	t.Helper()

	statements, err := tokenizer.Parse(sql, "")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(statements))

	return Normalize(statements[0])
}

type kindText struct {
	kind TokenKind
	text string
}

func summarize(tokens []Token) []kindText {
	result := make([]kindText, 0, len(tokens))
	for _, token := range tokens {
		result = append(result, kindText{token.Kind, token.Text})
	}

	return result
}

func TestNormalize(t *testing.T) {
	tokens := normalizeOne(t, "CREATE TABLE dbo.[Orders] (id INT DEFAULT (0) -- comment\n, name VARCHAR(10) /* note */)")

	assert.Equal(t, []kindText{
		{Keyword, "CREATE"},
		{Keyword, "TABLE"},
		{Identifier, "dbo.[Orders]"},
		{Punctuation, "("},
		{Identifier, "id"},
		{Keyword, "INT"},
		{Keyword, "DEFAULT"},
		{ParenGroup, "(0)"},
		{Punctuation, ","},
		{Identifier, "name"},
		{Keyword, "VARCHAR"},
		{Punctuation, "("},
		{NumericLiteral, "10"},
		{Punctuation, ")"},
		{Punctuation, ")"},
	}, summarize(tokens))

	group := tokens[7]
	assert.Equal(t, []kindText{
		{Punctuation, "("},
		{NumericLiteral, "0"},
		{Punctuation, ")"},
	}, summarize(group.Children))
}

func TestNormalizeClassifiesWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []kindText
	}{
		{
			name:     "keywords ignore case",
			input:    "create Table",
			expected: []kindText{{Keyword, "create"}, {Keyword, "Table"}},
		},
		{
			name:     "delimited keyword is an identifier",
			input:    "[table] \"key\"",
			expected: []kindText{{Identifier, "[table]"}, {Identifier, `"key"`}},
		},
		{
			name:     "data types are keywords",
			input:    "nvarchar uniqueidentifier",
			expected: []kindText{{Keyword, "nvarchar"}, {Keyword, "uniqueidentifier"}},
		},
		{
			name:     "contextual words are identifiers",
			input:    "action Max no",
			expected: []kindText{{Identifier, "action"}, {Identifier, "Max"}, {Identifier, "no"}},
		},
		{
			name:     "literals",
			input:    "-1 N'abc' 'x'",
			expected: []kindText{{NumericLiteral, "-1"}, {StringLiteral, "N'abc'"}, {StringLiteral, "'x'"}},
		},
		{
			name:     "function default is one group",
			input:    "DEFAULT GETDATE()",
			expected: []kindText{{Keyword, "DEFAULT"}, {ParenGroup, "GETDATE()"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, summarize(normalizeOne(t, tt.input)))
		})
	}
}

func TestNormalizeKeepsPositions(t *testing.T) {
	tokens := normalizeOne(t, "CREATE TABLE t\n  (id INT)")

	assert.Equal(t, tokenizer.Position{Line: 2, Column: 4, Offset: 18}, tokens[4].Pos)
}

func TestNormalizeNil(t *testing.T) {
	assert.Equal(t, 0, len(Normalize(nil)))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected StatementKind
	}{
		{"create table", "CREATE TABLE t (id INT)", StatementCreateTable},
		{"lower case", "create table t (id int)", StatementCreateTable},
		{"alter", "ALTER TABLE t ADD x INT", StatementAlter},
		{"create view", "CREATE VIEW v AS SELECT 1", StatementIgnored},
		{"select", "SELECT 1", StatementIgnored},
		{"comment only", "-- nothing here", StatementEmpty},
		{"lonely create", "CREATE", StatementIgnored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(normalizeOne(t, tt.input)))
		})
	}
}
