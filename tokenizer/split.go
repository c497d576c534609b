package tokenizer

import (
	"strings"

	pc "github.com/shibukawa/parsercombinator"
)

// DefaultBatchSeparator is the batch separator understood by sqlcmd and SSMS.
const DefaultBatchSeparator = "GO"

func primitiveType(types ...TokenType) pc.Parser[Token] {
	return func(pctx *pc.ParseContext[Token], tokens []pc.Token[Token]) (int, []pc.Token[Token], error) {
		if len(tokens) > 0 {
			for _, tokenType := range types {
				if tokens[0].Val.Type == tokenType {
					return 1, tokens[:1], nil
				}
			}
		}

		return 0, nil, pc.ErrNotMatch
	}
}

func wordType(word string) pc.Parser[Token] {
	return func(pctx *pc.ParseContext[Token], tokens []pc.Token[Token]) (int, []pc.Token[Token], error) {
		if word != "" && len(tokens) > 0 && tokens[0].Val.Type == WORD && strings.EqualFold(tokens[0].Val.Value, word) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

func statementSplitter(batchSeparator string) pc.Parser[Token] {
	return pc.Or(
		primitiveType(SEMICOLON, OPENED_PARENS, CLOSED_PARENS),
		wordType(batchSeparator),
	)
}

func toParserTokens(tokens []Token) []pc.Token[Token] {
	results := make([]pc.Token[Token], 0, len(tokens))
	for _, token := range tokens {
		if token.Type == EOF {
			continue
		}

		results = append(results, pc.Token[Token]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Position.Line,
				Col:   token.Position.Column,
				Index: token.Position.Offset,
			},
			Val: token,
			Raw: token.Value,
		})
	}

	return results
}

func fromParserTokens(tokens []pc.Token[Token]) []Token {
	results := make([]Token, 0, len(tokens))
	for _, token := range tokens {
		results = append(results, token.Val)
	}

	return results
}

// Split cuts a token stream into statements. Statements end at a semicolon
// outside parentheses or at a batch separator standing alone on its line.
// Separators are not part of the returned statements. Pass an empty
// batchSeparator to split on semicolons only.
func Split(tokens []Token, batchSeparator string) [][]Token {
	pTokens := toParserTokens(tokens)

	var (
		statements [][]Token
		current    []Token
		nest       int
		offset     int
	)

	flush := func() {
		statements = append(statements, current)
		current = nil
	}

	for _, part := range pc.FindIter(pc.NewParseContext[Token](), statementSplitter(batchSeparator), pTokens) {
		current = append(current, fromParserTokens(part.Skipped)...)
		offset += len(part.Skipped)

		if part.Last || len(part.Match) == 0 {
			break
		}

		offset += part.Consume
		match := part.Match[0].Val

		switch match.Type {
		case OPENED_PARENS:
			nest++

			current = append(current, match)
		case CLOSED_PARENS:
			if nest > 0 {
				nest--
			}

			current = append(current, match)
		case SEMICOLON:
			if nest > 0 {
				current = append(current, match)
				continue
			}

			flush()
		default: // batch separator
			if nest > 0 || !startsLine(current) || !endsLine(pTokens[offset:]) {
				current = append(current, match)
				continue
			}

			flush()
		}
	}

	if offset < len(pTokens) {
		// FindIter stopped without reporting the tail
		current = append(current, fromParserTokens(pTokens[offset:])...)
	}

	if len(current) > 0 {
		flush()
	}

	return statements
}

func startsLine(before []Token) bool {
	if len(before) == 0 {
		return true
	}

	last := before[len(before)-1]

	return last.Type == WHITESPACE && strings.Contains(last.Value, "\n")
}

func endsLine(after []pc.Token[Token]) bool {
	if len(after) == 0 {
		return true
	}

	next := after[0].Val
	switch next.Type {
	case LINE_COMMENT:
		return true
	case WHITESPACE:
		return strings.Contains(next.Value, "\n") || len(after) == 1
	}

	return false
}
