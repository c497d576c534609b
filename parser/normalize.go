package parser

import (
	"github.com/shibukawa/tsqlschema/tokenizer"
)

// Normalize flattens the grouped tree of one statement into the token
// sequence walked by the parsers. Comments and whitespace are dropped,
// name groups become a single Identifier and parenthesized spans are
// expanded in place, except DEFAULT/CHECK expressions which are kept as
// one ParenGroup token.
func Normalize(statement *tokenizer.Statement) []Token {
	if statement == nil {
		return nil
	}

	return flatten(statement.Nodes, nil)
}

func flatten(nodes []*tokenizer.Node, result []Token) []Token {
	for _, node := range nodes {
		switch node.Kind {
		case tokenizer.LEAF:
			if node.Token.IsTrivia() {
				continue
			}

			result = append(result, classifyLeaf(node.Token))
		case tokenizer.IDENTIFIER:
			if len(node.Children) == 1 {
				result = append(result, Token{
					Kind: Identifier,
					Text: node.Children[0].Token.Value,
					Pos:  node.Children[0].Token.Position,
				})

				continue
			}

			result = flatten(node.Children, result)
		case tokenizer.EXPRESSION:
			result = append(result, Token{
				Kind:     ParenGroup,
				Text:     node.Text(),
				Children: flatten(node.Children, nil),
				Pos:      node.Position(),
			})
		default: // IDENTIFIER_LIST, FUNCTION, PARENTHESIS
			result = flatten(node.Children, result)
		}
	}

	return result
}

func classifyLeaf(token tokenizer.Token) Token {
	result := Token{Text: token.Value, Pos: token.Position}

	switch token.Type {
	case tokenizer.WORD:
		if isKeyword(token.Value) {
			result.Kind = Keyword
		} else {
			result.Kind = Identifier
		}
	case tokenizer.DELIMITED_IDENTIFIER:
		result.Kind = Identifier
	case tokenizer.NUMBER:
		result.Kind = NumericLiteral
	case tokenizer.STRING:
		result.Kind = StringLiteral
	default:
		result.Kind = Punctuation
	}

	return result
}
