package tokenizer

import (
	"fmt"
	"strings"
)

// NodeKind classifies a node of the grouped token tree
type NodeKind int

const (
	LEAF            NodeKind = iota
	IDENTIFIER               // single or multi-part name folded into one leaf
	IDENTIFIER_LIST          // a, b, c inside a parenthesis
	FUNCTION                 // name followed by a parenthesis: VARCHAR(10), IDENTITY(1, 1), t (...)
	PARENTHESIS              // ( ... ) including both parens as leaves
	EXPRESSION               // value expression after DEFAULT or CHECK
)

func (k NodeKind) String() string {
	switch k {
	case LEAF:
		return "LEAF"
	case IDENTIFIER:
		return "IDENTIFIER"
	case IDENTIFIER_LIST:
		return "IDENTIFIER_LIST"
	case FUNCTION:
		return "FUNCTION"
	case PARENTHESIS:
		return "PARENTHESIS"
	case EXPRESSION:
		return "EXPRESSION"
	default:
		return "UNKNOWN"
	}
}

// Node is an element of the grouped token tree. Leaves carry Token,
// groups carry Children.
type Node struct {
	Kind     NodeKind
	Token    Token
	Children []*Node
}

// Text returns the source text covered by the node.
func (n *Node) Text() string {
	if n.Kind == LEAF {
		return n.Token.Value
	}

	var builder strings.Builder
	for _, child := range n.Children {
		builder.WriteString(child.Text())
	}

	return builder.String()
}

// Position returns the position of the first leaf.
func (n *Node) Position() Position {
	if n.Kind == LEAF || len(n.Children) == 0 {
		return n.Token.Position
	}

	return n.Children[0].Position()
}

func (n *Node) isTrivia() bool {
	return n.Kind == LEAF && n.Token.IsTrivia()
}

func (n *Node) isWord(word string) bool {
	return n.Kind == LEAF && n.Token.Type == WORD && strings.EqualFold(n.Token.Value, word)
}

func (n *Node) isName() bool {
	switch n.Kind {
	case IDENTIFIER:
		return true
	case LEAF:
		return n.Token.Type == WORD || n.Token.Type == DELIMITED_IDENTIFIER
	}

	return false
}

// Statement is one statement as a grouped token tree.
type Statement struct {
	Nodes []*Node
}

// Text returns the statement source text.
func (s *Statement) Text() string {
	var builder strings.Builder
	for _, node := range s.Nodes {
		builder.WriteString(node.Text())
	}

	return builder.String()
}

// Parse tokenizes src, splits it into statements and groups each of them.
func Parse(src string, batchSeparator string) ([]*Statement, error) {
	tokens, err := NewSqlTokenizer(src).AllTokens()
	if err != nil {
		return nil, err
	}

	chunks := Split(tokens, batchSeparator)
	statements := make([]*Statement, 0, len(chunks))

	for _, chunk := range chunks {
		statement, err := Group(chunk)
		if err != nil {
			return nil, err
		}

		statements = append(statements, statement)
	}

	return statements, nil
}

// Group builds the grouped tree for the tokens of one statement.
func Group(tokens []Token) (*Statement, error) {
	leaves := make([]*Node, 0, len(tokens))
	for _, token := range tokens {
		if token.Type == EOF {
			continue
		}

		leaves = append(leaves, &Node{Kind: LEAF, Token: token})
	}

	nodes, rest, err := groupParenthesis(leaves, false)
	if err != nil {
		return nil, err
	}

	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: ')' at %s", ErrUnmatchedParenthesis, rest[0].Token.Position)
	}

	return &Statement{Nodes: refine(nodes)}, nil
}

// groupParenthesis nests parenthesized spans. When nested is true it stops
// after the closing parenthesis and returns the leaves after it.
func groupParenthesis(leaves []*Node, nested bool) ([]*Node, []*Node, error) {
	var result []*Node

	for len(leaves) > 0 {
		leaf := leaves[0]
		leaves = leaves[1:]

		switch leaf.Token.Type {
		case OPENED_PARENS:
			inner, rest, err := groupParenthesis(leaves, true)
			if err != nil {
				return nil, nil, err
			}

			if len(inner) == 0 || inner[len(inner)-1].Token.Type != CLOSED_PARENS {
				return nil, nil, fmt.Errorf("%w: '(' at %s", ErrUnmatchedParenthesis, leaf.Token.Position)
			}

			result = append(result, &Node{
				Kind:     PARENTHESIS,
				Children: append([]*Node{leaf}, inner...),
			})
			leaves = rest
		case CLOSED_PARENS:
			if !nested {
				return result, append([]*Node{leaf}, leaves...), nil
			}

			return append(result, leaf), leaves, nil
		default:
			result = append(result, leaf)
		}
	}

	// unterminated: the caller reports the opening parenthesis
	return result, nil, nil
}

// refine applies the grouping rules to one level and recurses into
// parenthesis contents.
func refine(nodes []*Node) []*Node {
	for _, node := range nodes {
		if node.Kind == PARENTHESIS {
			node.Children = refineParenthesis(node.Children)
		}
	}

	nodes = foldNames(nodes)
	nodes = foldSigns(nodes)
	nodes = groupFunctions(nodes)

	return markExpressions(nodes)
}

func refineParenthesis(children []*Node) []*Node {
	open, inner, closing := children[0], children[1:len(children)-1], children[len(children)-1]
	inner = refine(inner)

	if isIdentifierList(inner) {
		inner = []*Node{{Kind: IDENTIFIER_LIST, Children: inner}}
	}

	result := make([]*Node, 0, len(inner)+2)
	result = append(result, open)
	result = append(result, inner...)

	return append(result, closing)
}

func isIdentifierList(nodes []*Node) bool {
	names := 0
	expectName := true

	for _, node := range nodes {
		if node.isTrivia() {
			continue
		}

		if expectName {
			if !node.isName() {
				return false
			}

			names++
		} else if node.Kind != LEAF || node.Token.Type != COMMA {
			return false
		}

		expectName = !expectName
	}

	return names > 1 && !expectName
}

// foldNames folds name(.name)* chains into one IDENTIFIER node holding a
// single leaf. Delimited identifiers are wrapped the same way.
func foldNames(nodes []*Node) []*Node {
	result := make([]*Node, 0, len(nodes))

	for i := 0; i < len(nodes); i++ {
		node := nodes[i]
		if node.Kind != LEAF || (node.Token.Type != WORD && node.Token.Type != DELIMITED_IDENTIFIER) {
			result = append(result, node)
			continue
		}

		end := i
		for end+2 < len(nodes) && isLeafType(nodes[end+1], DOT) &&
			(isLeafType(nodes[end+2], WORD) || isLeafType(nodes[end+2], DELIMITED_IDENTIFIER)) {
			end += 2
		}

		if end == i && node.Token.Type == WORD {
			result = append(result, node)
			continue
		}

		var builder strings.Builder

		tokenType := WORD
		for _, part := range nodes[i : end+1] {
			builder.WriteString(part.Token.Value)

			if part.Token.Type == DELIMITED_IDENTIFIER {
				tokenType = DELIMITED_IDENTIFIER
			}
		}

		result = append(result, &Node{
			Kind: IDENTIFIER,
			Children: []*Node{{
				Kind: LEAF,
				Token: Token{
					Type:     tokenType,
					Value:    builder.String(),
					Position: node.Token.Position,
				},
			}},
		})
		i = end
	}

	return result
}

// foldSigns merges a unary sign into the numeric literal that follows it.
func foldSigns(nodes []*Node) []*Node {
	result := make([]*Node, 0, len(nodes))

	var previous *Node

	for i := 0; i < len(nodes); i++ {
		node := nodes[i]
		if (isLeafType(node, MINUS) || isLeafType(node, PLUS)) && i+1 < len(nodes) &&
			isLeafType(nodes[i+1], NUMBER) && isUnaryPosition(previous) {
			number := nodes[i+1].Token
			number.Value = node.Token.Value + number.Value
			number.Position = node.Token.Position
			node = &Node{Kind: LEAF, Token: number}
			i++
		}

		result = append(result, node)

		if !node.isTrivia() {
			previous = node
		}
	}

	return result
}

func isUnaryPosition(previous *Node) bool {
	if previous == nil {
		return true
	}

	return isLeafType(previous, OPENED_PARENS) || isLeafType(previous, COMMA) ||
		isLeafType(previous, EQUAL) || previous.isWord("DEFAULT")
}

// groupFunctions joins a name and the parenthesis after it.
func groupFunctions(nodes []*Node) []*Node {
	result := make([]*Node, 0, len(nodes))

	for i := 0; i < len(nodes); i++ {
		node := nodes[i]
		if !node.isName() || node.isWord("DEFAULT") || node.isWord("CHECK") {
			result = append(result, node)
			continue
		}

		next := nextSignificant(nodes, i+1)
		if next < 0 || nodes[next].Kind != PARENTHESIS {
			result = append(result, node)
			continue
		}

		result = append(result, &Node{
			Kind:     FUNCTION,
			Children: append([]*Node{}, nodes[i:next+1]...),
		})
		i = next
	}

	return result
}

// markExpressions wraps the value following DEFAULT or CHECK so that it
// stays one unit for the consumers.
func markExpressions(nodes []*Node) []*Node {
	for i, node := range nodes {
		if !node.isWord("DEFAULT") && !node.isWord("CHECK") {
			continue
		}

		next := nextSignificant(nodes, i+1)
		if next < 0 {
			continue
		}

		switch nodes[next].Kind {
		case PARENTHESIS, FUNCTION:
			nodes[next] = &Node{Kind: EXPRESSION, Children: []*Node{nodes[next]}}
		}
	}

	return nodes
}

func nextSignificant(nodes []*Node, from int) int {
	for i := from; i < len(nodes); i++ {
		if !nodes[i].isTrivia() {
			return i
		}
	}

	return -1
}

func isLeafType(node *Node, tokenType TokenType) bool {
	return node.Kind == LEAF && node.Token.Type == tokenType
}
