package parser

// StatementKind is the routing decision for one normalized statement
type StatementKind int

const (
	StatementEmpty StatementKind = iota
	StatementAlter
	StatementCreateTable
	StatementIgnored
)

func (k StatementKind) String() string {
	switch k {
	case StatementEmpty:
		return "empty"
	case StatementAlter:
		return "alter"
	case StatementCreateTable:
		return "create table"
	default:
		return "ignored"
	}
}

// Classify decides how a normalized statement is handled.
func Classify(tokens []Token) StatementKind {
	if len(tokens) == 0 {
		return StatementEmpty
	}

	switch {
	case tokens[0].Is("ALTER"):
		return StatementAlter
	case tokens[0].Is("CREATE"):
		if len(tokens) > 1 && tokens[1].Is("TABLE") {
			return StatementCreateTable
		}
	}

	return StatementIgnored
}
