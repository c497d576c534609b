package parser

import (
	"log/slog"
	"strings"

	"github.com/shibukawa/tsqlschema"
)

// createTableParser walks a normalized CREATE TABLE statement. pos always
// points at the last consumed token.
type createTableParser struct {
	tokens []Token
	pos    int
	table  *tsqlschema.TableMetadata
	log    *slog.Logger
}

// ParseCreateTable extracts the table metadata from a normalized
// CREATE TABLE statement. A nil logger discards the trace.
func ParseCreateTable(tokens []Token, logger *slog.Logger) (table *tsqlschema.TableMetadata, err error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	p := &createTableParser{
		tokens: tokens,
		pos:    2, // past CREATE TABLE
		log:    logger,
	}

	p.log.Debug("begin CREATE TABLE", "tokens", len(tokens))

	defer func() {
		if err != nil {
			p.log.Debug("end CREATE TABLE", "error", err)
		} else {
			p.log.Debug("end CREATE TABLE", "columns", table.Columns.Len(), "foreignKeys", len(table.MultiForeignKeys))
		}
	}()

	return p.parse()
}

func (p *createTableParser) current() Token {
	return p.tokens[p.pos]
}

// advance moves to the next token and returns it.
func (p *createTableParser) advance() (Token, error) {
	if p.pos+1 >= len(p.tokens) {
		return Token{}, &ParseError{
			Kind:      UnexpectedEndOfInput,
			Pos:       p.pos + 1,
			Statement: -1,
		}
	}

	p.pos++

	return p.tokens[p.pos], nil
}

// rewind steps back exactly one token.
func (p *createTableParser) rewind() {
	if p.pos > 0 {
		p.pos--
	}
}

// fail reports an error at the current token.
func (p *createTableParser) fail(kind ErrorKind, detail string) error {
	token := p.current()

	return &ParseError{
		Kind:      kind,
		Pos:       p.pos,
		Token:     &token,
		Detail:    detail,
		Statement: -1,
	}
}

// expect advances and fails with kind unless the next token is the punctuation.
func (p *createTableParser) expect(punct string, kind ErrorKind) error {
	token, err := p.advance()
	if err != nil {
		return err
	}

	if !token.IsPunct(punct) {
		return p.fail(kind, "")
	}

	return nil
}

// expectKeyword advances and fails unless the next token is the keyword.
func (p *createTableParser) expectKeyword(keyword string) error {
	token, err := p.advance()
	if err != nil {
		return err
	}

	if !token.IsWord(keyword) {
		return p.fail(ExpectedKeyword, keyword)
	}

	return nil
}

func (p *createTableParser) parse() (*tsqlschema.TableMetadata, error) {
	if p.pos >= len(p.tokens) {
		return nil, &ParseError{Kind: UnexpectedEndOfInput, Pos: p.pos, Detail: "table name", Statement: -1}
	}

	name := p.current()
	if name.Kind != Identifier {
		return nil, p.fail(ExpectedTableName, "")
	}

	p.table = tsqlschema.NewTableMetadata(name.Text)
	p.log = p.log.With("table", p.table.Name)

	token, err := p.advance()
	if err != nil {
		return nil, err
	}

	// CREATE TABLE t AS ... is not supported beyond skipping the marker
	if token.Is("AS") {
		token, err = p.advance()
		if err != nil {
			return nil, err
		}
	}

	if !token.IsPunct("(") {
		return nil, p.fail(ExpectedOpenParen, "")
	}

	for {
		token, err := p.advance()
		if err != nil {
			return nil, err
		}

		switch {
		case token.Kind == Identifier:
			err = p.parseColumn()
		case token.Is("CONSTRAINT"):
			err = p.parseNamedConstraint()
		case token.Is("PRIMARY"):
			err = p.parseTablePrimaryKey()
		case token.Is("FOREIGN"):
			err = p.parseTableForeignKey()
		case token.IsPunct(","):
			continue
		case token.IsPunct(")"):
			return p.table, nil
		default:
			err = p.fail(UnexpectedToken, "")
		}

		if err != nil {
			return nil, err
		}
	}
}

// parseNamedConstraint handles CONSTRAINT name before a table constraint.
// The name is not recorded.
func (p *createTableParser) parseNamedConstraint() error {
	name, err := p.advance()
	if err != nil {
		return err
	}

	if name.Kind != Identifier {
		return p.fail(ExpectedIdentifier, "")
	}

	token, err := p.advance()
	if err != nil {
		return err
	}

	switch {
	case token.Is("PRIMARY"):
		return p.parseTablePrimaryKey()
	case token.Is("FOREIGN"):
		return p.parseTableForeignKey()
	}

	return p.fail(UnexpectedToken, "")
}

// parseColumn parses a column definition. The current token is the column
// name; the terminating ',' or ')' is left for the caller.
func (p *createTableParser) parseColumn() error {
	name := tsqlschema.UnquoteIdentifier(p.current().Text)
	if strings.EqualFold(name, "ID") {
		p.log.Info("ID is not recommended as a column name", "column", name)
	}

	token, err := p.advance()
	if err != nil {
		return err
	}

	if !isDataType(token) {
		return p.fail(ExpectedDataType, "")
	}

	column := &tsqlschema.ColumnMetadata{DataType: strings.ToUpper(token.Text)}

	switch {
	case precisionScaleTypes[column.DataType]:
		column.Size, err = p.parseDecimalSize()
	case defaultSizes[column.DataType] > 0:
		column.Size, err = p.parseSize(column.DataType)
	}

	if err != nil {
		return err
	}

	if err := p.parseColumnAttributes(column); err != nil {
		return err
	}

	p.table.Columns.Set(name, column)
	p.log.Debug("column", "name", name, "definition", column.String())

	return nil
}

func (p *createTableParser) parseColumnAttributes(column *tsqlschema.ColumnMetadata) error {
	for {
		token, err := p.advance()
		if err != nil {
			return err
		}

		switch {
		case token.IsPunct(","), token.IsPunct(")"):
			p.rewind()
			return nil
		case token.Is("IDENTITY"):
			column.Identity, err = p.parseIdentity()
		case token.Is("NOT"):
			err = p.parseNotNull(column)
		case token.Is("NULL"):
			nullable := true
			column.Nullable = &nullable
		case token.Is("DEFAULT"):
			err = p.parseDefault(column)
		case token.Is("PRIMARY"):
			column.PrimaryKey, err = p.parseColumnPrimaryKey()
		case token.Is("FOREIGN"):
			column.ForeignKey, err = p.parseColumnForeignKey(true)
		case token.Is("REFERENCES"):
			column.ForeignKey, err = p.parseColumnForeignKey(false)
		default:
			// unknown attributes such as CHECK, UNIQUE or COLLATE are skipped
			p.log.Debug("skip column attribute", "token", token.Text)
			err = p.skipParenthesized()
		}

		if err != nil {
			return err
		}
	}
}

// skipParenthesized consumes a balanced ( ... ) span following a skipped
// attribute, as in WITH (FILLFACTOR = 80). Without it the inner ')' would end
// the column list.
func (p *createTableParser) skipParenthesized() error {
	token, err := p.advance()
	if err != nil {
		return err
	}

	if !token.IsPunct("(") {
		p.rewind()
		return nil
	}

	for depth := 1; depth > 0; {
		token, err = p.advance()
		if err != nil {
			return err
		}

		switch {
		case token.IsPunct("("):
			depth++
		case token.IsPunct(")"):
			depth--
		}
	}

	return nil
}

// parseNotNull handles NOT NULL. Other NOT forms (NOT FOR REPLICATION) are
// left to the attribute loop.
func (p *createTableParser) parseNotNull(column *tsqlschema.ColumnMetadata) error {
	token, err := p.advance()
	if err != nil {
		return err
	}

	if !token.Is("NULL") {
		p.rewind()
		return nil
	}

	nullable := false
	column.Nullable = &nullable

	return nil
}

// parseDefault stores the raw text of the token after DEFAULT.
func (p *createTableParser) parseDefault(column *tsqlschema.ColumnMetadata) error {
	token, err := p.advance()
	if err != nil {
		return err
	}

	if token.IsPunct(",") || token.IsPunct(")") {
		return p.fail(UnexpectedToken, "")
	}

	value := token.Text
	column.DefaultValue = &value

	return nil
}

// findColumn looks a column up by name, falling back to a case-insensitive
// match, and returns the declared name.
func (p *createTableParser) findColumn(name string) (string, *tsqlschema.ColumnMetadata, bool) {
	name = tsqlschema.UnquoteIdentifier(name)

	if column, ok := p.table.Columns.Get(name); ok {
		return name, column, true
	}

	for declared, column := range p.table.Columns.All() {
		if strings.EqualFold(declared, name) {
			return declared, column, true
		}
	}

	return "", nil, false
}
