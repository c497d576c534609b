package parser

import "github.com/shibukawa/tsqlschema"

// parseClustering reads an optional CLUSTERED or NONCLUSTERED. Primary keys
// are clustered unless stated otherwise.
func (p *createTableParser) parseClustering() (bool, error) {
	token, err := p.advance()
	if err != nil {
		return false, err
	}

	switch {
	case token.Is("CLUSTERED"):
		return true, nil
	case token.Is("NONCLUSTERED"):
		return false, nil
	}

	p.rewind()

	return true, nil
}

// parseColumnPrimaryKey parses PRIMARY KEY [CLUSTERED|NONCLUSTERED] inside
// a column definition. The current token is PRIMARY.
func (p *createTableParser) parseColumnPrimaryKey() (*tsqlschema.PrimaryKey, error) {
	if err := p.expectKeyword("KEY"); err != nil {
		return nil, err
	}

	clustered, err := p.parseClustering()
	if err != nil {
		return nil, err
	}

	return &tsqlschema.PrimaryKey{Clustered: clustered}, nil
}

// parseTablePrimaryKey parses PRIMARY KEY [CLUSTERED|NONCLUSTERED] (column)
// in the column list and attaches it to the declared column.
func (p *createTableParser) parseTablePrimaryKey() error {
	primaryKey, err := p.parseColumnPrimaryKey()
	if err != nil {
		return err
	}

	if err := p.expect("(", ExpectedOpenParen); err != nil {
		return err
	}

	token, err := p.advance()
	if err != nil {
		return err
	}

	if token.Kind != Identifier {
		return p.fail(ExpectedIdentifier, "")
	}

	_, column, ok := p.findColumn(token.Text)
	if !ok {
		return p.fail(UnknownColumnReference, tsqlschema.UnquoteIdentifier(token.Text))
	}

	token, err = p.advance()
	if err != nil {
		return err
	}

	if !token.Is("ASC") && !token.Is("DESC") {
		p.rewind()
	}

	if err := p.expect(")", ExpectedCloseParen); err != nil {
		return err
	}

	column.PrimaryKey = primaryKey

	return nil
}
