package parser

import "github.com/shibukawa/tsqlschema"

// foreignKeyClause is a parsed FOREIGN KEY/REFERENCES clause before it is
// attached to the table.
type foreignKeyClause struct {
	columns    []string
	refTable   string
	refColumns []string
	onDelete   tsqlschema.CascadeAction
	onUpdate   tsqlschema.CascadeAction
}

// parseColumnForeignKey parses a foreign key inside a column definition.
// withKey is true when the current token is FOREIGN, false when it is
// REFERENCES.
func (p *createTableParser) parseColumnForeignKey(withKey bool) (*tsqlschema.ForeignKey, error) {
	if withKey {
		if err := p.expectKeyword("KEY"); err != nil {
			return nil, err
		}

		token, err := p.advance()
		if err != nil {
			return nil, err
		}

		// the local column is the enclosing one; an explicit list is ignored
		if token.IsPunct("(") {
			if _, err := p.parseNameList(false); err != nil {
				return nil, err
			}
		} else {
			p.rewind()
		}

		if err := p.expectKeyword("REFERENCES"); err != nil {
			return nil, err
		}
	}

	clause := &foreignKeyClause{}
	if err := p.parseReferences(clause, true); err != nil {
		return nil, err
	}

	return &tsqlschema.ForeignKey{
		RefTable:  clause.refTable,
		RefColumn: clause.refColumns[0],
		OnDelete:  clause.onDelete,
		OnUpdate:  clause.onUpdate,
	}, nil
}

// parseTableForeignKey parses FOREIGN KEY (cols) REFERENCES ... in the column
// list. One local column is folded into that column, more are recorded as a
// multi-column foreign key.
func (p *createTableParser) parseTableForeignKey() error {
	if err := p.expectKeyword("KEY"); err != nil {
		return err
	}

	if err := p.expect("(", ExpectedOpenParen); err != nil {
		return err
	}

	columns, err := p.parseNameList(false)
	if err != nil {
		return err
	}

	listEnd := p.pos

	if err := p.expectKeyword("REFERENCES"); err != nil {
		return err
	}

	clause := &foreignKeyClause{columns: columns}
	if err := p.parseReferences(clause, false); err != nil {
		return err
	}

	if len(columns) > 1 {
		p.table.MultiForeignKeys = append(p.table.MultiForeignKeys, tsqlschema.MultiColumnForeignKey{
			Columns:    clause.columns,
			RefTable:   clause.refTable,
			RefColumns: clause.refColumns,
			OnDelete:   clause.onDelete,
			OnUpdate:   clause.onUpdate,
		})

		return nil
	}

	_, column, ok := p.findColumn(columns[0])
	if !ok {
		return &ParseError{
			Kind:      UnknownColumnReference,
			Pos:       listEnd - 1,
			Token:     &p.tokens[listEnd-1],
			Detail:    columns[0],
			Statement: -1,
		}
	}

	column.ForeignKey = &tsqlschema.ForeignKey{
		RefTable:  clause.refTable,
		RefColumn: clause.refColumns[0],
		OnDelete:  clause.onDelete,
		OnUpdate:  clause.onUpdate,
	}

	return nil
}

// parseReferences parses table (cols) [ON ...] after REFERENCES. In column
// mode exactly one referenced column is accepted.
func (p *createTableParser) parseReferences(clause *foreignKeyClause, columnMode bool) error {
	token, err := p.advance()
	if err != nil {
		return err
	}

	if token.Kind != Identifier {
		return p.fail(ExpectedIdentifier, "")
	}

	clause.refTable = tsqlschema.NormalizeName(token.Text)

	if err := p.expect("(", ExpectedOpenParen); err != nil {
		return err
	}

	clause.refColumns, err = p.parseNameList(columnMode)
	if err != nil {
		return err
	}

	return p.parseCascadeActions(clause)
}

// parseNameList parses name[, name...] ) after an opening parenthesis and
// returns the names without delimiters. single allows only one name.
func (p *createTableParser) parseNameList(single bool) ([]string, error) {
	var names []string

	for {
		token, err := p.advance()
		if err != nil {
			return nil, err
		}

		if token.Kind != Identifier {
			return nil, p.fail(ExpectedIdentifier, "")
		}

		names = append(names, tsqlschema.UnquoteIdentifier(token.Text))

		token, err = p.advance()
		if err != nil {
			return nil, err
		}

		switch {
		case token.IsPunct(")"):
			return names, nil
		case token.IsPunct(",") && !single:
			continue
		}

		return nil, p.fail(ExpectedCloseParen, "")
	}
}

// parseCascadeActions parses [ON (DELETE|UPDATE) action]... The first token
// that does not continue the clause is pushed back.
func (p *createTableParser) parseCascadeActions(clause *foreignKeyClause) error {
	token, err := p.advance()
	if err != nil {
		return err
	}

	if !token.Is("ON") {
		p.rewind()
		return nil
	}

	afterOn := true

	for {
		if !afterOn {
			token, err = p.advance()
			if err != nil {
				return err
			}

			if token.Is("ON") {
				afterOn = true
			}
		}

		if afterOn {
			token, err = p.advance()
			if err != nil {
				return err
			}
		}

		var target *tsqlschema.CascadeAction

		switch {
		case token.Is("DELETE"):
			target = &clause.onDelete
		case token.Is("UPDATE"):
			target = &clause.onUpdate
		case afterOn:
			return p.fail(ExpectedKeyword, "DELETE or UPDATE")
		default:
			p.rewind()
			return nil
		}

		action, err := p.parseCascadeAction()
		if err != nil {
			return err
		}

		*target = action
		afterOn = false
	}
}

func (p *createTableParser) parseCascadeAction() (tsqlschema.CascadeAction, error) {
	token, err := p.advance()
	if err != nil {
		return tsqlschema.NoAction, err
	}

	switch {
	case token.Is("CASCADE"):
		return tsqlschema.Cascade, nil
	case token.Is("SET"):
		token, err = p.advance()
		if err != nil {
			return tsqlschema.NoAction, err
		}

		switch {
		case token.Is("NULL"):
			return tsqlschema.SetNull, nil
		case token.Is("DEFAULT"):
			return tsqlschema.SetDefault, nil
		}

		return tsqlschema.NoAction, p.fail(ExpectedKeyword, "NULL or DEFAULT")
	case token.IsWord("NO"):
		if err := p.expectKeyword("ACTION"); err != nil {
			return tsqlschema.NoAction, err
		}

		return tsqlschema.NoAction, nil
	}

	return tsqlschema.NoAction, p.fail(ExpectedKeyword, "CASCADE, SET or NO")
}
