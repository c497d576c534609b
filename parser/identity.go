package parser

import "github.com/shibukawa/tsqlschema"

// parseIdentity parses the optional (seed, increment) after IDENTITY.
func (p *createTableParser) parseIdentity() (*tsqlschema.Identity, error) {
	token, err := p.advance()
	if err != nil {
		return nil, err
	}

	if !token.IsPunct("(") {
		p.rewind()
		return &tsqlschema.Identity{Seed: 1, Increment: 1}, nil
	}

	seed, err := p.expectInt64()
	if err != nil {
		return nil, err
	}

	if err := p.expect(",", ExpectedComma); err != nil {
		return nil, err
	}

	increment, err := p.expectInt64()
	if err != nil {
		return nil, err
	}

	if err := p.expect(")", ExpectedCloseParen); err != nil {
		return nil, err
	}

	return &tsqlschema.Identity{Seed: seed, Increment: increment}, nil
}
