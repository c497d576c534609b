package parser

import (
	"strconv"

	"github.com/shibukawa/tsqlschema"
)

const (
	defaultPrecision = 8
	defaultScale     = 0
)

// parseDecimalSize parses the optional (precision[, scale]) of DECIMAL and NUMERIC.
func (p *createTableParser) parseDecimalSize() (*tsqlschema.SizeSpec, error) {
	token, err := p.advance()
	if err != nil {
		return nil, err
	}

	if !token.IsPunct("(") {
		p.rewind()
		return tsqlschema.PrecisionScale(defaultPrecision, defaultScale), nil
	}

	precision, err := p.expectInt()
	if err != nil {
		return nil, err
	}

	token, err = p.advance()
	if err != nil {
		return nil, err
	}

	if token.IsPunct(")") {
		return tsqlschema.PrecisionScale(precision, defaultScale), nil
	}

	if !token.IsPunct(",") {
		return nil, p.fail(ExpectedComma, "")
	}

	scale, err := p.expectInt()
	if err != nil {
		return nil, err
	}

	if err := p.expect(")", ExpectedCloseParen); err != nil {
		return nil, err
	}

	return tsqlschema.PrecisionScale(precision, scale), nil
}

// parseSize parses the optional (n) of FLOAT and the string types.
func (p *createTableParser) parseSize(dataType string) (*tsqlschema.SizeSpec, error) {
	token, err := p.advance()
	if err != nil {
		return nil, err
	}

	if !token.IsPunct("(") {
		p.rewind()
		return tsqlschema.LengthSize(defaultSizes[dataType]), nil
	}

	var size int

	token, err = p.advance()
	if err != nil {
		return nil, err
	}

	if token.IsWord("MAX") && maxSizeTypes[dataType] {
		size = tsqlschema.SizeMax
	} else {
		p.rewind()

		size, err = p.expectInt()
		if err != nil {
			return nil, err
		}
	}

	if err := p.expect(")", ExpectedCloseParen); err != nil {
		return nil, err
	}

	return tsqlschema.LengthSize(size), nil
}

// expectInt advances and converts the next token into an int.
func (p *createTableParser) expectInt() (int, error) {
	value, err := p.expectInt64()
	return int(value), err
}

func (p *createTableParser) expectInt64() (int64, error) {
	token, err := p.advance()
	if err != nil {
		return 0, err
	}

	if token.Kind != NumericLiteral {
		return 0, p.fail(ExpectedNumericLiteral, "")
	}

	value, err := strconv.ParseInt(token.Text, 10, 64)
	if err != nil {
		return 0, p.fail(ExpectedNumericLiteral, "")
	}

	return value, nil
}
