package parser

import (
	"mscript/interpreter-go/pkg/ast"
	"mscript/interpreter-go/pkg/lexer"
)

var comparisonOperators = map[lexer.Kind]ast.Operator{
	lexer.KindEqual:        ast.OpEquals,
	lexer.KindGreater:      ast.OpGreater,
	lexer.KindGreaterEqual: ast.OpGreaterOrEqual,
	lexer.KindLess:         ast.OpLesser,
	lexer.KindLessEqual:    ast.OpLesserOrEqual,
}

var logicalOperators = map[lexer.Kind]ast.Operator{
	lexer.KindAnd:    ast.OpAnd,
	lexer.KindAndAnd: ast.OpAnd,
	lexer.KindOr:     ast.OpOr,
	lexer.KindOrOr:   ast.OpOr,
}

var additiveOperators = map[lexer.Kind]ast.Operator{
	lexer.KindPlus:  ast.OpSum,
	lexer.KindMinus: ast.OpSubtract,
}

var multiplicativeOperators = map[lexer.Kind]ast.Operator{
	lexer.KindStar:  ast.OpMultiply,
	lexer.KindSlash: ast.OpDivide,
}

// parseExpression picks the grammar from the type the value must have:
// numbers use the arithmetic grammar, booleans the logical one.
func (p *Parser) parseExpression(typ ast.Type) (ast.Expression, error) {
	if typ.Tag == ast.TypeBool {
		return p.parseLogical()
	}
	return p.parseArithmetic()
}

// binaryLevel parses operand (op operand)* left-associatively for one
// precedence level.
func (p *Parser) binaryLevel(ops map[lexer.Kind]ast.Operator, operand func() (ast.Expression, error)) (ast.Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok {
			return left, nil
		}
		op, matched := ops[tok.Kind]
		if !matched {
			return left, nil
		}
		p.advance()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(op, left, right)
	}
}

// parseLogical handles comparisons, the loosest binding level.
func (p *Parser) parseLogical() (ast.Expression, error) {
	return p.binaryLevel(comparisonOperators, p.parseLogicalTerm)
}

func (p *Parser) parseLogicalTerm() (ast.Expression, error) {
	return p.binaryLevel(logicalOperators, p.parseLogicalFact)
}

func (p *Parser) parseLogicalFact() (ast.Expression, error) {
	if p.at(lexer.KindLParen) {
		p.advance()
		inner, err := p.parseLogical()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.KindRParen); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return p.parseArithmetic()
}

func (p *Parser) parseArithmetic() (ast.Expression, error) {
	return p.binaryLevel(additiveOperators, p.parseTerm)
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	return p.binaryLevel(multiplicativeOperators, p.parseFact)
}

func (p *Parser) parseFact() (ast.Expression, error) {
	tok, err := p.current()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case lexer.KindLParen:
		p.advance()
		inner, err := p.parseArithmetic()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.KindRParen); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.KindInteger:
		p.advance()
		return ast.NewIntLiteral(tok.Int), nil
	case lexer.KindFloat:
		p.advance()
		return ast.NewFloatLiteral(tok.Float), nil
	case lexer.KindName:
		p.advance()
		typ, err := p.lookup(tok)
		if err != nil {
			return nil, err
		}
		if !typ.IsNumeric() {
			return nil, &VariableTypeError{Name: tok.Text, Want: ast.FloatType(), Got: typ, Pos: tok.Pos}
		}
		return ast.NewVariable(tok.Text, typ), nil
	default:
		return nil, &UnexpectedTokenError{Found: tok}
	}
}
