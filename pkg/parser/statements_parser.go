package parser

import (
	"mscript/interpreter-go/pkg/ast"
	"mscript/interpreter-go/pkg/lexer"
)

// parseSequence reads statements separated by ';' until '}' or end of input.
// The closing '}' is left for the caller.
func (p *Parser) parseSequence() ([]ast.Statement, error) {
	statements := make([]ast.Statement, 0)
	for {
		if p.atEnd() || p.at(lexer.KindRBrace) {
			return statements, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			statements = append(statements, stmt)
		}
		if p.atEnd() || p.at(lexer.KindRBrace) {
			return statements, nil
		}
		if _, err := p.expect(lexer.KindSemicolon); err != nil {
			return nil, err
		}
	}
}

// parseStatement dispatches on the leading token. A token that starts no
// statement yields a nil statement; the caller then requires ';'.
func (p *Parser) parseStatement() (ast.Statement, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, nil
	}
	switch tok.Kind {
	case lexer.KindInt, lexer.KindFloatType:
		return p.parseDeclaration()
	case lexer.KindPrint:
		return p.parsePrint()
	case lexer.KindName:
		return p.parseAssignment()
	case lexer.KindIf:
		return p.parseBranch()
	case lexer.KindFor:
		return p.parseFor()
	case lexer.KindWhile:
		return p.parseWhile()
	default:
		return nil, nil
	}
}

func (p *Parser) parseDeclaration() (ast.Statement, error) {
	tok, err := p.expect(lexer.KindInt, lexer.KindFloatType)
	if err != nil {
		return nil, err
	}
	typ := ast.IntType()
	if tok.Kind == lexer.KindFloatType {
		typ = ast.FloatType()
	}
	name, err := p.expect(lexer.KindName)
	if err != nil {
		return nil, err
	}
	var init ast.Expression
	if p.at(lexer.KindAssign) {
		p.advance()
		init, err = p.parseExpression(typ)
		if err != nil {
			return nil, err
		}
	}
	p.symbols.Declare(name.Text, typ)
	return ast.NewDeclaration(typ, name.Text, init), nil
}

func (p *Parser) parseAssignment() (ast.Statement, error) {
	name, err := p.expect(lexer.KindName)
	if err != nil {
		return nil, err
	}
	typ, err := p.lookup(name)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(typ)
	if err != nil {
		return nil, err
	}
	return ast.NewBinary(ast.OpAssign, ast.NewVariable(name.Text, typ), value), nil
}

func (p *Parser) parsePrint() (ast.Statement, error) {
	start, err := p.expect(lexer.KindPrint)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindLParen); err != nil {
		return nil, err
	}
	args := make([]ast.Expression, 0)
	for {
		tok, err := p.current(lexer.KindRParen)
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.KindRParen {
			p.advance()
			break
		}
		var arg ast.Expression
		switch tok.Kind {
		case lexer.KindInteger, lexer.KindFloat, lexer.KindLParen:
			arg, err = p.parseExpression(ast.FloatType())
		case lexer.KindName:
			var typ ast.Type
			if typ, err = p.lookup(tok); err == nil {
				arg, err = p.parseExpression(typ)
			}
		default:
			return nil, &UnexpectedTokenError{Found: tok}
		}
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		sep, err := p.current(lexer.KindComma, lexer.KindRParen)
		if err != nil {
			return nil, err
		}
		switch sep.Kind {
		case lexer.KindComma:
			p.advance()
		case lexer.KindRParen:
		default:
			return nil, &UnexpectedTokenError{Found: sep, Expected: []lexer.Kind{lexer.KindComma, lexer.KindRParen}}
		}
	}
	if len(args) == 0 {
		return nil, &SyntaxError{Pos: start.Pos, Message: "expected expression inside 'print'"}
	}
	return ast.NewPrint(args), nil
}

func (p *Parser) parseBranch() (ast.Statement, error) {
	if _, err := p.expect(lexer.KindIf); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindElse); err != nil {
		return nil, err
	}
	otherwise, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewBranch(cond, then, otherwise), nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	if _, err := p.expect(lexer.KindFor); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindLParen); err != nil {
		return nil, err
	}
	init, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindSemicolon); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(ast.BoolType())
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindSemicolon); err != nil {
		return nil, err
	}
	step, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindRParen); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewForLoop(init, cond, step, body), nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	if _, err := p.expect(lexer.KindWhile); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileLoop(cond, body), nil
}

// parseCondition reads '(' logical-expr ')'.
func (p *Parser) parseCondition() (ast.Expression, error) {
	if _, err := p.expect(lexer.KindLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(ast.BoolType())
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindRParen); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseBlock reads '{' sequence '}' into a nested sequence without its own
// symbol table.
func (p *Parser) parseBlock() (*ast.Sequence, error) {
	if _, err := p.expect(lexer.KindLBrace); err != nil {
		return nil, err
	}
	statements, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindRBrace); err != nil {
		return nil, err
	}
	return ast.NewSequence(statements, nil), nil
}
