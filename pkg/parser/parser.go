package parser

import (
	"mscript/interpreter-go/pkg/ast"
	"mscript/interpreter-go/pkg/lexer"
)

// Parser builds an AST from a token slice by recursive descent, resolving
// variable types as it goes. All declarations land in a single program-wide
// symbol table: blocks do not introduce scopes.
type Parser struct {
	tokens  []lexer.Token
	pos     int
	symbols ast.SymbolTable
}

// New returns a parser over tokens.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens, symbols: ast.SymbolTable{}}
}

// Parse turns a token sequence into the program-level sequence node.
func Parse(tokens []lexer.Token) (*ast.Sequence, error) {
	return New(tokens).ParseProgram()
}

// ParseSource lexes and parses src.
func ParseSource(src string) (*ast.Sequence, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ParseProgram parses the whole token stream. The returned sequence owns the
// symbol table of every name declared anywhere in the program.
func (p *Parser) ParseProgram() (*ast.Sequence, error) {
	statements, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, &UnexpectedTokenError{Found: tok}
	}
	return ast.NewSequence(statements, p.symbols), nil
}

// Symbols exposes the names declared so far.
func (p *Parser) Symbols() ast.SymbolTable {
	return p.symbols
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) peek() (lexer.Token, bool) {
	if p.atEnd() {
		return lexer.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) at(kind lexer.Kind) bool {
	tok, ok := p.peek()
	return ok && tok.Kind == kind
}

// current returns the token under the cursor, or an end-of-input error
// naming what the caller was looking for.
func (p *Parser) current(expected ...lexer.Kind) (lexer.Token, error) {
	tok, ok := p.peek()
	if !ok {
		return lexer.Token{}, &EndOfFileError{Expected: expected}
	}
	return tok, nil
}

func (p *Parser) advance() {
	p.pos++
}

// expect consumes the current token when its kind is one of kinds.
func (p *Parser) expect(kinds ...lexer.Kind) (lexer.Token, error) {
	tok, err := p.current(kinds...)
	if err != nil {
		return tok, err
	}
	for _, kind := range kinds {
		if tok.Kind == kind {
			p.advance()
			return tok, nil
		}
	}
	return tok, &UnexpectedTokenError{Found: tok, Expected: kinds}
}

// lookup resolves a name against the program symbol table.
func (p *Parser) lookup(tok lexer.Token) (ast.Type, error) {
	typ, ok := p.symbols.Lookup(tok.Text)
	if !ok {
		return ast.Type{}, &UndefinedNameError{Name: tok.Text, Pos: tok.Pos}
	}
	return typ, nil
}
