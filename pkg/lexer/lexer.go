package lexer

import (
	"fmt"
	"strconv"
)

// Error reports a lexical failure at a source position.
type Error struct {
	Pos     Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Lexer converts source text into tokens. A Lexer may be reused; every call
// to Tokenize starts from a clean state.
type Lexer struct {
	src    string
	offset int
	line   int
	column int
}

// New returns a ready-to-use lexer.
func New() *Lexer {
	return &Lexer{}
}

// Tokenize is a convenience wrapper around a fresh Lexer.
func Tokenize(source string) ([]Token, error) {
	return New().Tokenize(source)
}

func (l *Lexer) reset(source string) {
	l.src = source
	l.offset = 0
	l.line = 1
	l.column = 1
}

// Tokenize scans source left to right and returns the token sequence.
func (l *Lexer) Tokenize(source string) ([]Token, error) {
	l.reset(source)
	tokens := make([]Token, 0, len(source)/2)
	for {
		l.skipWhitespace()
		if l.offset >= len(l.src) {
			return tokens, nil
		}
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

var singles = map[byte]Kind{
	'{': KindLBrace,
	'}': KindRBrace,
	'[': KindLBracket,
	']': KindRBracket,
	'(': KindLParen,
	')': KindRParen,
	';': KindSemicolon,
	',': KindComma,
	'+': KindPlus,
	'-': KindMinus,
	'*': KindStar,
	'/': KindSlash,
}

// pairs maps a leading character to its one- and two-character operators.
var pairs = map[byte]struct {
	second      byte
	long, short Kind
}{
	'=': {'=', KindEqual, KindAssign},
	'>': {'=', KindGreaterEqual, KindGreater},
	'<': {'=', KindLessEqual, KindLess},
	'&': {'&', KindAndAnd, KindAnd},
	'|': {'|', KindOrOr, KindOr},
}

func (l *Lexer) next() (Token, error) {
	pos := Position{Line: l.line, Column: l.column}
	ch := l.src[l.offset]

	if kind, ok := singles[ch]; ok {
		l.advance()
		return Token{Kind: kind, Pos: pos}, nil
	}
	if pair, ok := pairs[ch]; ok {
		l.advance()
		if l.offset < len(l.src) && l.src[l.offset] == pair.second {
			l.advance()
			return Token{Kind: pair.long, Pos: pos}, nil
		}
		return Token{Kind: pair.short, Pos: pos}, nil
	}
	if isDigit(ch) || ch == '.' {
		return l.number(pos)
	}
	if isNameStart(ch) {
		return l.word(pos), nil
	}
	return Token{}, &Error{Pos: pos, Message: fmt.Sprintf("illegal character %q", ch)}
}

func (l *Lexer) number(pos Position) (Token, error) {
	start := l.offset
	seenDot := false
	for l.offset < len(l.src) {
		ch := l.src[l.offset]
		if ch == '.' {
			if seenDot {
				break
			}
			seenDot = true
		} else if !isDigit(ch) {
			break
		}
		l.advance()
	}
	text := l.src[start:l.offset]
	if text == "." {
		return Token{}, &Error{Pos: pos, Message: "malformed number \".\""}
	}
	if seenDot {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, &Error{Pos: pos, Message: fmt.Sprintf("malformed number %q", text)}
		}
		return Token{Kind: KindFloat, Float: v, Pos: pos}, nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, &Error{Pos: pos, Message: fmt.Sprintf("malformed number %q", text)}
	}
	return Token{Kind: KindInteger, Int: v, Pos: pos}, nil
}

func (l *Lexer) word(pos Position) Token {
	start := l.offset
	for l.offset < len(l.src) && isNamePart(l.src[l.offset]) {
		l.advance()
	}
	text := l.src[start:l.offset]
	if kind, ok := keywords[text]; ok {
		return Token{Kind: kind, Pos: pos}
	}
	return Token{Kind: KindName, Text: text, Pos: pos}
}

func (l *Lexer) skipWhitespace() {
	for l.offset < len(l.src) {
		switch l.src[l.offset] {
		case ' ', '\t', '\n', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) advance() {
	if l.src[l.offset] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.offset++
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isNameStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isNamePart(ch byte) bool {
	return isNameStart(ch) || isDigit(ch)
}
