package lexer

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the token category.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindName

	KindLBrace
	KindRBrace
	KindLBracket
	KindRBracket
	KindLParen
	KindRParen
	KindSemicolon
	KindComma
	KindPlus
	KindMinus
	KindStar
	KindSlash

	KindAssign
	KindEqual
	KindGreater
	KindGreaterEqual
	KindLess
	KindLessEqual
	KindAnd
	KindAndAnd
	KindOr
	KindOrOr

	KindInt
	KindFloatType
	KindPrint
	KindIf
	KindElse
	KindFor
	KindWhile
)

var kindNames = map[Kind]string{
	KindInteger:      "integer",
	KindFloat:        "float",
	KindName:         "name",
	KindLBrace:       "{",
	KindRBrace:       "}",
	KindLBracket:     "[",
	KindRBracket:     "]",
	KindLParen:       "(",
	KindRParen:       ")",
	KindSemicolon:    ";",
	KindComma:        ",",
	KindPlus:         "+",
	KindMinus:        "-",
	KindStar:         "*",
	KindSlash:        "/",
	KindAssign:       "=",
	KindEqual:        "==",
	KindGreater:      ">",
	KindGreaterEqual: ">=",
	KindLess:         "<",
	KindLessEqual:    "<=",
	KindAnd:          "&",
	KindAndAnd:       "&&",
	KindOr:           "|",
	KindOrOr:         "||",
	KindInt:          "int",
	KindFloatType:    "float",
	KindPrint:        "print",
	KindIf:           "if",
	KindElse:         "else",
	KindFor:          "for",
	KindWhile:        "while",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether the kind is one of the reserved words.
func (k Kind) IsKeyword() bool {
	return k >= KindInt && k <= KindWhile
}

var keywords = map[string]Kind{
	"int":   KindInt,
	"float": KindFloatType,
	"print": KindPrint,
	"if":    KindIf,
	"else":  KindElse,
	"for":   KindFor,
	"while": KindWhile,
}

// Position is a 1-based source location.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit. Only the payload field matching Kind is set.
type Token struct {
	Kind  Kind
	Int   int64
	Float float64
	Text  string
	Pos   Position
}

// floatTolerance bounds the payload difference for two float tokens to be equal.
const floatTolerance = 0.001

// Equal compares kind and payload, ignoring position.
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindInteger:
		return t.Int == other.Int
	case KindFloat:
		return math.Abs(t.Float-other.Float) < floatTolerance
	case KindName:
		return t.Text == other.Text
	default:
		return true
	}
}

// String renders the token the way it is spelled in source.
func (t Token) String() string {
	switch t.Kind {
	case KindInteger:
		return strconv.FormatInt(t.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(t.Float, 'f', -1, 64)
	case KindName:
		return t.Text
	default:
		return t.Kind.String()
	}
}

// IntToken, FloatToken, NameToken and Punct build position-less tokens for comparisons.
func IntToken(v int64) Token      { return Token{Kind: KindInteger, Int: v} }
func FloatToken(v float64) Token  { return Token{Kind: KindFloat, Float: v} }
func NameToken(name string) Token { return Token{Kind: KindName, Text: name} }
func Punct(kind Kind) Token       { return Token{Kind: kind} }
