package parser

import (
	"errors"
	"fmt"
	"strings"

	"mscript/interpreter-go/pkg/ast"
	"mscript/interpreter-go/pkg/lexer"
)

type parseFailure interface {
	error
	parseFailure()
}

// IsParseError reports whether err originated in the lexer or the parser.
func IsParseError(err error) bool {
	var failure parseFailure
	if errors.As(err, &failure) {
		return true
	}
	var lexErr *lexer.Error
	return errors.As(err, &lexErr)
}

// UnexpectedTokenError reports a token that does not fit the grammar at its
// position. Expected is empty when any of several constructs could follow.
type UnexpectedTokenError struct {
	Found    lexer.Token
	Expected []lexer.Kind
}

func (e *UnexpectedTokenError) Error() string {
	msg := fmt.Sprintf("parser: unexpected token '%s' at %s", e.Found, e.Found.Pos)
	if len(e.Expected) > 0 {
		msg += ", expected " + describeKinds(e.Expected)
	}
	return msg
}

func (*UnexpectedTokenError) parseFailure() {}

// UndefinedNameError reports a reference to a name that was never declared.
type UndefinedNameError struct {
	Name string
	Pos  lexer.Position
}

func (e *UndefinedNameError) Error() string {
	return fmt.Sprintf("parser: undefined name '%s' at %s", e.Name, e.Pos)
}

func (*UndefinedNameError) parseFailure() {}

// VariableTypeError reports a variable whose declared type cannot be used
// where it appears.
type VariableTypeError struct {
	Name string
	Want ast.Type
	Got  ast.Type
	Pos  lexer.Position
}

func (e *VariableTypeError) Error() string {
	return fmt.Sprintf("parser: no conversion from %s to %s for '%s' at %s", e.Got, e.Want, e.Name, e.Pos)
}

func (*VariableTypeError) parseFailure() {}

// EndOfFileError reports input that ended in the middle of a construct.
type EndOfFileError struct {
	Expected []lexer.Kind
}

func (e *EndOfFileError) Error() string {
	if len(e.Expected) == 0 {
		return "parser: unexpected end of input"
	}
	return "parser: unexpected end of input, expected " + describeKinds(e.Expected)
}

func (*EndOfFileError) parseFailure() {}

// SyntaxError covers grammar violations that are not about a single token.
type SyntaxError struct {
	Pos     lexer.Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parser: %s at %s", e.Message, e.Pos)
}

func (*SyntaxError) parseFailure() {}

func describeKinds(kinds []lexer.Kind) string {
	parts := make([]string, len(kinds))
	for i, kind := range kinds {
		parts[i] = "'" + kind.String() + "'"
	}
	return strings.Join(parts, " or ")
}
