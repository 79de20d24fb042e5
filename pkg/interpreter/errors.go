package interpreter

import (
	"errors"
	"fmt"

	"mscript/interpreter-go/pkg/ast"
	"mscript/interpreter-go/pkg/runtime"
)

type runtimeFailure interface {
	error
	runtimeFailure()
}

// IsRuntimeError reports whether err was raised while executing a program.
func IsRuntimeError(err error) bool {
	var failure runtimeFailure
	if errors.As(err, &failure) {
		return true
	}
	var undefined *runtime.UndefinedVariableError
	return errors.As(err, &undefined)
}

// ZeroDivisionError is raised when a divisor evaluates to exactly zero.
type ZeroDivisionError struct {
	Expr *ast.Binary
}

func (e *ZeroDivisionError) Error() string {
	if e.Expr == nil {
		return "division by zero"
	}
	return fmt.Sprintf("division by zero in %s", e.Expr)
}

func (*ZeroDivisionError) runtimeFailure() {}

// TypeError reports a variable used in a numeric context whose static type
// is not numeric.
type TypeError struct {
	Name string
	Type ast.Type
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("variable '%s' of type %s is not a number", e.Name, e.Type)
}

func (*TypeError) runtimeFailure() {}

// UnsupportedNodeError reports a node the evaluator cannot handle where it
// appears.
type UnsupportedNodeError struct {
	Context string
	Node    ast.Node
}

func (e *UnsupportedNodeError) Error() string {
	if e.Node == nil {
		return fmt.Sprintf("unsupported empty node in %s", e.Context)
	}
	return fmt.Sprintf("unsupported %s in %s: %s", e.Node.NodeType(), e.Context, e.Node)
}

func (*UnsupportedNodeError) runtimeFailure() {}
