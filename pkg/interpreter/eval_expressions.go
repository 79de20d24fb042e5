package interpreter

import (
	"math"

	"mscript/interpreter-go/pkg/ast"
	"mscript/interpreter-go/pkg/runtime"
)

// CalcExpr evaluates a numeric expression. Every operation runs in float64;
// integer variables are widened on read.
func (i *Interpreter) CalcExpr(node ast.Expression) (float64, error) {
	switch n := node.(type) {
	case *ast.IntLiteral:
		return float64(n.Value), nil
	case *ast.FloatLiteral:
		return n.Value, nil
	case *ast.Variable:
		return i.readVariable(n)
	case *ast.Binary:
		if !n.Op.IsArithmetic() {
			return 0, &UnsupportedNodeError{Context: "arithmetic expression", Node: n}
		}
		return i.calcArithmetic(n)
	case nil:
		return 0, &UnsupportedNodeError{Context: "arithmetic expression"}
	default:
		return 0, &UnsupportedNodeError{Context: "arithmetic expression", Node: node}
	}
}

func (i *Interpreter) calcArithmetic(n *ast.Binary) (float64, error) {
	if n.Op == ast.OpDivide {
		right, err := i.CalcExpr(n.Right)
		if err != nil {
			return 0, err
		}
		if right == 0 {
			return 0, &ZeroDivisionError{Expr: n}
		}
		left, err := i.CalcExpr(n.Left)
		if err != nil {
			return 0, err
		}
		return left / right, nil
	}
	left, err := i.CalcExpr(n.Left)
	if err != nil {
		return 0, err
	}
	right, err := i.CalcExpr(n.Right)
	if err != nil {
		return 0, err
	}
	switch n.Op {
	case ast.OpSum:
		return left + right, nil
	case ast.OpSubtract:
		return left - right, nil
	default:
		return left * right, nil
	}
}

// readVariable loads a cell through the reference's static type.
func (i *Interpreter) readVariable(ref *ast.Variable) (float64, error) {
	if !ref.Type.IsNumeric() {
		return 0, &TypeError{Name: ref.Name, Type: ref.Type}
	}
	value, err := i.global.Get(ref.Name)
	if err != nil {
		return 0, err
	}
	if ref.Type.Tag == ast.TypeInteger {
		if iv, ok := value.(runtime.IntegerValue); ok {
			return float64(iv.Val), nil
		}
		return math.Trunc(value.Float()), nil
	}
	return value.Float(), nil
}

// CalcLogic evaluates a condition. && and || short-circuit left to right;
// comparisons are exact on the float values of both sides.
func (i *Interpreter) CalcLogic(node ast.Expression) (bool, error) {
	n, ok := node.(*ast.Binary)
	if !ok || n == nil {
		if node == nil {
			return false, &UnsupportedNodeError{Context: "condition"}
		}
		return false, &UnsupportedNodeError{Context: "condition", Node: node}
	}
	switch {
	case n.Op.IsLogical():
		left, err := i.CalcLogic(n.Left)
		if err != nil {
			return false, err
		}
		// false decides &&, true decides ||.
		if left == (n.Op == ast.OpOr) {
			return left, nil
		}
		return i.CalcLogic(n.Right)
	case n.Op.IsComparison():
		left, err := i.CalcExpr(n.Left)
		if err != nil {
			return false, err
		}
		right, err := i.CalcExpr(n.Right)
		if err != nil {
			return false, err
		}
		return compare(n.Op, left, right), nil
	default:
		return false, &UnsupportedNodeError{Context: "condition", Node: n}
	}
}

func compare(op ast.Operator, left, right float64) bool {
	switch op {
	case ast.OpEquals:
		return left == right
	case ast.OpGreater:
		return left > right
	case ast.OpGreaterOrEqual:
		return left >= right
	case ast.OpLesser:
		return left < right
	default:
		return left <= right
	}
}
