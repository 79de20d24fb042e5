package ast

import "math"

// floatEpsilon bounds the difference between two float literals considered equal.
const floatEpsilon = 1e-4

// Same reports structural equality of two trees. Sum and multiply operands
// may appear in either order; every other operator is order sensitive.
// Symbol tables are not compared.
func Same(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if a.NodeType() != b.NodeType() {
		return false
	}
	switch x := a.(type) {
	case *IntLiteral:
		return x.Value == b.(*IntLiteral).Value
	case *FloatLiteral:
		return math.Abs(x.Value-b.(*FloatLiteral).Value) < floatEpsilon
	case *Variable:
		y := b.(*Variable)
		return x.Name == y.Name && x.Type.Equal(y.Type)
	case *Binary:
		y := b.(*Binary)
		if x.Op != y.Op {
			return false
		}
		if Same(x.Left, y.Left) && Same(x.Right, y.Right) {
			return true
		}
		return x.Op.Commutative() && Same(x.Left, y.Right) && Same(x.Right, y.Left)
	case *Declaration:
		y := b.(*Declaration)
		return x.Name == y.Name && x.Type.Equal(y.Type) && Same(x.Init, y.Init)
	case *Print:
		y := b.(*Print)
		if len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Same(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Sequence:
		return sameSequence(x, b.(*Sequence))
	case *Branch:
		y := b.(*Branch)
		return Same(x.Cond, y.Cond) && sameSequence(x.Then, y.Then) && sameSequence(x.Else, y.Else)
	case *ForLoop:
		y := b.(*ForLoop)
		return Same(x.Init, y.Init) && Same(x.Cond, y.Cond) && Same(x.Step, y.Step) && sameSequence(x.Body, y.Body)
	case *WhileLoop:
		y := b.(*WhileLoop)
		return Same(x.Cond, y.Cond) && sameSequence(x.Body, y.Body)
	default:
		return false
	}
}

func sameSequence(x, y *Sequence) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	if len(x.Statements) != len(y.Statements) {
		return false
	}
	for i := range x.Statements {
		if !Same(x.Statements[i], y.Statements[i]) {
			return false
		}
	}
	return true
}
