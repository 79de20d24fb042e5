package ast

// Literal and reference helpers.

func Int(value int64) *IntLiteral {
	return NewIntLiteral(value)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Var(name string, typ Type) *Variable {
	return NewVariable(name, typ)
}

func IntVar(name string) *Variable {
	return NewVariable(name, IntType())
}

func FltVar(name string) *Variable {
	return NewVariable(name, FloatType())
}

// Operator helpers.

func Sum(left, right Expression) *Binary { return NewBinary(OpSum, left, right) }
func Sub(left, right Expression) *Binary { return NewBinary(OpSubtract, left, right) }
func Mul(left, right Expression) *Binary { return NewBinary(OpMultiply, left, right) }
func Div(left, right Expression) *Binary { return NewBinary(OpDivide, left, right) }
func Eq(left, right Expression) *Binary  { return NewBinary(OpEquals, left, right) }
func Gt(left, right Expression) *Binary  { return NewBinary(OpGreater, left, right) }
func Ge(left, right Expression) *Binary  { return NewBinary(OpGreaterOrEqual, left, right) }
func Lt(left, right Expression) *Binary  { return NewBinary(OpLesser, left, right) }
func Le(left, right Expression) *Binary  { return NewBinary(OpLesserOrEqual, left, right) }
func Or(left, right Expression) *Binary  { return NewBinary(OpOr, left, right) }
func And(left, right Expression) *Binary { return NewBinary(OpAnd, left, right) }

func Assign(target *Variable, value Expression) *Binary {
	return NewBinary(OpAssign, target, value)
}

// Statement helpers.

func Decl(typ Type, name string, init Expression) *Declaration {
	return NewDeclaration(typ, name, init)
}

func PrintOf(args ...Expression) *Print {
	return NewPrint(args)
}

func Seq(statements ...Statement) *Sequence {
	return NewSequence(statements, nil)
}

// Program builds a top-level sequence with an empty symbol table.
func Program(statements ...Statement) *Sequence {
	return NewSequence(statements, SymbolTable{})
}

func If(cond Expression, then *Sequence) *Branch {
	return NewBranch(cond, then, nil)
}

func IfElse(cond Expression, then, otherwise *Sequence) *Branch {
	return NewBranch(cond, then, otherwise)
}

func For(init Statement, cond Expression, step Statement, body *Sequence) *ForLoop {
	return NewForLoop(init, cond, step, body)
}

func While(cond Expression, body *Sequence) *WhileLoop {
	return NewWhileLoop(cond, body)
}
