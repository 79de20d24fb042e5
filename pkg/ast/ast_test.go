package ast

import "testing"

func TestSameCommutativeOperators(t *testing.T) {
	a := IntVar("a")
	b := FltVar("b")
	if !Same(Sum(a, b), Sum(b, a)) {
		t.Fatalf("sum should be equal under operand swap")
	}
	if !Same(Mul(a, Int(2)), Mul(Int(2), a)) {
		t.Fatalf("multiply should be equal under operand swap")
	}
	if !Same(Sum(Mul(a, b), Int(1)), Sum(Int(1), Mul(b, a))) {
		t.Fatalf("nested commutative operands should be equal")
	}
}

func TestSameOrderSensitiveOperators(t *testing.T) {
	a := IntVar("a")
	b := IntVar("b")
	builders := map[string]func(l, r Expression) *Binary{
		"sub": Sub,
		"div": Div,
		"eq":  Eq,
		"gt":  Gt,
		"ge":  Ge,
		"lt":  Lt,
		"le":  Le,
		"or":  Or,
		"and": And,
	}
	for name, build := range builders {
		if Same(build(a, b), build(b, a)) {
			t.Fatalf("%s: swapped operands should differ", name)
		}
		if !Same(build(a, a), build(a, a)) {
			t.Fatalf("%s: identical operands should be equal", name)
		}
	}
	if Same(Assign(a, b), Assign(b, a)) {
		t.Fatalf("assignment should be order sensitive")
	}
	if Same(Sum(a, b), Sub(a, b)) {
		t.Fatalf("different operators should differ")
	}
}

func TestSameLiteralsAndReferences(t *testing.T) {
	if !Same(Int(3), Int(3)) || Same(Int(3), Int(4)) {
		t.Fatalf("integer literal equality mismatch")
	}
	if !Same(Flt(1.0), Flt(1.00001)) {
		t.Fatalf("float literals within tolerance should be equal")
	}
	if Same(Flt(1.0), Flt(1.001)) {
		t.Fatalf("float literals outside tolerance should differ")
	}
	if Same(Int(1), Flt(1)) {
		t.Fatalf("int and float literals should differ")
	}
	if Same(IntVar("a"), FltVar("a")) {
		t.Fatalf("references with different types should differ")
	}
	if Same(Int(1), nil) || !Same(nil, nil) {
		t.Fatalf("nil handling mismatch")
	}
}

func TestSameStatements(t *testing.T) {
	body := func() *Sequence { return Seq(PrintOf(IntVar("i"))) }
	cases := []struct {
		name string
		a, b Node
		want bool
	}{
		{"decl", Decl(IntType(), "a", Int(1)), Decl(IntType(), "a", Int(1)), true},
		{"decl type", Decl(IntType(), "a", nil), Decl(FloatType(), "a", nil), false},
		{"decl init", Decl(IntType(), "a", nil), Decl(IntType(), "a", Int(0)), false},
		{"print arity", PrintOf(Int(1)), PrintOf(Int(1), Int(2)), false},
		{"print", PrintOf(Int(1), Sum(Int(2), Int(3))), PrintOf(Int(1), Sum(Int(3), Int(2))), true},
		{"branch else absent", If(Gt(IntVar("i"), Int(0)), body()), If(Gt(IntVar("i"), Int(0)), body()), true},
		{"branch else mismatch", If(Gt(IntVar("i"), Int(0)), body()), IfElse(Gt(IntVar("i"), Int(0)), body(), Seq()), false},
		{"branch else", IfElse(Lt(IntVar("i"), Int(0)), body(), Seq()), IfElse(Lt(IntVar("i"), Int(0)), body(), Seq()), true},
		{"while", While(Lt(IntVar("i"), Int(3)), body()), While(Lt(IntVar("i"), Int(3)), body()), true},
		{"while cond", While(Lt(IntVar("i"), Int(3)), body()), While(Le(IntVar("i"), Int(3)), body()), false},
		{
			"for",
			For(Decl(IntType(), "i", Int(0)), Lt(IntVar("i"), Int(3)), Assign(IntVar("i"), Sum(IntVar("i"), Int(1))), body()),
			For(Decl(IntType(), "i", Int(0)), Lt(IntVar("i"), Int(3)), Assign(IntVar("i"), Sum(Int(1), IntVar("i"))), body()),
			true,
		},
		{"sequence length", Seq(PrintOf(Int(1))), Seq(PrintOf(Int(1)), PrintOf(Int(1))), false},
		{"sequence symbols ignored", Program(PrintOf(Int(1))), Seq(PrintOf(Int(1))), true},
		{"kind mismatch", Seq(), While(Int(1), Seq()), false},
	}
	for _, tc := range cases {
		if got := Same(tc.a, tc.b); got != tc.want {
			t.Fatalf("%s: Same = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRenderExpressions(t *testing.T) {
	cases := []struct {
		node Node
		want string
	}{
		{Int(42), "42"},
		{Flt(2.5), "2.500000"},
		{IntVar("a"), "a"},
		{Sum(Int(2), Mul(Int(2), Int(2))), "(2 + (2 * 2))"},
		{Div(FltVar("x"), Sub(Int(1), Int(3))), "(x / (1 - 3))"},
		{And(Ge(IntVar("a"), Int(1)), Eq(IntVar("b"), Int(2))), "((a >= 1) && (b == 2))"},
		{Or(Lt(IntVar("a"), Int(1)), Le(IntVar("b"), Int(2))), "((a < 1) || (b <= 2))"},
		{Assign(IntVar("a"), Int(5)), "(a = 5)"},
	}
	for _, tc := range cases {
		if got := tc.node.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestRenderStatements(t *testing.T) {
	cases := []struct {
		node Node
		want string
	}{
		{Decl(IntType(), "a", nil), "int a"},
		{Decl(FloatType(), "b", Sum(Int(1), Flt(0.5))), "float b = (1 + 0.500000)"},
		{PrintOf(IntVar("a"), Int(1)), "print(a, 1)"},
		{Seq(Decl(IntType(), "a", Int(1)), PrintOf(IntVar("a"))), "int a = 1\nprint(a)"},
		{
			IfElse(Gt(IntVar("a"), Int(0)), Seq(PrintOf(Int(1))), Seq(PrintOf(Int(2)))),
			"if ((a > 0))\n{\nprint(1)\n}\nelse\n{\nprint(2)\n}",
		},
		{If(Gt(IntVar("a"), Int(0)), Seq(PrintOf(Int(1)))), "if ((a > 0))\n{\nprint(1)\n}"},
		{
			For(Decl(IntType(), "i", Int(0)), Lt(IntVar("i"), Int(3)), Assign(IntVar("i"), Sum(IntVar("i"), Int(1))), Seq(PrintOf(IntVar("i")))),
			"for (int i = 0; (i < 3); (i = (i + 1)))\n{\nprint(i)\n}",
		},
		{While(Lt(IntVar("i"), Int(3)), Seq()), "while ((i < 3))\n{\n\n}"},
	}
	for _, tc := range cases {
		if got := tc.node.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestTypeEquality(t *testing.T) {
	if !IntType().Equal(IntType()) {
		t.Fatalf("int should equal int")
	}
	if IntType().Equal(Type{Tag: TypeInteger, Const: true}) {
		t.Fatalf("constness should take part in equality")
	}
	if IntType().Equal(FloatType()) {
		t.Fatalf("int should not equal float")
	}
	if !FloatType().IsNumeric() || BoolType().IsNumeric() || VoidType().IsNumeric() {
		t.Fatalf("numeric classification mismatch")
	}
	if got := (Type{Tag: TypeFloat, Const: true}).String(); got != "const float" {
		t.Fatalf("String() = %q, want %q", got, "const float")
	}
}

func TestSymbolTable(t *testing.T) {
	symbols := SymbolTable{}
	symbols.Declare("a", IntType())
	symbols.Declare("a", FloatType())
	got, ok := symbols.Lookup("a")
	if !ok || !got.Equal(FloatType()) {
		t.Fatalf("Lookup(a) = %v, %v; want float, true", got, ok)
	}
	if _, ok := symbols.Lookup("b"); ok {
		t.Fatalf("Lookup(b) should miss")
	}
}

func TestOperatorClasses(t *testing.T) {
	cases := []struct {
		op         Operator
		arithmetic bool
		comparison bool
		logical    bool
	}{
		{OpSum, true, false, false},
		{OpDivide, true, false, false},
		{OpEquals, false, true, false},
		{OpLesserOrEqual, false, true, false},
		{OpAnd, false, false, true},
		{OpOr, false, false, true},
		{OpAssign, false, false, false},
	}
	for _, tc := range cases {
		if got := tc.op.IsArithmetic(); got != tc.arithmetic {
			t.Fatalf("%s IsArithmetic = %v", tc.op, got)
		}
		if got := tc.op.IsComparison(); got != tc.comparison {
			t.Fatalf("%s IsComparison = %v", tc.op, got)
		}
		if got := tc.op.IsLogical(); got != tc.logical {
			t.Fatalf("%s IsLogical = %v", tc.op, got)
		}
	}
}
