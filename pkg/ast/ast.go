package ast

import (
	"fmt"
	"strings"
)

type NodeType string

const (
	NodeIntegerLiteral NodeType = "IntegerLiteral"
	NodeFloatLiteral   NodeType = "FloatLiteral"
	NodeVariable       NodeType = "Variable"
	NodeBinary         NodeType = "BinaryExpression"
	NodeDeclaration    NodeType = "Declaration"
	NodePrint          NodeType = "PrintStatement"
	NodeSequence       NodeType = "Sequence"
	NodeBranch         NodeType = "Branch"
	NodeForLoop        NodeType = "ForLoop"
	NodeWhileLoop      NodeType = "WhileLoop"
)

type Node interface {
	NodeType() NodeType
	String() string
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Literals

type IntLiteral struct {
	nodeImpl
	expressionMarker

	Value int64 `json:"value"`
}

func NewIntLiteral(value int64) *IntLiteral {
	return &IntLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

func (n *IntLiteral) String() string {
	return fmt.Sprintf("%d", n.Value)
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

func (n *FloatLiteral) String() string {
	return fmt.Sprintf("%f", n.Value)
}

// Variable is a reference to a declared name, carrying the type resolved when
// the reference was parsed.
type Variable struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
	Type Type   `json:"valueType"`
}

func NewVariable(name string, typ Type) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name, Type: typ}
}

func (n *Variable) String() string {
	return n.Name
}

// Operators

type Operator string

const (
	OpSum            Operator = "+"
	OpSubtract       Operator = "-"
	OpMultiply       Operator = "*"
	OpDivide         Operator = "/"
	OpAssign         Operator = "="
	OpEquals         Operator = "=="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
	OpLesser         Operator = "<"
	OpLesserOrEqual  Operator = "<="
	OpOr             Operator = "||"
	OpAnd            Operator = "&&"
)

// Commutative reports whether operand order is irrelevant for equality.
func (op Operator) Commutative() bool {
	return op == OpSum || op == OpMultiply
}

// IsArithmetic reports whether the operator yields a number.
func (op Operator) IsArithmetic() bool {
	switch op {
	case OpSum, OpSubtract, OpMultiply, OpDivide:
		return true
	default:
		return false
	}
}

// IsComparison reports whether the operator compares two numbers.
func (op Operator) IsComparison() bool {
	switch op {
	case OpEquals, OpGreater, OpGreaterOrEqual, OpLesser, OpLesserOrEqual:
		return true
	default:
		return false
	}
}

// IsLogical reports whether the operator combines two conditions.
func (op Operator) IsLogical() bool {
	return op == OpOr || op == OpAnd
}

// Binary covers arithmetic, comparison, logic and assignment. Assignment is
// the only form used as a statement.
type Binary struct {
	nodeImpl
	expressionMarker
	statementMarker

	Op    Operator   `json:"operator"`
	Left  Expression `json:"left"`
	Right Expression `json:"right"`
}

func NewBinary(op Operator, left, right Expression) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary), Op: op, Left: left, Right: right}
}

func (n *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", render(n.Left), n.Op, render(n.Right))
}

// Statements

type Declaration struct {
	nodeImpl
	statementMarker

	Type Type       `json:"valueType"`
	Name string     `json:"name"`
	Init Expression `json:"init,omitempty"`
}

func NewDeclaration(typ Type, name string, init Expression) *Declaration {
	return &Declaration{nodeImpl: newNodeImpl(NodeDeclaration), Type: typ, Name: name, Init: init}
}

func (n *Declaration) String() string {
	if isNil(n.Init) {
		return fmt.Sprintf("%s %s", n.Type, n.Name)
	}
	return fmt.Sprintf("%s %s = %s", n.Type, n.Name, render(n.Init))
}

type Print struct {
	nodeImpl
	statementMarker

	Args []Expression `json:"args"`
}

func NewPrint(args []Expression) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrint), Args: args}
}

func (n *Print) String() string {
	parts := make([]string, len(n.Args))
	for i, arg := range n.Args {
		parts[i] = render(arg)
	}
	return "print(" + strings.Join(parts, ", ") + ")"
}

// Sequence is an ordered statement list. Only the program-level sequence
// owns a symbol table; nested bodies leave Symbols nil.
type Sequence struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
	Symbols    SymbolTable `json:"-"`
}

func NewSequence(statements []Statement, symbols SymbolTable) *Sequence {
	return &Sequence{nodeImpl: newNodeImpl(NodeSequence), Statements: statements, Symbols: symbols}
}

func (n *Sequence) String() string {
	parts := make([]string, len(n.Statements))
	for i, stmt := range n.Statements {
		parts[i] = render(stmt)
	}
	return strings.Join(parts, "\n")
}

type Branch struct {
	nodeImpl
	statementMarker

	Cond Expression `json:"condition"`
	Then *Sequence  `json:"then"`
	Else *Sequence  `json:"else,omitempty"`
}

func NewBranch(cond Expression, then, otherwise *Sequence) *Branch {
	return &Branch{nodeImpl: newNodeImpl(NodeBranch), Cond: cond, Then: then, Else: otherwise}
}

func (n *Branch) String() string {
	out := fmt.Sprintf("if (%s)\n%s", render(n.Cond), block(n.Then))
	if n.Else != nil {
		out += "\nelse\n" + block(n.Else)
	}
	return out
}

type ForLoop struct {
	nodeImpl
	statementMarker

	Init Statement  `json:"init"`
	Cond Expression `json:"condition"`
	Step Statement  `json:"step"`
	Body *Sequence  `json:"body"`
}

func NewForLoop(init Statement, cond Expression, step Statement, body *Sequence) *ForLoop {
	return &ForLoop{nodeImpl: newNodeImpl(NodeForLoop), Init: init, Cond: cond, Step: step, Body: body}
}

func (n *ForLoop) String() string {
	return fmt.Sprintf("for (%s; %s; %s)\n%s", render(n.Init), render(n.Cond), render(n.Step), block(n.Body))
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Cond Expression `json:"condition"`
	Body *Sequence  `json:"body"`
}

func NewWhileLoop(cond Expression, body *Sequence) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Cond: cond, Body: body}
}

func (n *WhileLoop) String() string {
	return fmt.Sprintf("while (%s)\n%s", render(n.Cond), block(n.Body))
}

func block(body *Sequence) string {
	if body == nil {
		return "{\n\n}"
	}
	return "{\n" + body.String() + "\n}"
}

func render(n Node) string {
	if isNil(n) {
		return ""
	}
	return n.String()
}

// isNil treats a nil interface and a typed nil node pointer alike.
func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *IntLiteral:
		return v == nil
	case *FloatLiteral:
		return v == nil
	case *Variable:
		return v == nil
	case *Binary:
		return v == nil
	case *Declaration:
		return v == nil
	case *Print:
		return v == nil
	case *Sequence:
		return v == nil
	case *Branch:
		return v == nil
	case *ForLoop:
		return v == nil
	case *WhileLoop:
		return v == nil
	default:
		return false
	}
}
