package interpreter

import (
	"fmt"
	"io"
	"strings"

	"mscript/interpreter-go/pkg/ast"
	"mscript/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement) error {
	if node == nil {
		return nil
	}
	i.executed++
	switch n := node.(type) {
	case *ast.Sequence:
		return i.evaluateSequence(n)
	case *ast.Declaration:
		return i.evaluateDeclaration(n)
	case *ast.Binary:
		return i.evaluateAssignment(n)
	case *ast.Print:
		return i.evaluatePrint(n)
	case *ast.Branch:
		return i.evaluateBranch(n)
	case *ast.ForLoop:
		return i.evaluateForLoop(n)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n)
	default:
		return &UnsupportedNodeError{Context: "statement", Node: node}
	}
}

// evaluateSequence runs statements in order. Blocks share the global
// environment, so nothing is pushed or popped here.
func (i *Interpreter) evaluateSequence(seq *ast.Sequence) error {
	if seq == nil {
		return nil
	}
	for _, stmt := range seq.Statements {
		if err := i.evaluateStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluateDeclaration(decl *ast.Declaration) error {
	number := 0.0
	if decl.Init != nil {
		v, err := i.CalcExpr(decl.Init)
		if err != nil {
			return err
		}
		number = v
	}
	value, err := runtime.Coerce(decl.Type, number)
	if err != nil {
		return &TypeError{Name: decl.Name, Type: decl.Type}
	}
	i.global.Define(decl.Name, value)
	return nil
}

func (i *Interpreter) evaluateAssignment(assign *ast.Binary) error {
	if assign.Op != ast.OpAssign {
		return &UnsupportedNodeError{Context: "statement", Node: assign}
	}
	target, ok := assign.Left.(*ast.Variable)
	if !ok || target == nil {
		return &UnsupportedNodeError{Context: "assignment target", Node: assign}
	}
	number, err := i.CalcExpr(assign.Right)
	if err != nil {
		return err
	}
	value, err := runtime.Coerce(target.Type, number)
	if err != nil {
		return &TypeError{Name: target.Name, Type: target.Type}
	}
	return i.global.Assign(target.Name, value)
}

// evaluatePrint formats every argument with six decimals followed by a
// space, then writes the whole line at once.
func (i *Interpreter) evaluatePrint(p *ast.Print) error {
	var line strings.Builder
	for _, arg := range p.Args {
		v, err := i.CalcExpr(arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(&line, "%f ", v)
	}
	line.WriteByte('\n')
	if _, err := io.WriteString(i.out, line.String()); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	return nil
}

func (i *Interpreter) evaluateBranch(b *ast.Branch) error {
	cond, err := i.CalcLogic(b.Cond)
	if err != nil {
		return err
	}
	if cond {
		return i.evaluateSequence(b.Then)
	}
	return i.evaluateSequence(b.Else)
}

func (i *Interpreter) evaluateForLoop(loop *ast.ForLoop) error {
	if err := i.evaluateStatement(loop.Init); err != nil {
		return err
	}
	for {
		cond, err := i.CalcLogic(loop.Cond)
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}
		if err := i.evaluateSequence(loop.Body); err != nil {
			return err
		}
		if err := i.evaluateStatement(loop.Step); err != nil {
			return err
		}
	}
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop) error {
	for {
		cond, err := i.CalcLogic(loop.Cond)
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}
		if err := i.evaluateSequence(loop.Body); err != nil {
			return err
		}
	}
}
