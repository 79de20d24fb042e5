package runtime

import (
	"fmt"
	"math"

	"mscript/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a variable's stored value. Arithmetic always happens on the
// float64 view.
type Value interface {
	Kind() Kind
	Float() float64
}

type IntegerValue struct {
	Val int64
}

func (IntegerValue) Kind() Kind       { return KindInteger }
func (v IntegerValue) Float() float64 { return float64(v.Val) }
func (v IntegerValue) String() string { return fmt.Sprintf("%d", v.Val) }

type FloatValue struct {
	Val float64
}

func (FloatValue) Kind() Kind       { return KindFloat }
func (v FloatValue) Float() float64 { return v.Val }
func (v FloatValue) String() string { return fmt.Sprintf("%f", v.Val) }

// Coerce converts a computed number into the value a variable of type typ
// stores. Integers truncate toward zero.
func Coerce(typ ast.Type, number float64) (Value, error) {
	switch typ.Tag {
	case ast.TypeInteger:
		return IntegerValue{Val: int64(math.Trunc(number))}, nil
	case ast.TypeFloat:
		return FloatValue{Val: number}, nil
	default:
		return nil, fmt.Errorf("no storage for %s values", typ)
	}
}

// Zero returns the value an uninitialised variable of type typ holds.
func Zero(typ ast.Type) (Value, error) {
	return Coerce(typ, 0)
}

// Cell is the mutable storage behind one variable.
type Cell struct {
	value Value
}

func NewCell(v Value) *Cell {
	return &Cell{value: v}
}

func (c *Cell) Load() Value {
	return c.value
}

func (c *Cell) Store(v Value) {
	c.value = v
}
