package runtime

import (
	"fmt"
	"sort"
)

// UndefinedVariableError reports access to a name with no cell.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable '%s'", e.Name)
}

// Environment maps every variable of a program to its cell. There is one
// environment per run and blocks do not nest.
type Environment struct {
	cells map[string]*Cell
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{cells: make(map[string]*Cell)}
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.cells))
	for k, c := range e.cells {
		out[k] = c.Load()
	}
	return out
}

// Define binds name to a fresh cell, replacing any earlier binding.
func (e *Environment) Define(name string, value Value) {
	e.cells[name] = NewCell(value)
}

// Assign stores into the existing cell for name.
func (e *Environment) Assign(name string, value Value) error {
	c, ok := e.cells[name]
	if !ok {
		return &UndefinedVariableError{Name: name}
	}
	c.Store(value)
	return nil
}

// Get loads the value bound to name.
func (e *Environment) Get(name string) (Value, error) {
	c, ok := e.cells[name]
	if !ok {
		return nil, &UndefinedVariableError{Name: name}
	}
	return c.Load(), nil
}

// Cell returns the shared cell for name.
func (e *Environment) Cell(name string) (*Cell, bool) {
	c, ok := e.cells[name]
	return c, ok
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.cells))
	for k := range e.cells {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
