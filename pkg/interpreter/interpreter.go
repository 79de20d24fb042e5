package interpreter

import (
	"io"
	"log/slog"
	"os"

	"mscript/interpreter-go/pkg/ast"
	"mscript/interpreter-go/pkg/runtime"
)

// Interpreter walks a parsed program and executes it against a single flat
// environment. print output goes to the configured writer and is the only
// observable effect of a run.
type Interpreter struct {
	global *runtime.Environment
	out    io.Writer
	logger *slog.Logger

	executed int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput redirects print output. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		if w != nil {
			i.out = w
		}
	}
}

// WithLogger attaches a logger for debug tracing of runs.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New returns an interpreter with an empty global environment.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global: runtime.NewEnvironment(),
		out:    os.Stdout,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Execute runs seq on a fresh interpreter writing print output to out.
func Execute(seq *ast.Sequence, out io.Writer) error {
	return New(WithOutput(out)).Execute(seq)
}

// GlobalEnvironment returns the interpreter’s global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Lookup returns the current value of a variable.
func (i *Interpreter) Lookup(name string) (runtime.Value, bool) {
	cell, ok := i.global.Cell(name)
	if !ok {
		return nil, false
	}
	return cell.Load(), true
}

// Execute runs every statement of seq in order against a fresh environment.
// The first failure aborts the run; output already written stays written.
func (i *Interpreter) Execute(seq *ast.Sequence) error {
	if seq == nil {
		return &UnsupportedNodeError{Context: "program"}
	}
	i.global = runtime.NewEnvironment()
	i.executed = 0
	i.logger.Debug("execution started", "statements", len(seq.Statements))
	if err := i.evaluateSequence(seq); err != nil {
		i.logger.Debug("execution failed", "executed", i.executed, "error", err)
		return err
	}
	i.logger.Debug("execution finished", "executed", i.executed, "variables", len(i.global.Keys()))
	return nil
}
