package driver

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"mscript/interpreter-go/pkg/interpreter"
	"mscript/interpreter-go/pkg/lexer"
	"mscript/interpreter-go/pkg/parser"
)

// Stage names the pipeline step a failure came from.
type Stage string

const (
	StageRead    Stage = "read"
	StageParse   Stage = "parse"
	StageRuntime Stage = "runtime"
)

// StageError attaches the failing stage to an error so hosts can report
// "parse error: ..." and "runtime error: ..." uniformly.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// RunSource tokenizes, parses and executes src, writing print output to out.
func RunSource(src string, out io.Writer, logger *slog.Logger) error {
	_, err := ExecuteSource(src, out, logger)
	return err
}

// ExecuteSource is RunSource that also returns the interpreter, so callers
// can inspect the variables a successful run left behind.
func ExecuteSource(src string, out io.Writer, logger *slog.Logger) (*interpreter.Interpreter, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, &StageError{Stage: StageParse, Err: err}
	}
	logger.Debug("tokenized", "tokens", len(tokens))

	program, err := parser.Parse(tokens)
	if err != nil {
		return nil, &StageError{Stage: StageParse, Err: err}
	}
	logger.Debug("parsed", "statements", len(program.Statements), "symbols", len(program.Symbols))

	interp := interpreter.New(interpreter.WithOutput(out), interpreter.WithLogger(logger))
	if err := interp.Execute(program); err != nil {
		return interp, &StageError{Stage: StageRuntime, Err: err}
	}
	return interp, nil
}

// RunFile reads path and hands its contents to RunSource.
func RunFile(path string, out io.Writer, logger *slog.Logger) error {
	_, err := ExecuteFile(path, out, logger)
	return err
}

// ExecuteFile reads path and hands its contents to ExecuteSource.
func ExecuteFile(path string, out io.Writer, logger *slog.Logger) (*interpreter.Interpreter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StageError{Stage: StageRead, Err: err}
	}
	if logger != nil {
		logger = logger.With("script", path)
	}
	return ExecuteSource(string(data), out, logger)
}
