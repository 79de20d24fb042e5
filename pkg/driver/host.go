package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"mscript/interpreter-go/pkg/interpreter"
)

// ErrAttemptsExhausted is wrapped around the last failure once a watching
// host has run MaxAttempts times without success.
var ErrAttemptsExhausted = errors.New("giving up")

// Host runs a script file. Without Watch it runs once. With Watch, every
// failure is reported and the host blocks until the file changes, then
// retries; it returns after the first successful run. A zero Debounce
// retries on the first change event.
type Host struct {
	Path        string
	Out         io.Writer
	Logger      *slog.Logger
	Watch       bool
	Debounce    time.Duration
	MaxAttempts int

	// Report receives every failed attempt. The default writes the error
	// to stderr.
	Report func(attempt int, err error)

	// Finished, when set, receives the interpreter of the successful run.
	Finished func(interp *interpreter.Interpreter)
}

// Run executes the script until it succeeds, ctx is cancelled or the
// attempt budget is spent.
func (h *Host) Run(ctx context.Context) error {
	logger := h.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	out := h.Out
	if out == nil {
		out = os.Stdout
	}
	abs, err := filepath.Abs(h.Path)
	if err != nil {
		return &StageError{Stage: StageRead, Err: err}
	}

	var watcher *fsnotify.Watcher
	if h.Watch {
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		defer watcher.Close()
		// Watch the directory; editors often replace the file on save.
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
		}
	}

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Info("running script", "script", abs, "attempt", attempt)
		interp, runErr := ExecuteFile(abs, out, logger)
		if runErr == nil {
			logger.Info("script finished", "script", abs, "attempt", attempt)
			if h.Finished != nil {
				h.Finished(interp)
			}
			return nil
		}
		h.report(attempt, runErr)
		if !h.Watch {
			return runErr
		}
		if h.MaxAttempts > 0 && attempt >= h.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, attempt, runErr)
		}
		logger.Info("waiting for changes", "script", abs)
		if err := h.waitForChange(ctx, watcher, abs, logger); err != nil {
			return err
		}
	}
}

func (h *Host) report(attempt int, err error) {
	if h.Report != nil {
		h.Report(attempt, err)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

// waitForChange blocks until target is written or created and no further
// events arrive for the debounce interval.
func (h *Host) waitForChange(ctx context.Context, watcher *fsnotify.Watcher, target string, logger *slog.Logger) error {
	debounce := h.Debounce
	if debounce < 0 {
		debounce = 0
	}
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watch: event stream closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("script changed", "script", target, "op", event.Op.String())
			if debounce == 0 {
				return nil
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			return nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watch: error stream closed")
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
