package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mscript/interpreter-go/pkg/driver"
	"mscript/interpreter-go/pkg/interpreter"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Run a script once",
		Long: `Run a script once and exit. Without an argument the main script of
mscript.yml is used. Exits with status 1 when parsing or execution fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHost(cmd.Context(), args, false)
		},
	}
	addDumpEnvFlag(cmd, a)
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	var maxAttempts int
	cmd := &cobra.Command{
		Use:   "watch [script]",
		Short: "Run a script, rerunning it on every save until it succeeds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("max-attempts") {
				a.cfg.Watch.MaxAttempts = maxAttempts
			}
			return a.runHost(cmd.Context(), args, true)
		},
	}
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "stop after this many failed runs (0 means no limit)")
	addDumpEnvFlag(cmd, a)
	return cmd
}

func addDumpEnvFlag(cmd *cobra.Command, a *app) {
	cmd.Flags().BoolVar(&a.dumpEnv, "dump-env", false, "print every variable and its final value to stderr after a successful run")
}

func (a *app) runHost(ctx context.Context, args []string, watch bool) error {
	path, err := a.resolveScript(args)
	if err != nil {
		return err
	}
	host := &driver.Host{
		Path:        path,
		Out:         a.stdout,
		Logger:      a.logger,
		Watch:       watch,
		Debounce:    a.cfg.Watch.DebounceDuration(),
		MaxAttempts: a.cfg.Watch.MaxAttempts,
		Report:      a.report,
	}
	if a.dumpEnv {
		host.Finished = a.dumpEnvironment
	}
	if watch {
		a.logger.Info("watching script", "script", path)
	}
	err = host.Run(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, driver.ErrAttemptsExhausted):
		a.printWarning(fmt.Sprintf("giving up on %s after %d attempts", path, a.cfg.Watch.MaxAttempts))
		return errReported
	case errors.Is(err, context.Canceled):
		a.printWarning("interrupted")
		return errReported
	}
	var stageErr *driver.StageError
	if errors.As(err, &stageErr) {
		return errReported
	}
	return err
}

// dumpEnvironment writes "name = value" for every variable, sorted by name.
func (a *app) dumpEnvironment(interp *interpreter.Interpreter) {
	env := interp.GlobalEnvironment()
	values := env.Snapshot()
	for _, name := range env.Keys() {
		fmt.Fprintf(a.stderr, "%s = %s\n", a.palette.muted(name), values[name])
	}
}
