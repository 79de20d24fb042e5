package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"mscript/interpreter-go/pkg/config"
	"mscript/interpreter-go/pkg/driver"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	opts   globalOptions

	dumpEnv bool

	cfg     *config.Config
	logger  *slog.Logger
	palette palette
}

// setup loads the config, applies flag overrides and builds the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return err
	}
	if a.opts.logLevel != "" {
		cfg.LogLevel = a.opts.logLevel
	}
	if a.opts.logFormat != "" {
		cfg.LogFormat = a.opts.logFormat
	}
	if a.opts.noColor {
		cfg.Color = false
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.palette = palette{color: cfg.Color}

	handlerOpts := &slog.HandlerOptions{Level: cfg.Level()}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(a.stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(a.stderr, handlerOpts)
	}
	a.logger = slog.New(handler).With("run_id", uuid.NewString())
	a.logger.Debug("config loaded", "path", cfg.Path, "cache_dir", cfg.CacheDir)
	return nil
}

// loadProject finds mscript.yml above the working directory along with its
// lockfile. Both are nil outside a project; a missing lockfile is not an error.
func (a *app) loadProject() (*driver.Manifest, *driver.Lockfile, error) {
	manifestPath, ok := driver.FindManifest(".")
	if !ok {
		return nil, nil, nil
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		return nil, nil, err
	}
	lock, err := loadLockfileForManifest(manifest)
	if err != nil {
		return manifest, nil, err
	}
	return manifest, lock, nil
}

func loadLockfileForManifest(manifest *driver.Manifest) (*driver.Lockfile, error) {
	if manifest == nil {
		return nil, nil
	}
	lockPath := filepath.Join(manifest.Dir(), driver.LockfileName)
	lock, err := driver.LoadLockfile(lockPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read lockfile %s: %w", lockPath, err)
	}
	if lock.Root != manifest.Name {
		return nil, fmt.Errorf("lockfile root %q does not match manifest name %q", lock.Root, manifest.Name)
	}
	return lock, nil
}

// resolveScript maps the optional run argument onto a script file.
func (a *app) resolveScript(args []string) (string, error) {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	manifest, lock, err := a.loadProject()
	if err != nil {
		if info, statErr := os.Stat(arg); arg != "" && statErr == nil && !info.IsDir() {
			a.logger.Warn("unable to load project; running file directly", "error", err)
			return filepath.Clean(arg), nil
		}
		return "", err
	}
	if manifest == nil && arg == "" {
		return "", fmt.Errorf("no script given and no %s found", driver.ManifestFileName)
	}
	return driver.Resolve(arg, manifest, lock, a.cfg.CacheDir)
}

// report prints a failed attempt.
func (a *app) report(attempt int, err error) {
	var stageErr *driver.StageError
	if !errors.As(err, &stageErr) {
		a.printError(err)
		return
	}
	label := a.palette.errorLabel(string(stageErr.Stage) + " error:")
	if attempt > 1 {
		label += a.palette.muted(fmt.Sprintf(" (attempt %d)", attempt))
	}
	fmt.Fprintf(a.stderr, "%s %v\n", label, stageErr.Err)
}

func (a *app) printError(err error) {
	fmt.Fprintf(a.stderr, "%s %v\n", a.palette.errorLabel("error:"), err)
}

func (a *app) printWarning(msg string) {
	fmt.Fprintf(a.stderr, "%s %s\n", a.palette.warnLabel("warning:"), msg)
}
