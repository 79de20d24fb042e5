package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mscript/interpreter-go/pkg/driver"
)

func newFetchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch manifest sources and update mscript.lock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.fetch(cmd)
		},
	}
}

func (a *app) fetch(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	manifestPath, ok := driver.FindManifest(".")
	if !ok {
		return fmt.Errorf("unable to locate %s", driver.ManifestFileName)
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}
	if a.cfg.CacheDir == "" {
		return fmt.Errorf("no cache directory configured")
	}

	fmt.Fprintf(out, "Manifest: %s\n", manifest.Path)
	fmt.Fprintf(out, "Sources: %d\n", len(manifest.Sources))
	fmt.Fprintf(out, "Cache directory: %s\n", a.cfg.CacheDir)

	lockPath := filepath.Join(manifest.Dir(), driver.LockfileName)
	lock, err := driver.LoadLockfile(lockPath)
	lockCreated := false
	switch {
	case err == nil:
		if lock.Root != manifest.Name {
			return fmt.Errorf("lockfile root %q does not match manifest name %q", lock.Root, manifest.Name)
		}
	case errors.Is(err, os.ErrNotExist):
		lock = driver.NewLockfile(manifest.Name, cliToolVersion)
		lockCreated = true
	default:
		return fmt.Errorf("failed to read lockfile: %w", err)
	}
	lock.Path = lockPath
	lock.Tool = cliToolVersion

	changed, logs, err := driver.Install(manifest, lock, driver.NewFetcher(a.cfg.CacheDir))
	for _, line := range logs {
		fmt.Fprintln(out, line)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch sources: %w", err)
	}
	a.logger.Info("sources resolved", "sources", len(lock.Sources), "changed", changed)

	if !changed && !lockCreated {
		fmt.Fprintf(out, "%s already up to date: %s\n", driver.LockfileName, lock.Path)
		return nil
	}
	action := "Updated"
	if lockCreated {
		action = "Created"
	}
	if err := driver.WriteLockfile(lock, lockPath); err != nil {
		return fmt.Errorf("failed to write lockfile: %w", err)
	}
	fmt.Fprintf(out, "%s %s: %s\n", action, driver.LockfileName, lock.Path)
	return nil
}
