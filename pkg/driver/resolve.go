package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrSourceNotLocked is returned when a source:path argument names a source
// that has not been fetched yet.
var ErrSourceNotLocked = errors.New("source not fetched; run mscript fetch")

// Resolve turns a run argument into a script path. An empty argument selects
// the manifest's default script. Otherwise the argument is tried as a
// manifest script name, then as source:path into a locked checkout, and
// finally as a plain file path.
func Resolve(arg string, manifest *Manifest, lock *Lockfile, cacheDir string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		script, err := manifest.DefaultScript()
		if err != nil {
			return "", err
		}
		return manifestRelative(manifest, script.Path), nil
	}

	if script, ok := manifest.FindScript(arg); ok {
		return manifestRelative(manifest, script.Path), nil
	}

	if name, rel, ok := strings.Cut(arg, ":"); ok && manifest != nil {
		if _, declared := manifest.Sources[sanitizeSegment(name)]; declared {
			entry, locked := lock.Find(name)
			if !locked {
				return "", fmt.Errorf("%s: %w", name, ErrSourceNotLocked)
			}
			dir := (&Fetcher{CacheDir: cacheDir}).CheckoutDir(entry.Name, entry.Version)
			path := filepath.Join(dir, filepath.FromSlash(rel))
			if !withinDir(dir, path) {
				return "", fmt.Errorf("%s: path %q escapes the source checkout", name, rel)
			}
			return path, nil
		}
	}

	info, err := os.Stat(arg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("no script, source or file named %q", arg)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", arg)
	}
	return filepath.Clean(arg), nil
}

func manifestRelative(manifest *Manifest, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	base := manifest.Dir()
	if base == "" {
		return filepath.Clean(filepath.FromSlash(path))
	}
	return filepath.Join(base, filepath.FromSlash(path))
}

func withinDir(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
