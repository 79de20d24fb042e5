package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Fetcher clones manifest sources into a cache directory laid out as
// <cache>/src/<name>/<version>.
type Fetcher struct {
	CacheDir string
}

// NewFetcher returns a git fetcher rooted at cacheDir.
func NewFetcher(cacheDir string) *Fetcher {
	if cacheDir == "" {
		return nil
	}
	return &Fetcher{CacheDir: cacheDir}
}

// CheckoutDir is where a locked source lives in the cache.
func (f *Fetcher) CheckoutDir(name, version string) string {
	return filepath.Join(f.CacheDir, "src", sanitizeSegment(name), sanitizePathSegment(version))
}

// Fetch clones spec.Git, checks out the pinned revision and returns the
// lock entry describing it. An existing checkout for the same version is
// reused.
func (f *Fetcher) Fetch(name string, spec *SourceSpec) (*LockedSource, error) {
	if f == nil {
		return nil, errors.New("git fetcher unavailable")
	}
	if spec == nil {
		return nil, fmt.Errorf("source %q: missing specification", name)
	}
	url := strings.TrimSpace(spec.Git)
	if url == "" {
		return nil, fmt.Errorf("source %q: git URL required", name)
	}

	baseDir := filepath.Join(f.CacheDir, "src", sanitizeSegment(name))
	version, commit, err := ensureGitCheckout(baseDir, url, spec)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", name, err)
	}

	checksum, err := dirChecksum(filepath.Join(baseDir, sanitizePathSegment(version)))
	if err != nil {
		return nil, fmt.Errorf("source %q: checksum: %w", name, err)
	}

	return &LockedSource{
		Name:     sanitizeSegment(name),
		Version:  version,
		Source:   fmt.Sprintf("git+%s@%s", url, commit),
		Checksum: checksum,
	}, nil
}

func ensureGitCheckout(baseDir, url string, spec *SourceSpec) (string, string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", err
	}

	revision, descriptor, err := gitRevisionFromSpec(spec)
	if err != nil {
		return "", "", err
	}

	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		existing := filepath.Join(baseDir, sanitizePathSegment(rev))
		if _, err := os.Stat(existing); err == nil {
			return rev, rev, nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git clone %s: %w", url, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	version := gitPinnedVersion(descriptor, hash.String())
	targetDir := filepath.Join(baseDir, sanitizePathSegment(version))
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return version, hash.String(), nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git checkout %s: %w", revision, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	return version, hash.String(), nil
}

func gitPinnedVersion(descriptor, commit string) string {
	commit = strings.TrimSpace(commit)
	descriptor = strings.TrimSpace(descriptor)
	if commit == "" {
		return descriptor
	}
	if descriptor == "" || descriptor == commit {
		return commit
	}
	return fmt.Sprintf("%s@%s", descriptor, commit)
}

func gitRevisionFromSpec(spec *SourceSpec) (plumbing.Revision, string, error) {
	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		return plumbing.Revision(rev), rev, nil
	}
	if tag := strings.TrimSpace(spec.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), tag, nil
	}
	if branch := strings.TrimSpace(spec.Branch); branch != "" {
		return plumbing.Revision("refs/heads/" + branch), branch, nil
	}
	return "", "", fmt.Errorf("git sources require rev, tag, or branch")
}

// dirChecksum hashes file names and contents under path, skipping git metadata.
func dirChecksum(path string) (string, error) {
	h := sha256.New()
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		h.Write([]byte(filepath.ToSlash(rel)))
		h.Write(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
