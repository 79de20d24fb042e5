package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAndLoadLockfile(t *testing.T) {
	lock := &Lockfile{
		Root:      "demo-app",
		Tool:      " mscript 0.1.0 ",
		Generated: "2025-01-01T00:00:00Z",
		Sources: []*LockedSource{
			{
				Name:     "util-scripts",
				Version:  " v2.0.0@abc ",
				Source:   " git+https://example.com/util.git@abc ",
				Checksum: " 1234 ",
			},
			{
				Name:    "core",
				Version: "def",
				Source:  "git+https://example.com/core.git@def",
			},
		},
	}

	path := filepath.Join(t.TempDir(), LockfileName)
	if err := WriteLockfile(lock, path); err != nil {
		t.Fatalf("WriteLockfile error: %v", err)
	}

	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("LoadLockfile error: %v", err)
	}
	if loaded.Path != path {
		t.Fatalf("Path = %q, want %q", loaded.Path, path)
	}
	if loaded.Root != "demo_app" {
		t.Fatalf("Root = %q, want demo_app", loaded.Root)
	}
	if loaded.Tool != "mscript 0.1.0" {
		t.Fatalf("Tool = %q", loaded.Tool)
	}
	if loaded.Generated != "2025-01-01T00:00:00Z" {
		t.Fatalf("Generated = %q", loaded.Generated)
	}
	if len(loaded.Sources) != 2 {
		t.Fatalf("Sources length = %d, want 2", len(loaded.Sources))
	}
	if loaded.Sources[0].Name != "core" {
		t.Fatalf("first source = %q, want core", loaded.Sources[0].Name)
	}
	util := loaded.Sources[1]
	if util.Name != "util_scripts" || util.Version != "v2.0.0@abc" || util.Checksum != "1234" {
		t.Fatalf("util entry = %#v", util)
	}
	if util.Source != "git+https://example.com/util.git@abc" {
		t.Fatalf("util source = %q", util.Source)
	}
}

func TestLoadLockfileMissing(t *testing.T) {
	_, err := LoadLockfile(filepath.Join(t.TempDir(), LockfileName))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestLoadLockfileRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), LockfileName)
	writeFile(t, path, `
root: app
packages: []
`)
	if _, err := LoadLockfile(path); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestLockfilePut(t *testing.T) {
	lock := NewLockfile("app", "mscript test")
	entry := &LockedSource{Name: "b", Version: "v1", Source: "git+x@1"}
	if !lock.Put(entry) {
		t.Fatalf("first Put should change the lockfile")
	}
	if lock.Put(&LockedSource{Name: "b", Version: "v1", Source: "git+x@1"}) {
		t.Fatalf("identical Put should not change the lockfile")
	}
	if !lock.Put(&LockedSource{Name: "b", Version: "v2", Source: "git+x@2"}) {
		t.Fatalf("new version should change the lockfile")
	}
	lock.Put(&LockedSource{Name: "a", Version: "v1"})
	if len(lock.Sources) != 2 || lock.Sources[0].Name != "a" {
		t.Fatalf("sources not sorted: %#v", lock.Sources)
	}
	got, ok := lock.Find("b")
	if !ok || got.Version != "v2" {
		t.Fatalf("Find(b) = %#v, %v", got, ok)
	}
	var missing *Lockfile
	if _, ok := missing.Find("b"); ok {
		t.Fatalf("nil lockfile should not find entries")
	}
}
