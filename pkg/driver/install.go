package driver

import (
	"fmt"
	"os"
	"strings"
)

// SourceFetcher materializes a manifest source in the cache.
type SourceFetcher interface {
	Fetch(name string, spec *SourceSpec) (*LockedSource, error)
	CheckoutDir(name, version string) string
}

// Install brings lock in line with the manifest's sources. Entries whose pin
// still matches and whose checkout exists are kept; everything else is
// fetched. Entries for sources no longer declared are dropped. The returned
// log lines describe what happened to each source.
func Install(manifest *Manifest, lock *Lockfile, fetcher SourceFetcher) (bool, []string, error) {
	if manifest == nil {
		return false, nil, fmt.Errorf("install: missing manifest")
	}
	if lock == nil {
		return false, nil, fmt.Errorf("install: missing lockfile")
	}
	if len(manifest.Sources) > 0 && fetcher == nil {
		return false, nil, fmt.Errorf("install: no fetcher configured")
	}

	changed := false
	var logs []string

	kept := lock.Sources[:0]
	for _, src := range lock.Sources {
		if src == nil {
			changed = true
			continue
		}
		if _, declared := manifest.Sources[src.Name]; !declared {
			logs = append(logs, fmt.Sprintf("Removed %s", src.Name))
			changed = true
			continue
		}
		kept = append(kept, src)
	}
	lock.Sources = kept

	for _, name := range sortedKeys(manifest.Sources) {
		spec := manifest.Sources[name]
		if existing, ok := lock.Find(name); ok && lockSatisfies(existing, spec) {
			if _, err := os.Stat(fetcher.CheckoutDir(existing.Name, existing.Version)); err == nil {
				logs = append(logs, fmt.Sprintf("Using %s %s", existing.Name, existing.Version))
				continue
			}
		}
		entry, err := fetcher.Fetch(name, spec)
		if err != nil {
			return changed, logs, err
		}
		if lock.Put(entry) {
			changed = true
		}
		logs = append(logs, fmt.Sprintf("Fetched %s %s", entry.Name, entry.Version))
	}
	return changed, logs, nil
}

// lockSatisfies reports whether a locked version was produced from the
// manifest's current pin. Branches always refetch.
func lockSatisfies(entry *LockedSource, spec *SourceSpec) bool {
	if entry == nil || spec == nil || spec.Branch != "" {
		return false
	}
	if !strings.Contains(entry.Source, spec.Git+"@") {
		return false
	}
	if spec.Rev != "" {
		return entry.Version == spec.Rev
	}
	if spec.Tag != "" {
		return strings.HasPrefix(entry.Version, spec.Tag+"@")
	}
	return false
}
