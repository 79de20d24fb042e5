package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project manifest looked up in the working directory.
const ManifestFileName = "mscript.yml"

// Manifest represents the parsed contents of mscript.yml.
type Manifest struct {
	Path        string
	Name        string
	Main        string
	Scripts     map[string]*ScriptSpec
	ScriptOrder []string
	Sources     map[string]*SourceSpec

	scriptEntries []*ScriptSpec
}

// ScriptSpec is a named, runnable script declared in the manifest.
type ScriptSpec struct {
	Name         string
	OriginalName string
	Path         string
}

// SourceSpec describes a git repository holding shared scripts.
type SourceSpec struct {
	Git    string
	Rev    string
	Tag    string
	Branch string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses mscript.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks up from dir looking for mscript.yml.
func FindManifest(dir string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(abs, ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", false
		}
		abs = parent
	}
}

// Dir returns the directory holding the manifest; script paths are relative to it.
func (m *Manifest) Dir() string {
	if m == nil || m.Path == "" {
		return ""
	}
	return filepath.Dir(m.Path)
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}

	scriptNames := make(map[string]string, len(m.scriptEntries))
	for _, script := range m.scriptEntries {
		if other, exists := scriptNames[script.Name]; exists {
			errs.Issues = append(errs.Issues, fmt.Sprintf("scripts %q and %q collide after sanitization", other, script.OriginalName))
		} else {
			scriptNames[script.Name] = script.OriginalName
		}
		if script.Path == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("script %q requires a path", script.OriginalName))
		}
	}
	if m.Main == "" && len(m.scriptEntries) == 0 {
		errs.Issues = append(errs.Issues, "main or at least one script must be provided")
	}

	for _, name := range sortedKeys(m.Sources) {
		for _, issue := range m.Sources[name].validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("sources.%s: %s", name, issue))
		}
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (s *SourceSpec) validate() []string {
	var errs []string
	if s == nil {
		return []string{"must be a mapping"}
	}
	if s.Git == "" {
		errs = append(errs, "git URL required")
	}
	pins := 0
	for _, pin := range []string{s.Rev, s.Tag, s.Branch} {
		if pin != "" {
			pins++
		}
	}
	if pins != 1 {
		errs = append(errs, "exactly one of rev, tag, or branch is required")
	}
	return errs
}

var ErrNoDefaultScript = errors.New("manifest: no main script defined")

// DefaultScript returns the main entrypoint, falling back to the first
// script in manifest order.
func (m *Manifest) DefaultScript() (*ScriptSpec, error) {
	if m == nil {
		return nil, ErrNoDefaultScript
	}
	if m.Main != "" {
		return &ScriptSpec{Name: "main", OriginalName: "main", Path: m.Main}, nil
	}
	if len(m.scriptEntries) > 0 {
		return m.scriptEntries[0], nil
	}
	return nil, ErrNoDefaultScript
}

// FindScript looks up a script by sanitized or original name.
func (m *Manifest) FindScript(name string) (*ScriptSpec, bool) {
	if m == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	if script, ok := m.Scripts[sanitizeSegment(name)]; ok && script != nil {
		return script, true
	}
	for _, script := range m.scriptEntries {
		if strings.EqualFold(script.OriginalName, name) {
			return script, true
		}
	}
	return nil, false
}

type manifestFile struct {
	Name    string                `yaml:"name"`
	Main    string                `yaml:"main"`
	Scripts scriptMap             `yaml:"scripts"`
	Sources map[string]sourceYAML `yaml:"sources"`
}

type sourceYAML struct {
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
}

// scriptMap keeps manifest order, which decides the default script.
type scriptMap struct {
	items []scriptMapEntry
}

type scriptMapEntry struct {
	name string
	path string
}

func (sm *scriptMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		sm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: scripts must be a mapping")
	}
	items := make([]scriptMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		var key, path string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: scripts must not use empty keys")
		}
		if err := value.Content[i+1].Decode(&path); err != nil {
			return fmt.Errorf("manifest: script %q: %w", key, err)
		}
		items = append(items, scriptMapEntry{name: key, path: strings.TrimSpace(path)})
	}
	sm.items = items
	return nil
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:          path,
		Name:          sanitizeSegment(mf.Name),
		Main:          strings.TrimSpace(mf.Main),
		Scripts:       make(map[string]*ScriptSpec, len(mf.Scripts.items)),
		ScriptOrder:   make([]string, 0, len(mf.Scripts.items)),
		Sources:       make(map[string]*SourceSpec, len(mf.Sources)),
		scriptEntries: make([]*ScriptSpec, 0, len(mf.Scripts.items)),
	}
	for _, item := range mf.Scripts.items {
		spec := &ScriptSpec{
			Name:         sanitizeSegment(item.name),
			OriginalName: item.name,
			Path:         item.path,
		}
		if _, exists := result.Scripts[spec.Name]; !exists {
			result.Scripts[spec.Name] = spec
			result.ScriptOrder = append(result.ScriptOrder, spec.Name)
		}
		result.scriptEntries = append(result.scriptEntries, spec)
	}
	for name, src := range mf.Sources {
		result.Sources[sanitizeSegment(name)] = &SourceSpec{
			Git:    strings.TrimSpace(src.Git),
			Rev:    strings.TrimSpace(src.Rev),
			Tag:    strings.TrimSpace(src.Tag),
			Branch: strings.TrimSpace(src.Branch),
		}
	}
	return result
}
