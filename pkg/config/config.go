// Package config loads the user configuration for the mscript tools.
//
// The file lives in $MSCRIPT_HOME (default ~/.mscript) as config.toml,
// config.yaml or config.yml; the format follows the extension. Keys that
// are absent keep their defaults, unknown keys are rejected.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// HomeEnv overrides the configuration and cache root.
const HomeEnv = "MSCRIPT_HOME"

// DefaultDebounce collapses the burst of events editors emit per save.
const DefaultDebounce = 200 * time.Millisecond

// Format is the on-disk encoding of a config file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config is the resolved user configuration.
type Config struct {
	Path string `toml:"-" yaml:"-"`

	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	CacheDir  string `toml:"cache_dir" yaml:"cache_dir"`
	Color     bool   `toml:"color" yaml:"color"`

	Watch WatchConfig `toml:"watch" yaml:"watch"`
}

// WatchConfig tunes the watch host loop.
type WatchConfig struct {
	Debounce    string `toml:"debounce" yaml:"debounce"`
	MaxAttempts int    `toml:"max_attempts" yaml:"max_attempts"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("config")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	b.WriteString(": validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Home returns $MSCRIPT_HOME, falling back to ~/.mscript.
func Home() (string, error) {
	if home := strings.TrimSpace(os.Getenv(HomeEnv)); home != "" {
		return filepath.Abs(home)
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(userHome, ".mscript"), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{
		LogLevel:  "warn",
		LogFormat: "text",
		Color:     true,
		Watch: WatchConfig{
			Debounce: DefaultDebounce.String(),
		},
	}
	if home, err := Home(); err == nil {
		cfg.CacheDir = filepath.Join(home, "cache")
	}
	return cfg
}

// Load reads the config at path. An empty path searches the home directory
// and returns the defaults when nothing is found.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := discover()
		if err != nil {
			return nil, err
		}
		if found == "" {
			return Default(), nil
		}
		path = found
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(content, DetectFormat(path))
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Path = path
			return nil, verr
		}
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes content over the defaults and validates the result.
func Parse(content []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(content), cfg)
		if err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, key := range undecoded {
				keys = append(keys, key.String())
			}
			return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DetectFormat picks the decoder from the file extension. TOML is the default.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func discover() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		candidate := filepath.Join(home, name)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config: stat %s: %w", candidate, err)
		}
	}
	return "", nil
}

// Normalize trims every field and lowercases the log settings.
func (c *Config) Normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.CacheDir = strings.TrimSpace(c.CacheDir)
	c.Watch.Debounce = strings.TrimSpace(c.Watch.Debounce)
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var issues []string
	if _, ok := levels[c.LogLevel]; !ok {
		issues = append(issues, fmt.Sprintf("log_level %q must be one of debug, info, warn, error", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		issues = append(issues, fmt.Sprintf("log_format %q must be text or json", c.LogFormat))
	}
	if c.Watch.Debounce != "" {
		if d, err := time.ParseDuration(c.Watch.Debounce); err != nil {
			issues = append(issues, fmt.Sprintf("watch.debounce: %v", err))
		} else if d < 0 {
			issues = append(issues, "watch.debounce must not be negative")
		}
	}
	if c.Watch.MaxAttempts < 0 {
		issues = append(issues, "watch.max_attempts must not be negative")
	}
	if len(issues) > 0 {
		return &ValidationError{Path: c.Path, Issues: issues}
	}
	return nil
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Level maps LogLevel onto slog. Unknown values log at warn.
func (c *Config) Level() slog.Level {
	if level, ok := levels[strings.ToLower(c.LogLevel)]; ok {
		return level
	}
	return slog.LevelWarn
}

// DebounceDuration is the parsed watch.debounce; zero when unset.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil || d < 0 {
		return 0
	}
	return d
}
