// Package config loads engine configuration from YAML, .env files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when no path is given.
const DefaultFile = "monkeypatch.yaml"

// Environment overrides, applied after the config file.
const (
	EnvLogLevel       = "MONKEYPATCH_LOG_LEVEL"
	EnvLogFormat      = "MONKEYPATCH_LOG_FORMAT"
	EnvSourceDir      = "MONKEYPATCH_SOURCE_DIR"
	EnvSourceTests    = "MONKEYPATCH_SOURCE_TESTS"
	EnvSourceExclude  = "MONKEYPATCH_SOURCE_EXCLUDE"
	EnvSourceFallback = "MONKEYPATCH_SOURCE_FALLBACK"
)

// Config represents the engine configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Sources SourcesConfig `yaml:"sources"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// SourcesConfig controls how type declarations are located.
type SourcesConfig struct {
	// Packages enables reading declarations with the Go package loader.
	Packages bool `yaml:"packages"`
	// Dir is the directory packages are resolved from.
	Dir string `yaml:"dir"`
	// Tests includes _test.go files.
	Tests bool `yaml:"tests"`
	// Exclude lists doublestar globs of files never read.
	Exclude []string `yaml:"exclude"`
	// Fallback degrades unavailable sources to the type name instead of
	// failing registration.
	Fallback bool `yaml:"fallback"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Sources: SourcesConfig{
			Packages: true,
			Exclude:  []string{"**/vendor/**", "**/*.pb.go"},
		},
	}
}

// Load reads configuration from file, falling back to defaults.
// If configPath is empty, it looks for monkeypatch.yaml in the current
// directory. A .env file next to the config is loaded without overriding
// variables already set, then MONKEYPATCH_* variables are applied.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultFile
	}

	if err := LoadDotEnv(filepath.Join(filepath.Dir(configPath), ".env")); err != nil {
		return nil, err
	}

	cfg := Default()
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No config file, use defaults
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	default:
		// Keys present in the file replace defaults; absent keys keep them.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDir loads configuration from the specified directory.
func LoadFromDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, DefaultFile))
}

// LoadDotEnv loads .env files; missing files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from MONKEYPATCH_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok {
		c.Log.Format = v
	}
	if v, ok := os.LookupEnv(EnvSourceDir); ok {
		c.Sources.Dir = v
	}
	if v, ok := os.LookupEnv(EnvSourceExclude); ok {
		c.Sources.Exclude = splitList(v)
	}
	for name, field := range map[string]*bool{
		EnvSourceTests:    &c.Sources.Tests,
		EnvSourceFallback: &c.Sources.Fallback,
	} {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", name, v, err)
		}
		*field = b
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: expected text or json", c.Log.Format)
	}
	return nil
}

// Level parses the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// Logger builds a logger writing to stderr.
func (c *Config) Logger() *slog.Logger {
	return c.NewLogger(os.Stderr)
}

// NewLogger builds a logger writing to w. Invalid settings fall back to
// text at info level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
