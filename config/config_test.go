package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears name for the test and restores it afterwards.
func unsetEnv(t *testing.T, name string) {
	t.Helper()
	t.Setenv(name, "")
	require.NoError(t, os.Unsetenv(name))
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		EnvLogLevel, EnvLogFormat, EnvSourceDir,
		EnvSourceTests, EnvSourceExclude, EnvSourceFallback,
	} {
		unsetEnv(t, name)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.Sources.Packages)
	assert.False(t, cfg.Sources.Fallback)
	assert.NotEmpty(t, cfg.Sources.Exclude)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNonExistent(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	content := `
log:
  level: debug
sources:
  dir: ./models
  exclude:
    - "**/zz_generated.go"
  fallback: true
`
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte(content), 0o600))

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "absent keys keep defaults")
	assert.Equal(t, "./models", cfg.Sources.Dir)
	assert.Equal(t, []string{"**/zz_generated.go"}, cfg.Sources.Exclude)
	assert.True(t, cfg.Sources.Fallback)
	assert.True(t, cfg.Sources.Packages)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvSourceExclude, "a/**, b/*.go ,")
	t.Setenv(EnvSourceFallback, "true")
	t.Setenv(EnvSourceTests, "1")

	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFile))
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"a/**", "b/*.go"}, cfg.Sources.Exclude)
	assert.True(t, cfg.Sources.Fallback)
	assert.True(t, cfg.Sources.Tests)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MONKEYPATCH_LOG_LEVEL=warn\nMONKEYPATCH_SOURCE_DIR=/src\n"), 0o600))
	// Variables already set win over .env.
	t.Setenv(EnvSourceDir, "/explicit")

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/explicit", cfg.Sources.Dir)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "malformed yaml", content: "log: [\n"},
		{name: "bad level", content: "log:\n  level: loud\n"},
		{name: "bad format", content: "log:\n  format: xml\n"},
		{name: "bad bool env", env: map[string]string{EnvSourceFallback: "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(t.TempDir(), DefaultFile)
			if tt.content != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			}
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}
