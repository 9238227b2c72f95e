package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeSessionName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple lowercase", input: "empire", expected: "empire"},
		{name: "uppercase converted", input: "Empire", expected: "empire"},
		{name: "spaces to underscores", input: "fall of rome", expected: "fall_of_rome"},
		{name: "hyphens to underscores", input: "fall-of-rome", expected: "fall_of_rome"},
		{name: "special characters removed", input: "rome!?", expected: "rome"},
		{name: "consecutive underscores collapsed", input: "rome--falls", expected: "rome_falls"},
		{name: "leading trailing underscores trimmed", input: "-rome-", expected: "rome"},
		{name: "empty string returns default", input: "", expected: "default"},
		{name: "only special chars returns default", input: "!!!", expected: "default"},
		{name: "complex mixed input", input: "Star-Empire (Game 2)", expected: "star_empire_game_2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeSessionName(tt.input))
		})
	}
}

func TestSessionPaths(t *testing.T) {
	assert.Equal(t, "microscope_star_empire", GenerateCollectionName("Star Empire"))
	assert.Equal(t,
		filepath.Join("/base", ".microscope", "sessions", "star_empire", "session.json"),
		SessionFilePathFor("/base", "Star Empire"))
	assert.Equal(t,
		filepath.Join("/base", ".microscope", "sessions", "star_empire", "archive.db"),
		ArchivePathForSession("/base", "Star Empire"))
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MICROSCOPE_LOG_LEVEL", "MICROSCOPE_LOG_FORMAT", "MICROSCOPE_ARCHIVE_ENABLED",
		"MICROSCOPE_EXPORT_FORMAT", "OPENAI_API_KEY", "MICROSCOPE_EMBEDDER_MODEL",
		"MICROSCOPE_QDRANT_HOST", "MICROSCOPE_QDRANT_PORT", "QDRANT_API_KEY",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()
	require.NoError(t, WriteDefault(base))

	cfg, err := Load(base)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoad_NotInitialized(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(base), 0755))
	require.NoError(t, os.WriteFile(ConfigFilePath(base), []byte("log:\n  level: debug\nexport:\n  format: text\n"), 0644))

	cfg, err := Load(base)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Export.Format)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()
	require.NoError(t, WriteDefault(base))
	require.NoError(t, os.WriteFile(EnvFilePath(base), []byte("OPENAI_API_KEY=from-dotenv\nMICROSCOPE_LOG_LEVEL=warn\n"), 0600))

	t.Setenv("MICROSCOPE_LOG_LEVEL", "error")
	t.Setenv("MICROSCOPE_QDRANT_PORT", "7000")
	t.Setenv("MICROSCOPE_ARCHIVE_ENABLED", "false")

	cfg, err := Load(base)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level, "process environment wins over .env")
	assert.Equal(t, "from-dotenv", cfg.Embedder.APIKey)
	assert.Equal(t, 7000, cfg.Qdrant.Port)
	assert.False(t, cfg.Archive.Enabled)
}

func TestLoad_BadEnvValue(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()
	require.NoError(t, WriteDefault(base))
	t.Setenv("MICROSCOPE_QDRANT_PORT", "not-a-number")

	_, err := Load(base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(base), 0755))
	require.NoError(t, os.WriteFile(ConfigFilePath(base), []byte("log:\n  level: loud\narchive:\n  keep_versions: -1\n"), 0644))

	_, err := Load(base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Log.Level")
	assert.Contains(t, err.Error(), "Config.Archive.KeepVersions")
}

func TestWriteDefault_Twice(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, WriteDefault(base))
	assert.True(t, Exists(base))

	err := WriteDefault(base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestWrite_RoundTrip(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()

	cfg := Default()
	cfg.Archive.KeepVersions = 5
	cfg.Watch.Debounce = time.Second
	require.NoError(t, Write(base, cfg))

	loaded, err := Load(base)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
