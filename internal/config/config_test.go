package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"FITCAL_BACKEND", "FITCAL_DATA_PATH", "TURSO_DATABASE_URL", "FITCAL_LOG_LEVEL", "DEV_MODE"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigFromMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".config", "fitcal"), cfg.Storage.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[storage]
backend = "libsql"
url = "libsql://example.turso.io"

[log]
level = "debug"
`), 0o644))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, BackendLibSQL, cfg.Storage.Backend)
	assert.Equal(t, "libsql://example.turso.io", cfg.Storage.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\nbackend = \"file\"\npath = \"/tmp/a\"\n"), 0o644))

	t.Setenv("FITCAL_BACKEND", "sqlite")
	t.Setenv("FITCAL_DATA_PATH", "/tmp/b.db")
	t.Setenv("FITCAL_LOG_LEVEL", "info")

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/b.db", cfg.Storage.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestDevModeForcesLocalSQLite(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEV_MODE", "true")

	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Contains(t, cfg.Storage.Path, "fitcal.db")
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&Config{Storage: StorageConfig{Backend: "mongo"}}).Validate())
	assert.Error(t, (&Config{Storage: StorageConfig{Backend: BackendLibSQL}}).Validate())
	assert.Error(t, (&Config{Storage: StorageConfig{Backend: BackendFile}}).Validate())
	assert.NoError(t, (&Config{Storage: StorageConfig{Backend: BackendLibSQL, URL: "libsql://x"}}).Validate())
}

func TestBadTOMLIsReported(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage\n"), 0o644))

	_, err := LoadConfigFrom(path)
	assert.Error(t, err)
}

func TestDefaultPathFollowsBackend(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FITCAL_BACKEND", "sqlite")

	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, ".config", "fitcal", "fitcal.db"), cfg.Storage.Path)
}

func TestSQLiteBackendFromFileWithoutPath(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\nbackend = \"sqlite\"\n"), 0o644))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "fitcal", "fitcal.db"), cfg.Storage.Path)
}
