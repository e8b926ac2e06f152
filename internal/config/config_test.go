package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "none", cfg.DBType)
	assert.False(t, cfg.HasDatabase())
	assert.Equal(t, "1.0.5", cfg.MetadataVersion)
	assert.Equal(t, "camelCase", cfg.NamingConvention)
	assert.Equal(t, 5, cfg.DBAppConnectionLimit)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "4100")
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "file::memory:")
	t.Setenv("DB_APP_CONNECTION_LIMIT", "9")
	t.Setenv("MODEL_NAMESPACE", "Northwind.Models")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "4100", cfg.Port)
	assert.True(t, cfg.HasDatabase())
	assert.Equal(t, 9, cfg.DBAppConnectionLimit)
	assert.Equal(t, "Northwind.Models", cfg.ModelNamespace)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "breezemeta.yaml"),
		[]byte("port: \"5000\"\nnaming_convention: none\nlog_format: console\n"), 0o600))
	t.Setenv("PORT", "5001")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5001", cfg.Port, "environment wins over the file")
	assert.Equal(t, "none", cfg.NamingConvention)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("METADATA_VERSION=2.0.0\n"), 0o600))
	t.Setenv("ENV_FILE", envFile)
	// godotenv does not override existing variables; Setenv registers cleanup.
	t.Setenv("METADATA_VERSION", "")
	os.Unsetenv("METADATA_VERSION")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", cfg.MetadataVersion)
}

func TestLoadValidation(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("database required", func(t *testing.T) {
		t.Setenv("DB_TYPE", "postgres")
		_, err := Load()
		assert.ErrorContains(t, err, "DB_DATABASE is required")
	})

	t.Run("user required", func(t *testing.T) {
		t.Setenv("DB_TYPE", "postgres")
		t.Setenv("DB_DATABASE", "northwind")
		_, err := Load()
		assert.ErrorContains(t, err, "DB_APP_USER is required")
	})

	t.Run("missing env file", func(t *testing.T) {
		t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
		_, err := Load()
		assert.ErrorContains(t, err, "failed to load env file")
	})
}
