package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/earsiv-client/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8365", cfg.ListenAddr)
	assert.False(t, cfg.TestMode)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "earsiv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("username: \"33333301\"\ntest_mode: true\nlog_level: debug\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "33333301", cfg.Username)
	assert.True(t, cfg.TestMode)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "earsiv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("username: fromfile\npassword: filepass\n"), 0o600))

	t.Setenv("EARSIV_USERNAME", "fromenv")
	t.Setenv("EARSIV_TEST_MODE", "true")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.Username)
	assert.Equal(t, "filepass", cfg.Password)
	assert.True(t, cfg.TestMode)
}

func TestLoadMissingYAMLFileIsFine(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
}

func TestValidateCredentials(t *testing.T) {
	cfg := &config.Config{}
	require.Error(t, cfg.ValidateCredentials())

	cfg.Anonymous = true
	require.NoError(t, cfg.ValidateCredentials())

	cfg = &config.Config{Username: "u", Password: "p"}
	require.NoError(t, cfg.ValidateCredentials())
}
