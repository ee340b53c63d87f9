package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "awsprof", "config.yaml"), GetConfigPath())
}

func TestLoadConfigFrom_Missing(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadConfigFrom_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile: [unterminated"), 0o644))

	_, err := LoadConfigFrom(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestSaveConfigTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{Profile: "prod", ConfigFile: "/etc/aws/config"}

	require.NoError(t, SaveConfigTo(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "profile: prod\naws_config_file: /etc/aws/config\n", string(data))

	loaded, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSetProfile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	assert.Empty(t, GetSavedProfile())

	require.NoError(t, SaveConfig(&Config{CredentialsFile: "/tmp/creds"}))
	require.NoError(t, SetProfile("dev"))

	assert.Equal(t, "dev", GetSavedProfile())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/creds", cfg.CredentialsFile, "other settings are preserved")
}
