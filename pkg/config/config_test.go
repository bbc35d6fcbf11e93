// pkg/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultDistRoot, cfg.DistRoot)
	assert.Equal(t, "default", cfg.Profile)
	assert.NotEmpty(t, cfg.Home)
}

func TestLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Config{
		Home:     "/opt/toolup",
		DistRoot: "https://dist.example.com",
		Profile:  "minimal",
		Debug:    true,
	}

	require.NoError(t, SaveConfig(want, path))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile: full\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "full", cfg.Profile)
	assert.Equal(t, DefaultDistRoot, cfg.DistRoot)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{invalid"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestHomeEnvOverride(t *testing.T) {
	t.Setenv("TOOLUP_HOME", "/custom/toolup")

	cfg := DefaultConfig()
	assert.Equal(t, "/custom/toolup", cfg.Home)
}
