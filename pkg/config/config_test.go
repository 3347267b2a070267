package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vardr/utmp/pkg/codec"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "/var/run/utmp", cfg.UtmpPath)
	assert.Equal(t, "/var/log/wtmp", cfg.WtmpPath)
	assert.Equal(t, "native", cfg.Layout)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "config.yaml")
	cfg := DefaultConfig()
	cfg.WtmpPath = "/srv/audit/wtmp"
	cfg.Layout = "x64"
	cfg.Logging.Level = "debug"

	require.NoError(t, SaveConfig(cfg, path))
	require.True(t, ConfigExists(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_partial_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout: x32\n"), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "x32", cfg.Layout)
	assert.Equal(t, "/var/log/wtmp", cfg.WtmpPath)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yaml")
	assert.Error(t, err)
}

func TestResolveLayout(t *testing.T) {
	for name, want := range map[string]codec.Layout{
		"":       codec.LayoutNative,
		"native": codec.LayoutNative,
		"x32":    codec.Layout32,
		"x64":    codec.Layout64,
	} {
		got, err := ResolveLayout(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, want, got, "name %q", name)
	}

	_, err := ResolveLayout("sparc")
	assert.Error(t, err)
}
