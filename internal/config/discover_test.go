package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	path := DefaultPath()
	assert.Contains(t, path, filepath.Join(".config", "newfile", "config.toml"))
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	assert.Equal(t, filepath.Join("/custom/config", "newfile", "config.toml"), DefaultPath())
}

func TestDiscover_NEWFILE_CONFIG(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[general]"), 0o644))

	t.Setenv("NEWFILE_CONFIG", cfgPath)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
}

func TestDiscover_NEWFILE_CONFIG_NotFound(t *testing.T) {
	t.Setenv("NEWFILE_CONFIG", "/nonexistent/config.toml")

	_, err := Discover()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NEWFILE_CONFIG")
}

func TestDiscover_CurrentDir(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "newfile.toml"), []byte("[general]"), 0o644))

	t.Chdir(tmp)
	t.Setenv("NEWFILE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, "./newfile.toml", path)
}

func TestDiscover_XDG(t *testing.T) {
	t.Chdir(t.TempDir())
	xdg := t.TempDir()
	cfgPath := filepath.Join(xdg, "newfile", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o755))
	require.NoError(t, os.WriteFile(cfgPath, []byte("[general]"), 0o644))

	t.Setenv("NEWFILE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
}

func TestDiscover_NotFound(t *testing.T) {
	if _, err := os.Stat("/etc/newfile/config.toml"); err == nil {
		t.Skip("system config present")
	}
	t.Chdir(t.TempDir())
	t.Setenv("NEWFILE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := Discover()
	assert.ErrorIs(t, err, ErrNotFound)
}
