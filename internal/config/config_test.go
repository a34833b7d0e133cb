package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LUNCHPAD_CONFIG_DIR", dir)
	for _, k := range []string{"DATA_DIR", "STORAGE", "APP_DIRS", "ITEM_WIDTH", "FOLDER_NAME", "LOG_LEVEL", "LOG_FILE"} {
		t.Setenv("LUNCHPAD_"+k, "")
		os.Unsetenv("LUNCHPAD_" + k)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Empty(t, cfg.ConfigFile)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "json", cfg.Storage)
	assert.Equal(t, DefaultItemWidth, cfg.ItemWidth)
	assert.Equal(t, "New Folder", cfg.FolderName)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "logs", "lunchpad.log"), cfg.LogFile)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	data := filepath.Join(dir, "data")
	yaml := "data_dir: " + data + "\n" +
		"storage: sqlite\n" +
		"item_width: 24\n" +
		"folder_name: Stuff\n" +
		"app_dirs:\n  - /opt/apps\n  - /srv/apps\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigFile)
	assert.Equal(t, data, cfg.DataDir)
	assert.Equal(t, "sqlite", cfg.Storage)
	assert.Equal(t, 24, cfg.ItemWidth)
	assert.Equal(t, "Stuff", cfg.FolderName)
	assert.Equal(t, []string{"/opt/apps", "/srv/apps"}, cfg.AppDirs)
	assert.Equal(t, filepath.Join(data, "logs", "lunchpad.log"), cfg.LogFile)

	t.Setenv("LUNCHPAD_ITEM_WIDTH", "30")
	t.Setenv("LUNCHPAD_APP_DIRS", "/a"+string(os.PathListSeparator)+"/b")
	v, err = New("")
	require.NoError(t, err)
	cfg, err = Load(v)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.ItemWidth)
	assert.Equal(t, []string{"/a", "/b"}, cfg.AppDirs)
}

func TestNew_ExplicitFileMustExist(t *testing.T) {
	dir := isolate(t)
	_, err := New(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o644))
	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Validation(t *testing.T) {
	isolate(t)

	cases := map[string]any{
		KeyStorage:   "postgres",
		KeyItemWidth: 0,
		KeyDataDir:   " ",
	}
	for key, value := range cases {
		v, err := New("")
		require.NoError(t, err)
		v.Set(key, value)
		_, err = Load(v)
		var inv InvalidError
		require.True(t, errors.As(err, &inv), "%s: expected InvalidError, got %v", key, err)
		assert.Equal(t, key, inv.Key)
	}
}

func TestLoad_BlankFolderNameFallsBack(t *testing.T) {
	isolate(t)
	v, err := New("")
	require.NoError(t, err)
	v.Set(KeyFolderName, "   ")
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "New Folder", cfg.FolderName)
}
