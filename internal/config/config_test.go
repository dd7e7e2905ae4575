package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaultConfigOnFirstRun(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	_, err = os.Stat(filepath.Join(dir, configFileExt))
	require.NoError(t, err)
}

func TestLoadDataDirFlagWinsOverConfigValue(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, configFileExt),
		[]byte("data_dir: /config/data\n"),
		0o644,
	))

	cfg, err := Load(dir, "/flag/data")
	require.NoError(t, err)
	assert.Equal(t, "/flag/data", cfg.DataDir)
}

func TestLoadReadsSchemaFileAndDBFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, configFileExt),
		[]byte("schema_file: schema.yaml\ndb_file: custom.sqlite\n"),
		0o644,
	))

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "schema.yaml", cfg.SchemaFile)
	assert.Equal(t, "custom.sqlite", cfg.DBFile)
}

func TestDBPathJoinsDataDirAndFile(t *testing.T) {
	cfg := &Config{DataDir: "/data"}
	path, err := cfg.DBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", DefaultDBFileName), path)

	cfg.DBFile = "custom.sqlite"
	path, err = cfg.DBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", "custom.sqlite"), path)
}

func TestDBPathRejectsEmptyDataDir(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.DBPath()
	require.ErrorIs(t, err, ErrDataDirEmpty)
}

func TestLoadDoesNotErrorWithoutExistingConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.Empty(t, cfg.SchemaFile)
}
