package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 60, cfg.CellSize)
	assert.Equal(t, 1500, cfg.DesktopWidth)
	assert.Equal(t, "medium", cfg.FontSize)
	assert.True(t, cfg.FontBold)
	assert.True(t, filepath.IsAbs(cfg.DataDir))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := "cell_size: 90\nbackground_color: \"rgba(1,2,3,1)\"\ndata_dir: " + dir + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(filepath.Join(dir, "config.yaml"))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.CellSize)
	assert.Equal(t, "rgba(1,2,3,1)", cfg.BackgroundColor)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, 1500, cfg.DesktopWidth)
}

func TestLoadWithoutFile(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigName("config")
	v.AddConfigPath(t.TempDir())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.CellSize)
}
