package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumipallolabs/metafolder/internal/presets"
	"github.com/lumipallolabs/metafolder/internal/settings"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("METAFOLDER_CONFIG_PATH", t.TempDir())

	var out bytes.Buffer
	root := NewRootCmd("test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLayoutShowPrintsDefaults(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "layout", "show", dir)
	require.NoError(t, err)

	var layout settings.Layout
	require.NoError(t, json.Unmarshal([]byte(out), &layout))
	assert.Equal(t, settings.Default(), layout)
}

func TestLayoutShowRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := execute(t, "layout", "show", file)
	assert.Error(t, err)
}

func TestLayoutReset(t *testing.T) {
	dir := t.TempDir()
	store := settings.NewStore()
	require.NoError(t, store.Update(dir, func(l *settings.Layout) {
		l.FontSize = "large"
		l.Icons["a.txt"] = settings.Icon{PositionX: 5, PositionY: 5}
	}))

	out, err := execute(t, "layout", "reset", dir)
	require.NoError(t, err)
	assert.Contains(t, out, settings.FileName)

	layout, err := store.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), layout)
}

func TestPresetCommands(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("METAFOLDER_DATA_DIR", dataDir)

	src, dst := t.TempDir(), t.TempDir()
	store := settings.NewStore()
	require.NoError(t, store.Update(src, func(l *settings.Layout) {
		l.BackgroundColor = "rgba(1,2,3,1)"
		l.CellSize = 90
	}))

	_, err := execute(t, "preset", "save", "calm", src)
	require.NoError(t, err)

	out, err := execute(t, "preset", "list")
	require.NoError(t, err)
	assert.Equal(t, "calm\n", out)

	_, err = execute(t, "preset", "apply", "calm", dst)
	require.NoError(t, err)
	layout, err := store.Load(dst)
	require.NoError(t, err)
	assert.Equal(t, "rgba(1,2,3,1)", layout.BackgroundColor)
	assert.Equal(t, 90, layout.CellSize)
	assert.True(t, layout.Drilldown, "fields outside the preset keep their values")

	_, err = execute(t, "preset", "delete", "calm")
	require.NoError(t, err)
	_, err = execute(t, "preset", "apply", "calm", dst)
	assert.ErrorIs(t, err, presets.ErrNotFound)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "metafolder test\n", out)
}
