package entries

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerateDirectChildrenOnly(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "projects", "deep"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "b.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "a.txt"), []byte("world"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "projects", "inner.txt"), []byte("x"), 0644))

	got, err := Enumerate(context.Background(), tmp)
	require.NoError(t, err)

	var names []string
	for _, e := range got {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"a.txt", "b.txt", "projects"}, names)
	assert.True(t, got[2].IsDir)
	assert.Equal(t, DirectoryMime, got[2].MimeType)
	assert.Equal(t, "folder", got[2].IconRef)
}

func TestEnumerateHidesDotfiles(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".metafolder"), []byte("{}"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, ".git"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "visible"), []byte("x"), 0644))

	got, err := Enumerate(context.Background(), tmp)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "visible", got[0].Name)
}

func TestEnumerateRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := Enumerate(context.Background(), path)
	assert.Error(t, err)
}

func TestEnumerateCancelled(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "a"), []byte("x"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Enumerate(ctx, tmp)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text here\n"), 0644))

	e, err := Stat(path)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", e.Name)
	assert.Equal(t, "text/plain", e.MimeType)
	assert.Equal(t, "text-x-generic", e.IconRef)

	_, err = Stat(filepath.Join(t.TempDir(), "gone"))
	assert.Error(t, err)
}

func TestIconFor(t *testing.T) {
	assert.Equal(t, "image-x-generic", IconFor("image/png"))
	assert.Equal(t, "application-pdf", IconFor("application/pdf"))
	assert.Equal(t, "package-x-generic", IconFor("application/zip"))
	assert.Equal(t, "application-x-generic", IconFor("application/octet-stream"))
}

func TestHidden(t *testing.T) {
	assert.True(t, Hidden(".metafolder"))
	assert.False(t, Hidden("file.txt"))
}
