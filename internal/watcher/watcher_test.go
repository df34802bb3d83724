package watcher

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "created", EventCreated.String())
	assert.Equal(t, "renamed", EventRenamed.String())
	assert.Equal(t, "moved-out", EventMovedOut.String())
	assert.Equal(t, "unknown", EventType(99).String())
}

func TestEventNames(t *testing.T) {
	ev := Event{Type: EventRenamed, Path: filepath.Join("a", "new.txt"), OldPath: filepath.Join("a", "old.txt")}
	assert.Equal(t, "new.txt", ev.Name())
	assert.Equal(t, "old.txt", ev.OldName())
	assert.Equal(t, "", Event{Path: "x"}.OldName())
}

func TestFilterDropsSidecar(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, filter(Event{Type: EventCreated, Path: filepath.Join(dir, ".metafolder")}))
	assert.False(t, filter(Event{Type: EventRenamed, Path: filepath.Join(dir, "x"), OldPath: filepath.Join(dir, ".metafolder")}))
	assert.True(t, filter(Event{Type: EventCreated, Path: filepath.Join(dir, "notes.txt")}))
}

func TestInFolder(t *testing.T) {
	root := filepath.Join("home", "u", "Desktop")
	assert.True(t, inFolder(root, filepath.Join(root, "a.txt")))
	assert.False(t, inFolder(root, filepath.Join(root, "sub", "a.txt")))
	assert.False(t, inFolder(root, root))
}

func TestWithRenameWindow(t *testing.T) {
	o := buildOptions(nil)
	assert.Equal(t, DefaultRenameWindow, o.renameWindow)

	o = buildOptions([]Option{WithRenameWindow(0)})
	assert.Equal(t, DefaultRenameWindow, o.renameWindow)
}
