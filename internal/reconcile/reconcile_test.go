package reconcile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumipallolabs/metafolder/internal/canvas"
	"github.com/lumipallolabs/metafolder/internal/model"
	"github.com/lumipallolabs/metafolder/internal/settings"
	"github.com/lumipallolabs/metafolder/internal/watcher"
	"github.com/lumipallolabs/metafolder/internal/zoom"
)

type fixture struct {
	dir    string
	items  *model.Registry
	canvas *canvas.Canvas
	store  *settings.Store
	zoom   *zoom.Transform
	engine *Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		dir:    t.TempDir(),
		items:  model.NewRegistry(),
		canvas: canvas.New(60),
		store:  settings.NewStore(),
	}
	f.zoom = zoom.New(f.store, f.dir)
	f.engine = New(Config{
		Folder:       f.dir,
		Items:        f.items,
		Surface:      f.canvas,
		Store:        f.store,
		Zoom:         f.zoom,
		Stat:         f.stat,
		CellSize:     60,
		DesktopWidth: 1500,
	})
	return f
}

// stat describes any path that exists in the fixture folder
func (f *fixture) stat(path string) (model.Entry, error) {
	if _, err := os.Stat(path); err != nil {
		return model.Entry{}, err
	}
	return model.Entry{Name: filepath.Base(path), Path: path, MimeType: "text/plain", IconRef: "text-x-generic"}, nil
}

func (f *fixture) touch(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func (f *fixture) place(name string, x, y float64) {
	item := &model.CanvasItem{
		Entry:    model.Entry{Name: name, Path: filepath.Join(f.dir, name)},
		Position: model.Point{X: x, Y: y},
	}
	f.items.Put(item)
	f.canvas.Render(item, item.Position)
}

func (f *fixture) icons(t *testing.T) map[string]settings.Icon {
	t.Helper()
	l, err := f.store.Load(f.dir)
	require.NoError(t, err)
	return l.Icons
}

func TestCreatedPlacesNewlyAddedAndPersists(t *testing.T) {
	f := newFixture(t)
	f.place("a", 0, 0)
	path := f.touch(t, "new.txt")

	require.NoError(t, f.engine.Apply(watcher.Event{Type: watcher.EventCreated, Path: path}))

	item, ok := f.items.Get("new.txt")
	require.True(t, ok)
	assert.True(t, item.NewlyAdded)
	// first free slot after the occupied origin
	assert.Equal(t, model.Point{X: 80, Y: 0}, item.Position)

	bounds, ok := f.canvas.QueryBounds("new.txt")
	require.True(t, ok)
	assert.Equal(t, item.Position, bounds.Origin())

	assert.Equal(t, settings.Icon{PositionX: 80, PositionY: 0}, f.icons(t)["new.txt"])
}

func TestCreatedDroppedWhenStatFails(t *testing.T) {
	f := newFixture(t)

	err := f.engine.Apply(watcher.Event{Type: watcher.EventCreated, Path: filepath.Join(f.dir, "vanished")})
	require.NoError(t, err)
	assert.Equal(t, 0, f.items.Len())
	_, err = os.Stat(f.store.Path(f.dir))
	assert.True(t, os.IsNotExist(err), "nothing should be written")
}

func TestCreatedDuringZoomStoresLogicalPosition(t *testing.T) {
	f := newFixture(t)
	f.place("a", 0, 0)
	f.zoom.Preview(f.items, f.canvas, 50, 50)
	path := f.touch(t, "b")

	require.NoError(t, f.engine.Apply(watcher.Event{Type: watcher.EventCreated, Path: path}))

	item, _ := f.items.Get("b")
	bounds, _ := f.canvas.QueryBounds("b")
	assert.Equal(t, model.Point{X: bounds.X * 2, Y: bounds.Y * 2}, item.Position)
}

func TestDeletedRemovesEverywhere(t *testing.T) {
	f := newFixture(t)
	f.place("report.pdf", 100, 100)
	require.NoError(t, f.store.Update(f.dir, func(l *settings.Layout) {
		l.Icons["report.pdf"] = settings.Icon{PositionX: 100, PositionY: 100}
	}))

	ev := watcher.Event{Type: watcher.EventDeleted, Path: filepath.Join(f.dir, "report.pdf")}
	require.NoError(t, f.engine.Apply(ev))

	_, ok := f.items.Get("report.pdf")
	assert.False(t, ok)
	_, ok = f.canvas.QueryBounds("report.pdf")
	assert.False(t, ok)
	assert.NotContains(t, f.icons(t), "report.pdf")

	// a second delete is harmless
	assert.NoError(t, f.engine.Apply(ev))
	ev.Type = watcher.EventMovedOut
	assert.NoError(t, f.engine.Apply(ev))
}

func TestDeletedDropsStoredPositionOfUndrawnItem(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Update(f.dir, func(l *settings.Layout) {
		l.Icons["ghost.txt"] = settings.Icon{PositionX: 10, PositionY: 10}
		l.Icons["kept.txt"] = settings.Icon{PositionX: 90, PositionY: 10}
	}))

	ev := watcher.Event{Type: watcher.EventDeleted, Path: filepath.Join(f.dir, "ghost.txt")}
	require.NoError(t, f.engine.Apply(ev))

	icons := f.icons(t)
	assert.NotContains(t, icons, "ghost.txt")
	assert.Equal(t, settings.Icon{PositionX: 90, PositionY: 10}, icons["kept.txt"])
}

func TestRenamedKeepsPositionAndFlag(t *testing.T) {
	f := newFixture(t)
	f.place("x.txt", 200, 80)
	item, _ := f.items.Get("x.txt")
	item.NewlyAdded = true
	require.NoError(t, f.store.Update(f.dir, func(l *settings.Layout) {
		l.Icons["x.txt"] = settings.Icon{PositionX: 200, PositionY: 80}
	}))

	require.NoError(t, f.engine.Apply(watcher.Event{
		Type:    watcher.EventRenamed,
		Path:    filepath.Join(f.dir, "y.txt"),
		OldPath: filepath.Join(f.dir, "x.txt"),
	}))

	_, ok := f.items.Get("x.txt")
	assert.False(t, ok)
	renamed, ok := f.items.Get("y.txt")
	require.True(t, ok)
	assert.Equal(t, model.Point{X: 200, Y: 80}, renamed.Position)
	assert.True(t, renamed.NewlyAdded)
	assert.Equal(t, filepath.Join(f.dir, "y.txt"), renamed.Path)

	bounds, ok := f.canvas.QueryBounds("y.txt")
	require.True(t, ok)
	assert.Equal(t, model.Point{X: 200, Y: 80}, bounds.Origin())

	icons := f.icons(t)
	assert.NotContains(t, icons, "x.txt")
	assert.Equal(t, settings.Icon{PositionX: 200, PositionY: 80}, icons["y.txt"])
}

func TestRenamedUnknownOldAddsNewName(t *testing.T) {
	f := newFixture(t)
	path := f.touch(t, "download.pdf")

	require.NoError(t, f.engine.Apply(watcher.Event{
		Type:    watcher.EventRenamed,
		Path:    path,
		OldPath: filepath.Join(f.dir, "download.pdf.part"),
	}))

	item, ok := f.items.Get("download.pdf")
	require.True(t, ok)
	assert.True(t, item.NewlyAdded)
}

func TestRenamedToHiddenRemoves(t *testing.T) {
	f := newFixture(t)
	f.place("a.txt", 0, 0)

	require.NoError(t, f.engine.Apply(watcher.Event{
		Type:    watcher.EventRenamed,
		Path:    filepath.Join(f.dir, ".a.txt"),
		OldPath: filepath.Join(f.dir, "a.txt"),
	}))
	assert.Equal(t, 0, f.items.Len())
}

func TestMovedAndUnknownAreNoOps(t *testing.T) {
	f := newFixture(t)
	f.place("a", 0, 0)

	assert.NoError(t, f.engine.Apply(watcher.Event{Type: watcher.EventMoved, Path: filepath.Join(f.dir, "a")}))
	assert.NoError(t, f.engine.Apply(watcher.Event{Type: watcher.EventType(42), Path: filepath.Join(f.dir, "a")}))

	item, ok := f.items.Get("a")
	require.True(t, ok)
	assert.Equal(t, model.Point{}, item.Position)
}

func TestRescan(t *testing.T) {
	f := newFixture(t)
	f.place("kept", 300, 0)
	f.place("gone", 0, 0)
	keptPath := filepath.Join(f.dir, "kept")
	f.touch(t, "kept")
	newPath := f.touch(t, "arrived")

	err := f.engine.Rescan([]model.Entry{
		{Name: "arrived", Path: newPath},
		{Name: "kept", Path: keptPath, MimeType: "image/png"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"arrived", "kept"}, f.items.Names())
	kept, _ := f.items.Get("kept")
	assert.Equal(t, model.Point{X: 300, Y: 0}, kept.Position)
	assert.Equal(t, "image/png", kept.MimeType)

	arrived, _ := f.items.Get("arrived")
	assert.True(t, arrived.NewlyAdded)
	// the slot freed by "gone" is reused
	assert.Equal(t, model.Point{}, arrived.Position)
}

type failingStore struct{}

func (failingStore) Update(string, func(*settings.Layout)) error {
	return errors.New("disk full")
}

func TestPersistFailureKeepsInMemoryChange(t *testing.T) {
	f := newFixture(t)
	f.engine.store = failingStore{}
	path := f.touch(t, "a")

	err := f.engine.Apply(watcher.Event{Type: watcher.EventCreated, Path: path})
	assert.Error(t, err)
	_, ok := f.items.Get("a")
	assert.True(t, ok)
}
