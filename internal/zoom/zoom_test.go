package zoom

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumipallolabs/metafolder/internal/canvas"
	"github.com/lumipallolabs/metafolder/internal/model"
	"github.com/lumipallolabs/metafolder/internal/settings"
)

type fakeStore struct {
	layout settings.Layout
	calls  int
	err    error
}

func (f *fakeStore) Update(_ string, mutate func(*settings.Layout)) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	mutate(&f.layout)
	return nil
}

func setup(positions map[string]model.Point) (*model.Registry, *canvas.Canvas) {
	reg := model.NewRegistry()
	c := canvas.New(60)
	for name, p := range positions {
		item := &model.CanvasItem{Entry: model.Entry{Name: name}, Position: p}
		reg.Put(item)
		c.Render(item, p)
	}
	return reg, c
}

func livePos(t *testing.T, c *canvas.Canvas, name string) model.Point {
	t.Helper()
	r, ok := c.QueryBounds(name)
	require.True(t, ok)
	return r.Origin()
}

func TestPreviewThenBackToBaseline(t *testing.T) {
	reg, c := setup(map[string]model.Point{"a": {X: 40, Y: 40}})
	z := New(&fakeStore{}, "/f")

	require.True(t, z.Preview(reg, c, 150, 150))
	assert.Equal(t, model.Point{X: 60, Y: 60}, livePos(t, c, "a"))

	require.True(t, z.Preview(reg, c, 100, 100))
	assert.Equal(t, model.Point{X: 40, Y: 40}, livePos(t, c, "a"))
}

func TestPreviewSameTargetIsNoop(t *testing.T) {
	reg, c := setup(map[string]model.Point{"a": {X: 40, Y: 40}})
	store := &fakeStore{}
	z := New(store, "/f")

	require.True(t, z.Preview(reg, c, 120, 120))
	before := livePos(t, c, "a")

	assert.False(t, z.Preview(reg, c, 120, 120))
	assert.Equal(t, before, livePos(t, c, "a"))
	assert.Zero(t, store.calls)
}

func TestPreviewRejectsNonPositive(t *testing.T) {
	reg, c := setup(map[string]model.Point{"a": {X: 40, Y: 40}})
	z := New(&fakeStore{}, "/f")

	assert.False(t, z.Preview(reg, c, 0, 100))
	assert.True(t, z.State().Unzoomed())
}

func TestCancelRestoresPositions(t *testing.T) {
	start := map[string]model.Point{
		"a": {X: 40, Y: 40},
		"b": {X: 333, Y: 17},
		"c": {X: 1201, Y: 960},
	}
	reg, c := setup(start)
	store := &fakeStore{layout: settings.Layout{Zoom: true, ZoomX: 180, ZoomY: 70}}
	z := New(store, "/f")

	for _, step := range [][2]int{{150, 150}, {50, 200}, {73, 91}, {200, 50}, {137, 137}} {
		z.Preview(reg, c, step[0], step[1])
	}
	require.NoError(t, z.Cancel(reg, c))

	for name, want := range start {
		got := livePos(t, c, name)
		assert.LessOrEqual(t, math.Abs(got.X-want.X), 1.0, name)
		assert.LessOrEqual(t, math.Abs(got.Y-want.Y), 1.0, name)
	}
	assert.Equal(t, State{}, z.State())
	assert.False(t, store.layout.Zoom)
	assert.Zero(t, store.layout.ZoomX)
	assert.Zero(t, store.layout.ZoomY)
}

func TestCancelWithoutSessionStillPersistsFlags(t *testing.T) {
	reg, c := setup(map[string]model.Point{"a": {X: 40, Y: 40}})
	store := &fakeStore{}
	z := New(store, "/f")

	require.NoError(t, z.Cancel(reg, c))
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, model.Point{X: 40, Y: 40}, livePos(t, c, "a"))
}

func TestCommitRebases(t *testing.T) {
	reg, c := setup(map[string]model.Point{"a": {X: 40, Y: 40}, "b": {X: 100, Y: 10}})
	store := &fakeStore{layout: settings.Default()}
	store.layout.Icons["stale"] = settings.Icon{PositionX: 1, PositionY: 1}
	z := New(store, "/f")

	z.Preview(reg, c, 200, 150)
	require.NoError(t, z.Commit(reg, c))

	assert.Equal(t, State{}, z.State())
	assert.Equal(t, map[string]settings.Icon{
		"a": {PositionX: 80, PositionY: 60},
		"b": {PositionX: 200, PositionY: 15},
	}, store.layout.Icons)

	a, _ := reg.Get("a")
	assert.Equal(t, model.Point{X: 80, Y: 60}, a.Position)

	// canvas stays where it was
	assert.Equal(t, model.Point{X: 80, Y: 60}, livePos(t, c, "a"))

	// the committed layout is the new 100% baseline
	z.Preview(reg, c, 50, 50)
	assert.Equal(t, model.Point{X: 40, Y: 30}, livePos(t, c, "a"))
}

func TestCommitPropagatesError(t *testing.T) {
	reg, c := setup(map[string]model.Point{"a": {X: 40, Y: 40}})
	z := New(&fakeStore{err: errors.New("disk full")}, "/f")

	z.Preview(reg, c, 150, 150)
	assert.Error(t, z.Commit(reg, c))
}

func TestLogicalAndLive(t *testing.T) {
	reg, c := setup(map[string]model.Point{"a": {X: 40, Y: 40}})
	z := New(&fakeStore{}, "/f")

	p := model.Point{X: 30, Y: 30}
	assert.Equal(t, p, z.Logical(p))

	z.Preview(reg, c, 200, 50)
	assert.Equal(t, model.Point{X: 15, Y: 60}, z.Logical(p))
	assert.Equal(t, p, z.Live(z.Logical(p)))
}

func TestRestore(t *testing.T) {
	reg, c := setup(map[string]model.Point{"a": {X: 40, Y: 40}})
	z := New(&fakeStore{}, "/f")

	z.Restore(reg, c, 150, 50)
	assert.Equal(t, State{Active: true, X: 150, Y: 50}, z.State())
	assert.Equal(t, model.Point{X: 60, Y: 20}, livePos(t, c, "a"))
}
