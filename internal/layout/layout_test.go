package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumipallolabs/metafolder/internal/canvas"
	"github.com/lumipallolabs/metafolder/internal/model"
	"github.com/lumipallolabs/metafolder/internal/settings"
)

func entries(names ...string) []model.Entry {
	out := make([]model.Entry, 0, len(names))
	for _, n := range names {
		out = append(out, model.Entry{Name: n, Path: "/f/" + n})
	}
	return out
}

func overlaps(a, b model.Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func TestPlaceUnpositionedRestoresKnown(t *testing.T) {
	known := map[string]settings.Icon{"a.txt": {PositionX: 5, PositionY: 5}}
	reg := PlaceUnpositioned(entries("a.txt", "b.txt"), 1500, 60, known)

	a, ok := reg.Get("a.txt")
	require.True(t, ok)
	assert.Equal(t, model.Point{X: 5, Y: 5}, a.Position)
	assert.False(t, a.NewlyAdded)

	b, ok := reg.Get("b.txt")
	require.True(t, ok)
	assert.True(t, b.NewlyAdded)

	aRect := model.Rect{X: 5, Y: 5, W: 60, H: 60}
	bRect := model.RectAt(b.Position, model.Size{W: 60, H: 60})
	assert.False(t, overlaps(aRect, bRect), "b at %v overlaps a", b.Position)
}

func TestPlaceUnpositionedShelfWraps(t *testing.T) {
	// step is 60 + 20 = 80; width 200 fits columns 80 and 160
	reg := PlaceUnpositioned(entries("a", "b", "c", "d"), 200, 60, nil)

	pos := func(n string) model.Point {
		item, _ := reg.Get(n)
		return item.Position
	}
	assert.Equal(t, model.Point{X: 80, Y: 0}, pos("a"))
	assert.Equal(t, model.Point{X: 160, Y: 0}, pos("b"))
	assert.Equal(t, model.Point{X: 0, Y: 120}, pos("c"))
	assert.Equal(t, model.Point{X: 80, Y: 120}, pos("d"))
}

func TestCollidesIgnoresSelf(t *testing.T) {
	c := canvas.New(60)
	c.Render(&model.CanvasItem{Entry: model.Entry{Name: "a"}}, model.Point{X: 0, Y: 0})
	e := New(c)

	r := model.Rect{X: 10, Y: 10, W: 60, H: 60}
	assert.True(t, e.Collides("b", r))
	assert.False(t, e.Collides("a", r))
	assert.False(t, e.Collides("b", model.Rect{X: 200, Y: 0, W: 60, H: 60}))
}

func TestCollidesOutsideCanvasIsFree(t *testing.T) {
	e := New(canvas.New(60))
	assert.False(t, e.Collides("x", model.Rect{X: -100, Y: -100, W: 10, H: 10}))
}

func TestCollidesMissesThinOverlap(t *testing.T) {
	// A cell sitting between the sample points of a large rect is not seen.
	c := canvas.New(10)
	c.Render(&model.CanvasItem{Entry: model.Entry{Name: "thin"}}, model.Point{X: 20, Y: 80})
	e := New(c)

	assert.False(t, e.Collides("", model.Rect{X: 0, Y: 0, W: 200, H: 200}))
}

func TestFindFreeSlot(t *testing.T) {
	c := canvas.New(60)
	e := New(c)

	assert.Equal(t, model.Point{X: 0, Y: 0}, e.FindFreeSlot(60, 1500))

	c.Render(&model.CanvasItem{Entry: model.Entry{Name: "a"}}, model.Point{X: 0, Y: 0})
	c.Render(&model.CanvasItem{Entry: model.Entry{Name: "b"}}, model.Point{X: 80, Y: 0})
	assert.Equal(t, model.Point{X: 160, Y: 0}, e.FindFreeSlot(60, 1500))
}

type alwaysFull struct{}

func (alwaysFull) HitTest(model.Point) model.Hit {
	return model.Hit{Kind: model.HitItem, Name: "wall"}
}

func TestFindFreeSlotTerminates(t *testing.T) {
	p := New(alwaysFull{}).FindFreeSlot(60, 1500)
	assert.Greater(t, p.Y, 0.0)
}
