// Package zoom rescales every item of a folder view by a percentage
// relative to a baseline, as a live preview that is later committed or
// cancelled.
package zoom

import (
	"github.com/lumipallolabs/metafolder/internal/logging"
	"github.com/lumipallolabs/metafolder/internal/model"
	"github.com/lumipallolabs/metafolder/internal/settings"
)

// Baseline is the percentage meaning "unscaled"
const Baseline = 100

// Surface is the part of the rendering collaborator the transform drives
type Surface interface {
	QueryBounds(name string) (model.Rect, bool)
	Render(item *model.CanvasItem, pos model.Point)
}

// Updater persists a change to a folder's sidecar
type Updater interface {
	Update(folder string, mutate func(*settings.Layout)) error
}

// State is the zoom state of one folder view. X and Y of 0 mean no
// baseline has been established.
type State struct {
	Active bool
	X, Y   int
}

// Unzoomed reports whether no zoom session is in progress
func (s State) Unzoomed() bool {
	return s.X == 0 && s.Y == 0
}

// Transform is the zoom state machine of one folder view
type Transform struct {
	state  State
	store  Updater
	folder string
}

// New creates an unzoomed transform persisting through store
func New(store Updater, folder string) *Transform {
	return &Transform{store: store, folder: folder}
}

// State returns the current zoom state
func (t *Transform) State() State {
	return t.state
}

// Preview rescales every item to the target percentages. It reports
// whether anything moved; a repeated target is a no-op. Nothing is
// persisted.
func (t *Transform) Preview(reg *model.Registry, surf Surface, zx, zy int) bool {
	if zx == t.state.X && zy == t.state.Y {
		return false
	}
	if zx <= 0 || zy <= 0 {
		logging.Core.Warnf("ignoring zoom to %d%%x%d%%", zx, zy)
		return false
	}

	t.state.Active = true
	if t.state.X == 0 || t.state.Y == 0 {
		t.state.X = Baseline
		t.state.Y = Baseline
	}

	for _, item := range reg.Items() {
		live := t.livePosition(item, surf)
		unzoomed := scale(live, Baseline, Baseline, t.state.X, t.state.Y)
		surf.Render(item, scale(unzoomed, zx, zy, Baseline, Baseline))
	}

	logging.Core.Debugf("zoom %d%%x%d%% -> %d%%x%d%%", t.state.X, t.state.Y, zx, zy)
	t.state.X = zx
	t.state.Y = zy
	return true
}

// Restore re-enters a zoom session saved with the folder: items are at
// their logical positions and get scaled to zx, zy
func (t *Transform) Restore(reg *model.Registry, surf Surface, zx, zy int) {
	t.state = State{}
	t.Preview(reg, surf, zx, zy)
}

// Commit makes the on-canvas positions the new logical positions, resets
// the zoom state and persists both
func (t *Transform) Commit(reg *model.Registry, surf Surface) error {
	icons := make(map[string]settings.Icon, reg.Len())
	for _, item := range reg.Items() {
		live := t.livePosition(item, surf)
		item.Position = live
		icons[item.Name()] = settings.Icon{PositionX: model.Round(live.X), PositionY: model.Round(live.Y)}
	}
	t.state = State{}

	logging.Core.Debugf("zoom committed, %d positions rebased", len(icons))
	return t.store.Update(t.folder, func(l *settings.Layout) {
		l.Icons = icons
		resetFlags(l)
	})
}

// Cancel moves every item back to its unzoomed position, resets the zoom
// state and persists the reset flags
func (t *Transform) Cancel(reg *model.Registry, surf Surface) error {
	if !t.state.Unzoomed() {
		for _, item := range reg.Items() {
			live := t.livePosition(item, surf)
			surf.Render(item, scale(live, Baseline, Baseline, t.state.X, t.state.Y))
		}
		logging.Core.Debugf("zoom %d%%x%d%% cancelled", t.state.X, t.state.Y)
	}
	t.state = State{}

	return t.store.Update(t.folder, resetFlags)
}

// Logical converts an on-canvas point to unzoomed coordinates
func (t *Transform) Logical(p model.Point) model.Point {
	if t.state.Unzoomed() {
		return p
	}
	return scale(p, Baseline, Baseline, t.state.X, t.state.Y)
}

// Live converts an unzoomed point to on-canvas coordinates
func (t *Transform) Live(p model.Point) model.Point {
	if t.state.Unzoomed() {
		return p
	}
	return scale(p, t.state.X, t.state.Y, Baseline, Baseline)
}

func (t *Transform) livePosition(item *model.CanvasItem, surf Surface) model.Point {
	if r, ok := surf.QueryBounds(item.Name()); ok {
		return r.Origin()
	}
	return t.Live(item.Position)
}

// scale multiplies p by num/den per axis
func scale(p model.Point, numX, numY, denX, denY int) model.Point {
	return model.Point{
		X: p.X * float64(numX) / float64(denX),
		Y: p.Y * float64(numY) / float64(denY),
	}
}

func resetFlags(l *settings.Layout) {
	l.Zoom = false
	l.ZoomX = 0
	l.ZoomY = 0
}
