// Package layout places canvas items: restored positions, shelf packing for
// entries that have none, and the sampling collision test used on drop.
package layout

import (
	"github.com/lumipallolabs/metafolder/internal/logging"
	"github.com/lumipallolabs/metafolder/internal/model"
	"github.com/lumipallolabs/metafolder/internal/settings"
)

// maxAttempts bounds the free-slot scan against a hit tester that never
// reports free space
const maxAttempts = 100000

// HitTester resolves what is rendered at a canvas point
type HitTester interface {
	HitTest(p model.Point) model.Hit
}

// Engine computes placements against the current rendering
type Engine struct {
	hits HitTester
}

// New creates a layout engine probing hits
func New(hits HitTester) *Engine {
	return &Engine{hits: hits}
}

// shelf walks candidate slots left to right, top to bottom
type shelf struct {
	col, row     int
	cellSize     int
	desktopWidth int
}

func (s *shelf) advance() {
	s.col += s.cellSize + s.cellSize/3
	if s.col > s.desktopWidth {
		s.col = 0
		s.row += 2 * s.cellSize
	}
}

func (s *shelf) point() model.Point {
	return model.Point{X: float64(s.col), Y: float64(s.row)}
}

// PlaceUnpositioned builds the registry for a freshly opened folder.
// Entries found in known keep their stored coordinates; the rest are
// shelf-packed starting at the largest stored Y and flagged NewlyAdded.
func PlaceUnpositioned(entries []model.Entry, desktopWidth, cellSize int, known map[string]settings.Icon) *model.Registry {
	reg := model.NewRegistry()

	maxY := 0
	var fresh []model.Entry
	for _, e := range entries {
		icon, ok := known[e.Name]
		if !ok {
			fresh = append(fresh, e)
			continue
		}
		reg.Put(&model.CanvasItem{
			Entry:    e,
			Position: model.Point{X: float64(icon.PositionX), Y: float64(icon.PositionY)},
		})
		if icon.PositionY > maxY {
			maxY = icon.PositionY
		}
	}

	model.SortEntries(fresh)

	s := shelf{col: maxY, cellSize: cellSize, desktopWidth: desktopWidth}
	for _, e := range fresh {
		s.advance()
		reg.Put(&model.CanvasItem{
			Entry:      e,
			Position:   s.point(),
			NewlyAdded: true,
		})
	}

	logging.Core.Debugf("placed %d restored and %d new entries", len(entries)-len(fresh), len(fresh))
	return reg
}

// FindFreeSlot returns the first shelf slot, starting at the origin, whose
// cell-sized rect does not collide with anything rendered
func (e *Engine) FindFreeSlot(cellSize, desktopWidth int) model.Point {
	s := shelf{cellSize: cellSize, desktopWidth: desktopWidth}
	size := model.Size{W: float64(cellSize), H: float64(cellSize)}

	for i := 0; i < maxAttempts; i++ {
		if !e.Collides("", model.RectAt(s.point(), size)) {
			return s.point()
		}
		s.advance()
	}

	logging.Core.Warnf("no free slot after %d attempts, using %v", maxAttempts, s.point())
	return s.point()
}

// Collides tests the corners and center of r. A hit on the item called
// name is ignored. Points that resolve to nothing count as free.
//
// Sampling five points can miss long thin items; this is the accepted
// drop behaviour.
func (e *Engine) Collides(name string, r model.Rect) bool {
	for _, p := range r.SamplePoints() {
		hit := e.hits.HitTest(p)
		switch hit.Kind {
		case model.HitItem:
			if hit.Name != name {
				return true
			}
		case model.HitNothing:
			logging.Core.Debugf("hit test at (%.0f,%.0f) resolved to nothing", p.X, p.Y)
		}
	}
	return false
}
