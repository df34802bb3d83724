// Package canvas is a geometric rendering surface: it tracks where each
// cell is drawn and answers bounds and hit queries the way a toolkit
// container would.
package canvas

import (
	"slices"
	"sync"

	"github.com/lumipallolabs/metafolder/internal/model"
)

// Cell is what the canvas knows about one drawn item
type Cell struct {
	Name    string
	IsDir   bool
	IconRef string
	Pos     model.Point
	Size    model.Size
}

// Bounds returns the cell rect in canvas coordinates
func (c Cell) Bounds() model.Rect {
	return model.RectAt(c.Pos, c.Size)
}

// Canvas holds drawn cells in stacking order, last drawn on top
type Canvas struct {
	mu       sync.RWMutex
	cells    map[string]*Cell
	order    []string
	cellSize int
}

// New creates an empty canvas whose cells are cellSize square
func New(cellSize int) *Canvas {
	return &Canvas{
		cells:    make(map[string]*Cell),
		cellSize: cellSize,
	}
}

// Render draws item at pos, or moves it there if already drawn.
// A moved cell is raised to the top.
func (c *Canvas) Render(item *model.CanvasItem, pos model.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cell, ok := c.cells[item.Name()]
	if !ok {
		cell = &Cell{Name: item.Name()}
		c.cells[item.Name()] = cell
	} else {
		c.order = slices.DeleteFunc(c.order, func(n string) bool { return n == item.Name() })
	}
	cell.IsDir = item.IsDir
	cell.IconRef = item.IconRef
	cell.Pos = pos
	cell.Size = model.Size{W: float64(c.cellSize), H: float64(c.cellSize)}
	c.order = append(c.order, item.Name())
}

// Rename rekeys a drawn cell without moving it
func (c *Canvas) Rename(oldName, newName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cell, ok := c.cells[oldName]
	if !ok {
		return
	}
	delete(c.cells, oldName)
	cell.Name = newName
	c.cells[newName] = cell
	for i, n := range c.order {
		if n == oldName {
			c.order[i] = newName
		}
	}
}

// Remove erases a cell
func (c *Canvas) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.cells[name]; !ok {
		return
	}
	delete(c.cells, name)
	c.order = slices.DeleteFunc(c.order, func(n string) bool { return n == name })
}

// Clear erases every cell
func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cells = make(map[string]*Cell)
	c.order = nil
}

// SetCellSize resizes every cell in place
func (c *Canvas) SetCellSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cellSize = size
	for _, cell := range c.cells {
		cell.Size = model.Size{W: float64(size), H: float64(size)}
	}
}

// CellSize returns the current cell edge length
func (c *Canvas) CellSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cellSize
}

// QueryBounds returns the drawn rect of name
func (c *Canvas) QueryBounds(name string) (model.Rect, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cell, ok := c.cells[name]
	if !ok {
		return model.Rect{}, false
	}
	return cell.Bounds(), true
}

// HitTest returns the topmost cell containing p. Points left of or above
// the origin are outside the canvas and resolve to nothing.
func (c *Canvas) HitTest(p model.Point) model.Hit {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if p.X < 0 || p.Y < 0 {
		return model.Hit{Kind: model.HitNothing}
	}
	for i := len(c.order) - 1; i >= 0; i-- {
		cell := c.cells[c.order[i]]
		if cell.Bounds().Contains(p) {
			return model.Hit{Kind: model.HitItem, Name: cell.Name}
		}
	}
	return model.Hit{Kind: model.HitBackground}
}

// Cells returns a copy of every cell in stacking order
func (c *Canvas) Cells() []Cell {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Cell, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, *c.cells[name])
	}
	return out
}

// Extent returns the bottom-right corner of the union of all cells
func (c *Canvas) Extent() model.Point {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var ext model.Point
	for _, cell := range c.cells {
		b := cell.Bounds()
		ext.X = max(ext.X, b.X+b.W)
		ext.Y = max(ext.Y, b.Y+b.H)
	}
	return ext
}
