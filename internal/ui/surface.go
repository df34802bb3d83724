package ui

import (
	"math"
	"strings"

	"github.com/lumipallolabs/metafolder/internal/canvas"
	"github.com/lumipallolabs/metafolder/internal/model"
)

// One terminal cell covers this many canvas units
const (
	pxPerCol = 10
	pxPerRow = 20
)

// paint selects the style of one terminal cell
type paint uint8

const (
	paintBackground paint = iota
	paintCell
	paintFresh
	paintSelected
	paintFound
	paintGhost
)

// viewport maps the visible part of the canvas onto the terminal
type viewport struct {
	originX, originY float64
	cols, rows       int
}

// toScreen returns the terminal cell containing p
func (v viewport) toScreen(p model.Point) (col, row int) {
	return floorDiv(p.X-v.originX, pxPerCol), floorDiv(p.Y-v.originY, pxPerRow)
}

// toCanvas returns the canvas point at the center of a terminal cell
func (v viewport) toCanvas(col, row int) model.Point {
	return model.Point{
		X: v.originX + (float64(col)+0.5)*pxPerCol,
		Y: v.originY + (float64(row)+0.5)*pxPerRow,
	}
}

// reveal scrolls the least amount that brings r fully into view
func (v *viewport) reveal(r model.Rect) {
	w := float64(v.cols * pxPerCol)
	h := float64(v.rows * pxPerRow)
	if r.X < v.originX {
		v.originX = r.X
	} else if r.X+r.W > v.originX+w {
		v.originX = r.X + r.W - w
	}
	if r.Y < v.originY {
		v.originY = r.Y
	} else if r.Y+r.H > v.originY+h {
		v.originY = r.Y + r.H - h
	}
	v.originX = max(0, v.originX)
	v.originY = max(0, v.originY)
}

// scroll moves the view by whole terminal rows
func (v *viewport) scroll(rows int) {
	v.originY = max(0, v.originY+float64(rows*pxPerRow))
}

// clamp keeps the last row of content in view when scrolling down
func (v *viewport) clamp(extent model.Point) {
	v.originY = max(0, min(v.originY, extent.Y-pxPerRow))
}

func floorDiv(v float64, by int) int {
	return int(math.Floor(v / float64(by)))
}

// screen is a grid of runes, each with a paint
type screen struct {
	cols, rows int
	runes      []rune
	paints     []paint
}

func newScreen(cols, rows int) *screen {
	cols, rows = max(cols, 0), max(rows, 0)
	s := &screen{
		cols:   cols,
		rows:   rows,
		runes:  make([]rune, cols*rows),
		paints: make([]paint, cols*rows),
	}
	for i := range s.runes {
		s.runes[i] = ' '
	}
	return s
}

func (s *screen) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < s.cols && row < s.rows
}

func (s *screen) set(col, row int, r rune, p paint) {
	if s.inside(col, row) {
		s.runes[row*s.cols+col] = r
		s.paints[row*s.cols+col] = p
	}
}

func (s *screen) fill(col, row, w, h int, r rune, p paint) {
	for y := row; y < row+h; y++ {
		for x := col; x < col+w; x++ {
			s.set(x, y, r, p)
		}
	}
}

// text writes str from col, clipped to width runes
func (s *screen) text(col, row int, str string, width int, p paint) {
	for i, r := range []rune(str) {
		if i >= width {
			break
		}
		s.set(col+i, row, r, p)
	}
}

func (s *screen) at(col, row int) (rune, paint) {
	if !s.inside(col, row) {
		return 0, paintBackground
	}
	return s.runes[row*s.cols+col], s.paints[row*s.cols+col]
}

// render paints the grid row by row, one style run at a time
func (s *screen) render(pal palette) string {
	var b strings.Builder
	for row := 0; row < s.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		line := s.runes[row*s.cols : (row+1)*s.cols]
		paints := s.paints[row*s.cols : (row+1)*s.cols]
		start := 0
		for col := 1; col <= s.cols; col++ {
			if col == s.cols || paints[col] != paints[start] {
				b.WriteString(pal.style(paints[start]).Render(string(line[start:col])))
				start = col
			}
		}
	}
	return b.String()
}

// cellMarks says how each item should be painted
type cellMarks struct {
	selected string
	fresh    map[string]bool
	found    map[string]bool
}

func (m cellMarks) paintFor(name string) paint {
	switch {
	case name == m.selected:
		return paintSelected
	case m.found[name]:
		return paintFound
	case m.fresh[name]:
		return paintFresh
	default:
		return paintCell
	}
}

// drawCells paints cells in stacking order: a glyph on the first row and
// the name wrapped over the rest. Larger fonts fit fewer characters.
func drawCells(s *screen, vp viewport, cells []canvas.Cell, marks cellMarks, fontScale float64) {
	for _, cell := range cells {
		col, row := vp.toScreen(cell.Pos)
		w := max(1, int(cell.Size.W)/pxPerCol)
		h := max(1, int(cell.Size.H)/pxPerRow)
		p := marks.paintFor(cell.Name)

		s.fill(col, row, w, h, ' ', p)
		s.set(col+w/2, row, glyphFor(cell.IconRef, cell.IsDir), p)

		perLine := w
		if fontScale > 1 {
			perLine = max(1, int(float64(w)/fontScale))
		}
		name := []rune(cell.Name)
		for line := 1; line < h && len(name) > 0; line++ {
			n := min(perLine, len(name))
			s.text(col+(w-n)/2, row+line, string(name[:n]), n, p)
			name = name[n:]
		}
	}
}

// drawGhost outlines where a dragged cell would land
func drawGhost(s *screen, vp viewport, r model.Rect) {
	col, row := vp.toScreen(r.Origin())
	w := max(1, int(r.W)/pxPerCol)
	h := max(1, int(r.H)/pxPerRow)
	for x := col; x < col+w; x++ {
		s.set(x, row, '░', paintGhost)
		s.set(x, row+h-1, '░', paintGhost)
	}
	for y := row; y < row+h; y++ {
		s.set(col, y, '░', paintGhost)
		s.set(col+w-1, y, '░', paintGhost)
	}
}

// glyphFor picks a one-rune icon for a freedesktop icon name
func glyphFor(iconRef string, isDir bool) rune {
	if isDir {
		return '▣'
	}
	switch iconRef {
	case "image-x-generic":
		return '◩'
	case "text-x-generic":
		return '≡'
	case "audio-x-generic":
		return '♪'
	case "video-x-generic":
		return '▶'
	case "package-x-generic":
		return '▤'
	case "application-pdf":
		return '▥'
	case "application-x-executable":
		return '⚙'
	default:
		return '□'
	}
}

// nearestInDirection returns the cell whose center lies closest to from
// within the half-plane (dx, dy) points into
func nearestInDirection(cells []canvas.Cell, from string, dx, dy int) (string, bool) {
	var origin model.Point
	found := false
	for _, c := range cells {
		if c.Name == from {
			origin = center(c.Bounds())
			found = true
			break
		}
	}
	if !found {
		return "", false
	}

	best, bestDist := "", 0.0
	for _, c := range cells {
		if c.Name == from {
			continue
		}
		p := center(c.Bounds())
		ox, oy := p.X-origin.X, p.Y-origin.Y
		along := ox*float64(dx) + oy*float64(dy)
		if along <= 0 {
			continue
		}
		across := ox*float64(dy) - oy*float64(dx)
		// favor cells straight ahead
		dist := along + 2*abs(across)
		if best == "" || dist < bestDist {
			best, bestDist = c.Name, dist
		}
	}
	return best, best != ""
}

func center(r model.Rect) model.Point {
	return model.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
