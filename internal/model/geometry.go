package model

import "math"

// Point is a canvas coordinate
type Point struct {
	X, Y float64
}

// Size is a width/height pair
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle on the canvas
type Rect struct {
	X, Y float64
	W, H float64
}

// RectAt builds a rect with its top-left corner at p
func RectAt(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, W: s.W, H: s.H}
}

// Origin returns the top-left corner
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rect dimensions
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive so that abutting cells do not overlap.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// SamplePoints returns the four corners and the center of r, in that order
func (r Rect) SamplePoints() [5]Point {
	return [5]Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X, Y: r.Y + r.H},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X + r.W/2, Y: r.Y + r.H/2},
	}
}

// Round converts a float canvas coordinate to the integer form used on disk
func Round(v float64) int {
	return int(math.Round(v))
}
