// Package geom holds the world-space primitives shared by the sensor, the
// terrain editor and the physics world.
package geom

import "math"

// Point represents a 2D point in world space
type Point struct {
	X, Y float64
}

// Add returns p translated by (dx, dy)
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Segment is a directed line from A to B
type Segment struct {
	A, B Point
}

// NewSegment builds a segment from raw coordinates
func NewSegment(x1, y1, x2, y2 float64) Segment {
	return Segment{A: Point{x1, y1}, B: Point{x2, y2}}
}

// Length returns the euclidean length of the segment
func (s Segment) Length() float64 {
	return math.Hypot(s.B.X-s.A.X, s.B.Y-s.A.Y)
}

// Degenerate reports whether the segment cannot be used as a query shape:
// zero length or any non-finite coordinate.
func (s Segment) Degenerate() bool {
	for _, v := range [...]float64{s.A.X, s.A.Y, s.B.X, s.B.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return s.A == s.B
}

// Bounds returns the axis-aligned rectangle enclosing the segment
func (s Segment) Bounds() Rect {
	minX, maxX := math.Min(s.A.X, s.B.X), math.Max(s.A.X, s.B.X)
	minY, maxY := math.Min(s.A.Y, s.B.Y), math.Max(s.A.Y, s.B.Y)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether p lies inside r, edges included
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Overlaps reports whether two rectangles share interior area.
// Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Edges returns the four sides of r in clockwise order starting at the top
func (r Rect) Edges() [4]Segment {
	tl := Point{r.X, r.Y}
	tr := Point{r.Right(), r.Y}
	br := Point{r.Right(), r.Bottom()}
	bl := Point{r.X, r.Bottom()}
	return [4]Segment{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}}
}
