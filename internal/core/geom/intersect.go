package geom

import "math"

const epsilon = 1e-10

// SegmentsIntersect checks whether two closed segments share at least one point.
// Collinear overlapping segments count as intersecting.
func SegmentsIntersect(s1, s2 Segment) bool {
	// s1: P = s1.A + t * d1, s2: Q = s2.A + u * d2, 0 <= t, u <= 1
	d1x, d1y := s1.B.X-s1.A.X, s1.B.Y-s1.A.Y
	d2x, d2y := s2.B.X-s2.A.X, s2.B.Y-s2.A.Y

	diffX := s2.A.X - s1.A.X
	diffY := s2.A.Y - s1.A.Y

	denominator := d1x*d2y - d1y*d2x
	if math.Abs(denominator) < epsilon {
		// Parallel: only an overlap along the same line counts
		if math.Abs(diffX*d1y-diffY*d1x) > epsilon {
			return false
		}
		return collinearOverlap(s1, s2)
	}

	t := (diffX*d2y - diffY*d2x) / denominator
	u := (diffX*d1y - diffY*d1x) / denominator

	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// collinearOverlap checks projected overlap of two segments known to lie on one line
func collinearOverlap(s1, s2 Segment) bool {
	b1, b2 := s1.Bounds(), s2.Bounds()
	return b1.X <= b2.Right() && b2.X <= b1.Right() && b1.Y <= b2.Bottom() && b2.Y <= b1.Bottom()
}

// SegmentIntersectsRect reports whether the segment touches the rectangle.
// An endpoint inside the rectangle or a crossing of any edge counts; edges
// are inclusive, so a segment grazing a corner hits the tile it touches.
func SegmentIntersectsRect(s Segment, r Rect) bool {
	if r.Contains(s.A) || r.Contains(s.B) {
		return true
	}
	for _, edge := range r.Edges() {
		if SegmentsIntersect(s, edge) {
			return true
		}
	}
	return false
}
