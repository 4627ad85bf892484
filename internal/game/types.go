package game

import (
	"image/color"

	"chosenoffset.com/ledgewalk/internal/core/geom"
)

// Camera tracks the viewport position for scrolling large levels.
type Camera struct {
	X, Y float64 // Top-left corner of the viewport in world coords
}

// ToWorld converts a screen position to world space.
func (c Camera) ToWorld(sx, sy int) geom.Point {
	return geom.Point{X: float64(sx) + c.X, Y: float64(sy) + c.Y}
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// Palette holds the colors of the debug visuals.
type Palette struct {
	Stroke      color.RGBA
	Highlight   color.RGBA
	Ray         color.RGBA
	StrokeWidth float32
}
