// Package physics is the small arcade-style engine the platformer core runs
// on: velocity integration, gravity, world-bounds clamping and axis-separated
// resolution against colliding tiles and immovable bodies.
package physics

import "chosenoffset.com/ledgewalk/internal/core/geom"

// Blocked records which sides of a body touched something during the last step
type Blocked struct {
	Up, Down, Left, Right bool
}

// Body is an axis-aligned physics body. X and Y are the top-left corner.
type Body struct {
	X, Y          float64
	Width, Height float64
	PrevX, PrevY  float64 // Position before the last step
	VX, VY        float64
	GravityY      float64 // Added on top of the world gravity

	Immovable          bool // Never pushed out by other bodies
	CollideWorldBounds bool

	Blocked Blocked
}

// NewBody creates a body at rest with its previous position equal to the current one
func NewBody(x, y, width, height float64) *Body {
	return &Body{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		PrevX:  x,
		PrevY:  y,
	}
}

// HalfHeight returns half the body height
func (b *Body) HalfHeight() float64 {
	return b.Height / 2
}

// Rect returns the body's bounds in world space
func (b *Body) Rect() geom.Rect {
	return geom.Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// Center returns the center of the body
func (b *Body) Center() geom.Point {
	return geom.Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// DeltaX returns the horizontal displacement of the last step
func (b *Body) DeltaX() float64 {
	return b.X - b.PrevX
}

// SetVelocity sets both velocity components
func (b *Body) SetVelocity(vx, vy float64) {
	b.VX = vx
	b.VY = vy
}

// SetVelocityX sets the horizontal velocity
func (b *Body) SetVelocityX(vx float64) {
	b.VX = vx
}

// SetVelocityY sets the vertical velocity
func (b *Body) SetVelocityY(vy float64) {
	b.VY = vy
}

// Reset teleports the body and clears its motion
func (b *Body) Reset(x, y float64) {
	b.X, b.Y = x, y
	b.PrevX, b.PrevY = x, y
	b.VX, b.VY = 0, 0
	b.Blocked = Blocked{}
}

// OnFloor reports whether the body rested on something after the last step
func (b *Body) OnFloor() bool {
	return b.Blocked.Down
}
