package physics

import (
	"chosenoffset.com/ledgewalk/internal/core/geom"
	"chosenoffset.com/ledgewalk/internal/world/tilemap"
)

type axis int

const (
	axisX axis = iota
	axisY
)

// Contact describes a collision reported to a HitFunc
type Contact struct {
	Self  *Body
	Other *Body          // Set for body-body contacts
	Tiles []tilemap.Tile // Set for tile contacts
}

// HitFunc is called once per step for every collider that made contact
type HitFunc func(c Contact)

// Target is something a body can be registered to collide with
type Target interface {
	// separate pushes b out of the target along one axis and reports contact
	separate(b *Body, a axis) Contact
}

type tileTarget struct {
	layer *tilemap.Layer
}

// Tiles returns a collision target for the colliding tiles of a layer
func Tiles(layer *tilemap.Layer) Target {
	return tileTarget{layer: layer}
}

func (t tileTarget) separate(b *Body, a axis) Contact {
	hits := t.layer.TilesWithinRect(b.Rect(), tilemap.QueryOptions{IsColliding: true})
	if len(hits) == 0 {
		return Contact{}
	}

	bounds := make([]geom.Rect, len(hits))
	for i, h := range hits {
		bounds[i] = t.layer.TileRect(h.X, h.Y)
	}
	pushOut(b, bounds, a)
	return Contact{Self: b, Tiles: hits}
}

// separate lets any body act as a target for another
func (o *Body) separate(b *Body, a axis) Contact {
	if o == b || !b.Rect().Overlaps(o.Rect()) {
		return Contact{}
	}
	if !b.Immovable {
		pushOut(b, []geom.Rect{o.Rect()}, a)
	}
	return Contact{Self: b, Other: o}
}

// pushOut moves b against its direction of travel until it clears every rect
func pushOut(b *Body, rects []geom.Rect, a axis) {
	switch a {
	case axisX:
		if b.VX > 0 {
			minX := rects[0].X
			for _, r := range rects[1:] {
				minX = min(minX, r.X)
			}
			b.X = minX - b.Width
			b.Blocked.Right = true
			b.VX = 0
		} else if b.VX < 0 {
			maxX := rects[0].Right()
			for _, r := range rects[1:] {
				maxX = max(maxX, r.Right())
			}
			b.X = maxX
			b.Blocked.Left = true
			b.VX = 0
		}
	case axisY:
		if b.VY > 0 {
			minY := rects[0].Y
			for _, r := range rects[1:] {
				minY = min(minY, r.Y)
			}
			b.Y = minY - b.Height
			b.Blocked.Down = true
			b.VY = 0
		} else if b.VY < 0 {
			maxY := rects[0].Bottom()
			for _, r := range rects[1:] {
				maxY = max(maxY, r.Bottom())
			}
			b.Y = maxY
			b.Blocked.Up = true
			b.VY = 0
		}
	}
}

type collider struct {
	target Target
	onHit  HitFunc
}

// World steps every registered body
type World struct {
	Gravity float64
	Bounds  geom.Rect

	bodies    []*Body
	colliders map[*Body][]collider
}

// NewWorld creates a world with the given gravity and bounds
func NewWorld(gravity float64, bounds geom.Rect) *World {
	return &World{
		Gravity:   gravity,
		Bounds:    bounds,
		colliders: make(map[*Body][]collider),
	}
}

// AddBody registers a body for integration
func (w *World) AddBody(b *Body) {
	w.bodies = append(w.bodies, b)
}

// RemoveBody unregisters a body together with its colliders and every
// collider that targets it
func (w *World) RemoveBody(b *Body) {
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	delete(w.colliders, b)

	// Drop colliders that target b from other bodies
	for owner, list := range w.colliders {
		kept := list[:0]
		for _, c := range list {
			if target, ok := c.target.(*Body); ok && target == b {
				continue
			}
			kept = append(kept, c)
		}
		w.colliders[owner] = kept
	}
}

// Bodies returns the number of registered bodies
func (w *World) Bodies() int {
	return len(w.bodies)
}

// AddCollider makes b collide with target. onHit may be nil.
func (w *World) AddCollider(b *Body, target Target, onHit HitFunc) {
	w.colliders[b] = append(w.colliders[b], collider{target: target, onHit: onHit})
}

// Step advances every body by dt seconds
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		b.PrevX, b.PrevY = b.X, b.Y
		b.Blocked = Blocked{}
		b.VY += (w.Gravity + b.GravityY) * dt

		contacts := make([]Contact, len(w.colliders[b]))

		b.X += b.VX * dt
		w.resolve(b, axisX, contacts)
		b.Y += b.VY * dt
		w.resolve(b, axisY, contacts)

		if b.CollideWorldBounds {
			w.clamp(b)
		}

		for i, c := range w.colliders[b] {
			if contacts[i].Self != nil && c.onHit != nil {
				c.onHit(contacts[i])
			}
		}
	}
}

func (w *World) resolve(b *Body, a axis, contacts []Contact) {
	for i, c := range w.colliders[b] {
		contact := c.target.separate(b, a)
		if contact.Self == nil {
			continue
		}
		contact.Tiles = append(contacts[i].Tiles, contact.Tiles...)
		contacts[i] = contact
	}
}

// clamp keeps b inside the world bounds
func (w *World) clamp(b *Body) {
	if w.Bounds.W <= 0 || w.Bounds.H <= 0 {
		return
	}
	if b.X < w.Bounds.X {
		b.X = w.Bounds.X
		b.VX = 0
		b.Blocked.Left = true
	}
	if b.X+b.Width > w.Bounds.Right() {
		b.X = w.Bounds.Right() - b.Width
		b.VX = 0
		b.Blocked.Right = true
	}
	if b.Y < w.Bounds.Y {
		b.Y = w.Bounds.Y
		b.VY = 0
		b.Blocked.Up = true
	}
	if b.Y+b.Height > w.Bounds.Bottom() {
		b.Y = w.Bounds.Bottom() - b.Height
		b.VY = 0
		b.Blocked.Down = true
	}
}
