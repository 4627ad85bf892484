// Package entity defines the moving things of a level. Every kind shares one
// Entity struct (body, ledge sensor, collider registration); kinds differ only
// in tuning and in the Behavior that steers them and picks their animation.
package entity

import (
	"fmt"

	"chosenoffset.com/ledgewalk/internal/core/geom"
	"chosenoffset.com/ledgewalk/internal/physics"
	"chosenoffset.com/ledgewalk/internal/sensor"
	"chosenoffset.com/ledgewalk/internal/world/tilemap"
)

// Kind tags the entity variant
type Kind int

const (
	KindPlayer Kind = iota
	KindPatrolEnemy
	KindBirdman
)

// String returns a string name for a kind
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindPatrolEnemy:
		return "enemy"
	case KindBirdman:
		return "birdman"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Tuning holds the per-kind movement and hitbox parameters
type Tuning struct {
	Speed          float64
	PatrolVelocity float64
	Gravity        float64
	JumpVelocity   float64
	Width, Height  float64
	OffsetX        float64 // Inset of the body within the sprite frame
	OffsetY        float64
}

// Controls is the per-tick player input
type Controls struct {
	Left, Right, Jump bool
}

// Behavior is the variant-specific part of an entity
type Behavior interface {
	// Steer sets velocities before the physics step
	Steer(e *Entity, in Controls)
	// Animation picks the animation key after sensing
	Animation(e *Entity) string
}

// ColliderRegistrar is the host collision system an entity registers with
type ColliderRegistrar interface {
	AddCollider(b *physics.Body, target physics.Target, onHit physics.HitFunc)
}

// Entity is a moving body with a ledge sensor
type Entity struct {
	ID     int
	Kind   Kind
	Body   *physics.Body
	Tuning Tuning

	Sensor    *sensor.Sensor // Nil until AttachSensor
	Sense     sensor.Result  // Latest probe result; nothing acts on it yet
	Animation string

	behavior  Behavior
	colliders ColliderRegistrar
	destroyed bool
}

// New creates an entity of the given kind standing at (x, y): the body's
// bottom edge is centered on the point.
func New(kind Kind, x, y float64, t Tuning, colliders ColliderRegistrar) (*Entity, error) {
	behavior, ok := behaviors[kind]
	if !ok {
		return nil, fmt.Errorf("no behavior for entity kind %s", kind)
	}
	if t.Width <= 0 || t.Height <= 0 {
		return nil, fmt.Errorf("invalid %s body size: %vx%v", kind, t.Width, t.Height)
	}

	body := physics.NewBody(x-t.Width/2, y-t.Height, t.Width, t.Height)
	body.GravityY = t.Gravity
	body.CollideWorldBounds = true
	body.Immovable = kind != KindPlayer

	e := &Entity{
		Kind:      kind,
		Body:      body,
		Tuning:    t,
		behavior:  behavior,
		colliders: colliders,
	}
	e.Animation = behavior.Animation(e)
	return e, nil
}

// AttachSensor gives the entity its own ledge sensor probing layer
func (e *Entity) AttachSensor(layer *tilemap.Layer, opts sensor.Options) error {
	s, err := sensor.New(layer, opts)
	if err != nil {
		return fmt.Errorf("attach sensor to %s: %w", e.Kind, err)
	}
	e.Sensor = s
	return nil
}

// AddCollider registers a collision between this entity and target with the host system
func (e *Entity) AddCollider(target physics.Target, onHit physics.HitFunc) *Entity {
	if e.colliders != nil {
		e.colliders.AddCollider(e.Body, target, onHit)
	}
	return e
}

// Steer runs the variant's steering; call before the physics step
func (e *Entity) Steer(in Controls) {
	if e.destroyed {
		return
	}
	e.behavior.Steer(e, in)
}

// Sample queries the sensor and picks the animation; call after the physics step
func (e *Entity) Sample() {
	if e.destroyed {
		return
	}
	if e.Sensor != nil {
		e.Sense = e.Sensor.Query(e.Body)
	}
	e.Animation = e.behavior.Animation(e)
}

// SpriteFrame returns the sprite rect in world space. The body sits inset by
// the tuning offset from the frame's top-left corner, padded equally on the
// opposite sides.
func (e *Entity) SpriteFrame() geom.Rect {
	return geom.Rect{
		X: e.Body.X - e.Tuning.OffsetX,
		Y: e.Body.Y - e.Tuning.OffsetY,
		W: e.Body.Width + 2*e.Tuning.OffsetX,
		H: e.Body.Height + 2*e.Tuning.OffsetY,
	}
}

// Destroy marks the entity for removal from the level
func (e *Entity) Destroy() {
	e.destroyed = true
}

// Destroyed reports whether Destroy was called
func (e *Entity) Destroyed() bool {
	return e.destroyed
}
