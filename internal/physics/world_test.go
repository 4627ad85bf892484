package physics

import (
	"testing"

	"chosenoffset.com/ledgewalk/internal/core/geom"
	"chosenoffset.com/ledgewalk/internal/world/tilemap"
)

// floorLayer is a 10x10 grid of 10px tiles with a colliding floor on row 8
func floorLayer(t *testing.T) *tilemap.Layer {
	t.Helper()
	layer, err := tilemap.NewLayer("platforms_colliders", 10, 10, 10, 10)
	if err != nil {
		t.Fatalf("Failed to create layer: %v", err)
	}
	var floor []tilemap.Tile
	for x := 0; x < 10; x++ {
		if err := layer.PutTile(x, 8, 1, nil); err != nil {
			t.Fatalf("Failed to put tile: %v", err)
		}
		floor = append(floor, tilemap.Tile{X: x, Y: 8})
	}
	if err := layer.SetCollision(floor, true); err != nil {
		t.Fatalf("Failed to set collision: %v", err)
	}
	return layer
}

func TestStepAppliesGravityAndVelocity(t *testing.T) {
	w := NewWorld(100, geom.Rect{})
	b := NewBody(0, 0, 10, 10)
	b.VX = 20
	w.AddBody(b)

	w.Step(0.5)

	if b.PrevX != 0 || b.PrevY != 0 {
		t.Errorf("Expected previous position (0,0), got (%v,%v)", b.PrevX, b.PrevY)
	}
	if b.X != 10 {
		t.Errorf("Expected X 10, got %v", b.X)
	}
	if b.VY != 50 || b.Y != 25 {
		t.Errorf("Expected VY 50 and Y 25, got VY %v Y %v", b.VY, b.Y)
	}
	if b.DeltaX() != 10 {
		t.Errorf("Expected DeltaX 10, got %v", b.DeltaX())
	}
}

func TestBodyLandsOnCollidingTiles(t *testing.T) {
	layer := floorLayer(t)
	w := NewWorld(500, layer.WorldBounds())
	b := NewBody(20, 60, 10, 15)
	w.AddBody(b)

	hits := 0
	w.AddCollider(b, Tiles(layer), func(c Contact) {
		hits++
		if len(c.Tiles) == 0 {
			t.Error("Expected tiles in contact")
		}
	})

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60.0)
	}

	if b.Y+b.Height != 80 {
		t.Errorf("Expected body resting on y=80, got bottom %v", b.Y+b.Height)
	}
	if !b.OnFloor() {
		t.Error("Expected body blocked below")
	}
	if hits == 0 {
		t.Error("Expected onHit to be called")
	}
}

func TestImmovableBodyIsNotPushed(t *testing.T) {
	w := NewWorld(0, geom.Rect{})
	wall := NewBody(20, 0, 10, 10)
	wall.Immovable = true
	mover := NewBody(5, 0, 10, 10)
	mover.VX = 600
	w.AddBody(mover)
	w.AddBody(wall)

	var other *Body
	w.AddCollider(mover, wall, func(c Contact) { other = c.Other })

	w.Step(1.0 / 60.0)

	if mover.X != 10 {
		t.Errorf("Expected mover stopped at X 10, got %v", mover.X)
	}
	if !mover.Blocked.Right {
		t.Error("Expected mover blocked on the right")
	}
	if other != wall {
		t.Error("Expected contact with the wall body")
	}
	if wall.X != 20 {
		t.Errorf("Expected wall to stay at 20, got %v", wall.X)
	}
}

func TestWorldBoundsClamp(t *testing.T) {
	w := NewWorld(0, geom.Rect{W: 100, H: 100})
	b := NewBody(95, 50, 10, 10)
	b.CollideWorldBounds = true
	w.AddBody(b)

	w.Step(0.1)

	if b.X != 90 || !b.Blocked.Right {
		t.Errorf("Expected clamp to X 90 with right block, got X %v blocked %+v", b.X, b.Blocked)
	}
}

func TestRemoveBodyDropsColliders(t *testing.T) {
	w := NewWorld(0, geom.Rect{})
	a := NewBody(0, 0, 1, 1)
	b := NewBody(0, 0, 1, 1)
	w.AddBody(a)
	w.AddBody(b)
	w.AddCollider(a, b, nil)

	w.RemoveBody(a)

	if w.Bodies() != 1 {
		t.Errorf("Expected 1 body, got %d", w.Bodies())
	}
	if len(w.colliders[a]) != 0 {
		t.Error("Expected colliders removed with the body")
	}
}

func TestRemoveBodyDropsCollidersTargetingIt(t *testing.T) {
	w := NewWorld(0, geom.Rect{})
	a := NewBody(0, 0, 1, 1)
	b := NewBody(0, 0, 1, 1)
	w.AddBody(a)
	w.AddBody(b)
	w.AddCollider(a, b, nil)

	w.RemoveBody(b)

	if len(w.colliders[a]) != 0 {
		t.Errorf("Expected collider targeting removed body dropped, got %d", len(w.colliders[a]))
	}
}
