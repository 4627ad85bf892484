package tilemap

import (
	"errors"
	"math"
	"testing"

	"chosenoffset.com/ledgewalk/internal/core/geom"
)

// newScenarioLayer builds a 10x10 grid of 10px tiles, all empty except (5,5)
func newScenarioLayer(t *testing.T) *Layer {
	t.Helper()
	layer, err := NewLayer("platforms_colliders", 10, 10, 10, 10)
	if err != nil {
		t.Fatalf("Failed to create layer: %v", err)
	}
	if err := layer.PutTile(5, 5, 3, nil); err != nil {
		t.Fatalf("Failed to put tile: %v", err)
	}
	return layer
}

func TestNewLayerRejectsBadDimensions(t *testing.T) {
	if _, err := NewLayer("bad", 0, 10, 10, 10); err == nil {
		t.Error("Expected error for zero width")
	}
	if _, err := NewLayer("bad", 10, 10, 0, 10); err == nil {
		t.Error("Expected error for zero tile width")
	}
}

func TestTilesWithinShapeNonEmpty(t *testing.T) {
	layer := newScenarioLayer(t)

	hits := layer.TilesWithinShape(geom.NewSegment(0, 0, 60, 60), QueryOptions{IsNotEmpty: true})
	if len(hits) != 1 {
		t.Fatalf("Expected exactly 1 tile, got %d: %+v", len(hits), hits)
	}
	if hits[0].X != 5 || hits[0].Y != 5 || hits[0].Index != 3 {
		t.Errorf("Expected tile (5,5) index 3, got (%d,%d) index %d", hits[0].X, hits[0].Y, hits[0].Index)
	}
}

func TestTilesWithinShapeIncludesEmptyByDefault(t *testing.T) {
	layer := newScenarioLayer(t)

	hits := layer.TilesWithinShape(geom.NewSegment(1, 5, 29, 5), QueryOptions{})
	if len(hits) != 3 {
		t.Fatalf("Expected 3 tiles along the row, got %d", len(hits))
	}
	for i, h := range hits {
		if h.X != i || h.Y != 0 {
			t.Errorf("Expected tile (%d,0) at position %d, got (%d,%d)", i, i, h.X, h.Y)
		}
		if !h.IsEmpty() {
			t.Errorf("Expected empty tile at (%d,%d)", h.X, h.Y)
		}
	}
}

func TestTilesWithinShapeDegenerate(t *testing.T) {
	layer := newScenarioLayer(t)

	tests := []struct {
		name string
		seg  geom.Segment
	}{
		{"zero length", geom.NewSegment(55, 55, 55, 55)},
		{"nan", geom.NewSegment(math.NaN(), 0, 60, 60)},
		{"infinite", geom.NewSegment(0, 0, math.Inf(1), math.Inf(1))},
		{"outside grid", geom.NewSegment(-50, -50, -10, -10)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if hits := layer.TilesWithinShape(tc.seg, QueryOptions{}); len(hits) != 0 {
				t.Errorf("Expected no tiles, got %d", len(hits))
			}
		})
	}
}

func TestTilesWithinShapeColliding(t *testing.T) {
	layer := newScenarioLayer(t)
	seg := geom.NewSegment(0, 0, 60, 60)

	if hits := layer.TilesWithinShape(seg, QueryOptions{IsColliding: true}); len(hits) != 0 {
		t.Fatalf("Expected no colliding tiles before marking, got %d", len(hits))
	}

	tile, _ := layer.TileAt(5, 5)
	if err := layer.SetCollision([]Tile{tile}, true); err != nil {
		t.Fatalf("SetCollision failed: %v", err)
	}
	if hits := layer.TilesWithinShape(seg, QueryOptions{IsColliding: true}); len(hits) != 1 {
		t.Errorf("Expected 1 colliding tile, got %d", len(hits))
	}
}

func TestSetCollisionAllOrNothing(t *testing.T) {
	layer := newScenarioLayer(t)
	good, _ := layer.TileAt(5, 5)
	bad := Tile{X: 42, Y: 0}

	err := layer.SetCollision([]Tile{good, bad}, true)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Expected ErrOutOfBounds, got %v", err)
	}
	if tile, _ := layer.TileAt(5, 5); tile.Collides {
		t.Error("Expected no partial update after failed SetCollision")
	}
}

func TestSetCollisionByProperty(t *testing.T) {
	layer, _ := NewLayer("platforms_colliders", 4, 1, 16, 16)
	_ = layer.PutTile(0, 0, 1, map[string]interface{}{"collides": true})
	_ = layer.PutTile(1, 0, 2, map[string]interface{}{"collides": false})
	_ = layer.PutTile(2, 0, 3, nil)

	if n := layer.SetCollisionByProperty("collides", true); n != 1 {
		t.Errorf("Expected 1 tile flagged, got %d", n)
	}
	colliding := layer.CollidingTiles()
	if len(colliding) != 1 || colliding[0].X != 0 {
		t.Errorf("Expected only tile (0,0) colliding, got %+v", colliding)
	}
}

func TestTilesWithinRect(t *testing.T) {
	layer, _ := NewLayer("l", 4, 4, 10, 10)

	// Exactly covers tile (1,1); neighbors only touch edges
	hits := layer.TilesWithinRect(geom.Rect{X: 10, Y: 10, W: 10, H: 10}, QueryOptions{})
	if len(hits) != 1 || hits[0].X != 1 || hits[0].Y != 1 {
		t.Errorf("Expected only tile (1,1), got %+v", hits)
	}

	hits = layer.TilesWithinRect(geom.Rect{X: 5, Y: 5, W: 10, H: 10}, QueryOptions{})
	if len(hits) != 4 {
		t.Errorf("Expected 4 tiles, got %d", len(hits))
	}
}

func TestTileAtWorld(t *testing.T) {
	layer := newScenarioLayer(t)
	tile, ok := layer.TileAtWorld(geom.Point{X: 55, Y: 59.9})
	if !ok || tile.X != 5 || tile.Y != 5 {
		t.Errorf("Expected tile (5,5), got (%d,%d) ok=%v", tile.X, tile.Y, ok)
	}
	if _, ok := layer.TileAtWorld(geom.Point{X: -1, Y: 0}); ok {
		t.Error("Expected no tile outside the grid")
	}
}
