package spawn

import (
	"errors"
	"testing"

	"chosenoffset.com/ledgewalk/internal/entity"
)

func testContext() Context {
	tuning := entity.Tuning{Speed: 150, PatrolVelocity: 30, Gravity: 500, Width: 20, Height: 45}
	return Context{
		Tuning: map[entity.Kind]entity.Tuning{
			entity.KindPatrolEnemy: tuning,
			entity.KindBirdman:     tuning,
		},
	}
}

func TestCreateAllInOrder(t *testing.T) {
	r := Default()
	points := []Point{
		{Type: "Birdman", X: 10, Y: 50},
		{Type: "Enemy", X: 30, Y: 50},
		{Type: "Birdman", X: 60, Y: 50},
	}

	entities, err := r.CreateAll(points, testContext())
	if err != nil {
		t.Fatalf("CreateAll failed: %v", err)
	}
	if len(entities) != 3 {
		t.Fatalf("Expected 3 entities, got %d", len(entities))
	}

	expected := []entity.Kind{entity.KindBirdman, entity.KindPatrolEnemy, entity.KindBirdman}
	for i, e := range entities {
		if e.Kind != expected[i] {
			t.Errorf("Entity %d: expected %s, got %s", i, expected[i], e.Kind)
		}
		if got := e.Body.X + e.Body.Width/2; got != points[i].X {
			t.Errorf("Entity %d: expected center x %v, got %v", i, points[i].X, got)
		}
	}
}

func TestUnknownTypeFailsWithoutBuilding(t *testing.T) {
	built := 0
	r := NewRegistry()
	_ = r.Register("Enemy", func(ctx Context, x, y float64) (*entity.Entity, error) {
		built++
		return KindConstructor(entity.KindPatrolEnemy)(ctx, x, y)
	})

	_, err := r.CreateAll([]Point{{Type: "Enemy"}, {Type: "Dragon"}}, testContext())
	if !errors.Is(err, ErrUnknownSpawnType) {
		t.Fatalf("Expected ErrUnknownSpawnType, got %v", err)
	}
	if built != 0 {
		t.Errorf("Expected no entity built before validation, got %d", built)
	}
}

func TestSkippedIndices(t *testing.T) {
	r := Default(WithSkippedIndices(1))
	points := []Point{
		{Type: "Enemy", X: 10},
		{Type: "Unregistered", X: 20}, // Skipped points are never resolved
		{Type: "Birdman", X: 30},
	}

	entities, err := r.CreateAll(points, testContext())
	if err != nil {
		t.Fatalf("CreateAll failed: %v", err)
	}
	if len(entities) != 2 {
		t.Fatalf("Expected 2 entities, got %d", len(entities))
	}
	if entities[1].Kind != entity.KindBirdman {
		t.Errorf("Expected second entity Birdman, got %s", entities[1].Kind)
	}
	if !r.Skipped(1) || r.Skipped(0) {
		t.Error("Unexpected Skipped result")
	}
}

func TestNoSkipByDefault(t *testing.T) {
	r := Default()
	points := []Point{{Type: "Enemy"}, {Type: "Enemy"}, {Type: "Enemy"}}
	entities, err := r.CreateAll(points, testContext())
	if err != nil {
		t.Fatalf("CreateAll failed: %v", err)
	}
	if len(entities) != 3 {
		t.Errorf("Expected every spawn point used, got %d", len(entities))
	}
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	ctor := KindConstructor(entity.KindBirdman)

	if err := r.Register("Birdman", ctor); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register("Birdman", ctor); err == nil {
		t.Error("Expected error for duplicate tag")
	}
	if err := r.Register("", ctor); err == nil {
		t.Error("Expected error for empty tag")
	}
	if err := r.Register("Ghost", nil); err == nil {
		t.Error("Expected error for nil constructor")
	}
	if _, ok := r.Lookup("Birdman"); !ok {
		t.Error("Expected Birdman registered")
	}
	if types := r.Types(); len(types) != 1 || types[0] != "Birdman" {
		t.Errorf("Expected [Birdman], got %v", types)
	}
}

func TestConstructorErrorPropagates(t *testing.T) {
	r := Default()
	_, err := r.CreateAll([]Point{{Type: "Enemy"}}, Context{})
	if err == nil {
		t.Error("Expected error when tuning is missing")
	}
}
