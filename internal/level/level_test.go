package level

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"chosenoffset.com/ledgewalk/internal/config"
	"chosenoffset.com/ledgewalk/internal/entity"
	"chosenoffset.com/ledgewalk/internal/spawn"
	"chosenoffset.com/ledgewalk/internal/world/maploader"
)

const (
	mapW, mapH = 20, 10
	tileSize   = 16
	groundRow  = 8
	groundY    = groundRow * tileSize
)

// testMapData builds a 20x10 map with a solid floor on row 8
func testMapData(spawns []maploader.ObjectData, withStart bool) *maploader.MapData {
	ground := make([]int, mapW*mapH)
	for x := 0; x < mapW; x++ {
		ground[groundRow*mapW+x] = 1
	}

	zones := []maploader.ObjectData{{ID: 1, Name: ZoneEnd, X: 300, Y: groundY - 1}}
	if withStart {
		zones = append(zones, maploader.ObjectData{ID: 2, Name: ZoneStart, X: 40, Y: groundY})
	}

	return &maploader.MapData{
		Width: mapW, Height: mapH, TileWidth: tileSize, TileHeight: tileSize,
		Layers: []maploader.LayerData{
			{Name: LayerPlatformsColliders, Type: "tilelayer", Width: mapW, Height: mapH, Data: ground},
			{Name: LayerPlatforms, Type: "tilelayer", Width: mapW, Height: mapH, Data: ground},
			{Name: LayerPlayerZones, Type: "objectgroup", Objects: zones},
			{Name: LayerEnemySpawns, Type: "objectgroup", Objects: spawns},
		},
		Tilesets: []maploader.TilesetData{{
			FirstGID: 1, Name: "tiles", TileCount: 1,
			Tiles: []maploader.TileData{{ID: 0, Properties: []maploader.PropertyData{
				{Name: "collides", Type: "bool", Value: true},
			}}},
		}},
	}
}

func defaultSpawns() []maploader.ObjectData {
	return []maploader.ObjectData{
		{ID: 10, Type: "Enemy", X: 100, Y: groundY},
		{ID: 11, Class: "Birdman", X: 180, Y: groundY},
		{ID: 12, Type: "Enemy", X: 240, Y: groundY},
	}
}

func writeMap(t *testing.T, data *maploader.MapData) string {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Failed to encode map: %v", err)
	}
	path := filepath.Join(t.TempDir(), "level.json")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("Failed to write map: %v", err)
	}
	return path
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestLoadAssemblesLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	path := writeMap(t, testMapData(defaultSpawns(), true))

	lvl, err := NewAssembler(cfg, nil, quietLogger()).Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := len(lvl.Layers.PlatformsColliders.CollidingTiles()); got != mapW {
		t.Errorf("Expected %d colliding tiles, got %d", mapW, got)
	}
	if lvl.Layers.Platforms == nil {
		t.Error("Expected platforms layer built")
	}
	if lvl.Layers.Environment != nil {
		t.Error("Expected missing environment layer to stay nil")
	}

	if lvl.Bounds.W != mapW*tileSize || lvl.Bounds.H != mapH*tileSize {
		t.Errorf("Expected bounds %dx%d, got %vx%v", mapW*tileSize, mapH*tileSize, lvl.Bounds.W, lvl.Bounds.H)
	}

	body := lvl.Player.Body
	if body.X+body.Width/2 != 40 || body.Y+body.Height != groundY {
		t.Errorf("Expected player standing at start zone, got (%v, %v)", body.X+body.Width/2, body.Y+body.Height)
	}
	if lvl.Player.Sensor == nil {
		t.Error("Expected player sensor attached")
	}

	expected := []entity.Kind{entity.KindPatrolEnemy, entity.KindBirdman, entity.KindPatrolEnemy}
	if len(lvl.Enemies) != len(expected) {
		t.Fatalf("Expected %d enemies, got %d", len(expected), len(lvl.Enemies))
	}
	for i, e := range lvl.Enemies {
		if e.Kind != expected[i] {
			t.Errorf("Enemy %d: expected %s, got %s", i, expected[i], e.Kind)
		}
		if e.Sensor == nil || e.Sensor.Options().Precision != 2 {
			t.Errorf("Enemy %d: expected sensor with precision 2", i)
		}
	}

	if got := len(lvl.Entities()); got != 4 {
		t.Errorf("Expected 4 entities on the update list, got %d", got)
	}
	if !lvl.Zones.HasEnd {
		t.Error("Expected end zone recorded")
	}
}

func TestSkippedSpawnIndices(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Level.SkipSpawnIndices = []int{1}
	path := writeMap(t, testMapData(defaultSpawns(), true))

	lvl, err := NewAssembler(cfg, nil, quietLogger()).Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(lvl.Enemies) != 2 {
		t.Fatalf("Expected 2 enemies, got %d", len(lvl.Enemies))
	}
	for _, e := range lvl.Enemies {
		if e.Kind == entity.KindBirdman {
			t.Error("Expected skipped birdman to be left out")
		}
	}
}

func TestMissingStartZoneUsesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Level.PlayerStartX = 60
	cfg.Level.PlayerStartY = groundY

	m, err := maploader.Parse(mustJSON(t, testMapData(nil, false)), "inline")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	lvl, err := NewAssembler(cfg, nil, quietLogger()).Build(m)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got := lvl.Player.Body.X + lvl.Player.Body.Width/2; got != 60 {
		t.Errorf("Expected player at configured x 60, got %v", got)
	}
	if len(lvl.Enemies) != 0 {
		t.Errorf("Expected no enemies, got %d", len(lvl.Enemies))
	}
}

func TestMissingCollisionLayer(t *testing.T) {
	data := testMapData(nil, true)
	data.Layers = data.Layers[1:]

	_, err := NewAssembler(config.DefaultConfig(), nil, quietLogger()).Load(writeMap(t, data))
	if !errors.Is(err, maploader.ErrLayerNotFound) {
		t.Errorf("Expected ErrLayerNotFound, got %v", err)
	}
}

func TestUnknownSpawnTypeFailsLoad(t *testing.T) {
	spawns := append(defaultSpawns(), maploader.ObjectData{ID: 20, Type: "Dragon", X: 10, Y: groundY})

	_, err := NewAssembler(config.DefaultConfig(), nil, quietLogger()).Load(writeMap(t, testMapData(spawns, true)))
	if !errors.Is(err, spawn.ErrUnknownSpawnType) {
		t.Errorf("Expected ErrUnknownSpawnType, got %v", err)
	}
}

func TestTickSettlesAndSenses(t *testing.T) {
	lvl, err := NewAssembler(config.DefaultConfig(), nil, quietLogger()).
		Load(writeMap(t, testMapData(defaultSpawns(), true)))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for i := 0; i < 30; i++ {
		lvl.Tick(1.0/60, entity.Controls{})
	}

	if lvl.Ticks() != 30 {
		t.Errorf("Expected 30 ticks, got %d", lvl.Ticks())
	}
	if !lvl.Player.Body.OnFloor() {
		t.Error("Expected player resting on the floor")
	}
	if lvl.Player.Animation != "idle" {
		t.Errorf("Expected player idle, got %q", lvl.Player.Animation)
	}

	for i, e := range lvl.Enemies {
		if e.Body.Y+e.Body.Height != groundY {
			t.Errorf("Enemy %d: expected feet at %d, got %v", i, groundY, e.Body.Y+e.Body.Height)
		}
		if e.Body.VX != 30 {
			t.Errorf("Enemy %d: expected patrol velocity 30, got %v", i, e.Body.VX)
		}
		if !e.Sense.HasHit {
			t.Errorf("Enemy %d: expected probe to hit the floor", i)
		}
	}
}

func TestTickRemovesDestroyed(t *testing.T) {
	lvl, err := NewAssembler(config.DefaultConfig(), nil, quietLogger()).
		Load(writeMap(t, testMapData(defaultSpawns(), true)))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	victim := lvl.Enemies[0]
	victim.Destroy()
	lvl.Tick(1.0/60, entity.Controls{})

	if len(lvl.Enemies) != 2 {
		t.Errorf("Expected 2 enemies left, got %d", len(lvl.Enemies))
	}
	for _, e := range lvl.Entities() {
		if e == victim {
			t.Error("Expected destroyed entity off the update list")
		}
	}
	if lvl.Physics.Bodies() != 3 {
		t.Errorf("Expected 3 bodies in physics world, got %d", lvl.Physics.Bodies())
	}
}

func TestReachedEnd(t *testing.T) {
	lvl, err := NewAssembler(config.DefaultConfig(), nil, quietLogger()).
		Load(writeMap(t, testMapData(nil, true)))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if lvl.ReachedEnd() {
		t.Error("Expected player away from the end zone")
	}

	body := lvl.Player.Body
	body.Reset(300-body.Width/2, groundY-body.Height)
	if !lvl.ReachedEnd() {
		t.Error("Expected player at the end zone")
	}
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	return raw
}
