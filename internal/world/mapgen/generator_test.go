package mapgen

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"chosenoffset.com/ledgewalk/internal/config"
	"chosenoffset.com/ledgewalk/internal/core/geom"
	"chosenoffset.com/ledgewalk/internal/level"
	"chosenoffset.com/ledgewalk/internal/terrain"
	"chosenoffset.com/ledgewalk/internal/world/maploader"
)

func testConfig(seed int64) GeneratorConfig {
	cfg := DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func generate(t *testing.T, cfg GeneratorConfig) (*maploader.MapData, *maploader.Map) {
	t.Helper()
	data, err := NewGenerator(cfg).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Failed to encode map: %v", err)
	}
	m, err := maploader.Parse(raw, "generated")
	if err != nil {
		t.Fatalf("Generated map failed to parse: %v", err)
	}
	return data, m
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, _ := generate(t, testConfig(42))
	b, _ := generate(t, testConfig(42))

	rawA, _ := json.Marshal(a)
	rawB, _ := json.Marshal(b)
	if string(rawA) != string(rawB) {
		t.Error("Expected identical maps for the same seed")
	}
}

func TestGeneratedLevelAssembles(t *testing.T) {
	for _, seed := range []int64{1, 7, 99, 2024} {
		gen := testConfig(seed)
		_, m := generate(t, gen)

		lvl, err := level.NewAssembler(config.DefaultConfig(), nil, log.New(io.Discard)).Build(m)
		if err != nil {
			t.Fatalf("Seed %d: Build failed: %v", seed, err)
		}
		if len(lvl.Enemies) != gen.Enemies {
			t.Errorf("Seed %d: expected %d enemies, got %d", seed, gen.Enemies, len(lvl.Enemies))
		}

		// Floor under the start zone
		layer := lvl.Layers.PlatformsColliders
		below, ok := layer.TileAtWorld(geom.Point{X: lvl.Zones.Start.X, Y: lvl.Zones.Start.Y + 1})
		if !ok || !below.Collides {
			t.Errorf("Seed %d: expected solid floor under the start zone", seed)
		}
		if !lvl.Zones.HasEnd {
			t.Errorf("Seed %d: expected an end zone", seed)
		}
	}
}

func TestBridgesArePassableUntilDrawn(t *testing.T) {
	cfg := testConfig(5)
	cfg.Gaps = 1
	data, m := generate(t, cfg)

	lvl, err := level.NewAssembler(config.DefaultConfig(), nil, log.New(io.Discard)).Build(m)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	layer := lvl.Layers.PlatformsColliders

	groundRow := data.Height - 3
	var bridge []int
	for x := 0; x < data.Width; x++ {
		tile, _ := layer.TileAt(x, groundRow)
		if tile.Index == GIDBridge {
			if tile.Collides {
				t.Fatalf("Expected bridge tile (%d, %d) passable", x, groundRow)
			}
			bridge = append(bridge, x)
		}
	}
	if len(bridge) < 3 {
		t.Fatalf("Expected a bridge of at least 3 tiles, got %d", len(bridge))
	}

	editor, err := terrain.NewEditor(layer, nil, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewEditor failed: %v", err)
	}
	ts := float64(data.TileWidth)
	y := (float64(groundRow) + 0.5) * ts
	if err := editor.BeginDraw(geom.Point{X: float64(bridge[0]) * ts, Y: y}); err != nil {
		t.Fatalf("BeginDraw failed: %v", err)
	}
	if _, err := editor.EndDraw(geom.Point{X: float64(bridge[len(bridge)-1]+1) * ts, Y: y}); err != nil {
		t.Fatalf("EndDraw failed: %v", err)
	}

	for _, x := range bridge {
		if tile, _ := layer.TileAt(x, groundRow); !tile.Collides {
			t.Errorf("Expected bridge tile (%d, %d) solid after drawing", x, groundRow)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*GeneratorConfig)
		wantErr bool
	}{
		{"default", func(c *GeneratorConfig) {}, false},
		{"too narrow", func(c *GeneratorConfig) { c.Width = 20 }, true},
		{"too short", func(c *GeneratorConfig) { c.Height = 8 }, true},
		{"zero tile size", func(c *GeneratorConfig) { c.TileSize = 0 }, true},
		{"negative enemies", func(c *GeneratorConfig) { c.Enemies = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
