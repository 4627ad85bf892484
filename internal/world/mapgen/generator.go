// Package mapgen procedurally generates platformer levels in the Tiled JSON
// layout the level assembler reads.
package mapgen

import (
	"fmt"
	"math/rand"
	"time"

	"chosenoffset.com/ledgewalk/internal/world/maploader"
)

// Tile gids of the generated tileset
const (
	GIDSolid    = 1 // Collides
	GIDBridge   = 2 // Drawn but passable until edited
	GIDBackdrop = 3
)

// Layer names written to the map
const (
	layerEnvironment = "environment"
	layerPlatforms   = "platforms"
	layerColliders   = "platforms_colliders"
	layerZones       = "player_zones"
	layerSpawns      = "enemy_spawns"
)

// spawnTypes are the enemy tags the default spawn registry knows
var spawnTypes = []string{"Enemy", "Birdman"}

// GeneratorConfig holds configuration for level generation
type GeneratorConfig struct {
	Width     int   // Level width in tiles
	Height    int   // Level height in tiles
	TileSize  int   // Tile size in pixels
	Seed      int64 // Random seed (0 = use current time)
	Platforms int   // Floating platforms to place
	Gaps      int   // Ground gaps, each spanned by a passable bridge
	Enemies   int   // Enemy spawn points
}

// DefaultConfig returns the config used by the genmap command
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Width:     100,
		Height:    25,
		TileSize:  16,
		Platforms: 5,
		Gaps:      2,
		Enemies:   5,
	}
}

// Validate checks the config for sizes the generator cannot lay out
func (c GeneratorConfig) Validate() error {
	if c.Width < 30 || c.Height < 12 {
		return fmt.Errorf("level too small: %dx%d (minimum 30x12)", c.Width, c.Height)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("invalid tile size: %d", c.TileSize)
	}
	if c.Platforms < 0 || c.Gaps < 0 || c.Enemies < 0 {
		return fmt.Errorf("negative feature count")
	}
	return nil
}

// surface is a walkable run of tiles; y is the row the run sits on
type surface struct {
	x0, x1, y int
}

// Generator handles procedural level generation
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand

	colliders []int
	platforms []int
	backdrop  []int
	surfaces  []surface
	groundRow int
}

// NewGenerator creates a new level generator
func NewGenerator(config GeneratorConfig) *Generator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Generate creates a new level
func (g *Generator) Generate() (*maploader.MapData, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	w, h := g.config.Width, g.config.Height
	g.colliders = make([]int, w*h)
	g.platforms = make([]int, w*h)
	g.backdrop = make([]int, w*h)
	g.surfaces = nil
	g.groundRow = h - 3

	g.placeGround()
	g.placePlatforms()
	g.placeBackdrop()

	t := g.config.TileSize
	zones := []maploader.ObjectData{
		{ID: 1, Name: "startZone", X: float64(3 * t), Y: float64(g.groundRow * t)},
		{ID: 2, Name: "endZone", X: float64((w - 3) * t), Y: float64(g.groundRow*t - 1)},
	}

	return &maploader.MapData{
		Width:      w,
		Height:     h,
		TileWidth:  t,
		TileHeight: t,
		Layers: []maploader.LayerData{
			g.tileLayer(layerEnvironment, g.backdrop),
			g.tileLayer(layerPlatforms, g.platforms),
			g.tileLayer(layerColliders, g.colliders),
			{Name: layerZones, Type: "objectgroup", Visible: true, Objects: zones},
			{Name: layerSpawns, Type: "objectgroup", Visible: true, Objects: g.placeSpawns(len(zones) + 1)},
		},
		Tilesets: []maploader.TilesetData{{
			FirstGID:  1,
			Name:      "generated",
			TileCount: 3,
			Tiles: []maploader.TileData{
				{ID: GIDSolid - 1, Properties: []maploader.PropertyData{{Name: "collides", Type: "bool", Value: true}}},
				{ID: GIDBridge - 1, Properties: []maploader.PropertyData{{Name: "collides", Type: "bool", Value: false}}},
			},
		}},
	}, nil
}

func (g *Generator) tileLayer(name string, data []int) maploader.LayerData {
	return maploader.LayerData{
		Name:    name,
		Type:    "tilelayer",
		Width:   g.config.Width,
		Height:  g.config.Height,
		Visible: true,
		Data:    data,
	}
}

func (g *Generator) set(grid []int, x, y, gid int) {
	grid[y*g.config.Width+x] = gid
}

func (g *Generator) at(grid []int, x, y int) int {
	return grid[y*g.config.Width+x]
}

// placeGround lays the floor and cuts gaps spanned by bridges. The first and
// last 10 columns stay solid so both zones have floor under them.
func (g *Generator) placeGround() {
	w, h := g.config.Width, g.config.Height
	gap := make([]bool, w)

	for i := 0; i < g.config.Gaps; i++ {
		for attempt := 0; attempt < 20; attempt++ {
			size := 3 + g.rng.Intn(4)
			x := 10 + g.rng.Intn(w-20-size)
			if gap[x-1] || gap[x+size] {
				continue
			}
			for dx := 0; dx < size; dx++ {
				gap[x+dx] = true
			}
			break
		}
	}

	runStart := -1
	for x := 0; x <= w; x++ {
		if x < w && !gap[x] {
			if runStart < 0 {
				runStart = x
			}
			for y := g.groundRow; y < h; y++ {
				g.set(g.colliders, x, y, GIDSolid)
				g.set(g.platforms, x, y, GIDSolid)
			}
			continue
		}
		if runStart >= 0 {
			g.surfaces = append(g.surfaces, surface{x0: runStart, x1: x - 1, y: g.groundRow})
			runStart = -1
		}
		if x < w {
			g.set(g.colliders, x, g.groundRow, GIDBridge)
			g.set(g.platforms, x, g.groundRow, GIDBridge)
		}
	}
}

// placePlatforms adds floating platforms with a clear row above and below
func (g *Generator) placePlatforms() {
	w := g.config.Width
	minRow := max(2, g.groundRow-9)

	for i := 0; i < g.config.Platforms; i++ {
		for attempt := 0; attempt < 20; attempt++ {
			length := 4 + g.rng.Intn(6)
			x := 4 + g.rng.Intn(w-8-length)
			y := minRow + g.rng.Intn(g.groundRow-3-minRow+1)

			if !g.clear(x-1, y-1, x+length, y+1) {
				continue
			}
			for dx := 0; dx < length; dx++ {
				g.set(g.colliders, x+dx, y, GIDSolid)
				g.set(g.platforms, x+dx, y, GIDSolid)
			}
			g.surfaces = append(g.surfaces, surface{x0: x, x1: x + length - 1, y: y})
			break
		}
	}
}

// clear reports whether the collider grid is empty in the inclusive cell range
func (g *Generator) clear(x0, y0, x1, y1 int) bool {
	for y := max(y0, 0); y <= min(y1, g.config.Height-1); y++ {
		for x := max(x0, 0); x <= min(x1, g.config.Width-1); x++ {
			if g.at(g.colliders, x, y) != 0 {
				return false
			}
		}
	}
	return true
}

// placeBackdrop fills rolling hills behind the ground
func (g *Generator) placeBackdrop() {
	height := 3
	for x := 0; x < g.config.Width; x++ {
		height = min(max(height+g.rng.Intn(3)-1, 1), 6)
		for y := g.groundRow - height; y < g.groundRow; y++ {
			g.set(g.backdrop, x, y, GIDBackdrop)
		}
	}
}

// placeSpawns puts enemies on random surfaces, away from the start zone
func (g *Generator) placeSpawns(firstID int) []maploader.ObjectData {
	var candidates []surface
	for _, s := range g.surfaces {
		if s.x1 >= 10 {
			s.x0 = max(s.x0, 10)
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	t := float64(g.config.TileSize)
	spawns := make([]maploader.ObjectData, 0, g.config.Enemies)
	for i := 0; i < g.config.Enemies; i++ {
		s := candidates[g.rng.Intn(len(candidates))]
		x := s.x0 + g.rng.Intn(s.x1-s.x0+1)
		spawns = append(spawns, maploader.ObjectData{
			ID:   firstID + i,
			Type: spawnTypes[g.rng.Intn(len(spawnTypes))],
			X:    (float64(x) + 0.5) * t,
			Y:    float64(s.y) * t,
		})
	}
	return spawns
}
