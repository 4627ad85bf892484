package level

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"chosenoffset.com/ledgewalk/internal/config"
	"chosenoffset.com/ledgewalk/internal/core/geom"
	"chosenoffset.com/ledgewalk/internal/entity"
	"chosenoffset.com/ledgewalk/internal/physics"
	"chosenoffset.com/ledgewalk/internal/sensor"
	"chosenoffset.com/ledgewalk/internal/spawn"
	"chosenoffset.com/ledgewalk/internal/world/maploader"
	"chosenoffset.com/ledgewalk/internal/world/tilemap"
)

// Assembler builds levels from map data. Every configuration problem
// surfaces here, before the first tick.
type Assembler struct {
	cfg      config.Config
	registry *spawn.Registry
	logger   *log.Logger
}

// NewAssembler creates an assembler. A nil registry uses spawn.Default with
// the configured skipped indices; a nil logger uses the default logger.
func NewAssembler(cfg config.Config, registry *spawn.Registry, logger *log.Logger) *Assembler {
	if registry == nil {
		registry = spawn.Default(spawn.WithSkippedIndices(cfg.Level.SkipSpawnIndices...))
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Assembler{cfg: cfg, registry: registry, logger: logger}
}

// Load reads a map file and builds the level
func (a *Assembler) Load(path string) (*Level, error) {
	m, err := maploader.LoadMap(path)
	if err != nil {
		return nil, err
	}
	return a.Build(m)
}

// Build assembles a level from parsed map data
func (a *Assembler) Build(m *maploader.Map) (*Level, error) {
	layers, err := a.buildLayers(m)
	if err != nil {
		return nil, err
	}

	flagged := layers.PlatformsColliders.SetCollisionByProperty("collides", true)
	a.logger.Info("collision layer ready", "layer", LayerPlatformsColliders, "colliding", flagged)

	bounds := layers.PlatformsColliders.WorldBounds()
	lvl := &Level{
		Map:     m,
		Layers:  layers,
		Physics: physics.NewWorld(a.cfg.Physics.Gravity, bounds),
		Zones:   a.zones(m),
		Bounds:  bounds,
		logger:  a.logger,
	}

	if err := a.createPlayer(lvl); err != nil {
		return nil, err
	}
	if err := a.createEnemies(lvl, m); err != nil {
		return nil, err
	}

	a.logger.Info("level assembled",
		"map", m.Source,
		"size", fmt.Sprintf("%.0fx%.0f", bounds.W, bounds.H),
		"enemies", len(lvl.Enemies))
	return lvl, nil
}

func (a *Assembler) buildLayers(m *maploader.Map) (Layers, error) {
	var layers Layers

	colliders, err := m.BuildLayer(LayerPlatformsColliders)
	if err != nil {
		return layers, fmt.Errorf("collision layer: %w", err)
	}
	layers.PlatformsColliders = colliders

	// Visual layers are optional
	for name, dst := range map[string]**tilemap.Layer{
		LayerEnvironment: &layers.Environment,
		LayerPlatforms:   &layers.Platforms,
	} {
		layer, err := m.BuildLayer(name)
		if errors.Is(err, maploader.ErrLayerNotFound) {
			a.logger.Warn("visual layer missing", "layer", name)
			continue
		}
		if err != nil {
			return layers, err
		}
		*dst = layer
	}

	return layers, nil
}

func (a *Assembler) zones(m *maploader.Map) Zones {
	z := Zones{Start: geom.Point{X: a.cfg.Level.PlayerStartX, Y: a.cfg.Level.PlayerStartY}}

	if start, ok := m.FindObject(LayerPlayerZones, ZoneStart); ok {
		z.Start = geom.Point{X: start.X, Y: start.Y}
	} else {
		a.logger.Warn("no start zone, using configured position", "x", z.Start.X, "y", z.Start.Y)
	}
	if end, ok := m.FindObject(LayerPlayerZones, ZoneEnd); ok {
		z.End = geom.Point{X: end.X, Y: end.Y}
		z.HasEnd = true
	}
	return z
}

// tuning converts config tuning to entity tuning
func tuning(t config.EntityTuning) entity.Tuning {
	return entity.Tuning{
		Speed:          t.Speed,
		PatrolVelocity: t.PatrolVelocity,
		Gravity:        t.Gravity,
		JumpVelocity:   t.JumpVelocity,
		Width:          t.Width,
		Height:         t.Height,
		OffsetX:        t.OffsetX,
		OffsetY:        t.OffsetY,
	}
}

// sensorOptions returns the sensor options for an entity kind
func (a *Assembler) sensorOptions(kind entity.Kind) sensor.Options {
	var t config.EntityTuning
	switch kind {
	case entity.KindPlayer:
		t = a.cfg.Entities.Player
	case entity.KindBirdman:
		t = a.cfg.Entities.Birdman
	default:
		t = a.cfg.Entities.Enemy
	}
	sc := a.cfg.SensorFor(t)
	return sensor.Options{RayLength: sc.RayLength, Precision: sc.Precision}
}

func (a *Assembler) createPlayer(lvl *Level) error {
	player, err := entity.New(entity.KindPlayer, lvl.Zones.Start.X, lvl.Zones.Start.Y,
		tuning(a.cfg.Entities.Player), lvl.Physics)
	if err != nil {
		return fmt.Errorf("create player: %w", err)
	}
	if err := player.AttachSensor(lvl.Layers.PlatformsColliders, a.sensorOptions(entity.KindPlayer)); err != nil {
		return err
	}
	player.AddCollider(physics.Tiles(lvl.Layers.PlatformsColliders), nil)

	lvl.Player = player
	lvl.Add(player)
	return nil
}

func (a *Assembler) createEnemies(lvl *Level, m *maploader.Map) error {
	objects, err := m.Objects(LayerEnemySpawns)
	if errors.Is(err, maploader.ErrLayerNotFound) {
		a.logger.Warn("no enemy spawns in map", "layer", LayerEnemySpawns)
		return nil
	}
	if err != nil {
		return err
	}

	points := make([]spawn.Point, len(objects))
	for i, obj := range objects {
		points[i] = spawn.Point{Type: obj.TypeTag(), X: obj.X, Y: obj.Y}
	}

	ctx := spawn.Context{
		Colliders: lvl.Physics,
		Tuning: map[entity.Kind]entity.Tuning{
			entity.KindPatrolEnemy: tuning(a.cfg.Entities.Enemy),
			entity.KindBirdman:     tuning(a.cfg.Entities.Birdman),
		},
	}
	enemies, err := a.registry.CreateAll(points, ctx)
	if err != nil {
		return fmt.Errorf("spawn enemies: %w", err)
	}

	colliders := physics.Tiles(lvl.Layers.PlatformsColliders)
	for _, enemy := range enemies {
		if err := enemy.AttachSensor(lvl.Layers.PlatformsColliders, a.sensorOptions(enemy.Kind)); err != nil {
			return err
		}
		enemy.AddCollider(colliders, nil).AddCollider(lvl.Player.Body, nil)
		lvl.Player.AddCollider(enemy.Body, nil)

		lvl.Enemies = append(lvl.Enemies, enemy)
		lvl.Add(enemy)
		a.logger.Debug("spawned", "kind", enemy.Kind, "id", enemy.ID, "x", enemy.Body.X, "y", enemy.Body.Y)
	}
	return nil
}
