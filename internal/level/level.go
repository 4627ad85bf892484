// Package level assembles a playable level from map data and owns the
// per-tick update list. Entities join the list when spawned and leave it when
// destroyed; nothing registers with a global dispatcher.
package level

import (
	"github.com/charmbracelet/log"

	"chosenoffset.com/ledgewalk/internal/core/geom"
	"chosenoffset.com/ledgewalk/internal/entity"
	"chosenoffset.com/ledgewalk/internal/physics"
	"chosenoffset.com/ledgewalk/internal/world/maploader"
	"chosenoffset.com/ledgewalk/internal/world/tilemap"
)

// Layer and object-group names the assembler looks up in map data
const (
	LayerPlatformsColliders = "platforms_colliders"
	LayerEnvironment        = "environment"
	LayerPlatforms          = "platforms"
	LayerPlayerZones        = "player_zones"
	LayerEnemySpawns        = "enemy_spawns"

	ZoneStart = "startZone"
	ZoneEnd   = "endZone"
)

// Layers holds the tile layers of a level. Only PlatformsColliders takes part
// in collision and sensing; the others are visuals and may be nil.
type Layers struct {
	PlatformsColliders *tilemap.Layer
	Environment        *tilemap.Layer
	Platforms          *tilemap.Layer
}

// Zones are the player start and exit markers
type Zones struct {
	Start  geom.Point
	End    geom.Point
	HasEnd bool
}

// Level is an assembled, running level
type Level struct {
	Map     *maploader.Map
	Layers  Layers
	Physics *physics.World
	Player  *entity.Entity
	Enemies []*entity.Entity
	Zones   Zones
	Bounds  geom.Rect // World and camera bounds

	logger  *log.Logger
	updates []*entity.Entity
	nextID  int
	ticks   uint64
}

// Add assigns an ID to e and puts it on the update list and into the physics world
func (l *Level) Add(e *entity.Entity) {
	l.nextID++
	e.ID = l.nextID
	l.updates = append(l.updates, e)
	l.Physics.AddBody(e.Body)
}

// Remove takes e off the update list and out of the physics world
func (l *Level) Remove(e *entity.Entity) {
	for i, other := range l.updates {
		if other == e {
			l.updates = append(l.updates[:i], l.updates[i+1:]...)
			break
		}
	}
	for i, other := range l.Enemies {
		if other == e {
			l.Enemies = append(l.Enemies[:i], l.Enemies[i+1:]...)
			break
		}
	}
	l.Physics.RemoveBody(e.Body)
}

// Entities returns the update list in registration order
func (l *Level) Entities() []*entity.Entity {
	return l.updates
}

// Ticks returns the number of completed ticks
func (l *Level) Ticks() uint64 {
	return l.ticks
}

// Tick advances the level by dt seconds: steering, one physics step, then
// sensing. Edits committed to the collider layer before Tick are visible to
// every sensor query in it.
func (l *Level) Tick(dt float64, in entity.Controls) {
	for _, e := range l.updates {
		e.Steer(in)
	}

	l.Physics.Step(dt)

	var dead []*entity.Entity
	for _, e := range l.updates {
		e.Sample()
		if e.Destroyed() {
			dead = append(dead, e)
		}
	}
	for _, e := range dead {
		l.logger.Debug("entity removed", "id", e.ID, "kind", e.Kind)
		l.Remove(e)
	}

	l.ticks++
}

// ReachedEnd reports whether the player overlaps the end zone marker
func (l *Level) ReachedEnd() bool {
	if !l.Zones.HasEnd || l.Player == nil {
		return false
	}
	return l.Player.Body.Rect().Contains(l.Zones.End)
}
