// Package config provides YAML-based runtime configuration: window, level,
// physics, per-entity tuning, sensor defaults and the terrain editor.
package config

import (
	"fmt"
	"strings"
)

// Config holds the complete runtime configuration
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Level    LevelConfig    `yaml:"level"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Sensor   SensorConfig   `yaml:"sensor"`
	Entities EntitiesConfig `yaml:"entities"`
	Editor   EditorConfig   `yaml:"editor"`
	Log      LogConfig      `yaml:"log"`
}

// WindowConfig defines the game window
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// LevelConfig points at the map and carries level-specific overrides
type LevelConfig struct {
	Path             string  `yaml:"path"`
	SkipSpawnIndices []int   `yaml:"skip_spawn_indices"` // Indices into enemy_spawns left out
	PlayerStartX     float64 `yaml:"player_start_x"`     // Used when the map has no startZone
	PlayerStartY     float64 `yaml:"player_start_y"`
}

// PhysicsConfig defines world-level physics
type PhysicsConfig struct {
	Gravity  float64 `yaml:"gravity"`   // World gravity, added to per-body gravity
	TickRate int     `yaml:"tick_rate"` // Fixed updates per second
}

// SensorConfig tunes a ledge probe
type SensorConfig struct {
	RayLength float64 `yaml:"ray_length"`
	Precision float64 `yaml:"precision"`
}

// EntityTuning holds the per-kind movement and hitbox parameters
type EntityTuning struct {
	Speed          float64       `yaml:"speed"`
	PatrolVelocity float64       `yaml:"patrol_velocity"`
	Gravity        float64       `yaml:"gravity"`
	JumpVelocity   float64       `yaml:"jump_velocity"`
	Width          float64       `yaml:"width"`
	Height         float64       `yaml:"height"`
	OffsetX        float64       `yaml:"offset_x"`
	OffsetY        float64       `yaml:"offset_y"`
	Sensor         *SensorConfig `yaml:"sensor,omitempty"` // Overrides the global sensor config
}

// EntitiesConfig groups tuning by entity kind
type EntitiesConfig struct {
	Player  EntityTuning `yaml:"player"`
	Enemy   EntityTuning `yaml:"enemy"`
	Birdman EntityTuning `yaml:"birdman"`
}

// EditorConfig controls the runtime terrain editor
type EditorConfig struct {
	Enabled        bool    `yaml:"enabled"`
	StrokeWidth    float64 `yaml:"stroke_width"`
	StrokeColor    string  `yaml:"stroke_color"`
	HighlightColor string  `yaml:"highlight_color"`
	RayColor       string  `yaml:"ray_color"`
}

// LogConfig controls logging
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// SensorFor returns the effective sensor config for an entity tuning
func (c *Config) SensorFor(t EntityTuning) SensorConfig {
	if t.Sensor != nil {
		return *t.Sensor
	}
	return c.Sensor
}

// Validate checks the config for values no component can work with
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Physics.TickRate <= 0 {
		return fmt.Errorf("invalid tick rate: %d", c.Physics.TickRate)
	}
	if err := validateSensor("sensor", c.Sensor); err != nil {
		return err
	}

	kinds := map[string]EntityTuning{
		"player":  c.Entities.Player,
		"enemy":   c.Entities.Enemy,
		"birdman": c.Entities.Birdman,
	}
	for name, t := range kinds {
		if t.Width <= 0 || t.Height <= 0 {
			return fmt.Errorf("invalid %s body size: %vx%v", name, t.Width, t.Height)
		}
		if t.Sensor != nil {
			if err := validateSensor(name+".sensor", *t.Sensor); err != nil {
				return err
			}
		}
	}

	for _, idx := range c.Level.SkipSpawnIndices {
		if idx < 0 {
			return fmt.Errorf("invalid skip_spawn_indices entry: %d", idx)
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}

	return nil
}

func validateSensor(name string, s SensorConfig) error {
	if s.RayLength <= 0 {
		return fmt.Errorf("invalid %s ray_length: %v", name, s.RayLength)
	}
	if s.Precision < 0 {
		return fmt.Errorf("invalid %s precision: %v", name, s.Precision)
	}
	return nil
}
