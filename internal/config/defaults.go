package config

import (
	_ "embed"
)

//go:embed defaults/ledgewalk.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration
func DefaultConfig() Config {
	enemySensor := SensorConfig{RayLength: 40, Precision: 2}
	birdmanSensor := enemySensor

	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 600,
			Title:  "Ledgewalk",
		},
		Level: LevelConfig{
			Path:         "assets/maps/level_1.json",
			PlayerStartX: 100,
			PlayerStartY: 250,
		},
		Physics: PhysicsConfig{
			Gravity:  0,
			TickRate: 60,
		},
		Sensor: SensorConfig{
			RayLength: 40,
			Precision: 0,
		},
		Entities: EntitiesConfig{
			Player: EntityTuning{
				Speed:        200,
				Gravity:      500,
				JumpVelocity: 250,
				Width:        20,
				Height:       36,
				OffsetX:      7,
				OffsetY:      2,
			},
			Enemy: EntityTuning{
				Speed:          150,
				PatrolVelocity: 30,
				Gravity:        500,
				Width:          20,
				Height:         45,
				OffsetX:        7,
				OffsetY:        20,
				Sensor:         &enemySensor,
			},
			Birdman: EntityTuning{
				Speed:          150,
				PatrolVelocity: 30,
				Gravity:        500,
				Width:          20,
				Height:         45,
				OffsetX:        7,
				OffsetY:        20,
				Sensor:         &birdmanSensor,
			},
		},
		Editor: EditorConfig{
			Enabled:        true,
			StrokeWidth:    2,
			StrokeColor:    "#ffffff",
			HighlightColor: "#f0c23a",
			RayColor:       "#aa00aa",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
