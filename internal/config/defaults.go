package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Board: BoardConfig{
			Width:  360,
			Height: 640,
		},
		Body: BodyConfig{
			XDivisor: 8,
			Width:    51,
			Height:   36,
		},
		Physics: PhysicsConfig{
			Gravity:     0.4,
			FlapImpulse: -8,
		},
		Obstacles: ObstacleConfig{
			Width:         64,
			Height:        512,
			SpawnDistance: 350,
			GapDivisor:    3,
		},
		Stages: StageTable{
			BaseSpeed: 2,
			Levels: []StageLevel{
				{Above: 20, Speed: 3},
				{Above: 50, Speed: 4},
			},
		},
		Buttons: ButtonConfig{
			Width:      100,
			Height:     40,
			MenuOffset: 60,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
