// Package config provides YAML-based game configuration loading and the
// stage progression table.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all tunables for the game.
type FlappyConfig struct {
	Board     BoardConfig    `yaml:"board"`
	Body      BodyConfig     `yaml:"body"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Stages    StageTable     `yaml:"stages"`
	Buttons   ButtonConfig   `yaml:"buttons"`
}

// BoardConfig defines the fixed logical board.
type BoardConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BodyConfig defines the player body.
type BodyConfig struct {
	XDivisor float64 `yaml:"x_divisor"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
}

// PhysicsConfig defines vertical motion.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`
	FlapImpulse float64 `yaml:"flap_impulse"`
}

// ObstacleConfig defines gate halves and their pacing.
type ObstacleConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	SpawnDistance float64 `yaml:"spawn_distance"`
	GapDivisor    float64 `yaml:"gap_divisor"`
}

// ButtonConfig defines the menu and game-over click regions.
type ButtonConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	MenuOffset float64 `yaml:"menu_offset"`
}

// BodyX returns the fixed horizontal position of the body.
func (c FlappyConfig) BodyX() float64 {
	return c.Board.Width / c.Body.XDivisor
}

// Gap returns the vertical size of the opening in every gate.
func (c FlappyConfig) Gap() float64 {
	return c.Board.Height / c.Obstacles.GapDivisor
}

// Validate reports the first nonsensical value in the configuration.
func (c FlappyConfig) Validate() error {
	positive := []struct {
		name string
		val  float64
	}{
		{"board.width", c.Board.Width},
		{"board.height", c.Board.Height},
		{"body.x_divisor", c.Body.XDivisor},
		{"body.width", c.Body.Width},
		{"body.height", c.Body.Height},
		{"physics.gravity", c.Physics.Gravity},
		{"obstacles.width", c.Obstacles.Width},
		{"obstacles.height", c.Obstacles.Height},
		{"obstacles.spawn_distance", c.Obstacles.SpawnDistance},
		{"obstacles.gap_divisor", c.Obstacles.GapDivisor},
		{"stages.base_speed", c.Stages.BaseSpeed},
		{"buttons.width", c.Buttons.Width},
		{"buttons.height", c.Buttons.Height},
	}
	for _, p := range positive {
		if p.val <= 0 {
			return fmt.Errorf("config: %s must be positive, got %v", p.name, p.val)
		}
	}

	if c.Physics.FlapImpulse >= 0 {
		return errors.New("config: physics.flap_impulse must be negative (up)")
	}

	return c.Stages.validate()
}
