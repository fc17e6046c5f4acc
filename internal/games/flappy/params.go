// Package flappy implements the side-scrolling obstacle-avoidance simulation:
// bird physics, obstacle streaming and terminal-collision detection.
// Every tick takes a World value and returns a new one; nothing here touches
// the terminal, the clock or persistence.
package flappy

import "github.com/vovakirdan/flappy-quest/internal/config"

// Params holds the simulation constants for one round.
type Params struct {
	FieldW, FieldH float64
	BirdX          float64
	BirdSize       float64
	Gravity        float64
	JumpImpulse    float64
	Speed          float64
	ObstacleWidth  float64
	Gap            float64
	MinMargin      float64
	SpawnDistance  float64
}

// ParamsFromConfig extracts simulation constants from the game configuration.
func ParamsFromConfig(cfg config.Config) Params {
	return Params{
		FieldW:        cfg.Field.Width,
		FieldH:        cfg.Field.Height,
		BirdX:         cfg.Bird.X,
		BirdSize:      cfg.Bird.Size,
		Gravity:       cfg.Physics.Gravity,
		JumpImpulse:   cfg.Physics.JumpImpulse,
		Speed:         cfg.Physics.ObstacleSpeed,
		ObstacleWidth: cfg.Obstacles.Width,
		Gap:           cfg.Obstacles.Gap,
		MinMargin:     cfg.Obstacles.MinMargin,
		SpawnDistance: cfg.Obstacles.SpawnDistance,
	}
}

// DefaultParams returns the constants of the default configuration.
func DefaultParams() Params {
	return ParamsFromConfig(config.Default())
}
