// Package config provides YAML/TOML configuration loading for the game
// simulation, the progression layer and the session host.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the full game configuration.
type Config struct {
	Field       FieldConfig       `yaml:"field" toml:"field"`
	Bird        BirdConfig        `yaml:"bird" toml:"bird"`
	Physics     PhysicsConfig     `yaml:"physics" toml:"physics"`
	Obstacles   ObstacleConfig    `yaml:"obstacles" toml:"obstacles"`
	Progression ProgressionConfig `yaml:"progression" toml:"progression"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard" toml:"leaderboard"`
	Session     SessionConfig     `yaml:"session" toml:"session"`
}

// FieldConfig defines the play field in simulation units.
type FieldConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// BirdConfig defines the bird's fixed column and hitbox size.
type BirdConfig struct {
	X    float64 `yaml:"x" toml:"x"`
	Size float64 `yaml:"size" toml:"size"`
}

// PhysicsConfig defines per-tick motion constants.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity" toml:"gravity"`             // Added to velocity every tick
	JumpImpulse   float64 `yaml:"jump_impulse" toml:"jump_impulse"`   // Velocity set on flap (negative = up)
	ObstacleSpeed float64 `yaml:"obstacle_speed" toml:"obstacle_speed"` // Leftward obstacle motion per tick
}

// ObstacleConfig defines obstacle geometry and spawning.
type ObstacleConfig struct {
	Width         float64 `yaml:"width" toml:"width"`
	Gap           float64 `yaml:"gap" toml:"gap"`
	MinMargin     float64 `yaml:"min_margin" toml:"min_margin"`         // Minimum barrier height above and below the gap
	SpawnDistance float64 `yaml:"spawn_distance" toml:"spawn_distance"` // Distance from the right edge before the next spawn
}

// ProgressionConfig defines XP arithmetic and rewards.
type ProgressionConfig struct {
	LevelXP        int   `yaml:"level_xp" toml:"level_xp"`
	XPPerPoint     int   `yaml:"xp_per_point" toml:"xp_per_point"`
	FriendInviteXP int   `yaml:"friend_invite_xp" toml:"friend_invite_xp"`
	CheckInBonus   []int `yaml:"checkin_bonus" toml:"checkin_bonus"` // Ascending, indexed by streak-1
}

// LeaderboardConfig defines the local leaderboard.
type LeaderboardConfig struct {
	Size     int  `yaml:"size" toml:"size"`
	SeedDemo bool `yaml:"seed_demo" toml:"seed_demo"`
}

// SessionConfig defines tick scheduling for the host.
type SessionConfig struct {
	TickRate    int           `yaml:"tick_rate" toml:"tick_rate"`
	SettleDelay time.Duration `yaml:"settle_delay" toml:"settle_delay"`
	InviteURL   string        `yaml:"invite_url" toml:"invite_url"`
}

// Validate checks that the configuration can produce a playable field.
func (c Config) Validate() error {
	var errs []error

	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field must have positive size, got %gx%g", c.Field.Width, c.Field.Height))
	}
	if c.Bird.Size <= 0 {
		errs = append(errs, fmt.Errorf("bird size must be positive, got %g", c.Bird.Size))
	}
	if c.Obstacles.Width <= 0 {
		errs = append(errs, fmt.Errorf("obstacle width must be positive, got %g", c.Obstacles.Width))
	}
	if c.Obstacles.Gap <= c.Bird.Size {
		errs = append(errs, fmt.Errorf("obstacle gap %g must exceed bird size %g", c.Obstacles.Gap, c.Bird.Size))
	}
	if c.Obstacles.MinMargin < 0 {
		errs = append(errs, fmt.Errorf("obstacle margin must not be negative, got %g", c.Obstacles.MinMargin))
	}
	if c.Field.Height-c.Obstacles.Gap-2*c.Obstacles.MinMargin < 0 {
		errs = append(errs, fmt.Errorf("gap %g with margins %g does not fit field height %g",
			c.Obstacles.Gap, c.Obstacles.MinMargin, c.Field.Height))
	}
	if c.Physics.ObstacleSpeed <= 0 {
		errs = append(errs, fmt.Errorf("obstacle speed must be positive, got %g", c.Physics.ObstacleSpeed))
	}
	if c.Progression.LevelXP <= 0 {
		errs = append(errs, fmt.Errorf("level_xp must be positive, got %d", c.Progression.LevelXP))
	}
	if len(c.Progression.CheckInBonus) == 0 {
		errs = append(errs, errors.New("checkin_bonus table must not be empty"))
	}
	for i := 1; i < len(c.Progression.CheckInBonus); i++ {
		if c.Progression.CheckInBonus[i] < c.Progression.CheckInBonus[i-1] {
			errs = append(errs, fmt.Errorf("checkin_bonus must be ascending, index %d drops", i))
			break
		}
	}
	if c.Leaderboard.Size <= 0 {
		errs = append(errs, fmt.Errorf("leaderboard size must be positive, got %d", c.Leaderboard.Size))
	}
	if c.Session.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.Session.TickRate))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ApplyPreset rescales gap and speed for a preset. Values stay constant for
// the whole round; an empty or unknown preset leaves the config unchanged.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.Gap *= 1.2
		cfg.Physics.ObstacleSpeed *= 0.8
	case DifficultyHard:
		cfg.Obstacles.Gap *= 0.8
		cfg.Physics.ObstacleSpeed *= 1.3
	}
}
