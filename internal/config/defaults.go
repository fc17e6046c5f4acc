package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, used when every file source fails.
func Default() Config {
	return Config{
		Field: FieldConfig{
			Width:  400,
			Height: 600,
		},
		Bird: BirdConfig{
			X:    100,
			Size: 30,
		},
		Physics: PhysicsConfig{
			Gravity:       0.4,
			JumpImpulse:   -8,
			ObstacleSpeed: 3,
		},
		Obstacles: ObstacleConfig{
			Width:         60,
			Gap:           150,
			MinMargin:     50,
			SpawnDistance: 200,
		},
		Progression: ProgressionConfig{
			LevelXP:        100,
			XPPerPoint:     10,
			FriendInviteXP: 200,
			CheckInBonus:   []int{50, 75, 100, 150, 200, 300, 500},
		},
		Leaderboard: LeaderboardConfig{
			Size:     50,
			SeedDemo: false,
		},
		Session: SessionConfig{
			TickRate:    60,
			SettleDelay: 100 * time.Millisecond,
			InviteURL:   "https://flappyquest.app",
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultYAML
}
