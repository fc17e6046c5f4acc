package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := decode("flappy.yaml", DefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML failed to parse: %v", err)
	}
	def := Default()

	if cfg.Field != def.Field || cfg.Bird != def.Bird || cfg.Physics != def.Physics || cfg.Obstacles != def.Obstacles {
		t.Errorf("embedded geometry differs from Default(): %+v", cfg)
	}
	if cfg.Session.SettleDelay != 100*time.Millisecond {
		t.Errorf("settle delay = %v, expected 100ms", cfg.Session.SettleDelay)
	}
	if len(cfg.Progression.CheckInBonus) != 7 || cfg.Progression.CheckInBonus[6] != 500 {
		t.Errorf("check-in bonus table = %v", cfg.Progression.CheckInBonus)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded config should be valid: %v", err)
	}
}

func TestLoadCustomYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "physics:\n  gravity: 0.5\nleaderboard:\n  size: 10\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("gravity = %v, expected 0.5", cfg.Physics.Gravity)
	}
	if cfg.Leaderboard.Size != 10 {
		t.Errorf("leaderboard size = %d, expected 10", cfg.Leaderboard.Size)
	}
	// Unset keys keep defaults
	if cfg.Obstacles.Gap != 150 {
		t.Errorf("gap = %v, expected default 150", cfg.Obstacles.Gap)
	}
}

func TestLoadCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	data := "[obstacles]\ngap = 180.0\n\n[session]\ntick_rate = 30\nsettle_delay = \"250ms\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Obstacles.Gap != 180 {
		t.Errorf("gap = %v, expected 180", cfg.Obstacles.Gap)
	}
	if cfg.Session.TickRate != 30 {
		t.Errorf("tick rate = %d, expected 30", cfg.Session.TickRate)
	}
	if cfg.Session.SettleDelay != 250*time.Millisecond {
		t.Errorf("settle delay = %v, expected 250ms", cfg.Session.SettleDelay)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() should fail for a missing explicit path")
	}
}

func TestLoadRejectsUnplayableGap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := "obstacles:\n  gap: 550\n  min_margin: 50\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should reject a gap that cannot fit the field")
	}
	if !strings.Contains(err.Error(), "does not fit") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateBonusTable(t *testing.T) {
	cfg := Default()
	cfg.Progression.CheckInBonus = []int{50, 40}
	if err := cfg.Validate(); err == nil {
		t.Error("descending bonus table should be invalid")
	}

	cfg.Progression.CheckInBonus = nil
	if err := cfg.Validate(); err == nil {
		t.Error("empty bonus table should be invalid")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		gap    float64
		speed  float64
	}{
		{DifficultyEasy, 180, 2.4},
		{DifficultyNormal, 150, 3},
		{DifficultyHard, 120, 3.9},
		{"", 150, 3},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := Default()
			ApplyPreset(&cfg, tc.preset)
			if diff := cfg.Obstacles.Gap - tc.gap; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("gap = %v, expected %v", cfg.Obstacles.Gap, tc.gap)
			}
			if diff := cfg.Physics.ObstacleSpeed - tc.speed; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("speed = %v, expected %v", cfg.Physics.ObstacleSpeed, tc.speed)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset config should stay valid: %v", err)
			}
		})
	}
}
