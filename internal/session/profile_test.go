package session

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-quest/internal/calendar"
	"github.com/vovakirdan/flappy-quest/internal/config"
	"github.com/vovakirdan/flappy-quest/internal/storage"
)

func TestStoredProfileEndToEnd(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "flappy.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	cfg := config.Default()
	opts := ProfileOptions{
		Clock:  calendar.NewFixedClock(calendar.NewDate(2024, 3, 4), 12),
		Logger: log.New(io.Discard),
		Seed:   9,
	}

	p, err := OpenStoredProfile(store, "ava", cfg, opts)
	if err != nil {
		t.Fatalf("OpenStoredProfile() failed: %v", err)
	}
	if err := p.Progression.SetPlayerName("Ava"); err != nil {
		t.Fatal(err)
	}

	// Force a scored round: the autopilot plays real obstacles until forfeited
	sum, err := Run(context.Background(), p.Controller, RunOptions{Games: 2, Pilot: Autopilot{}, MaxTicks: 600})
	if err != nil {
		t.Fatal(err)
	}

	games, err := store.Namespace("ava").RecentGames(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 2 {
		t.Fatalf("Expected 2 history records, got %d", len(games))
	}
	if p.Progression.Stats().TotalGames != 2 || p.Progression.Stats().XP < sum.TotalScore*10 {
		t.Errorf("Progression not updated: %+v (summary %+v)", p.Progression.Stats(), sum)
	}

	// Reopening sees the same state; other namespaces stay empty
	again, err := OpenStoredProfile(store, "ava", cfg, opts)
	if err != nil {
		t.Fatal(err)
	}
	if again.Progression.Stats().XP != p.Progression.Stats().XP || again.Progression.PlayerName() != "Ava" {
		t.Error("Profile state did not survive reopening")
	}
	if len(again.Leaderboard.Entries()) != len(p.Leaderboard.Entries()) {
		t.Error("Leaderboard did not survive reopening")
	}

	other, err := OpenStoredProfile(store, "bob", cfg, opts)
	if err != nil {
		t.Fatal(err)
	}
	if other.Progression.Stats().TotalGames != 0 {
		t.Error("Profiles must be isolated by namespace")
	}
}
