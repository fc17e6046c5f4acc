package session

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-quest/internal/calendar"
	"github.com/vovakirdan/flappy-quest/internal/config"
	"github.com/vovakirdan/flappy-quest/internal/games/flappy"
	"github.com/vovakirdan/flappy-quest/internal/leaderboard"
	"github.com/vovakirdan/flappy-quest/internal/progression"
	"github.com/vovakirdan/flappy-quest/internal/storage"
)

// Profile bundles everything that belongs to one player.
type Profile struct {
	Name        string // Storage namespace
	Progression *progression.Engine
	Leaderboard *leaderboard.Store
	Controller  *Controller
}

// ProfileOptions configures OpenProfile.
type ProfileOptions struct {
	Clock   calendar.Clock
	Logger  *log.Logger
	Seed    int64
	History progression.HistoryRecorder // Optional
}

// OpenProfile loads a player's progression and leaderboard from kv and
// builds a controller for their rounds.
func OpenProfile(name string, kv storage.KV, cfg config.Config, opts ProfileOptions) (*Profile, error) {
	if opts.Clock == nil {
		opts.Clock = calendar.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	prog := progression.New(kv, progression.Options{
		Rules:   cfg.Progression,
		Clock:   opts.Clock,
		Logger:  opts.Logger,
		History: opts.History,
	})
	board := leaderboard.Open(kv, leaderboard.Options{
		Size:     cfg.Leaderboard.Size,
		SeedDemo: cfg.Leaderboard.SeedDemo,
		Now:      opts.Clock.Now,
		Logger:   opts.Logger,
	})

	ctrl, err := NewController(Options{
		Params:      flappy.ParamsFromConfig(cfg),
		Progression: prog,
		Leaderboard: board,
		Seed:        opts.Seed,
		Logger:      opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Profile{
		Name:        name,
		Progression: prog,
		Leaderboard: board,
		Controller:  ctrl,
	}, nil
}

// OpenStoredProfile opens the profile kept under namespace in store, with
// game history recorded alongside it.
func OpenStoredProfile(store *storage.Store, namespace string, cfg config.Config, opts ProfileOptions) (*Profile, error) {
	bucket := store.Namespace(namespace)
	if opts.History == nil {
		opts.History = bucket
	}
	return OpenProfile(bucket.Name(), bucket, cfg, opts)
}
