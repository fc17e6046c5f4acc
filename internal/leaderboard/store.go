package leaderboard

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-quest/internal/metrics"
	"github.com/vovakirdan/flappy-quest/internal/storage"
)

// Key is where the leaderboard is persisted.
const Key = "leaderboard"

var demoNames = []string{
	"FlappyMaster", "BirdWhisperer", "PipeNavigator", "SkyDancer", "WingCommander",
	"AerialAce", "FlightPro", "CloudSurfer", "FeatherFly", "SoaringStar",
	"BirdBrain", "FlappyKing", "AirborneHero", "WingedWarrior", "FlightPath",
}

// Options configures a Store.
type Options struct {
	Size     int
	SeedDemo bool // Seed demo entries when nothing is persisted
	Now      func() time.Time
	Logger   *log.Logger
	Rand     *rand.Rand
}

// Store is a Board persisted to a KV after every submission.
type Store struct {
	kv       storage.KV
	board    *Board
	now      func() time.Time
	logger   *log.Logger
	lastRank int
}

// Open loads the leaderboard from kv. Corrupt data is logged and replaced by
// an empty (or demo) board.
func Open(kv storage.KV, opts Options) *Store {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	s := &Store{kv: kv, now: opts.Now, logger: opts.Logger}

	var entries []Entry
	found, err := storage.LoadJSON(kv, Key, &entries)
	if err != nil {
		s.logger.Warn("discarding unreadable leaderboard", "err", err)
		entries, found = nil, false
	}

	if !found && opts.SeedDemo {
		rng := opts.Rand
		if rng == nil {
			rng = rand.New(rand.NewSource(opts.Now().UnixNano()))
		}
		entries = DemoEntries(rng, opts.Now())
		s.board = NewBoard(opts.Size, entries)
		s.save()
		return s
	}

	s.board = NewBoard(opts.Size, entries)
	return s
}

// DemoEntries returns fifteen named entries with scores 10-59 and levels
// 1-20, submitted at random points during the past week.
func DemoEntries(rng *rand.Rand, now time.Time) []Entry {
	week := int64(7 * 24 * time.Hour)
	entries := make([]Entry, 0, len(demoNames))
	for i, name := range demoNames {
		entries = append(entries, Entry{
			ID:        fmt.Sprintf("player_%d", i),
			Name:      name,
			Score:     rng.Intn(50) + 10,
			Level:     rng.Intn(20) + 1,
			Timestamp: now.Add(-time.Duration(rng.Int63n(week))),
		})
	}
	return entries
}

// Submit records a score and persists the board. It returns the entry's rank;
// ok is false if the submission fell off the end of the board.
func (s *Store) Submit(name string, score, level int) (int, bool, error) {
	_, rank, ok, err := s.board.Submit(name, score, level, s.now())
	if err != nil {
		return 0, false, err
	}
	s.save()

	if ok {
		s.lastRank = rank
		metrics.LeaderboardSubmissions.WithLabelValues("ranked").Inc()
	} else {
		s.lastRank = 0
		metrics.LeaderboardSubmissions.WithLabelValues("dropped").Inc()
	}
	s.logger.Debug("leaderboard submission", "name", name, "score", score, "rank", rank)
	return rank, ok, nil
}

// Entries returns all entries, best first.
func (s *Store) Entries() []Entry {
	return s.board.Entries()
}

// Top returns up to n entries, best first.
func (s *Store) Top(n int) []Entry {
	return s.board.Top(n)
}

// LastRank returns the rank of the most recent submission, or 0 if it was
// dropped or nothing was submitted yet.
func (s *Store) LastRank() int {
	return s.lastRank
}

// Social returns the board summary including the player's last rank.
func (s *Store) Social() (Social, int) {
	return s.board.Social(), s.lastRank
}

func (s *Store) save() {
	if err := storage.SaveJSON(s.kv, Key, s.board.Entries()); err != nil {
		s.logger.Error("failed to persist leaderboard", "err", err)
	}
}
