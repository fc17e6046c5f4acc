// Package leaderboard keeps a size-bounded, score-descending list of
// submissions. Entries are immutable once inserted; ties keep the order in
// which they were submitted.
package leaderboard

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultSize is the number of entries kept when no size is configured.
const DefaultSize = 50

// ErrEmptyName is returned when a submission has no display name.
var ErrEmptyName = errors.New("leaderboard: player name is empty")

// Entry is one score submission.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"playerName"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Timestamp time.Time `json:"timestamp"`
}

// Board is the ranked list itself, without persistence.
type Board struct {
	size    int
	entries []Entry
}

// NewBoard creates a board from existing entries. The entries are re-sorted
// and truncated so the ordering holds even for hand-edited data.
func NewBoard(size int, entries []Entry) *Board {
	if size <= 0 {
		size = DefaultSize
	}
	b := &Board{size: size, entries: append([]Entry(nil), entries...)}
	b.normalize()
	return b
}

// Len returns the number of entries.
func (b *Board) Len() int {
	return len(b.entries)
}

// Size returns the maximum number of entries kept.
func (b *Board) Size() int {
	return b.size
}

// Entries returns a copy of all entries, best first.
func (b *Board) Entries() []Entry {
	return append([]Entry(nil), b.entries...)
}

// Top returns up to n entries, best first.
func (b *Board) Top(n int) []Entry {
	if n <= 0 || n > len(b.entries) {
		n = len(b.entries)
	}
	return append([]Entry(nil), b.entries[:n]...)
}

// Submit inserts a new entry and returns its 1-based rank. ok is false when
// the entry did not make the cut.
func (b *Board) Submit(name string, score, level int, at time.Time) (entry Entry, rank int, ok bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, 0, false, ErrEmptyName
	}

	entry = Entry{
		ID:        uuid.NewString(),
		Name:      name,
		Score:     score,
		Level:     level,
		Timestamp: at,
	}
	b.entries = append(b.entries, entry)
	b.normalize()

	for i, e := range b.entries {
		if e.ID == entry.ID {
			return entry, i + 1, true, nil
		}
	}
	return entry, 0, false, nil
}

// RankOf returns the rank of the entry with the given id.
func (b *Board) RankOf(id string) (int, bool) {
	for i, e := range b.entries {
		if e.ID == id {
			return i + 1, true
		}
	}
	return 0, false
}

// normalize sorts by score descending, stable on ties, and truncates.
func (b *Board) normalize() {
	sort.SliceStable(b.entries, func(i, j int) bool {
		return b.entries[i].Score > b.entries[j].Score
	})
	if len(b.entries) > b.size {
		b.entries = b.entries[:b.size]
	}
}

// Social is a summary of the leaderboard shown next to the player's stats.
type Social struct {
	TotalPlayers int
	AverageScore int
	TopScore     int
}

// Social summarizes the board.
func (b *Board) Social() Social {
	if len(b.entries) == 0 {
		return Social{}
	}
	total := 0
	for _, e := range b.entries {
		total += e.Score
	}
	return Social{
		TotalPlayers: len(b.entries),
		AverageScore: total / len(b.entries),
		TopScore:     b.entries[0].Score,
	}
}
