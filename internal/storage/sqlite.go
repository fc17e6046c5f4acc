// Package storage provides SQLite-based persistence for player profiles and
// game history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultNamespace is the profile used by the local terminal client.
const DefaultNamespace = "local"

// timeLayout is how timestamps are written to text columns.
const timeLayout = time.RFC3339Nano

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// GameRecord is one finished round in a player's history.
type GameRecord struct {
	ID       int64
	Player   string
	Score    int
	XP       int // XP gained by the round, task rewards included
	Level    int // Level after the round was settled
	PlayedAt time.Time
}

// Summary contains aggregated statistics over a player's history.
type Summary struct {
	Player     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows a single writer; serialize access instead of retrying on SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			namespace TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (namespace, key)
		);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			xp INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_games_player ON games(player);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(player, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Namespace returns a view of the store scoped to one player profile.
func (s *Store) Namespace(ns string) *Bucket {
	if ns == "" {
		ns = DefaultNamespace
	}
	return &Bucket{store: s, ns: ns}
}

// Namespaces lists every profile that has stored data.
func (s *Store) Namespaces() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT namespace FROM kv ORDER BY namespace`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list namespaces: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var ns string
		if err := rows.Scan(&ns); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, ns)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Bucket is a KV and game history bound to a single namespace.
type Bucket struct {
	store *Store
	ns    string
}

// Name returns the bucket's namespace.
func (b *Bucket) Name() string {
	return b.ns
}

// Get implements KV.
func (b *Bucket) Get(key string) (string, bool, error) {
	var value string
	err := b.store.db.QueryRow(
		"SELECT value FROM kv WHERE namespace = ? AND key = ?",
		b.ns, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %s/%s: %w", b.ns, key, err)
	}
	return value, true, nil
}

// Set implements KV.
func (b *Bucket) Set(key, value string) error {
	_, err := b.store.db.Exec(
		`INSERT INTO kv (namespace, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		b.ns, key, value, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s/%s: %w", b.ns, key, err)
	}
	return nil
}

// Delete removes key from the bucket. Missing keys are not an error.
func (b *Bucket) Delete(key string) error {
	_, err := b.store.db.Exec("DELETE FROM kv WHERE namespace = ? AND key = ?", b.ns, key)
	if err != nil {
		return fmt.Errorf("storage: cannot delete %s/%s: %w", b.ns, key, err)
	}
	return nil
}

// RecordGame appends a finished round to the bucket's history.
// Returns the ID of the inserted record.
func (b *Bucket) RecordGame(rec GameRecord) (int64, error) {
	if rec.PlayedAt.IsZero() {
		rec.PlayedAt = time.Now()
	}
	result, err := b.store.db.Exec(
		"INSERT INTO games (player, score, xp, level, created_at) VALUES (?, ?, ?, ?, ?)",
		b.ns, rec.Score, rec.XP, rec.Level, rec.PlayedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentGames retrieves the most recent rounds, newest first.
func (b *Bucket) RecentGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return b.queryGames(
		`SELECT id, player, score, xp, level, created_at
		 FROM games
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		b.ns, limit,
	)
}

// TopGames retrieves the highest-scoring rounds.
// Equal scores keep the order they were played in.
func (b *Bucket) TopGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return b.queryGames(
		`SELECT id, player, score, xp, level, created_at
		 FROM games
		 WHERE player = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		b.ns, limit,
	)
}

func (b *Bucket) queryGames(query string, args ...any) ([]GameRecord, error) {
	rows, err := b.store.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var r GameRecord
		var playedAt string
		if err := rows.Scan(&r.ID, &r.Player, &r.Score, &r.XP, &r.Level, &playedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.PlayedAt = parseTime(playedAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Summary retrieves aggregated statistics over the bucket's history.
func (b *Bucket) Summary() (*Summary, error) {
	sum := &Summary{Player: b.ns}

	var lastPlayed sql.NullString
	err := b.store.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0),
		        (SELECT created_at FROM games WHERE player = ? ORDER BY id DESC LIMIT 1)
		 FROM games WHERE player = ?`,
		b.ns, b.ns,
	).Scan(&sum.GamesCount, &sum.HighScore, &sum.AvgScore, &sum.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get summary: %w", err)
	}
	if lastPlayed.Valid {
		sum.LastPlayed = parseTime(lastPlayed.String)
	}

	return sum, nil
}

// ClearGames deletes the bucket's history.
func (b *Bucket) ClearGames() error {
	_, err := b.store.db.Exec("DELETE FROM games WHERE player = ?", b.ns)
	if err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	return nil
}

// parseTime reads a timestamp column; unparseable values become the zero time.
func parseTime(v string) time.Time {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

var _ KV = (*Bucket)(nil)
