// Package results records finished matches in a SQLite database.
package results

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Match is one finished game.
type Match struct {
	Label      string
	Seed       int64
	Duration   float64
	Ticks      uint64
	BlueScore  int
	RedScore   int
	BlueDeaths int
	RedDeaths  int
	Winner     string
	MaxLava    float64
}

// Summary aggregates every recorded match.
type Summary struct {
	Matches   int
	BlueWins  int
	RedWins   int
	Draws     int
	AvgBlue   float64
	AvgRed    float64
	AvgDeaths float64
}

// Store wraps the SQLite connection.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("results: open %s: %w", path, err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("results: enable wal: %w", err)
	}
	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS matches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		label TEXT NOT NULL DEFAULT '',
		seed INTEGER NOT NULL,
		duration REAL NOT NULL DEFAULT 0,
		ticks INTEGER NOT NULL DEFAULT 0,
		blue_score INTEGER NOT NULL DEFAULT 0,
		red_score INTEGER NOT NULL DEFAULT 0,
		blue_deaths INTEGER NOT NULL DEFAULT 0,
		red_deaths INTEGER NOT NULL DEFAULT 0,
		winner TEXT NOT NULL DEFAULT 'none',
		max_lava REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_matches_label ON matches(label);
	`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("results: migrate: %w", err)
	}
	return nil
}

// Record inserts m and returns its row id.
func (s *Store) Record(ctx context.Context, m Match) (int64, error) {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO matches (label, seed, duration, ticks, blue_score, red_score, blue_deaths, red_deaths, winner, max_lava)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Label, m.Seed, m.Duration, int64(m.Ticks), m.BlueScore, m.RedScore, m.BlueDeaths, m.RedDeaths, m.Winner, m.MaxLava,
	)
	if err != nil {
		return 0, fmt.Errorf("results: record seed %d: %w", m.Seed, err)
	}
	return res.LastInsertId()
}

// Summary aggregates all recorded matches.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	var avgBlue, avgRed, avgDeaths sql.NullFloat64
	row := s.conn.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN winner = 'blue' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN winner = 'red' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN winner NOT IN ('blue', 'red') THEN 1 ELSE 0 END), 0),
			AVG(blue_score), AVG(red_score), AVG(blue_deaths + red_deaths)
		FROM matches`)
	if err := row.Scan(&sum.Matches, &sum.BlueWins, &sum.RedWins, &sum.Draws, &avgBlue, &avgRed, &avgDeaths); err != nil {
		return Summary{}, fmt.Errorf("results: summary: %w", err)
	}
	sum.AvgBlue = avgBlue.Float64
	sum.AvgRed = avgRed.Float64
	sum.AvgDeaths = avgDeaths.Float64
	return sum, nil
}

// Recent returns up to limit matches, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.conn.QueryContext(ctx, `
		SELECT label, seed, duration, ticks, blue_score, red_score, blue_deaths, red_deaths, winner, max_lava
		FROM matches ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("results: recent: %w", err)
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var m Match
		var ticks int64
		if err := rows.Scan(&m.Label, &m.Seed, &m.Duration, &ticks, &m.BlueScore, &m.RedScore, &m.BlueDeaths, &m.RedDeaths, &m.Winner, &m.MaxLava); err != nil {
			return nil, fmt.Errorf("results: scan: %w", err)
		}
		m.Ticks = uint64(ticks)
		out = append(out, m)
	}
	return out, rows.Err()
}
