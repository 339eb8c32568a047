// Package storage provides SQLite-based persistence for level results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for result persistence.
// Every query is scoped to one player; Open returns the store of the
// local player, whose name is empty.
type Store struct {
	db     *sql.DB
	player string
	shared bool // Close leaves db open
}

// Result is one completed run of a level.
type Result struct {
	ID        int64
	RunID     string
	LevelID   string
	Moves     int
	Elapsed   time.Duration
	CreatedAt time.Time
}

// BestEntry is the personal best of a level.
type BestEntry struct {
	LevelID   string
	RunID     string
	Moves     int
	Elapsed   time.Duration
	UpdatedAt time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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
		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL DEFAULT '',
			level_id TEXT NOT NULL,
			moves INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_player_level ON level_results(player, level_id);

		CREATE TABLE IF NOT EXISTS level_best (
			player TEXT NOT NULL DEFAULT '',
			level_id TEXT NOT NULL,
			run_id TEXT NOT NULL,
			moves INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (player, level_id)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// ForPlayer returns a store over the same database scoped to player.
// Closing the returned store does not close the database.
func (s *Store) ForPlayer(player string) *Store {
	return &Store{db: s.db, player: player, shared: true}
}

// Player returns the name the store is scoped to.
func (s *Store) Player() string {
	return s.player
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil && !s.shared {
		return s.db.Close()
	}
	return nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Complete records a finished run and updates the personal best in one
// transaction. improved reports whether the run became the new best.
func (s *Store) Complete(levelID string, moves int, elapsed time.Duration) (res Result, improved bool, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return Result{}, false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err = saveResult(tx, s.player, levelID, moves, elapsed)
	if err != nil {
		return Result{}, false, err
	}
	improved, err = recordBest(tx, s.player, res)
	if err != nil {
		return Result{}, false, err
	}
	if err = tx.Commit(); err != nil {
		return Result{}, false, fmt.Errorf("storage: cannot commit: %w", err)
	}
	return res, improved, nil
}

// SaveResult records a completed run under a fresh run ID.
func (s *Store) SaveResult(levelID string, moves int, elapsed time.Duration) (Result, error) {
	return saveResult(s.db, s.player, levelID, moves, elapsed)
}

func saveResult(q querier, player, levelID string, moves int, elapsed time.Duration) (Result, error) {
	res := Result{
		RunID:   uuid.NewString(),
		LevelID: levelID,
		Moves:   moves,
		Elapsed: elapsed,
	}

	result, err := q.Exec(
		"INSERT INTO level_results (run_id, player, level_id, moves, elapsed_ms) VALUES (?, ?, ?, ?, ?)",
		res.RunID, player, levelID, moves, elapsed.Milliseconds(),
	)
	if err != nil {
		return Result{}, fmt.Errorf("storage: cannot save result: %w", err)
	}

	res.ID, err = result.LastInsertId()
	if err != nil {
		return Result{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return res, nil
}

// RecordBest offers a run as the personal best of its level.
// A level without a best takes the run. Otherwise the run replaces the
// best only if it used no more moves and strictly less time.
func (s *Store) RecordBest(levelID string, moves int, elapsed time.Duration) (bool, error) {
	return recordBest(s.db, s.player, Result{RunID: uuid.NewString(), LevelID: levelID, Moves: moves, Elapsed: elapsed})
}

func recordBest(q querier, player string, res Result) (bool, error) {
	var moves int
	var elapsedMs int64
	err := q.QueryRow(
		"SELECT moves, elapsed_ms FROM level_best WHERE player = ? AND level_id = ?",
		player, res.LevelID,
	).Scan(&moves, &elapsedMs)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = q.Exec(
			"INSERT INTO level_best (player, level_id, run_id, moves, elapsed_ms) VALUES (?, ?, ?, ?, ?)",
			player, res.LevelID, res.RunID, res.Moves, res.Elapsed.Milliseconds(),
		)
		if err != nil {
			return false, fmt.Errorf("storage: cannot insert best: %w", err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("storage: cannot query best: %w", err)
	}

	if !beats(res.Moves, res.Elapsed.Milliseconds(), moves, elapsedMs) {
		return false, nil
	}

	_, err = q.Exec(
		`UPDATE level_best
		 SET run_id = ?, moves = ?, elapsed_ms = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE player = ? AND level_id = ?`,
		res.RunID, res.Moves, res.Elapsed.Milliseconds(), player, res.LevelID,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot update best: %w", err)
	}
	return true, nil
}

// beats is the personal best rule.
func beats(moves int, elapsedMs int64, bestMoves int, bestMs int64) bool {
	return moves <= bestMoves && elapsedMs < bestMs
}

// Best returns the personal best of a level, nil if it was never solved.
func (s *Store) Best(levelID string) (*BestEntry, error) {
	var b BestEntry
	var elapsedMs int64
	var updatedAt any
	err := s.db.QueryRow(
		"SELECT level_id, run_id, moves, elapsed_ms, updated_at FROM level_best WHERE player = ? AND level_id = ?",
		s.player, levelID,
	).Scan(&b.LevelID, &b.RunID, &b.Moves, &elapsedMs, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best: %w", err)
	}

	b.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	b.UpdatedAt = parseTime(updatedAt)
	return &b, nil
}

// BestAll returns the personal best of every solved level, ordered by level ID.
func (s *Store) BestAll() ([]BestEntry, error) {
	rows, err := s.db.Query(
		`SELECT level_id, run_id, moves, elapsed_ms, updated_at
		 FROM level_best
		 WHERE player = ?
		 ORDER BY level_id`,
		s.player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query bests: %w", err)
	}
	defer rows.Close()

	var entries []BestEntry
	for rows.Next() {
		var b BestEntry
		var elapsedMs int64
		var updatedAt any
		if err := rows.Scan(&b.LevelID, &b.RunID, &b.Moves, &elapsedMs, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		b.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		b.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// RecentResults returns the latest runs of a level, newest first.
func (s *Store) RecentResults(levelID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, level_id, moves, elapsed_ms, created_at
		 FROM level_results
		 WHERE player = ? AND level_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		s.player, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var elapsedMs int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.LevelID, &r.Moves, &elapsedMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// CompletedLevels returns the set of level IDs that have a personal best.
func (s *Store) CompletedLevels() (map[string]bool, error) {
	rows, err := s.db.Query("SELECT level_id FROM level_best WHERE player = ?", s.player)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completed levels: %w", err)
	}
	defer rows.Close()

	done := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		done[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return done, nil
}

// ClearLevel deletes every result and the best of a level.
func (s *Store) ClearLevel(levelID string) error {
	if _, err := s.db.Exec("DELETE FROM level_results WHERE player = ? AND level_id = ?", s.player, levelID); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM level_best WHERE player = ? AND level_id = ?", s.player, levelID); err != nil {
		return fmt.Errorf("storage: cannot clear best: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over every run.
type Stats struct {
	Runs         int
	LevelsSolved int
	TotalMoves   int64
	TotalTime    time.Duration
	LastPlayed   time.Time
}

// Stats returns aggregated statistics over every run of the player.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	var totalMs int64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT level_id), COALESCE(SUM(moves), 0),
		        COALESCE(SUM(elapsed_ms), 0), MAX(created_at)
		 FROM level_results
		 WHERE player = ?`,
		s.player,
	).Scan(&stats.Runs, &stats.LevelsSolved, &stats.TotalMoves, &totalMs, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	stats.TotalTime = time.Duration(totalMs) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
