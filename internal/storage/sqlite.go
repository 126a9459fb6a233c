// Package storage provides score store backends for snake.
// The sqlite backend uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies; the memory backend keeps everything in process.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage/migrations"
)

const (
	defaultTopLimit = 10
	timeLayout      = "2006-01-02 15:04:05"
)

// SQLiteStore persists best scores and session history in a SQLite file.
type SQLiteStore struct {
	db *sql.DB

	// writeMu serializes read-modify-write of the high score record within
	// the process; immediate transactions cover other processes.
	writeMu sync.Mutex
}

var _ registry.Store = (*SQLiteStore)(nil)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*SQLiteStore, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Several SSH sessions may write at once.
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if err := migrations.Run(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Best returns the best score for d. A missing or corrupt record reads as 0.
func (s *SQLiteStore) Best(d snake.Difficulty) (int, error) {
	scores, err := s.loadHighScores(s.db)
	if err != nil {
		return 0, err
	}
	return scores[d], nil
}

// SetBest stores score as the best for d unless a higher best is already
// stored. Other difficulties are left intact.
func (s *SQLiteStore) SetBest(d snake.Difficulty, score int) error {
	if !d.Valid() {
		return fmt.Errorf("storage: %w: %q", snake.ErrUnknownDifficulty, d)
	}
	if score < 0 {
		return fmt.Errorf("storage: negative score %d", score)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.withTx(func(tx *sql.Tx) error {
		scores, err := s.loadHighScores(tx)
		if err != nil {
			return err
		}
		if score <= scores[d] {
			return nil
		}
		scores[d] = score
		return s.saveHighScores(tx, scores)
	})
}

// RecordResult appends a finished session to the history.
func (s *SQLiteStore) RecordResult(r snake.Result) error {
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO results (session_id, difficulty, score, cause, ticks, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.SessionID, string(r.Difficulty), r.Score, r.Cause.String(), int64(r.Ticks),
		createdAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record result: %w", err)
	}
	return nil
}

// TopResults retrieves the top N results for d, ordered by score descending.
// Ties go to the earlier session.
func (s *SQLiteStore) TopResults(d snake.Difficulty, limit int) ([]snake.Result, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}

	rows, err := s.db.Query(
		`SELECT session_id, difficulty, score, cause, ticks, created_at
		 FROM results
		 WHERE difficulty = ?
		 ORDER BY score DESC, created_at ASC, id ASC
		 LIMIT ?`,
		string(d), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []snake.Result
	for rows.Next() {
		var (
			r          snake.Result
			difficulty string
			cause      string
			ticks      int64
			createdAt  any
		)
		if err := rows.Scan(&r.SessionID, &difficulty, &r.Score, &cause, &ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Difficulty = snake.Difficulty(difficulty)
		r.Cause = parseCause(cause)
		r.Ticks = uint64(ticks)
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// Stats retrieves aggregated statistics for d.
func (s *SQLiteStore) Stats(d snake.Difficulty) (registry.Stats, error) {
	stats := registry.Stats{Difficulty: d}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(ticks), 0), MAX(created_at)
		 FROM results WHERE difficulty = ?`,
		string(d),
	).Scan(&stats.Games, &stats.HighScore, &stats.AvgScore, &stats.TotalTicks, &lastPlayed)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// Clear deletes the best score and history for d, or for every difficulty
// when d is empty.
func (s *SQLiteStore) Clear(d snake.Difficulty) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.withTx(func(tx *sql.Tx) error {
		if d == "" {
			if _, err := tx.Exec("DELETE FROM results"); err != nil {
				return fmt.Errorf("storage: cannot clear results: %w", err)
			}
			if _, err := tx.Exec("DELETE FROM kv WHERE key = ?", highScoresKey); err != nil {
				return fmt.Errorf("storage: cannot clear best scores: %w", err)
			}
			return nil
		}

		if _, err := tx.Exec("DELETE FROM results WHERE difficulty = ?", string(d)); err != nil {
			return fmt.Errorf("storage: cannot clear results: %w", err)
		}
		scores, err := s.loadHighScores(tx)
		if err != nil {
			return err
		}
		scores[d] = 0
		return s.saveHighScores(tx, scores)
	})
}

// queryer is the subset of *sql.DB and *sql.Tx used for reads.
type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

func (s *SQLiteStore) loadHighScores(q queryer) (highScores, error) {
	var value string
	err := q.QueryRow("SELECT value FROM kv WHERE key = ?", highScoresKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return decodeHighScores(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best scores: %w", err)
	}
	return decodeHighScores([]byte(value)), nil
}

func (s *SQLiteStore) saveHighScores(tx *sql.Tx, scores highScores) error {
	data, err := scores.encode()
	if err != nil {
		return fmt.Errorf("storage: cannot encode best scores: %w", err)
	}
	_, err = tx.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		highScoresKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best scores: %w", err)
	}
	return nil
}

func (s *SQLiteStore) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string, depending on how the driver
// returns DATETIME columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func parseCause(s string) snake.EndCause {
	for _, c := range []snake.EndCause{snake.CauseWall, snake.CauseSelf, snake.CauseBoardFull, snake.CauseAbandoned} {
		if strings.EqualFold(c.String(), s) {
			return c
		}
	}
	return snake.CauseNone
}
