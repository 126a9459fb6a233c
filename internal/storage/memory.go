package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// MemoryStore keeps scores in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	best    highScores
	results []snake.Result
}

var _ registry.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{best: decodeHighScores(nil)}
}

// Best returns the best score for d.
func (m *MemoryStore) Best(d snake.Difficulty) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.best[d], nil
}

// SetBest stores score as the best for d unless a higher best is already
// stored.
func (m *MemoryStore) SetBest(d snake.Difficulty, score int) error {
	if !d.Valid() {
		return fmt.Errorf("storage: %w: %q", snake.ErrUnknownDifficulty, d)
	}
	if score < 0 {
		return fmt.Errorf("storage: negative score %d", score)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.best[d] = max(m.best[d], score)
	return nil
}

// RecordResult appends a finished session to the history.
func (m *MemoryStore) RecordResult(r snake.Result) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

// TopResults returns the top N results for d, ordered by score descending.
func (m *MemoryStore) TopResults(d snake.Difficulty, limit int) ([]snake.Result, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}

	m.mu.RLock()
	var out []snake.Result
	for _, r := range m.results {
		if r.Difficulty == d {
			out = append(out, r)
		}
	}
	m.mu.RUnlock()

	// Stable keeps insertion order for ties, matching the sqlite backend.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Stats aggregates the history for d.
func (m *MemoryStore) Stats(d snake.Difficulty) (registry.Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := registry.Stats{Difficulty: d}
	total := 0
	for _, r := range m.results {
		if r.Difficulty != d {
			continue
		}
		stats.Games++
		total += r.Score
		stats.TotalTicks += r.Ticks
		if r.Score > stats.HighScore {
			stats.HighScore = r.Score
		}
		if r.CreatedAt.After(stats.LastPlayed) {
			stats.LastPlayed = r.CreatedAt
		}
	}
	if stats.Games > 0 {
		stats.AvgScore = float64(total) / float64(stats.Games)
	}
	return stats, nil
}

// Clear removes the best score and history for d, or everything when d is
// empty.
func (m *MemoryStore) Clear(d snake.Difficulty) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d == "" {
		m.best = decodeHighScores(nil)
		m.results = nil
		return nil
	}

	m.best[d] = 0
	kept := m.results[:0]
	for _, r := range m.results {
		if r.Difficulty != d {
			kept = append(kept, r)
		}
	}
	m.results = kept
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
