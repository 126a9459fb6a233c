package storage

import (
	"encoding/json"
	"math"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// highScoresKey is the kv key holding the best score per difficulty.
const highScoresKey = "snakeHighScores"

// highScores is the persisted best-score record, stored as a JSON object
// keyed by difficulty name: {"easy":N,"normal":N,"hard":N}.
type highScores map[snake.Difficulty]int

// decodeHighScores parses a stored record. Malformed data, missing entries
// and values that are not non-negative integers all read as 0.
func decodeHighScores(data []byte) highScores {
	scores := make(highScores, len(snake.Difficulties()))
	for _, d := range snake.Difficulties() {
		scores[d] = 0
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return scores
	}

	for _, d := range snake.Difficulties() {
		v, ok := raw[string(d)].(float64)
		if !ok || v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
			continue
		}
		scores[d] = int(v)
	}
	return scores
}

// encode serializes the record with every difficulty present.
func (h highScores) encode() ([]byte, error) {
	out := make(map[string]int, len(snake.Difficulties()))
	for _, d := range snake.Difficulties() {
		out[string(d)] = h[d]
	}
	return json.Marshal(out)
}
