package snake

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownDifficulty is returned when a difficulty name cannot be parsed.
var ErrUnknownDifficulty = errors.New("snake: unknown difficulty")

// Difficulty selects the tick interval and the best-score slot.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Normal Difficulty = "normal"
	Hard   Difficulty = "hard"
)

// Difficulties returns all tiers, slowest first.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Normal, Hard}
}

// Interval returns the time between ticks for the tier.
func (d Difficulty) Interval() time.Duration {
	switch d {
	case Easy:
		return 150 * time.Millisecond
	case Normal:
		return 100 * time.Millisecond
	case Hard:
		return 60 * time.Millisecond
	default:
		return 0
	}
}

// Valid reports whether d is one of the three tiers.
func (d Difficulty) Valid() bool {
	return d == Easy || d == Normal || d == Hard
}

// Title returns the capitalized display name ("Easy").
func (d Difficulty) Title() string {
	if d == "" {
		return ""
	}
	s := string(d)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseDifficulty accepts a tier name in any letter case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w %q (want easy, normal or hard)", ErrUnknownDifficulty, s)
	}
	return d, nil
}
