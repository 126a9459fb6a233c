package snake

// Snapshot captures the complete session state so tests can compare runs.
type Snapshot struct {
	Tick       uint64
	Difficulty Difficulty
	State      State
	Cause      EndCause
	Score      int
	Snake      []Point
	Heading    Direction
	Pending    Direction
	Food       Point
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	body := make([]Point, len(s.snake))
	copy(body, s.snake)

	return Snapshot{
		Tick:       s.ticks,
		Difficulty: s.difficulty,
		State:      s.State(),
		Cause:      s.cause,
		Score:      s.score,
		Snake:      body,
		Heading:    s.heading,
		Pending:    s.pending,
		Food:       s.food,
	}
}
