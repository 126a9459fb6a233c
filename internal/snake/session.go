// Package snake implements the snake state machine.
//
// A Session is a pure function of (state, input) to (new state, effects):
// it never draws, persists or schedules anything itself. Callers drive it
// with Tick on a fixed interval and forward the returned effects to a
// renderer and a score store (see Controller).
package snake

import "math/rand"

// GridSize is the side of the square playing field.
const GridSize = 20

// State is the lifecycle state of a session.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// EndCause records why a session ended.
type EndCause int

const (
	CauseNone      EndCause = iota
	CauseWall               // head left the grid
	CauseSelf               // head hit a segment
	CauseBoardFull          // no empty cell left for food
	CauseAbandoned          // player returned to the menu
)

func (c EndCause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseWall:
		return "wall"
	case CauseSelf:
		return "self"
	case CauseBoardFull:
		return "board_full"
	case CauseAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Counts reports whether a session ending with this cause is scored.
func (c EndCause) Counts() bool {
	return c == CauseWall || c == CauseSelf || c == CauseBoardFull
}

// Session owns the state of one play-through.
type Session struct {
	rng        *rand.Rand
	difficulty Difficulty
	gridSize   int

	snake   []Point // Head at index 0
	food    Point
	heading Direction // Last applied direction
	pending Direction // Buffered direction for next tick
	score   int
	ticks   uint64

	paused bool
	ended  bool
	cause  EndCause
}

// NewSession creates an idle session. It stays ended until Start is called.
func NewSession(rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Session{
		rng:      rng,
		gridSize: GridSize,
		food:     NoFood,
		ended:    true,
	}
}

// Start (re)initializes the session for the given difficulty and returns
// the first frame.
func (s *Session) Start(d Difficulty) []Effect {
	s.difficulty = d
	s.snake = []Point{
		{X: 10, Y: 10}, // Head
		{X: 9, Y: 10},
		{X: 8, Y: 10},
	}
	s.heading = DirRight
	s.pending = DirRight
	s.score = 0
	s.ticks = 0
	s.paused = false
	s.ended = false
	s.cause = CauseNone
	s.food, _ = RandomEmptyCell(s.gridSize, s.snake, s.rng)

	return []Effect{s.renderRequest()}
}

// SetDirection buffers d for the next tick. Reversing into the current
// heading is rejected. Returns true if d was accepted.
func (s *Session) SetDirection(d Direction) bool {
	if s.ended || !d.Valid() {
		return false
	}
	if d == s.heading.Opposite() {
		return false
	}
	s.pending = d
	return true
}

// TogglePause flips the pause flag. It has no effect once ended.
func (s *Session) TogglePause() State {
	if !s.ended {
		s.paused = !s.paused
	}
	return s.State()
}

// Tick advances the snake by one cell. Paused or ended sessions return nil.
func (s *Session) Tick() []Effect {
	if s.ended || s.paused {
		return nil
	}

	s.heading = s.pending
	head := s.snake[0].Move(s.heading)

	if !s.inBounds(head) {
		return s.finish(CauseWall)
	}
	// The tail still occupies its cell at this point, so moving into it ends the game.
	if s.occupied(head) {
		return s.finish(CauseSelf)
	}

	s.snake = append(s.snake, Point{})
	copy(s.snake[1:], s.snake)
	s.snake[0] = head
	s.ticks++

	if head == s.food {
		s.score++
		food, ok := RandomEmptyCell(s.gridSize, s.snake, s.rng)
		s.food = food
		if !ok {
			return append([]Effect{s.renderRequest()}, s.finish(CauseBoardFull)...)
		}
	} else {
		s.snake = s.snake[:len(s.snake)-1]
	}

	return []Effect{s.renderRequest()}
}

// End abandons the session without scoring it.
func (s *Session) End() []Effect {
	if s.ended {
		return nil
	}
	return s.finish(CauseAbandoned)
}

func (s *Session) finish(cause EndCause) []Effect {
	s.ended = true
	s.paused = false
	s.cause = cause
	return []Effect{SessionEnded{
		Difficulty: s.difficulty,
		Cause:      cause,
		FinalScore: s.score,
		Ticks:      s.ticks,
	}}
}

func (s *Session) inBounds(p Point) bool {
	return p.X >= 0 && p.X < s.gridSize && p.Y >= 0 && p.Y < s.gridSize
}

func (s *Session) occupied(p Point) bool {
	for _, seg := range s.snake {
		if seg == p {
			return true
		}
	}
	return false
}

func (s *Session) renderRequest() RenderRequest {
	body := make([]Point, len(s.snake))
	copy(body, s.snake)
	return RenderRequest{
		Snake:    body,
		Food:     s.food,
		Score:    s.score,
		GridSize: s.gridSize,
	}
}

// State returns the lifecycle state.
func (s *Session) State() State {
	switch {
	case s.ended:
		return StateEnded
	case s.paused:
		return StatePaused
	default:
		return StateRunning
	}
}

// Difficulty returns the tier of the current (or last) session.
func (s *Session) Difficulty() Difficulty {
	return s.difficulty
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Cause returns why the session ended, or CauseNone while it is live.
func (s *Session) Cause() EndCause {
	return s.cause
}
