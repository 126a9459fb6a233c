package snake

import (
	"math/rand"
	"reflect"
	"testing"
)

func newTestSession(seed int64) *Session {
	s := NewSession(rand.New(rand.NewSource(seed)))
	s.Start(Easy)
	return s
}

func renderOf(t *testing.T, effects []Effect) RenderRequest {
	t.Helper()
	for _, e := range effects {
		if r, ok := e.(RenderRequest); ok {
			return r
		}
	}
	t.Fatalf("no RenderRequest in effects %v", effects)
	return RenderRequest{}
}

func endedOf(effects []Effect) (SessionEnded, bool) {
	for _, e := range effects {
		if ended, ok := e.(SessionEnded); ok {
			return ended, true
		}
	}
	return SessionEnded{}, false
}

func TestStartState(t *testing.T) {
	s := NewSession(rand.New(rand.NewSource(1)))
	if s.State() != StateEnded {
		t.Fatalf("New session should be ended until started, got %s", s.State())
	}

	effects := s.Start(Normal)
	frame := renderOf(t, effects)

	want := []Point{{10, 10}, {9, 10}, {8, 10}}
	if !reflect.DeepEqual(frame.Snake, want) {
		t.Errorf("Initial snake = %v, expected %v", frame.Snake, want)
	}
	if s.State() != StateRunning {
		t.Errorf("State after Start = %s, expected running", s.State())
	}
	if s.Score() != 0 {
		t.Errorf("Score after Start = %d, expected 0", s.Score())
	}
	if s.Difficulty() != Normal {
		t.Errorf("Difficulty = %s, expected normal", s.Difficulty())
	}
	if s.occupied(frame.Food) {
		t.Errorf("Food spawned on snake at %v", frame.Food)
	}
	if frame.GridSize != GridSize {
		t.Errorf("GridSize = %d, expected %d", frame.GridSize, GridSize)
	}
}

func TestTickMovesWithoutFood(t *testing.T) {
	s := newTestSession(1)
	s.food = Point{X: 10, Y: 9}

	frame := renderOf(t, s.Tick())

	want := []Point{{11, 10}, {10, 10}, {9, 10}}
	if !reflect.DeepEqual(frame.Snake, want) {
		t.Errorf("Snake after tick = %v, expected %v", frame.Snake, want)
	}
	if frame.Score != 0 {
		t.Errorf("Score = %d, expected 0", frame.Score)
	}
	if frame.Food != (Point{X: 10, Y: 9}) {
		t.Errorf("Food moved to %v without being eaten", frame.Food)
	}
}

func TestTickEatsFood(t *testing.T) {
	s := newTestSession(2)
	s.food = Point{X: 11, Y: 10}

	frame := renderOf(t, s.Tick())

	want := []Point{{11, 10}, {10, 10}, {9, 10}, {8, 10}}
	if !reflect.DeepEqual(frame.Snake, want) {
		t.Errorf("Snake after eating = %v, expected %v", frame.Snake, want)
	}
	if s.Score() != 1 {
		t.Errorf("Score = %d, expected 1", s.Score())
	}
	if frame.Food == (Point{X: 11, Y: 10}) {
		t.Error("Food should be regenerated after being eaten")
	}
	if s.occupied(frame.Food) {
		t.Errorf("New food %v is inside the snake", frame.Food)
	}
}

func TestWallCollision(t *testing.T) {
	s := newTestSession(3)
	s.snake = []Point{{19, 10}, {18, 10}, {17, 10}}
	s.score = 7
	s.food = Point{X: 0, Y: 0}
	before := s.Snapshot()

	effects := s.Tick()

	ended, ok := endedOf(effects)
	if !ok {
		t.Fatal("Moving off the grid should end the session")
	}
	if ended.Cause != CauseWall {
		t.Errorf("Cause = %s, expected wall", ended.Cause)
	}
	if ended.FinalScore != 7 {
		t.Errorf("FinalScore = %d, expected 7", ended.FinalScore)
	}
	if s.State() != StateEnded {
		t.Errorf("State = %s, expected ended", s.State())
	}

	after := s.Snapshot()
	if !reflect.DeepEqual(after.Snake, before.Snake) || after.Food != before.Food || after.Score != before.Score {
		t.Error("Wall collision should not mutate snake, food or score")
	}
}

func TestWallCollisionAllEdges(t *testing.T) {
	tests := []struct {
		name  string
		snake []Point
		dir   Direction
	}{
		{"top", []Point{{5, 0}, {5, 1}, {5, 2}}, DirUp},
		{"bottom", []Point{{5, 19}, {5, 18}, {5, 17}}, DirDown},
		{"left", []Point{{0, 5}, {1, 5}, {2, 5}}, DirLeft},
		{"right", []Point{{19, 5}, {18, 5}, {17, 5}}, DirRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(4)
			s.snake = tc.snake
			s.heading = tc.dir
			s.pending = tc.dir
			s.food = Point{X: 10, Y: 10}

			ended, ok := endedOf(s.Tick())
			if !ok || ended.Cause != CauseWall {
				t.Errorf("Expected wall collision, got %+v (ended=%v)", ended, ok)
			}
		})
	}
}

func TestSelfCollision(t *testing.T) {
	s := newTestSession(5)
	s.snake = []Point{
		{X: 5, Y: 5}, // Head
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
		{X: 6, Y: 4},
	}
	s.heading = DirUp
	s.pending = DirRight
	s.food = Point{X: 0, Y: 0}

	ended, ok := endedOf(s.Tick())
	if !ok {
		t.Fatal("Moving into a segment should end the session")
	}
	if ended.Cause != CauseSelf {
		t.Errorf("Cause = %s, expected self", ended.Cause)
	}
}

func TestMovingIntoTailEnds(t *testing.T) {
	s := newTestSession(6)
	// Square loop: the head's next cell is the current tail.
	s.snake = []Point{{5, 5}, {6, 5}, {6, 6}, {5, 6}}
	s.heading = DirLeft
	s.pending = DirDown
	s.food = Point{X: 0, Y: 0}

	ended, ok := endedOf(s.Tick())
	if !ok || ended.Cause != CauseSelf {
		t.Errorf("Moving into the tail cell should end the session, got %+v", ended)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	s := newTestSession(7)

	if s.SetDirection(DirLeft) {
		t.Error("Should not allow reversal from right to left")
	}
	if s.pending != DirRight {
		t.Errorf("Pending = %s, expected right", s.pending)
	}

	if !s.SetDirection(DirDown) {
		t.Error("Down should be accepted while heading right")
	}
	if s.pending != DirDown {
		t.Errorf("Pending = %s, expected down", s.pending)
	}
}

func TestReversalCheckedAgainstHeadingNotPending(t *testing.T) {
	s := newTestSession(8)
	s.heading = DirUp
	s.pending = DirUp
	s.snake = []Point{{10, 10}, {10, 11}, {10, 12}}
	s.food = Point{X: 0, Y: 0}

	if s.SetDirection(DirDown) {
		t.Error("Down should be rejected while heading up")
	}

	frame := renderOf(t, s.Tick())
	if frame.Snake[0] != (Point{X: 10, Y: 9}) {
		t.Errorf("Snake should keep moving up, head = %v", frame.Snake[0])
	}

	// Left then right within one tick: right is legal against heading up.
	s.SetDirection(DirLeft)
	if !s.SetDirection(DirRight) {
		t.Error("Right should be accepted while heading up even if left is pending")
	}
	if s.pending != DirRight {
		t.Errorf("Last call should win, pending = %s", s.pending)
	}
}

func TestLastDirectionWins(t *testing.T) {
	s := newTestSession(9)
	s.food = Point{X: 0, Y: 0}

	s.SetDirection(DirUp)
	s.SetDirection(DirDown)

	frame := renderOf(t, s.Tick())
	if frame.Snake[0] != (Point{X: 10, Y: 11}) {
		t.Errorf("Head = %v, expected (10,11)", frame.Snake[0])
	}
}

func TestPauseToggle(t *testing.T) {
	s := newTestSession(10)
	s.food = Point{X: 0, Y: 0}

	if s.TogglePause() != StatePaused {
		t.Fatal("TogglePause should pause a running session")
	}
	before := s.Snapshot()
	if effects := s.Tick(); effects != nil {
		t.Errorf("Tick while paused should be a no-op, got %v", effects)
	}
	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("Paused tick should not change state")
	}

	// Direction changes are buffered while paused.
	if !s.SetDirection(DirUp) {
		t.Error("SetDirection should be accepted while paused")
	}

	if s.TogglePause() != StateRunning {
		t.Fatal("TogglePause should resume")
	}
	frame := renderOf(t, s.Tick())
	if frame.Snake[0] != (Point{X: 10, Y: 9}) {
		t.Errorf("Head = %v, expected (10,9)", frame.Snake[0])
	}
}

func TestEndedIsTerminal(t *testing.T) {
	s := newTestSession(11)
	s.snake = []Point{{19, 10}, {18, 10}, {17, 10}}
	s.Tick()

	if s.TogglePause() != StateEnded {
		t.Error("TogglePause should have no effect when ended")
	}
	if s.SetDirection(DirUp) {
		t.Error("SetDirection should be rejected when ended")
	}
	if s.Tick() != nil {
		t.Error("Tick should be a no-op when ended")
	}
	if s.End() != nil {
		t.Error("End should be a no-op when already ended")
	}

	s.Start(Hard)
	if s.State() != StateRunning {
		t.Errorf("Start should re-enter running, got %s", s.State())
	}
	if s.Cause() != CauseNone {
		t.Errorf("Cause should reset, got %s", s.Cause())
	}
}

func TestAbandon(t *testing.T) {
	s := newTestSession(12)
	s.score = 3

	ended, ok := endedOf(s.End())
	if !ok {
		t.Fatal("End should emit SessionEnded")
	}
	if ended.Cause != CauseAbandoned || ended.FinalScore != 3 {
		t.Errorf("Unexpected end effect %+v", ended)
	}
	if ended.Cause.Counts() {
		t.Error("Abandoned sessions should not be scored")
	}
}

func TestBoardFullEndsSession(t *testing.T) {
	s := newTestSession(13)
	s.gridSize = 2
	s.snake = []Point{{0, 0}, {0, 1}, {1, 1}}
	s.heading = DirUp
	s.pending = DirRight
	s.food = Point{X: 1, Y: 0}

	effects := s.Tick()

	frame := renderOf(t, effects)
	if len(frame.Snake) != 4 {
		t.Errorf("Snake should fill the board, len = %d", len(frame.Snake))
	}
	if frame.HasFood() {
		t.Errorf("No food should be placed on a full board, got %v", frame.Food)
	}

	ended, ok := endedOf(effects)
	if !ok {
		t.Fatal("Filling the board should end the session")
	}
	if ended.Cause != CauseBoardFull || ended.FinalScore != 1 {
		t.Errorf("Unexpected end effect %+v", ended)
	}
	if !ended.Cause.Counts() {
		t.Error("A full board should be scored")
	}
}

func TestDeterminism(t *testing.T) {
	play := func() Snapshot {
		s := newTestSession(12345)
		dirs := []Direction{DirDown, DirLeft, DirUp, DirRight}
		for i := 0; i < 200 && s.State() == StateRunning; i++ {
			if i%7 == 0 {
				s.SetDirection(dirs[(i/7)%len(dirs)])
			}
			s.Tick()
		}
		return s.Snapshot()
	}

	a, b := play(), play()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Same seed and inputs should produce identical snapshots:\n%+v\n%+v", a, b)
	}
}

// TestInvariantsUnderRandomPlay drives many sessions with random input and
// checks the body, growth and food rules after every tick.
func TestInvariantsUnderRandomPlay(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		s := newTestSession(seed)
		input := rand.New(rand.NewSource(seed + 1000))

		for i := 0; i < 500 && s.State() == StateRunning; i++ {
			if input.Intn(3) == 0 {
				s.SetDirection(Direction(input.Intn(4)))
			}
			before := s.Snapshot()
			effects := s.Tick()
			after := s.Snapshot()

			if _, ended := endedOf(effects); ended {
				if len(after.Snake) < len(before.Snake) {
					t.Fatalf("seed %d: snake shrank on end", seed)
				}
				break
			}

			ate := after.Snake[0] == before.Food
			switch {
			case ate && len(after.Snake) != len(before.Snake)+1:
				t.Fatalf("seed %d: eating should grow by 1 (%d -> %d)", seed, len(before.Snake), len(after.Snake))
			case !ate && len(after.Snake) != len(before.Snake):
				t.Fatalf("seed %d: length changed without food (%d -> %d)", seed, len(before.Snake), len(after.Snake))
			case !ate && after.Food != before.Food:
				t.Fatalf("seed %d: food moved without being eaten", seed)
			case ate && after.Score != before.Score+1:
				t.Fatalf("seed %d: score should increase by 1 on food", seed)
			}

			seen := make(map[Point]bool, len(after.Snake))
			for j, p := range after.Snake {
				if seen[p] {
					t.Fatalf("seed %d: duplicate segment %v", seed, p)
				}
				seen[p] = true
				if j > 0 {
					prev := after.Snake[j-1]
					dx, dy := abs(p.X-prev.X), abs(p.Y-prev.Y)
					if dx+dy != 1 {
						t.Fatalf("seed %d: segments %v and %v are not adjacent", seed, prev, p)
					}
				}
			}
			if seen[after.Food] {
				t.Fatalf("seed %d: food %v inside snake", seed, after.Food)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
