package snake

// Effect is an output of a state transition that collaborators act on.
type Effect interface {
	effect()
}

// RenderRequest asks the renderer to draw the current board.
// Snake is a copy and may be retained by the receiver.
type RenderRequest struct {
	Snake    []Point
	Food     Point
	Score    int
	GridSize int
}

// HasFood reports whether the frame carries a food cell.
func (r RenderRequest) HasFood() bool {
	return r.Food != NoFood
}

// SessionEnded reports the end of a session and its final score.
type SessionEnded struct {
	Difficulty Difficulty
	Cause      EndCause
	FinalScore int
	Ticks      uint64
}

func (RenderRequest) effect() {}
func (SessionEnded) effect()  {}
