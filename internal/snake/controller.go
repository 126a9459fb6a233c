package snake

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Renderer draws frames. Implementations must not hold on to state the
// session depends on.
type Renderer interface {
	Render(frame RenderRequest)
}

// ScoreStore persists the best score per difficulty. SetBest never lowers a
// stored best: the compare and the write happen atomically in the store, so
// sessions sharing a store cannot overwrite a higher score.
type ScoreStore interface {
	Best(d Difficulty) (int, error)
	SetBest(d Difficulty, score int) error
}

// Result is one finished session, as recorded in score history.
type Result struct {
	SessionID  string
	Difficulty Difficulty
	Score      int
	Cause      EndCause
	Ticks      uint64
	CreatedAt  time.Time
}

// HistoryRecorder is implemented by stores that keep every finished session.
type HistoryRecorder interface {
	RecordResult(r Result) error
}

// Outcome summarizes a session once it has ended.
type Outcome struct {
	Ended      bool
	Difficulty Difficulty
	Cause      EndCause
	FinalScore int
	Best       int // Best for the difficulty after any update
	NewBest    bool
}

// Controller drives a Session and applies its effects to the renderer and
// score store. It is not safe for concurrent use; all calls are expected on
// the goroutine that schedules ticks.
type Controller struct {
	session   *Session
	renderer  Renderer
	store     ScoreStore
	logger    *log.Logger
	sessionID string
	best      int
	outcome   Outcome
	now       func() time.Time
}

// NewController creates a controller. store and renderer may be nil.
func NewController(rng *rand.Rand, renderer Renderer, store ScoreStore, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		session:  NewSession(rng),
		renderer: renderer,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// Start begins a new session at difficulty d, discarding any previous one.
func (c *Controller) Start(d Difficulty) {
	c.sessionID = uuid.NewString()
	c.outcome = Outcome{}
	c.best = c.Best(d)
	c.logger.Debug("session started", "session", c.sessionID, "difficulty", d, "best", c.best)
	c.apply(c.session.Start(d))
}

// SetDirection buffers a direction change for the next tick.
func (c *Controller) SetDirection(d Direction) bool {
	return c.session.SetDirection(d)
}

// TogglePause pauses or resumes the session.
func (c *Controller) TogglePause() State {
	return c.session.TogglePause()
}

// Tick advances the session and returns the outcome so far.
func (c *Controller) Tick() Outcome {
	c.apply(c.session.Tick())
	return c.outcome
}

// End abandons the active session. The best score is not touched.
func (c *Controller) End() {
	c.apply(c.session.End())
}

// Best returns the stored best for d. Store failures read as zero.
func (c *Controller) Best(d Difficulty) int {
	if c.store == nil {
		return 0
	}
	best, err := c.store.Best(d)
	if err != nil {
		c.logger.Warn("could not read best score", "difficulty", d, "error", err)
		return 0
	}
	return best
}

// CurrentBest returns the best score for the active difficulty as known to
// this session, including an update made when it ended.
func (c *Controller) CurrentBest() int {
	return c.best
}

// Outcome returns the result of the last ended session.
func (c *Controller) Outcome() Outcome {
	return c.outcome
}

// Session exposes the underlying state machine for read access.
func (c *Controller) Session() *Session {
	return c.session
}

// SessionID returns the identifier of the active session.
func (c *Controller) SessionID() string {
	return c.sessionID
}

func (c *Controller) apply(effects []Effect) {
	for _, e := range effects {
		switch e := e.(type) {
		case RenderRequest:
			if c.renderer != nil {
				c.renderer.Render(e)
			}
		case SessionEnded:
			c.finish(e)
		}
	}
}

// finish records the end of a session. The store write is synchronous;
// failures are logged and never stop play.
func (c *Controller) finish(e SessionEnded) {
	c.outcome = Outcome{
		Ended:      true,
		Difficulty: e.Difficulty,
		Cause:      e.Cause,
		FinalScore: e.FinalScore,
		Best:       c.best,
	}

	if !e.Cause.Counts() {
		c.logger.Debug("session abandoned", "session", c.sessionID, "score", e.FinalScore)
		return
	}

	c.logger.Info("session ended",
		"session", c.sessionID,
		"difficulty", e.Difficulty,
		"cause", e.Cause,
		"score", e.FinalScore,
		"ticks", e.Ticks,
	)

	if c.store == nil {
		if e.FinalScore > c.best {
			c.best = e.FinalScore
			c.outcome.Best = c.best
			c.outcome.NewBest = true
		}
		return
	}

	// Another session on the same store may have raised the best since Start.
	if stored := c.Best(e.Difficulty); stored > c.best {
		c.best = stored
	}

	if e.FinalScore > c.best {
		if err := c.store.SetBest(e.Difficulty, e.FinalScore); err != nil {
			c.logger.Error("could not save best score", "difficulty", e.Difficulty, "score", e.FinalScore, "error", err)
		} else {
			// The store keeps the higher score if another session wrote in between.
			c.best = max(c.Best(e.Difficulty), e.FinalScore)
			c.outcome.NewBest = c.best == e.FinalScore
		}
	}
	c.outcome.Best = c.best

	if rec, ok := c.store.(HistoryRecorder); ok {
		err := rec.RecordResult(Result{
			SessionID:  c.sessionID,
			Difficulty: e.Difficulty,
			Score:      e.FinalScore,
			Cause:      e.Cause,
			Ticks:      e.Ticks,
			CreatedAt:  c.now(),
		})
		if err != nil {
			c.logger.Warn("could not record result", "session", c.sessionID, "error", err)
		}
	}
}
