package tui

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// frameBuffer is the controller's renderer. It keeps the last frame for
// View to draw.
type frameBuffer struct {
	last   snake.RenderRequest
	frames uint64
}

// Render implements snake.Renderer.
func (b *frameBuffer) Render(frame snake.RenderRequest) {
	b.last = frame
	b.frames++
}

// GameOptions configures a game screen.
type GameOptions struct {
	Difficulty snake.Difficulty
	Store      snake.ScoreStore // nil disables persistence
	Theme      config.Theme
	Logger     *log.Logger
	Seed       int64 // 0 = time-based
	Width      int
	Height     int
	Renderer   *lipgloss.Renderer // nil = default renderer
}

// GameModel is the Bubble Tea model for one difficulty's play screen.
// It owns a snake.Controller and schedules its ticks.
type GameModel struct {
	ctrl       *snake.Controller
	frames     *frameBuffer
	difficulty snake.Difficulty
	theme      config.Theme
	logger     *log.Logger
	renderer   *lipgloss.Renderer
	screen     *core.Screen
	keys       KeyMap
	gen        uint64 // Bumped on every Start; older ticks are ignored
	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game screen and starts the first session.
func NewGameModel(opts GameOptions) GameModel {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	frames := &frameBuffer{}
	m := GameModel{
		ctrl:       snake.NewController(rand.New(rand.NewSource(seed)), frames, opts.Store, logger),
		frames:     frames,
		difficulty: opts.Difficulty,
		theme:      opts.Theme,
		logger:     logger,
		renderer:   opts.Renderer,
		screen:     core.NewScreen(opts.Width, opts.Height),
		keys:       DefaultKeyMap(),
		width:      opts.Width,
		height:     opts.Height,
	}
	m.start()
	return m
}

func (m *GameModel) start() {
	m.gen++
	m.ctrl.Start(m.difficulty)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.gen, m.difficulty.Interval())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	state := m.ctrl.Session().State()

	switch action {
	case core.ActionQuit:
		m.ctrl.End()
		m.quitting = true
		return m, tea.Quit

	case core.ActionPause:
		m.ctrl.TogglePause()

	case core.ActionBack:
		// Esc pauses a running game; from pause or game over it leaves.
		if state == snake.StateRunning {
			m.ctrl.TogglePause()
			return m, nil
		}
		m.ctrl.End()
		m.backToMenu = true

	case core.ActionRestart:
		return m.restart()

	case core.ActionConfirm:
		if state == snake.StateEnded {
			return m.restart()
		}

	default:
		if d, ok := directionFor(action); ok {
			m.ctrl.SetDirection(d)
		}
	}

	return m, nil
}

// restart begins a fresh session at the same difficulty. An unfinished
// session is dropped without scoring.
func (m GameModel) restart() (tea.Model, tea.Cmd) {
	m.start()
	m.logger.Debug("restarted", "difficulty", m.difficulty, "session", m.ctrl.SessionID())
	return m, tickCmd(m.gen, m.difficulty.Interval())
}

// handleTick advances the session. Ticks keep flowing while paused and
// stop once the session has ended.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}

	if out := m.ctrl.Tick(); out.Ended {
		return m, nil
	}
	return m, tickCmd(m.gen, m.difficulty.Interval())
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	frame := m.frames.last
	l := layoutFor(m.width, m.height, frame.GridSize)

	if m.width < l.board.W || m.height < l.board.H+2 {
		m.screen.DrawTextCentered(m.height/2, fmt.Sprintf("Terminal too small: need %dx%d", l.board.W, l.board.H+2))
		return RenderScreen(m.renderer, m.screen)
	}

	drawFrame(m.screen, l, frame, m.theme)
	m.drawHUD(l, frame)

	switch m.ctrl.Session().State() {
	case snake.StatePaused:
		drawOverlay(m.screen, l, m.theme.Border, []overlayLine{
			{"PAUSED", core.ColorBrightYellow},
			{"", core.ColorDefault},
			{"space: resume   esc: menu", core.ColorGray},
		})
	case snake.StateEnded:
		if out := m.ctrl.Outcome(); out.Ended && out.Cause.Counts() {
			drawOverlay(m.screen, l, m.theme.Border, m.gameOverLines(out))
		}
	}

	m.screen.DrawTextColor(l.help.X, l.help.Y, m.helpLine(), core.ColorGray)

	return RenderScreen(m.renderer, m.screen)
}

func (m GameModel) drawHUD(l boardLayout, frame snake.RenderRequest) {
	left := fmt.Sprintf("SNAKE  %s", m.difficulty.Title())
	right := fmt.Sprintf("Score %d  Best %d", frame.Score, m.ctrl.CurrentBest())

	m.screen.DrawTextColor(l.hud.X, l.hud.Y, left, m.theme.HeadColor)
	m.screen.DrawText(l.hud.Right()-len(right), l.hud.Y, right)
}

func (m GameModel) gameOverLines(out snake.Outcome) []overlayLine {
	title := "GAME OVER"
	if out.Cause == snake.CauseBoardFull {
		title = "YOU WIN"
	}

	lines := []overlayLine{
		{title, core.ColorBrightRed},
		{causeText(out.Cause), core.ColorGray},
		{"", core.ColorDefault},
		{fmt.Sprintf("Score: %d", out.FinalScore), core.ColorDefault},
		{fmt.Sprintf("Best:  %d", out.Best), core.ColorDefault},
	}
	if out.NewBest {
		lines = append(lines, overlayLine{"NEW BEST!", core.ColorBrightYellow})
	}
	lines = append(lines,
		overlayLine{"", core.ColorDefault},
		overlayLine{"r/enter: again   esc: menu", core.ColorGray},
	)
	return lines
}

func causeText(c snake.EndCause) string {
	switch c {
	case snake.CauseWall:
		return "You hit the wall"
	case snake.CauseSelf:
		return "You ran into yourself"
	case snake.CauseBoardFull:
		return "The board is full"
	default:
		return ""
	}
}

// helpLine renders the short help as plain text so it can be placed in
// the screen buffer.
func (m GameModel) helpLine() string {
	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Outcome returns the result of the last ended session.
func (m GameModel) Outcome() snake.Outcome {
	return m.ctrl.Outcome()
}

// Session exposes the running state machine.
func (m GameModel) Session() *snake.Session {
	return m.ctrl.Session()
}
