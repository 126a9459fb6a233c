package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// AppOptions configures the top-level model.
type AppOptions struct {
	Store    registry.Store // nil disables persistence
	Theme    config.Theme
	Logger   *log.Logger
	Seed     int64            // 0 = time-based
	Start    snake.Difficulty // Non-empty skips the menu
	Width    int
	Height   int
	Renderer *lipgloss.Renderer // nil = default renderer
}

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
)

// App manages the full snake flow: menu -> game -> menu, plus the
// scoreboard. It is the model for both local play and SSH sessions.
type App struct {
	opts     AppOptions
	screen   screen
	focus    snake.Difficulty // Difficulty to highlight when returning to the menu
	menu     MenuModel
	game     GameModel
	scores   ScoreboardModel
	quitting bool
}

// NewApp creates the top-level model.
func NewApp(opts AppOptions) App {
	a := App{opts: opts, focus: snake.Easy}
	if opts.Start.Valid() {
		a.focus = opts.Start
		a.screen = screenGame
		a.game = a.newGame(opts.Start)
	} else {
		a.menu = a.newMenu()
	}
	return a
}

func (a App) newMenu() MenuModel {
	var store snake.ScoreStore
	if a.opts.Store != nil {
		store = a.opts.Store
	}
	return NewMenuModel(store, a.opts.Logger, a.focus, a.opts.Width, a.opts.Height, a.opts.Renderer)
}

func (a App) newGame(d snake.Difficulty) GameModel {
	var store snake.ScoreStore
	if a.opts.Store != nil {
		store = a.opts.Store
	}
	return NewGameModel(GameOptions{
		Difficulty: d,
		Store:      store,
		Theme:      a.opts.Theme,
		Logger:     a.opts.Logger,
		Seed:       a.opts.Seed,
		Width:      a.opts.Width,
		Height:     a.opts.Height,
		Renderer:   a.opts.Renderer,
	})
}

// Init initializes the current screen.
func (a App) Init() tea.Cmd {
	if a.screen == screenGame {
		return a.game.Init()
	}
	return a.menu.Init()
}

// Update routes messages to the active screen.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.opts.Width = wsm.Width
		a.opts.Height = wsm.Height
	}

	switch a.screen {
	case screenGame:
		return a.updateGame(msg)
	case screenScores:
		return a.updateScores(msg)
	default:
		if _, ok := msg.(TickMsg); ok {
			return a, nil // Leftover tick from a game we left
		}
		return a.updateMenu(msg)
	}
}

func (a App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.menu.Update(msg)
	a.menu = next.(MenuModel)

	switch {
	case a.menu.IsQuitting():
		a.quitting = true
		return a, tea.Quit

	case a.menu.WantsScoreboard():
		a.screen = screenScores
		a.scores = NewScoreboardModel(a.opts.Store, a.opts.Logger, a.focus, a.opts.Width, a.opts.Height, a.opts.Renderer)
		return a, a.scores.Init()

	case a.menu.Selected() != "":
		a.focus = a.menu.Selected()
		a.screen = screenGame
		a.game = a.newGame(a.focus)
		return a, a.game.Init()
	}

	return a, cmd
}

func (a App) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.game.Update(msg)
	a.game = next.(GameModel)

	switch {
	case a.game.IsQuitting():
		a.quitting = true
		return a, tea.Quit

	case a.game.BackToMenu():
		a.screen = screenMenu
		a.menu = a.newMenu()
		return a, a.menu.Init()
	}

	return a, cmd
}

func (a App) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return a, nil
	}

	next, cmd := a.scores.Update(msg)
	a.scores = next.(ScoreboardModel)

	switch {
	case a.scores.IsQuitting():
		a.quitting = true
		return a, tea.Quit

	case a.scores.IsGoingBack():
		a.focus = a.scores.Difficulty()
		a.screen = screenMenu
		a.menu = a.newMenu()
		return a, a.menu.Init()
	}

	return a, cmd
}

// View renders the active screen.
func (a App) View() string {
	if a.quitting {
		return ""
	}

	switch a.screen {
	case screenGame:
		return a.game.View()
	case screenScores:
		return a.scores.View()
	default:
		return a.menu.View()
	}
}

// Run starts a Bubble Tea program for the app on the local terminal.
func Run(opts AppOptions) error {
	p := tea.NewProgram(
		NewApp(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
