package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Max results to load per difficulty.
const maxResults = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextTier key.Binding
	PrevTier key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTier, k.PrevTier, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTier, k.PrevTier},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTier: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next"),
		),
		PrevTier: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	tiers     []snake.Difficulty
	cursor    int // Currently selected difficulty
	store     registry.Store
	logger    *log.Logger
	results   []snake.Result
	stats     registry.Stats
	best      int
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	renderer  *lipgloss.Renderer
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a scoreboard focused on the given difficulty.
// A nil store shows an empty board.
func NewScoreboardModel(store registry.Store, logger *log.Logger, focus snake.Difficulty, width, height int, r *lipgloss.Renderer) ScoreboardModel {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ScoreboardModel{
		tiers:    snake.Difficulties(),
		store:    store,
		logger:   logger,
		keys:     DefaultScoreboardKeyMap(),
		help:     h,
		renderer: r,
		width:    width,
		height:   height,
	}
	for i, d := range m.tiers {
		if d == focus {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	m.load()

	return m
}

// createTable creates a new table with columns sized to the screen.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 7},
		{Title: "Ended", Width: 10},
		{Title: "Date", Width: 14},
	}

	// Give spare width to the date column.
	if spare := m.width - 4 - 6 - 7 - 10 - 14 - 10; spare > 0 {
		columns[3].Width += core.Min(spare, 6)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads results, stats and best for the current difficulty.
func (m *ScoreboardModel) load() {
	m.results = nil
	m.stats = registry.Stats{}
	m.best = 0

	if m.store != nil {
		d := m.tiers[m.cursor]
		var err error
		if m.results, err = m.store.TopResults(d, maxResults); err != nil {
			m.warn("could not load results", d, err)
		}
		if m.stats, err = m.store.Stats(d); err != nil {
			m.warn("could not load stats", d, err)
		}
		if m.best, err = m.store.Best(d); err != nil {
			m.warn("could not read best score", d, err)
			m.best = 0
		}
	}

	m.updateTableRows()
}

func (m *ScoreboardModel) warn(msg string, d snake.Difficulty, err error) {
	if m.logger != nil {
		m.logger.Warn(msg, "difficulty", d, "error", err)
	}
}

// updateTableRows updates the table with current results.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			r.Cause.String(),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextTier):
			m.cursor = (m.cursor + 1) % len(m.tiers)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTier):
			m.cursor = (m.cursor - 1 + len(m.tiers)) % len(m.tiers)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := m.renderer.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	statsStyle := m.renderer.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(centerText(statsStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	tableStyle := m.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	for _, line := range strings.Split(tableStyle.Render(m.renderTableContent()), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	helpStyle := m.renderer.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

// renderTabs renders one tab per difficulty.
func (m ScoreboardModel) renderTabs() string {
	tabStyle := m.renderer.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := m.renderer.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.tiers))
	for i, d := range m.tiers {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(d.Title())
		} else {
			tabs[i] = tabStyle.Render(d.Title())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m ScoreboardModel) statsLine() string {
	if m.stats.Games == 0 {
		return fmt.Sprintf("Best %d", m.best)
	}
	return fmt.Sprintf("Best %d  ·  %d games  ·  avg %.1f  ·  last played %s",
		m.best, m.stats.Games, m.stats.AvgScore, m.stats.LastPlayed.Local().Format("Jan 02 15:04"))
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.results) == 0 {
		emptyStyle := m.renderer.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

// Difficulty returns the difficulty currently shown.
func (m ScoreboardModel) Difficulty() snake.Difficulty {
	return m.tiers[m.cursor]
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
