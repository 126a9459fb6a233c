package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// menuKeyMap defines the key bindings for the difficulty menu.
type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newMenuKeyMap(k KeyMap) menuKeyMap {
	return menuKeyMap{
		Up:   k.Up,
		Down: k.Down,
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: k.Quit,
	}
}

// MenuModel is the Bubble Tea model for the difficulty picker.
type MenuModel struct {
	items          []snake.Difficulty
	best           map[snake.Difficulty]int
	cursor         int
	width          int
	height         int
	keys           menuKeyMap
	help           help.Model
	renderer       *lipgloss.Renderer
	quitting       bool
	selected       snake.Difficulty // Set when user picks a difficulty
	openScoreboard bool             // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a menu with the cursor on focus. Best scores are
// read from store once; read failures show as 0.
func NewMenuModel(store snake.ScoreStore, logger *log.Logger, focus snake.Difficulty, width, height int, r *lipgloss.Renderer) MenuModel {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	items := snake.Difficulties()
	best := make(map[snake.Difficulty]int, len(items))
	cursor := 0
	for i, d := range items {
		if d == focus {
			cursor = i
		}
		if store == nil {
			continue
		}
		v, err := store.Best(d)
		if err != nil {
			if logger != nil {
				logger.Warn("could not read best score", "difficulty", d, "error", err)
			}
			continue
		}
		best[d] = v
	}

	h := help.New()
	h.Width = width

	return MenuModel{
		items:    items,
		best:     best,
		cursor:   cursor,
		width:    width,
		height:   height,
		keys:     newMenuKeyMap(DefaultKeyMap()),
		help:     h,
		renderer: r,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.cursor = core.Clamp(m.cursor-1, 0, len(m.items)-1)

	case key.Matches(msg, m.keys.Down):
		m.cursor = core.Clamp(m.cursor+1, 0, len(m.items)-1)

	case key.Matches(msg, m.keys.Select):
		m.selected = m.items[m.cursor]

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := m.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle := m.renderer.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := m.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S N A K E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty", m.width))
	b.WriteString("\n\n")

	for i, d := range m.items {
		cursor := "  "
		style := m.renderer.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = activeStyle
		}

		line := fmt.Sprintf("%s%-8s %4dms   best %d", cursor, d.Title(), d.Interval().Milliseconds(), m.best[d])
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen difficulty, or "" if none yet.
func (m MenuModel) Selected() snake.Difficulty {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within the given width. Styled text is measured
// without its escape codes.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
