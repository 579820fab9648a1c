package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	menuChoose     = "Choose state and income"
	menuInversions = "Cost inversions"
	menuStates     = "List states"
	menuIncomes    = "List incomes"
	menuExit       = "Exit"
)

type menuEntry struct {
	label string
	about string
}

// menuEntries are numbered like the plain prompt menu.
var menuEntries = []menuEntry{
	{label: menuChoose, about: "pick an income bracket and a state"},
	{label: menuInversions, about: "schools that cost less for richer families"},
	{label: menuStates, about: "state and territory codes"},
	{label: menuIncomes, about: "household income brackets"},
	{label: menuExit},
}

// MenuScreen is the main menu of the TUI.
type MenuScreen struct {
	theme  Theme
	cursor int
}

// NewMenuScreen creates a new main menu screen.
func NewMenuScreen(theme Theme) *MenuScreen {
	return &MenuScreen{theme: theme}
}

func (m *MenuScreen) Init() tea.Cmd { return nil }

func (m *MenuScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k := key.String(); k {
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, len(menuEntries)-1)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(menuEntries) - 1
	case "enter":
		return m, m.choose()
	case "q":
		return m, tea.Quit
	default:
		if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(menuEntries) {
			m.cursor = n - 1
			return m, m.choose()
		}
	}

	return m, nil
}

func (m *MenuScreen) choose() tea.Cmd {
	item := menuEntries[m.cursor].label
	return func() tea.Msg {
		return menuSelectMsg{item: item}
	}
}

func (m *MenuScreen) View() string {
	var b strings.Builder

	b.WriteString("\n")

	for i, e := range menuEntries {
		line := fmt.Sprintf("%d %s", i+1, e.label)
		if i == m.cursor {
			b.WriteString("  " + m.theme.Cursor.Render("▸ "+line))
			if e.about != "" {
				b.WriteString("  " + m.theme.Dim.Render(e.about))
			}
		} else {
			b.WriteString("    " + line)
		}

		b.WriteString("\n")
	}

	return b.String()
}

func (m *MenuScreen) StatusHints() []KeyHint {
	return []KeyHint{
		{Key: "↑↓", Desc: "navigate"},
		{Key: "enter", Desc: "select"},
		{Key: fmt.Sprintf("1-%d", len(menuEntries)), Desc: "jump"},
		{Key: "q", Desc: "quit"},
	}
}

// Cursor returns the current cursor position.
func (m *MenuScreen) Cursor() int {
	return m.cursor
}
