package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// scroller keeps a window of viewHeight lines over a longer text.
type scroller struct {
	offset     int
	viewHeight int
}

func (s *scroller) maxOffset(lines int) int {
	return max(0, lines-s.viewHeight)
}

func (s *scroller) clamp(lines int) {
	s.offset = min(s.offset, s.maxOffset(lines))
	s.offset = max(s.offset, 0)
}

func (s *scroller) up() bool {
	if s.offset == 0 {
		return false
	}

	s.offset--
	return true
}

func (s *scroller) down(lines int) bool {
	if s.offset >= s.maxOffset(lines) {
		return false
	}

	s.offset++
	return true
}

// window returns the visible slice of lines and how many lines remain
// below it. A line is reserved for the "more" indicator when needed.
func (s *scroller) window(lines []string) ([]string, int) {
	viewLines := s.viewHeight
	if s.offset+viewLines < len(lines) {
		viewLines--
	}

	end := min(s.offset+max(viewLines, 0), len(lines))
	start := min(s.offset, end)

	return lines[start:end], len(lines) - end
}

func renderMore(theme Theme, remaining int) string {
	return theme.Dim.Render("  ▼ ... " + strconv.Itoa(remaining) + " more")
}

// OutputScreen displays pre-rendered text with optional scrolling.
// Any key other than scroll keys returns to the menu.
type OutputScreen struct {
	theme Theme
	lines []string
	scroller
}

// NewOutputScreen creates a screen that displays content text.
func NewOutputScreen(theme Theme, content string, viewHeight int) *OutputScreen {
	trimmed := strings.TrimRight(content, "\n")

	lines := []string{""}
	if trimmed != "" {
		lines = strings.Split(trimmed, "\n")
	}

	return &OutputScreen{
		theme:    theme,
		lines:    lines,
		scroller: scroller{viewHeight: viewHeight},
	}
}

func (o *OutputScreen) Init() tea.Cmd { return nil }

func (o *OutputScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.viewHeight = contentHeightFromTerminal(msg.Height)
		o.clamp(len(o.lines))
		return o, nil

	case tea.KeyMsg:
		if o.scrollable() {
			switch msg.String() {
			case "up", "k":
				o.up()
				return o, nil
			case "down", "j":
				o.down(len(o.lines))
				return o, nil
			}
		}

		return o, func() tea.Msg { return BackMsg{} }
	}

	return o, nil
}

func (o *OutputScreen) View() string {
	visible, remaining := o.window(o.lines)

	var b strings.Builder
	for _, line := range visible {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if remaining > 0 {
		b.WriteString(renderMore(o.theme, remaining))
	}

	return b.String()
}

func (o *OutputScreen) StatusHints() []KeyHint {
	if o.scrollable() {
		return []KeyHint{
			{Key: "↑↓", Desc: "scroll"},
			{Key: "any key", Desc: "return to menu"},
		}
	}

	return []KeyHint{
		{Key: "any key", Desc: "return to menu"},
	}
}

func (o *OutputScreen) scrollable() bool {
	return len(o.lines) > o.viewHeight
}

// Offset returns the current scroll offset.
func (o *OutputScreen) Offset() int {
	return o.offset
}
