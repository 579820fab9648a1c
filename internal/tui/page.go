package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cuthbertlab/college-costs/internal/selection"
	"github.com/cuthbertlab/college-costs/internal/site"
)

const showMoreLabel = "Show More Expensive Options"

// element is an on-screen part of a page that can be shown or hidden.
type element struct {
	visible bool
}

func (e *element) Show() { e.visible = true }
func (e *element) Hide() { e.visible = false }

type pageBand struct {
	band    site.Band
	control *element
	panel   *element
}

// pageLine is one rendered line of a page; control is set on the lines of
// "show more" buttons.
type pageLine struct {
	text    string
	control string
}

// PageScreen displays a data page. Expensive rows stay hidden behind a
// control per band until it is activated.
type PageScreen struct {
	theme  Theme
	page   site.Page
	bands  []pageBand
	panels *selection.CostPanels
	focus  int // index into visibleControls
	scroller
}

// NewPageScreen creates a viewer for page and registers one cost panel
// per band that has expensive rows.
func NewPageScreen(theme Theme, page site.Page, viewHeight int) *PageScreen {
	s := &PageScreen{
		theme:    theme,
		page:     page,
		panels:   selection.NewCostPanels(),
		scroller: scroller{viewHeight: viewHeight},
	}

	for _, b := range page.Bands {
		pb := pageBand{band: b}
		if len(b.Expensive) > 0 {
			pb.control = &element{visible: true}
			pb.panel = &element{}
			s.panels.Register(b.ID, pb.control, pb.panel)
		}

		s.bands = append(s.bands, pb)
	}

	return s
}

// Panels returns the cost panel registry of the page.
func (s *PageScreen) Panels() *selection.CostPanels {
	return s.panels
}

// Revealed reports whether the expensive rows of band id are shown.
func (s *PageScreen) Revealed(id string) bool {
	for _, b := range s.bands {
		if b.band.ID == id {
			return b.panel != nil && b.panel.visible
		}
	}

	return false
}

func (s *PageScreen) Init() tea.Cmd { return nil }

func (s *PageScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.viewHeight = contentHeightFromTerminal(msg.Height)
		s.clamp(len(s.lines()))
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.up()
		case "down", "j":
			s.down(len(s.lines()))
		case "tab":
			s.moveFocus(1)
		case "shift+tab":
			s.moveFocus(-1)
		case "enter", " ":
			if id, ok := s.focusedControl(); ok {
				s.panels.Reveal(id)
				s.focus = min(s.focus, max(len(s.visibleControls())-1, 0))
			}
		case "esc", "q":
			return s, func() tea.Msg { return BackMsg{} }
		}
	}

	return s, nil
}

func (s *PageScreen) visibleControls() []string {
	var ids []string
	for _, b := range s.bands {
		if b.control != nil && b.control.visible {
			ids = append(ids, b.band.ID)
		}
	}

	return ids
}

func (s *PageScreen) focusedControl() (string, bool) {
	ids := s.visibleControls()
	if s.focus < 0 || s.focus >= len(ids) {
		return "", false
	}

	return ids[s.focus], true
}

func (s *PageScreen) moveFocus(delta int) {
	n := len(s.visibleControls())
	if n == 0 {
		return
	}

	s.focus = (s.focus + delta + n) % n
	s.scrollToFocus()
}

func (s *PageScreen) scrollToFocus() {
	id, ok := s.focusedControl()
	if !ok {
		return
	}

	for i, l := range s.lines() {
		if l.control != id {
			continue
		}

		if i < s.offset {
			s.offset = i
		} else if i >= s.offset+s.viewHeight-1 {
			s.offset = i - s.viewHeight + 2
		}

		s.clamp(len(s.lines()))
		return
	}
}

func (s *PageScreen) lines() []pageLine {
	stateCode := s.page.State.Code
	header := fmt.Sprintf("%41s %-5s   %-3s     %s", "", "Cost", s.page.Test.Code, "Grad")

	out := []pageLine{
		{text: s.renderTitle()},
		{text: s.theme.Dim.Render(s.page.Income.Label + " · " + s.page.Test.Heading)},
		{},
	}

	for _, b := range s.bands {
		out = append(out,
			pageLine{text: s.theme.Title.Render(b.band.Heading)},
			pageLine{text: s.theme.Dim.Render(header)},
		)

		for _, r := range b.band.Affordable {
			out = append(out, pageLine{text: "  " + r.Text(stateCode)})
		}

		if b.control != nil && b.control.visible {
			out = append(out, pageLine{text: s.renderControl(b.band.ID), control: b.band.ID})
		}

		if b.panel != nil && b.panel.visible {
			for _, r := range b.band.Expensive {
				line := "  " + r.Text(stateCode)
				if r.Danger {
					line = s.theme.Danger.Render(line)
				}

				out = append(out, pageLine{text: line})
			}
		}

		out = append(out, pageLine{})
	}

	return out
}

func (s *PageScreen) renderTitle() string {
	st := s.page.State
	head, tail, found := strings.Cut(st.Name, st.Accent)
	if st.Accent == "" || !found {
		return s.theme.Title.Render(st.Name)
	}

	return s.theme.Title.Render(head) + s.theme.Accent.Render(st.Accent) + s.theme.Title.Render(tail)
}

func (s *PageScreen) renderControl(id string) string {
	focused, ok := s.focusedControl()
	if ok && focused == id {
		return "  " + s.theme.Highlight.Render("[ "+showMoreLabel+" ]")
	}

	return "  " + s.theme.Dim.Render("[ "+showMoreLabel+" ]")
}

func (s *PageScreen) View() string {
	lines := s.lines()
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.text
	}

	visible, remaining := s.window(texts)

	var b strings.Builder
	for _, line := range visible {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if remaining > 0 {
		b.WriteString(renderMore(s.theme, remaining))
	}

	return b.String()
}

func (s *PageScreen) StatusHints() []KeyHint {
	hints := []KeyHint{{Key: "↑↓", Desc: "scroll"}}
	if len(s.visibleControls()) > 0 {
		hints = append(hints,
			KeyHint{Key: "tab", Desc: "next option"},
			KeyHint{Key: "enter", Desc: "show more"},
		)
	}

	return append(hints, KeyHint{Key: "esc", Desc: "back"})
}
