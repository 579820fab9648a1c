package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cuthbertlab/college-costs/internal/reference"
	"github.com/cuthbertlab/college-costs/internal/selection"
)

const statesPerLine = 12

// pickerItem is one clickable control of a group.
type pickerItem struct {
	label string // text on screen
	value string // value handed to the tracker
}

// pickerGroup is a row of sibling controls.
type pickerGroup struct {
	group  selection.Group
	title  string
	items  []pickerItem
	cursor int
	active string // value of the control the tracker marked active
}

func (g *pickerGroup) activeLabel() string {
	for _, it := range g.items {
		if it.value == g.active {
			return it.label
		}
	}

	return ""
}

// PickerScreen shows the income, state and test-type controls and the go
// control. It is the View a selection.Tracker drives.
type PickerScreen struct {
	theme   Theme
	ref     *reference.Data
	tracker *selection.Tracker
	groups  []*pickerGroup
	focus   int // len(groups) focuses the go control

	target  selection.NavigationTarget
	pending string // href waiting to be emitted as NavigateMsg
	href    string

	search    textinput.Model
	searching bool
	searchErr string
}

var _ selection.View = (*PickerScreen)(nil)

// NewPickerScreen builds the controls from the reference data and attaches
// a new tracker.
func NewPickerScreen(theme Theme, ref *reference.Data, opts selection.Options) *PickerScreen {
	ti := textinput.New()
	ti.Prompt = "  State > "
	ti.Placeholder = "code or name"
	ti.CharLimit = 40

	p := &PickerScreen{
		theme:  theme,
		ref:    ref,
		search: ti,
	}

	income := &pickerGroup{group: selection.GroupIncome, title: "Income"}
	for _, l := range ref.Incomes {
		income.items = append(income.items, pickerItem{label: l.Label, value: l.CodeOrLevel()})
	}

	state := &pickerGroup{group: selection.GroupState, title: "State"}
	for _, s := range ref.States {
		state.items = append(state.items, pickerItem{label: s.Label(), value: s.Label()})
	}

	p.groups = []*pickerGroup{income, state}

	if opts.TestTypes {
		test := &pickerGroup{group: selection.GroupTest, title: "Test"}
		for _, tt := range ref.Tests {
			test.items = append(test.items, pickerItem{label: tt.Code, value: tt.Code})
		}

		p.groups = append(p.groups, test)
	}

	p.tracker = selection.NewTracker(p, opts)
	p.target = p.tracker.Target()

	return p
}

// SetActive implements selection.View.
func (p *PickerScreen) SetActive(group selection.Group, label string) {
	if g := p.groupFor(group); g != nil {
		g.active = label
	}
}

// SetLink implements selection.View.
func (p *PickerScreen) SetLink(target selection.NavigationTarget) {
	p.target = target
}

// Navigate implements selection.View.
func (p *PickerScreen) Navigate(href string) {
	p.pending = href
	p.href = href
}

// Tracker returns the tracker driven by the screen.
func (p *PickerScreen) Tracker() *selection.Tracker {
	return p.tracker
}

// Target returns the go control as last pushed by the tracker.
func (p *PickerScreen) Target() selection.NavigationTarget {
	return p.target
}

// Href returns the data page the picker navigated to, if any.
func (p *PickerScreen) Href() string {
	return p.href
}

// Focus returns the index of the focused group.
func (p *PickerScreen) Focus() int {
	return p.focus
}

func (p *PickerScreen) Init() tea.Cmd { return nil }

func (p *PickerScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if p.searching {
			var cmd tea.Cmd
			p.search, cmd = p.search.Update(msg)
			return p, cmd
		}

		return p, nil
	}

	if p.searching {
		return p.handleSearchKey(key)
	}

	switch key.String() {
	case "up", "k", "shift+tab":
		if p.focus > 0 {
			p.focus--
		}
	case "down", "j", "tab":
		if p.focus < len(p.groups) {
			p.focus++
		}
	case "left", "h":
		if g := p.focusedGroup(); g != nil && g.cursor > 0 {
			g.cursor--
		}
	case "right", "l":
		if g := p.focusedGroup(); g != nil && g.cursor < len(g.items)-1 {
			g.cursor++
		}
	case "enter", " ":
		p.click()
	case "/":
		p.searching = true
		p.searchErr = ""
		p.search.SetValue("")
		return p, p.search.Focus()
	case "esc":
		return p, func() tea.Msg { return BackMsg{} }
	}

	return p, p.emitNavigation()
}

func (p *PickerScreen) handleSearchKey(key tea.KeyMsg) (Screen, tea.Cmd) {
	switch key.String() {
	case "esc":
		p.searching = false
		p.search.Blur()
		return p, nil
	case "enter":
		query := strings.TrimSpace(p.search.Value())
		p.searching = false
		p.search.Blur()

		idx := p.findState(query)
		if idx < 0 {
			p.searchErr = "No state matches " + query
			return p, nil
		}

		p.focus = p.groupIndex(selection.GroupState)
		g := p.groups[p.focus]
		g.cursor = idx
		p.click()
		return p, p.emitNavigation()
	}

	var cmd tea.Cmd
	p.search, cmd = p.search.Update(key)
	return p, cmd
}

// click sends the focused control to the tracker.
func (p *PickerScreen) click() {
	g := p.focusedGroup()
	if g == nil {
		p.tracker.FollowLink()
		return
	}

	if len(g.items) == 0 {
		return
	}

	value := g.items[g.cursor].value
	switch g.group {
	case selection.GroupIncome:
		p.tracker.SetIncome(value)
	case selection.GroupState:
		p.tracker.SetState(value)
	case selection.GroupTest:
		p.tracker.SetTestType(value)
	}
}

func (p *PickerScreen) emitNavigation() tea.Cmd {
	if p.pending == "" {
		return nil
	}

	href := p.pending
	p.pending = ""
	return func() tea.Msg { return NavigateMsg{Href: href} }
}

// findState matches a code, the show-all label, or a name prefix.
func (p *PickerScreen) findState(query string) int {
	if query == "" {
		return -1
	}

	g := p.groupFor(selection.GroupState)
	if g == nil {
		return -1
	}

	for i, it := range g.items {
		if strings.EqualFold(it.value, query) {
			return i
		}
	}

	lower := strings.ToLower(query)
	for i, s := range p.ref.States {
		if s.Code != selection.AllStates && strings.HasPrefix(strings.ToLower(s.Name), lower) {
			return i
		}
	}

	return -1
}

func (p *PickerScreen) focusedGroup() *pickerGroup {
	if p.focus < len(p.groups) {
		return p.groups[p.focus]
	}

	return nil
}

func (p *PickerScreen) groupFor(group selection.Group) *pickerGroup {
	if i := p.groupIndex(group); i >= 0 {
		return p.groups[i]
	}

	return nil
}

func (p *PickerScreen) groupIndex(group selection.Group) int {
	for i, g := range p.groups {
		if g.group == group {
			return i
		}
	}

	return -1
}

func (p *PickerScreen) View() string {
	var b strings.Builder

	b.WriteString("\n")

	for i, g := range p.groups {
		title := "  " + g.title
		if i == p.focus {
			title = p.theme.Cursor.Render("▸ " + g.title)
		}

		b.WriteString(title + "\n")

		perLine := len(g.items)
		if g.group == selection.GroupState {
			perLine = statesPerLine
		}

		for start := 0; start < len(g.items); start += perLine {
			end := min(start+perLine, len(g.items))
			b.WriteString("    ")

			for j := start; j < end; j++ {
				b.WriteString(p.renderItem(g, j, i == p.focus))
				b.WriteString(" ")
			}

			b.WriteString("\n")
		}

		b.WriteString("\n")
	}

	b.WriteString(p.renderLink())
	b.WriteString("\n")

	if p.searching {
		b.WriteString("\n" + p.search.View() + "\n")
	} else if p.searchErr != "" {
		b.WriteString("\n  " + p.theme.Warning.Render(p.searchErr) + "\n")
	}

	return b.String()
}

func (p *PickerScreen) renderItem(g *pickerGroup, idx int, focused bool) string {
	it := g.items[idx]
	text := " " + it.label + " "

	switch {
	case focused && idx == g.cursor:
		return p.theme.Highlight.Render(text)
	case it.value == g.active:
		return p.theme.Selected.Render("[" + it.label + "]")
	default:
		return p.theme.Normal.Render(text)
	}
}

func (p *PickerScreen) renderLink() string {
	prefix := "  "
	if p.focus == len(p.groups) {
		prefix = p.theme.Cursor.Render("▸ ")
	}

	label := p.theme.Dim.Render(p.target.Label)
	if p.target.Enabled {
		label = p.theme.Link.Render(p.target.Label) + p.theme.Dim.Render("  "+p.target.Href)
	}

	return prefix + label
}

// Breadcrumb lists each group with its chosen control.
func (p *PickerScreen) Breadcrumb() []BreadcrumbStep {
	steps := make([]BreadcrumbStep, 0, len(p.groups))
	for i, g := range p.groups {
		steps = append(steps, BreadcrumbStep{
			Group:   g.title,
			Choice:  g.activeLabel(),
			Focused: i == p.focus,
		})
	}

	return steps
}

func (p *PickerScreen) StatusHints() []KeyHint {
	if p.searching {
		return []KeyHint{
			{Key: "enter", Desc: "jump"},
			{Key: "esc", Desc: "cancel"},
		}
	}

	return []KeyHint{
		{Key: "↑↓", Desc: "group"},
		{Key: "←→", Desc: "choose"},
		{Key: "enter", Desc: "select"},
		{Key: "/", Desc: "find state"},
		{Key: "esc", Desc: "back"},
	}
}
