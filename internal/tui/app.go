package tui

import (
	"bytes"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cuthbertlab/college-costs/internal/app"
	"github.com/cuthbertlab/college-costs/internal/reference"
	"github.com/cuthbertlab/college-costs/internal/selection"
	"github.com/cuthbertlab/college-costs/internal/site"
)

// Callbacks provides the data behind the menu entries. Render functions
// write pre-formatted text to the given writer.
type Callbacks struct {
	RenderInversions  func(w io.Writer) error
	RenderStatesList  func(w io.Writer) error
	RenderIncomesList func(w io.Writer) error

	// OpenPage builds the data page behind an href. When nil the picker
	// only shows the href it navigated to.
	OpenPage func(href string) (site.Page, error)
}

// PickerConfig holds what the picker needs to build its controls.
type PickerConfig struct {
	Reference *reference.Data
	Options   selection.Options
}

// WizardModel is the root Bubble Tea model for the full-screen TUI.
type WizardModel struct {
	theme     Theme
	screen    Screen
	callbacks Callbacks
	picker    PickerConfig
	version   string
	href      string
	quitBack  bool // BackMsg quits instead of showing the menu
	width     int
	height    int
}

// NewWizardModel creates a new root model starting at the main menu.
func NewWizardModel(cb Callbacks, picker PickerConfig, version string) WizardModel {
	theme := NewTheme()
	return WizardModel{
		theme:     theme,
		screen:    NewMenuScreen(theme),
		callbacks: cb,
		picker:    picker,
		version:   version,
	}
}

// NewPageModel creates a root model that only shows page and quits when
// the viewer is left.
func NewPageModel(page site.Page, version string) WizardModel {
	theme := NewTheme()
	return WizardModel{
		theme:    theme,
		screen:   NewPageScreen(theme, page, ContentHeight),
		version:  version,
		quitBack: true,
	}
}

// Href returns the last data page the picker navigated to.
func (m WizardModel) Href() string {
	return m.href
}

func (m WizardModel) Init() tea.Cmd {
	return m.screen.Init()
}

func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Forwarded to the screen below.

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case menuSelectMsg:
		return m.handleMenuSelect(msg)

	case NavigateMsg:
		return m.openPage(msg.Href)

	case BackMsg:
		if m.quitBack {
			return m, tea.Quit
		}

		m.screen = NewMenuScreen(m.theme)
		return m, m.screen.Init()
	}

	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, cmd
}

func (m WizardModel) View() string {
	title := app.App{Name: app.Name, Version: m.version}
	titleBar := m.theme.Title.Render(title.Title())
	if bc, ok := m.screen.(breadcrumber); ok {
		if crumbs := RenderBreadcrumb(m.theme, bc.Breadcrumb()); crumbs != "" {
			titleBar += "  " + crumbs
		}
	}

	sepWidth := m.width
	if sepWidth <= 0 {
		sepWidth = 40
	}

	separator := m.theme.Separator.Render(strings.Repeat("─", sepWidth))
	content := padToHeight(m.screen.View(), m.contentHeight())
	statusBar := RenderStatusBar(m.theme, m.screen.StatusHints(), m.width)

	return titleBar + "\n" + separator + "\n" + content + "\n" + statusBar
}

func (m WizardModel) contentHeight() int {
	return contentHeightFromTerminal(m.height)
}

func (m WizardModel) handleMenuSelect(msg menuSelectMsg) (tea.Model, tea.Cmd) {
	switch msg.item {
	case menuExit:
		return m, tea.Quit

	case menuChoose:
		if m.picker.Reference == nil {
			m.screen = NewOutputScreen(m.theme, "(reference data not loaded)", m.contentHeight())
			return m, m.screen.Init()
		}

		m.screen = NewPickerScreen(m.theme, m.picker.Reference, m.picker.Options)
		return m, m.screen.Init()

	case menuInversions:
		m.screen = m.renderToOutput(m.callbacks.RenderInversions)
		return m, m.screen.Init()

	case menuStates:
		m.screen = m.renderToOutput(m.callbacks.RenderStatesList)
		return m, m.screen.Init()

	case menuIncomes:
		m.screen = m.renderToOutput(m.callbacks.RenderIncomesList)
		return m, m.screen.Init()
	}

	return m, nil
}

func (m WizardModel) openPage(href string) (tea.Model, tea.Cmd) {
	m.href = href

	if m.callbacks.OpenPage == nil {
		content := "Data page:\n\n  " + href + "\n\n" +
			"Load a scorecard CSV to view it here:\n\n" +
			"  college-costs --csv <file>\n"
		m.screen = NewOutputScreen(m.theme, content, m.contentHeight())
		return m, m.screen.Init()
	}

	page, err := m.callbacks.OpenPage(href)
	if err != nil {
		m.screen = NewOutputScreen(m.theme, "Error: "+err.Error(), m.contentHeight())
		return m, m.screen.Init()
	}

	m.screen = NewPageScreen(m.theme, page, m.contentHeight())
	return m, m.screen.Init()
}

// renderToOutput runs a callback, captures its output, and returns an
// OutputScreen displaying the result.
func (m WizardModel) renderToOutput(fn func(io.Writer) error) *OutputScreen {
	if fn == nil {
		return NewOutputScreen(m.theme, "(not available)", m.contentHeight())
	}

	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return NewOutputScreen(m.theme, "Error: "+err.Error(), m.contentHeight())
	}

	return NewOutputScreen(m.theme, buf.String(), m.contentHeight())
}

// contentHeightFromTerminal returns the content area height for a terminal
// of termHeight lines, at least one line.
func contentHeightFromTerminal(termHeight int) int {
	if termHeight <= 0 {
		return ContentHeight
	}

	return max(termHeight-ChromeLines, 1)
}

// padToHeight pads or truncates content to exactly targetHeight lines.
func padToHeight(content string, targetHeight int) string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for len(lines) < targetHeight {
		lines = append(lines, "")
	}

	return strings.Join(lines[:targetHeight], "\n")
}

// Run starts the full-screen TUI and returns the last data page the
// picker navigated to.
func Run(cb Callbacks, picker PickerConfig, version string) (string, error) {
	p := tea.NewProgram(NewWizardModel(cb, picker, version), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", err
	}

	if wm, ok := final.(WizardModel); ok {
		return wm.Href(), nil
	}

	return "", nil
}

// RunPage shows a single data page full screen.
func RunPage(page site.Page, version string) error {
	_, err := tea.NewProgram(NewPageModel(page, version), tea.WithAltScreen()).Run()
	return err
}
