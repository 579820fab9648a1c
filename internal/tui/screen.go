package tui

import tea "github.com/charmbracelet/bubbletea"

// KeyHint describes a keybinding shown in the status bar.
type KeyHint struct {
	Key  string
	Desc string
}

// Screen defines the interface each screen of the picker must implement.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	StatusHints() []KeyHint
}

// breadcrumber is implemented by screens that contribute steps to the
// title bar.
type breadcrumber interface {
	Breadcrumb() []BreadcrumbStep
}

// NavigateMsg is sent when the picker follows its link to a data page.
type NavigateMsg struct {
	Href string
}

// BackMsg requests navigation back to the main menu.
type BackMsg struct{}

// menuSelectMsg is sent when a main menu item is selected.
type menuSelectMsg struct {
	item string
}
