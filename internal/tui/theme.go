package tui

import "github.com/charmbracelet/lipgloss"

const (
	// ContentHeight is the number of content lines used while the
	// terminal height is unknown.
	ContentHeight = 13

	// ChromeLines is the number of lines taken by the title bar, the
	// separator and the status bar.
	ChromeLines = 3
)

// ANSI palette indexes, so the UI follows the terminal's color scheme.
var (
	colorRed     = lipgloss.Color("1")
	colorGreen   = lipgloss.Color("2")
	colorYellow  = lipgloss.Color("3")
	colorBlue    = lipgloss.Color("4")
	colorMagenta = lipgloss.Color("5")
	colorCyan    = lipgloss.Color("6")
	colorGray    = lipgloss.Color("8")
	colorWhite   = lipgloss.Color("15")
)

// Theme holds Lip Gloss styles for the TUI.
type Theme struct {
	// Chrome
	Title     lipgloss.Style
	Separator lipgloss.Style
	StatusBar lipgloss.Style
	StatusKey lipgloss.Style
	BreadSep  lipgloss.Style

	// Breadcrumb steps
	Active    lipgloss.Style
	Completed lipgloss.Style

	// Controls
	Normal    lipgloss.Style
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Highlight lipgloss.Style
	Link      lipgloss.Style

	// Content
	Dim     lipgloss.Style
	Warning lipgloss.Style
	Accent  lipgloss.Style // highlighted part of a state name
	Danger  lipgloss.Style // schools above the extreme threshold
}

// NewTheme creates a Theme with the default color palette.
func NewTheme() Theme {
	plain := lipgloss.NewStyle()
	bold := plain.Bold(true)

	return Theme{
		Title:     bold,
		Separator: plain.Foreground(colorBlue),
		StatusBar: plain.Foreground(colorGray),
		StatusKey: bold.Foreground(colorGray),
		BreadSep:  plain.Foreground(colorGray),

		Active:    bold.Foreground(colorCyan),
		Completed: plain.Foreground(colorGreen),

		Normal:    plain,
		Cursor:    bold.Foreground(colorCyan),
		Selected:  bold.Foreground(colorGreen),
		Highlight: bold.Foreground(colorWhite).Background(colorBlue),
		Link:      bold.Underline(true).Foreground(colorGreen),

		Dim:     plain.Foreground(colorGray),
		Warning: plain.Foreground(colorYellow),
		Accent:  bold.Foreground(colorMagenta),
		Danger:  plain.Foreground(colorRed),
	}
}
