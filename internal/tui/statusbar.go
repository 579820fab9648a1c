package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders keybinding hints for the bottom status bar.
// Hints that do not fit in width are dropped from the end.
func RenderStatusBar(theme Theme, hints []KeyHint, width int) string {
	var parts []string
	used := 0

	for _, h := range hints {
		part := theme.StatusKey.Render(h.Key) + " " + h.Desc
		w := lipgloss.Width(part)
		if len(parts) > 0 {
			w += 2
		}

		if width > 0 && used+w > width {
			break
		}

		parts = append(parts, part)
		used += w
	}

	return theme.StatusBar.Render(strings.Join(parts, "  "))
}
