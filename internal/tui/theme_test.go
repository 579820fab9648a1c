package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()

	styles := map[string]lipgloss.Style{
		"title":     theme.Title,
		"separator": theme.Separator,
		"status":    theme.StatusBar,
		"key":       theme.StatusKey,
		"active":    theme.Active,
		"completed": theme.Completed,
		"cursor":    theme.Cursor,
		"selected":  theme.Selected,
		"highlight": theme.Highlight,
		"link":      theme.Link,
		"dim":       theme.Dim,
		"warning":   theme.Warning,
		"accent":    theme.Accent,
		"danger":    theme.Danger,
	}

	for name, style := range styles {
		assert.Contains(t, style.Render("CA"), "CA", name)
	}

	assert.True(t, theme.Title.GetBold())
	assert.True(t, theme.Link.GetUnderline())
	assert.Equal(t, colorRed, theme.Danger.GetForeground())
	assert.Equal(t, colorBlue, theme.Highlight.GetBackground())
}
