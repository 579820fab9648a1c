package tui

import "strings"

// BreadcrumbStep is one picker group shown in the title bar.
type BreadcrumbStep struct {
	Group   string // e.g. "Income"
	Choice  string // chosen control label, e.g. "$30-48k"; empty when none
	Focused bool
	Hidden  bool
}

func (s BreadcrumbStep) render(theme Theme) string {
	switch {
	case s.Focused && s.Choice != "":
		return theme.Active.Render(s.Group + ": " + s.Choice)
	case s.Focused:
		return theme.Active.Render(s.Group)
	case s.Choice != "":
		return theme.Completed.Render(s.Choice + " ✓")
	}

	return theme.Dim.Render(s.Group)
}

// RenderBreadcrumb joins the visible steps with a separator. It returns ""
// when no step is visible.
func RenderBreadcrumb(theme Theme, steps []BreadcrumbStep) string {
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		if !s.Hidden {
			parts = append(parts, s.render(theme))
		}
	}

	return strings.Join(parts, theme.BreadSep.Render(" › "))
}
