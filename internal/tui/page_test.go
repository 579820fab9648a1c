package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuthbertlab/college-costs/internal/reference"
	"github.com/cuthbertlab/college-costs/internal/site"
)

func testPage() site.Page {
	return site.Page{
		Year:   "2016",
		State:  reference.State{Code: "CA", Name: "California", Accent: "Cali"},
		Income: reference.IncomeLevel{Level: 1, Code: "1", Label: "$0-30k"},
		Test:   reference.TestType{Code: "SAT", Heading: "SAT 25th percentile"},
		Bands: []site.Band{
			{
				ID:         "1_700",
				Heading:    "SAT 25th percentile of 700 to 799",
				Affordable: []site.Row{{UnitID: 1, Name: "Cheap State University", Cost: 5000, Score: 710, GradPercent: 61, Public: true, StateCode: "CA"}},
				Expensive:  []site.Row{{UnitID: 2, Name: "Bay Private College", Cost: 15000, Score: 720, GradPercent: 85}},
			},
			{
				ID:      "1_800",
				Heading: "SAT 25th percentile of 800 to 899",
			},
			{
				ID:        "1_1200",
				Heading:   "SAT 25th percentile of 1200 to 1299",
				Expensive: []site.Row{{UnitID: 4, Name: "Luxe Institute", Cost: 45000, Score: 1210, GradPercent: 95, Danger: true}},
			},
		},
	}
}

func pressPage(t *testing.T, s Screen, keys ...tea.KeyMsg) (*PageScreen, tea.Cmd) {
	t.Helper()

	var cmd tea.Cmd
	for _, k := range keys {
		s, cmd = s.Update(k)
	}

	p, ok := s.(*PageScreen)
	require.True(t, ok)

	return p, cmd
}

func TestNewPageScreen_RegistersPanels(t *testing.T) {
	s := NewPageScreen(NewTheme(), testPage(), 100)

	assert.Nil(t, s.Init())
	assert.Equal(t, 2, s.Panels().Len())
	assert.True(t, s.Panels().Has("1_700"))
	assert.False(t, s.Panels().Has("1_800"))
	assert.True(t, s.Panels().Has("1_1200"))
}

func TestPageScreen_ExpensiveRowsHiddenUntilRevealed(t *testing.T) {
	s := NewPageScreen(NewTheme(), testPage(), 100)

	view := s.View()
	assert.Contains(t, view, "Cali")
	assert.Contains(t, view, "Cheap State University")
	assert.Contains(t, view, "(publ.)")
	assert.NotContains(t, view, "Bay Private College")
	assert.Contains(t, view, showMoreLabel)

	s, cmd := pressPage(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, s.Revealed("1_700"))
	assert.False(t, s.Revealed("1_1200"))
	assert.Contains(t, s.View(), "Bay Private College")
	assert.NotContains(t, s.View(), "Luxe Institute")
}

func TestPageScreen_TabMovesBetweenControls(t *testing.T) {
	s := NewPageScreen(NewTheme(), testPage(), 100)

	s, _ = pressPage(t, s, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, s.Revealed("1_700"))
	assert.True(t, s.Revealed("1_1200"))
	assert.Contains(t, s.View(), "Luxe Institute")

	// The remaining control takes the focus.
	s, _ = pressPage(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, s.Revealed("1_700"))
	assert.NotContains(t, s.View(), showMoreLabel)
}

func TestPageScreen_RevealIsIdempotent(t *testing.T) {
	s := NewPageScreen(NewTheme(), testPage(), 100)

	assert.True(t, s.Panels().Reveal("1_700"))
	assert.True(t, s.Panels().Reveal("1_700"))
	assert.False(t, s.Panels().Reveal("missing"))
	assert.True(t, s.Revealed("1_700"))
	assert.False(t, s.Revealed("missing"))

	hints := s.StatusHints()
	assert.Equal(t, "next option", hints[1].Desc)
}

func TestPageScreen_EnterWithoutControlsIsNoop(t *testing.T) {
	page := testPage()
	page.Bands = page.Bands[1:2]

	s, cmd := pressPage(t, NewPageScreen(NewTheme(), page, 100), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Len(t, s.StatusHints(), 2)
}

func TestPageScreen_ScrollAndBack(t *testing.T) {
	s := NewPageScreen(NewTheme(), testPage(), 4)

	s, _ = pressPage(t, s, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, s.offset)
	assert.Contains(t, s.View(), "more")

	s, _ = pressPage(t, s, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, s.offset)

	_, cmd := pressPage(t, s, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := cmd().(BackMsg)
	assert.True(t, ok)
}
