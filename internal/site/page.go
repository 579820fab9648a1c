package site

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/cuthbertlab/college-costs/internal/reference"
	"github.com/cuthbertlab/college-costs/internal/selection"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	scorecardSchoolURL = "https://collegescorecard.ed.gov/school/?%d"
	nameWidth          = 30

	publicInStateMark = "(publ.)"
)

var costPrinter = message.NewPrinter(language.AmericanEnglish)

// Page is one generated data page: a state (or all states), an income
// level and a test type.
type Page struct {
	Year   string
	State  reference.State
	Income reference.IncomeLevel
	Test   reference.TestType
	Bands  []Band
}

// Href returns the path of the page relative to the site root.
func (p Page) Href(dir string) string {
	return selection.Href(dir, p.Year, p.State.Code, p.Income.CodeOrLevel(), p.Test.Suffix)
}

// AllStates reports whether the page lists every state.
func (p Page) AllStates() bool {
	return p.State.Code == selection.AllStates
}

// Band is one score range of a page.
type Band struct {
	ID         string
	Min        int
	Max        int
	Heading    string
	Affordable []Row
	Expensive  []Row
}

// PanelID returns the id of the hidden panel listing the expensive rows.
func (b Band) PanelID() string {
	return selection.PanelID(b.ID)
}

// Row is one school line of a band.
type Row struct {
	UnitID      int
	Name        string
	Cost        int
	Score       int
	GradPercent int
	Public      bool
	StateCode   string
	Danger      bool // net price above the extreme threshold
}

// Mark returns the public school marker for a row on a page for stateCode.
func (r Row) Mark(stateCode string) string {
	if !r.Public {
		return ""
	}

	if stateCode == selection.AllStates {
		return "    *" + r.StateCode
	}

	return publicInStateMark
}

// Text returns the fixed-width columns of the row without markup.
func (r Row) Text(stateCode string) string {
	return fmt.Sprintf("%s  %s", padLeft(r.Name, nameWidth), r.columns(stateCode))
}

// HTML returns the row as a line of a <pre> block, linking the school to
// its scorecard page.
func (r Row) HTML(stateCode string) string {
	pad := strings.Repeat(" ", max(0, nameWidth-utf8.RuneCountInString(r.Name)))
	link := fmt.Sprintf(`<a href="`+scorecardSchoolURL+`">%s%s</a>`, r.UnitID, pad, html.EscapeString(r.Name))
	line := link + "  " + r.columns(stateCode)
	if r.Danger {
		return "<span class='danger'>" + line + "</span>"
	}

	return line
}

func (r Row) columns(stateCode string) string {
	return fmt.Sprintf("$%7s   %4d     %2d%% %7s", FormatCost(r.Cost), r.Score, r.GradPercent, r.Mark(stateCode))
}

// FormatCost formats a dollar amount with thousands separators.
func FormatCost(cost int) string {
	return costPrinter.Sprintf("%d", cost)
}

func padLeft(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}

	return strings.Repeat(" ", width-n) + s
}
