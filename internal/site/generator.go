package site

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cuthbertlab/college-costs/internal/config"
	"github.com/cuthbertlab/college-costs/internal/reference"
	"github.com/cuthbertlab/college-costs/internal/scorecard"
	"github.com/cuthbertlab/college-costs/internal/selection"
)

type bandKey struct {
	level int
	test  string
	min   int
}

// Generator builds data pages from scorecard rows.
type Generator struct {
	profile   config.Profile
	reference *reference.Data
	schools   []scorecard.School
	renderer  *Renderer
	logger    *slog.Logger

	bands map[bandKey][]scorecard.Match
}

// NewGenerator returns a Generator. A nil logger discards log output.
func NewGenerator(profile config.Profile, ref *reference.Data, schools []scorecard.School, renderer *Renderer, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Generator{
		profile:   profile,
		reference: ref,
		schools:   schools,
		renderer:  renderer,
		logger:    logger,
		bands:     make(map[bandKey][]scorecard.Match),
	}
}

// BuildPage assembles the page for a state code (or selection.AllStates),
// an income level and a test type.
func (g *Generator) BuildPage(stateCode string, level int, testCode string) (Page, error) {
	state, ok := g.reference.State(stateCode)
	if !ok {
		return Page{}, fmt.Errorf("unknown state %q", stateCode)
	}

	income, ok := g.incomeByLevel(level)
	if !ok {
		return Page{}, fmt.Errorf("unknown income level %d", level)
	}

	test, ok := g.reference.Test(testCode)
	if !ok {
		return Page{}, fmt.Errorf("unknown test type %q", testCode)
	}

	threshold, ok := g.profile.Threshold(level)
	if !ok {
		return Page{}, fmt.Errorf("no cost thresholds for income level %d", level)
	}

	page := Page{
		Year:   g.profile.Year,
		State:  state,
		Income: income,
		Test:   test,
	}

	for _, low := range test.Bands() {
		high := low + test.BandStep - 1
		band := Band{
			ID:      strconv.Itoa(level) + "_" + strconv.Itoa(low),
			Min:     low,
			Max:     high,
			Heading: fmt.Sprintf("%s of %d to %d", test.Heading, low, high),
		}

		for _, m := range g.matches(level, test, low, high) {
			if state.Code != selection.AllStates && m.School.IsPublic() && m.School.StateCode() != state.Code {
				continue
			}

			row := rowFromMatch(m)
			if m.Cost <= threshold.Affordable {
				band.Affordable = append(band.Affordable, row)
				continue
			}

			row.Danger = m.Cost > threshold.Extreme
			band.Expensive = append(band.Expensive, row)
		}

		page.Bands = append(page.Bands, band)
	}

	return page, nil
}

// OpenPage builds the page an href produced by selection.Href points at.
func (g *Generator) OpenPage(href string) (Page, error) {
	ref, err := ParseHref(href, g.profile.Year, g.reference)
	if err != nil {
		return Page{}, err
	}

	return g.BuildPage(ref.State, ref.Level, ref.Test)
}

// WritePage renders a page into the profile's output directory and returns
// the written path.
func (g *Generator) WritePage(page Page) (string, error) {
	path := filepath.FromSlash(page.Href(g.profile.OutDir))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output directory %q: %w", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create page %q: %w", path, err)
	}

	if err := g.renderer.Render(f, page); err != nil {
		f.Close()
		return "", fmt.Errorf("render page %q: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close page %q: %w", path, err)
	}

	return path, nil
}

// GenerateAll writes one page per income level, state and test type and
// returns the number of pages written. It stops between pages when ctx
// is done.
func (g *Generator) GenerateAll(ctx context.Context, tests []reference.TestType) (int, error) {
	written := 0
	for _, income := range g.reference.Incomes {
		for _, state := range g.reference.States {
			for _, test := range tests {
				if err := ctx.Err(); err != nil {
					return written, err
				}

				page, err := g.BuildPage(state.Code, income.Level, test.Code)
				if err != nil {
					return written, err
				}

				path, err := g.WritePage(page)
				if err != nil {
					return written, err
				}

				g.logger.Info("generated page", "state", state.Code, "income", income.Level, "test", test.Code, "path", path)
				written++
			}
		}
	}

	return written, nil
}

func (g *Generator) incomeByLevel(level int) (reference.IncomeLevel, bool) {
	for _, l := range g.reference.Incomes {
		if l.Level == level {
			return l, true
		}
	}

	return reference.IncomeLevel{}, false
}

// matches returns the filtered rows of a band across all states, cached
// per level, test and band.
func (g *Generator) matches(level int, test reference.TestType, low, high int) []scorecard.Match {
	key := bandKey{level: level, test: test.Code, min: low}
	if cached, ok := g.bands[key]; ok {
		return cached
	}

	matches := scorecard.Filter(g.schools, scorecard.Criteria{
		Test:        test.Code,
		ScoreMin:    low,
		ScoreMax:    high,
		Level:       level,
		MinGradRate: g.profile.MinGradRate,
	})
	g.bands[key] = matches

	return matches
}

func rowFromMatch(m scorecard.Match) Row {
	return Row{
		UnitID:      m.School.UnitID(),
		Name:        m.School.ShortName(),
		Cost:        m.Cost,
		Score:       m.Score,
		GradPercent: int(m.GradRate * 100),
		Public:      m.School.IsPublic(),
		StateCode:   m.School.StateCode(),
	}
}
