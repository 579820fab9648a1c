package reference

import (
	"strconv"
	"strings"

	"github.com/cuthbertlab/college-costs/internal/selection"
)

// State is a state or territory that has its own data pages.
type State struct {
	Code   string `yaml:"code"`
	Name   string `yaml:"name"`
	Accent string `yaml:"accent,omitempty"` // part of Name rendered highlighted
}

// Label returns the text shown on the picker control for the state.
func (s State) Label() string {
	if s.Code == selection.AllStates {
		return selection.ShowAllLabel
	}

	return s.Code
}

// HTMLName returns the name with its accent wrapped in a span. Names are
// expected to be trusted reference data.
func (s State) HTMLName() string {
	if s.Accent == "" {
		return s.Name
	}

	head, tail, found := strings.Cut(s.Name, s.Accent)
	if !found {
		return s.Name
	}

	return strings.TrimRight(head, " ") + `<span class="accent">` + s.Accent + "</span>" + tail
}

// IncomeLevel is a household income bracket of the scorecard net price columns.
type IncomeLevel struct {
	Level int    `yaml:"level"`
	Code  string `yaml:"code,omitempty"`
	Label string `yaml:"label"`
}

// CodeOrLevel returns Code, or the level number when Code is empty.
func (l IncomeLevel) CodeOrLevel() string {
	if l.Code != "" {
		return l.Code
	}

	return strconv.Itoa(l.Level)
}

// DefaultTestCode is the test whose pages carry no file name suffix.
const DefaultTestCode = "SAT"

// TestType is an admissions test whose 25th percentile score bands a data page.
type TestType struct {
	Code      string `yaml:"code"`
	Suffix    string `yaml:"suffix"`
	Heading   string `yaml:"heading"`
	BandStart int    `yaml:"band_start"`
	BandEnd   int    `yaml:"band_end"`
	BandStep  int    `yaml:"band_step"`
}

// Bands returns the lower bound of every score band.
func (t TestType) Bands() []int {
	if t.BandStep <= 0 {
		return nil
	}

	var bands []int
	for low := t.BandStart; low <= t.BandEnd; low += t.BandStep {
		bands = append(bands, low)
	}

	return bands
}

type document struct {
	Kind    string        `yaml:"kind"`
	States  []State       `yaml:"states,omitempty"`
	Incomes []IncomeLevel `yaml:"incomes,omitempty"`
	Tests   []TestType    `yaml:"tests,omitempty"`
}
