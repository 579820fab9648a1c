package selection

import "strings"

const (
	// ShowAllLabel is the state control label that selects every state.
	ShowAllLabel = "Show All"

	// AllStates is the state code used in file names for ShowAllLabel.
	AllStates = "None"

	// DefaultTestLabel is the test-type control label that maps to an
	// empty file name suffix.
	DefaultTestLabel = "SAT"

	// PlaceholderHref is the link target while no data page can be built.
	PlaceholderHref = "#files"

	DefaultDataDir = "data"
	DefaultYear    = "2016"
)

// Link labels shown on the go control.
const (
	LabelInitial      = "Choose Income and State"
	LabelChooseState  = "Choose your State/Territory"
	LabelChooseIncome = "Choose your Income"
	LabelReady        = "View College Costs!"
)

// Group identifies a set of sibling controls of which at most one is active.
type Group string

const (
	GroupIncome Group = "income"
	GroupState  Group = "state"
	GroupTest   Group = "test"
)

// Selection is the record of the user's filter choices.
type Selection struct {
	State       string
	HasState    bool
	Income      string
	HasIncome   bool
	TestType    string
	TestClicked bool
}

// Complete reports whether both state and income have been chosen.
func (s Selection) Complete() bool {
	return s.HasState && s.HasIncome
}

// NavigationTarget is the label, link and enabled flag of the go control.
type NavigationTarget struct {
	Label   string
	Href    string
	Enabled bool
}

// Options configures a Tracker.
type Options struct {
	// TestTypes enables the test-type controls and the automatic
	// navigation that follows a test-type click.
	TestTypes bool
	DataDir   string
	Year      string
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.DataDir) == "" {
		o.DataDir = DefaultDataDir
	}

	if strings.TrimSpace(o.Year) == "" {
		o.Year = DefaultYear
	}

	return o
}

// Href returns the path of the data page for the given choices,
// e.g. "data/2016_CA1.html" or "data/2016_TX3ACT.html".
func Href(dir, year, state, income, testType string) string {
	name := year + "_" + state + income + testType + ".html"
	if dir == "" {
		return name
	}

	return strings.TrimRight(dir, "/") + "/" + name
}

// NormalizeState maps the show-all label to AllStates.
func NormalizeState(label string) string {
	if label == ShowAllLabel {
		return AllStates
	}

	return label
}

// NormalizeTestType maps the default test label to an empty suffix.
func NormalizeTestType(label string) string {
	if label == DefaultTestLabel {
		return ""
	}

	return label
}
