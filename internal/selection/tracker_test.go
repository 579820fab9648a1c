package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeView struct {
	active    map[Group]string
	links     []NavigationTarget
	navigated []string
}

func newFakeView() *fakeView {
	return &fakeView{active: make(map[Group]string)}
}

func (v *fakeView) SetActive(group Group, label string) {
	v.active[group] = label
}

func (v *fakeView) SetLink(target NavigationTarget) {
	v.links = append(v.links, target)
}

func (v *fakeView) Navigate(href string) {
	v.navigated = append(v.navigated, href)
}

func (v *fakeView) lastLink(t *testing.T) NavigationTarget {
	t.Helper()
	require.NotEmpty(t, v.links)
	return v.links[len(v.links)-1]
}

func TestNewTracker_InitialTarget(t *testing.T) {
	tracker := NewTracker(newFakeView(), Options{})

	target := tracker.Target()
	assert.Equal(t, LabelInitial, target.Label)
	assert.Equal(t, PlaceholderHref, target.Href)
	assert.False(t, target.Enabled)
	assert.Equal(t, DefaultDataDir, tracker.Options().DataDir)
	assert.Equal(t, DefaultYear, tracker.Options().Year)
}

func TestTracker_StateThenIncome(t *testing.T) {
	view := newFakeView()
	tracker := NewTracker(view, Options{})

	tracker.SetState("CA")
	assert.Equal(t, LabelChooseIncome, view.lastLink(t).Label)
	assert.False(t, view.lastLink(t).Enabled)

	tracker.SetIncome("Low")

	link := view.lastLink(t)
	assert.Equal(t, "data/2016_CALow.html", link.Href)
	assert.Equal(t, LabelReady, link.Label)
	assert.True(t, link.Enabled)
	assert.Equal(t, "CA", view.active[GroupState])
	assert.Equal(t, "Low", view.active[GroupIncome])
	assert.Empty(t, view.navigated)
}

func TestTracker_IncomeOnly(t *testing.T) {
	view := newFakeView()
	tracker := NewTracker(view, Options{})

	tracker.SetIncome("Low")

	link := view.lastLink(t)
	assert.Equal(t, LabelChooseState, link.Label)
	assert.Equal(t, PlaceholderHref, link.Href)
	assert.False(t, link.Enabled)
}

func TestTracker_ShowAllCountsAsChosen(t *testing.T) {
	view := newFakeView()
	tracker := NewTracker(view, Options{})

	tracker.SetState(ShowAllLabel)
	tracker.SetIncome("3")

	link := view.lastLink(t)
	assert.True(t, link.Enabled)
	assert.Equal(t, "data/2016_None3.html", link.Href)
	assert.Equal(t, ShowAllLabel, view.active[GroupState])
	assert.Equal(t, AllStates, tracker.Selection().State)
}

func TestTracker_ChangingChoiceRebuildsHref(t *testing.T) {
	view := newFakeView()
	tracker := NewTracker(view, Options{})

	tracker.SetState("CA")
	tracker.SetIncome("1")
	tracker.SetState("MA")
	tracker.SetIncome("4")

	assert.Equal(t, "data/2016_MA4.html", view.lastLink(t).Href)
	assert.Equal(t, "MA", view.active[GroupState])
	assert.Equal(t, "4", view.active[GroupIncome])
}

func TestTracker_TestTypeIgnoredWithoutOption(t *testing.T) {
	view := newFakeView()
	tracker := NewTracker(view, Options{})

	tracker.SetTestType("ACT")

	assert.Empty(t, view.links)
	assert.False(t, tracker.Selection().TestClicked)
	assert.Empty(t, tracker.Selection().TestType)
}

func TestTracker_TestTypeBeforeState(t *testing.T) {
	view := newFakeView()
	tracker := NewTracker(view, Options{TestTypes: true})

	tracker.SetIncome("Mid")
	tracker.SetTestType("ACT")

	link := view.lastLink(t)
	assert.Equal(t, "data/2016_NoneMidACT.html", link.Href)
	assert.Equal(t, LabelChooseState, link.Label)
	assert.False(t, link.Enabled)
	assert.Empty(t, view.navigated)
	assert.True(t, tracker.Selection().TestClicked)
	assert.False(t, tracker.Navigated())
}

func TestTracker_TestTypeAfterStateNavigates(t *testing.T) {
	view := newFakeView()
	tracker := NewTracker(view, Options{TestTypes: true})

	tracker.SetIncome("Mid")
	tracker.SetState("TX")
	assert.Empty(t, view.navigated)

	tracker.SetTestType("ACT")

	require.Len(t, view.navigated, 1)
	assert.Equal(t, "data/2016_TXMidACT.html", view.navigated[0])
	assert.False(t, tracker.Selection().TestClicked)
	assert.True(t, tracker.Navigated())
	assert.Equal(t, "ACT", view.active[GroupTest])
}

func TestTracker_IncomeMissingKeepsHref(t *testing.T) {
	view := newFakeView()
	tracker := NewTracker(view, Options{TestTypes: true})

	tracker.SetState("TX")

	link := view.lastLink(t)
	assert.Equal(t, LabelChooseIncome, link.Label)
	assert.Equal(t, PlaceholderHref, link.Href)
	assert.False(t, link.Enabled)
}

func TestTracker_StateAfterTestClickNavigates(t *testing.T) {
	view := newFakeView()
	tracker := NewTracker(view, Options{TestTypes: true})

	tracker.SetIncome("2")
	tracker.SetTestType("ACT")
	tracker.SetState("OH")

	require.Len(t, view.navigated, 1)
	assert.Equal(t, "data/2016_OH2ACT.html", view.navigated[0])
}

func TestTracker_DefaultTestLabelIsEmptySuffix(t *testing.T) {
	view := newFakeView()
	tracker := NewTracker(view, Options{TestTypes: true})

	tracker.SetIncome("5")
	tracker.SetState("NY")
	tracker.SetTestType(DefaultTestLabel)

	require.Len(t, view.navigated, 1)
	assert.Equal(t, "data/2016_NY5.html", view.navigated[0])
	assert.Equal(t, DefaultTestLabel, view.active[GroupTest])
	assert.Empty(t, tracker.Selection().TestType)
}

func TestTracker_IgnoresEventsAfterNavigation(t *testing.T) {
	view := newFakeView()
	tracker := NewTracker(view, Options{TestTypes: true})

	tracker.SetIncome("1")
	tracker.SetState("CA")
	tracker.SetTestType("ACT")
	linksBefore := len(view.links)

	tracker.SetState("TX")
	tracker.SetIncome("2")
	tracker.SetTestType(DefaultTestLabel)

	assert.Len(t, view.links, linksBefore)
	assert.Len(t, view.navigated, 1)
	assert.Equal(t, "CA", tracker.Selection().State)
}

func TestTracker_FollowLink(t *testing.T) {
	view := newFakeView()
	tracker := NewTracker(view, Options{})

	assert.False(t, tracker.FollowLink())

	tracker.SetState("CA")
	tracker.SetIncome("1")

	assert.True(t, tracker.FollowLink())
	assert.Equal(t, []string{"data/2016_CA1.html"}, view.navigated)
	assert.False(t, tracker.FollowLink())
}

func TestTracker_CustomDataDirAndYear(t *testing.T) {
	view := newFakeView()
	tracker := NewTracker(view, Options{DataDir: "out/", Year: "2024"})

	tracker.SetState("WA")
	tracker.SetIncome("2")

	assert.Equal(t, "out/2024_WA2.html", view.lastLink(t).Href)
}

func TestTracker_NilView(t *testing.T) {
	tracker := NewTracker(nil, Options{TestTypes: true})

	tracker.SetIncome("1")
	tracker.SetState("CA")
	tracker.SetTestType("ACT")

	assert.True(t, tracker.Navigated())
	assert.Equal(t, "data/2016_CA1ACT.html", tracker.Target().Href)
}

func TestTracker_EnabledIffStateAndIncome(t *testing.T) {
	type click struct {
		group Group
		value string
	}

	sequences := [][]click{
		{},
		{{GroupState, "CA"}},
		{{GroupIncome, "1"}},
		{{GroupIncome, "1"}, {GroupState, ShowAllLabel}},
		{{GroupState, "CA"}, {GroupIncome, "1"}},
		{{GroupIncome, "1"}, {GroupIncome, "2"}},
		{{GroupState, "CA"}, {GroupState, "TX"}, {GroupIncome, "3"}},
	}

	for _, variant := range []bool{false, true} {
		for _, seq := range sequences {
			tracker := NewTracker(newFakeView(), Options{TestTypes: variant})
			for _, c := range seq {
				switch c.group {
				case GroupState:
					tracker.SetState(c.value)
				case GroupIncome:
					tracker.SetIncome(c.value)
				}
			}

			sel := tracker.Selection()
			assert.Equal(t, sel.HasState && sel.HasIncome, tracker.Target().Enabled, "variant=%v seq=%v", variant, seq)
		}
	}
}

func TestHref(t *testing.T) {
	tests := []struct {
		name     string
		dir      string
		state    string
		income   string
		testType string
		want     string
	}{
		{name: "state and income", dir: "data", state: "CA", income: "1", want: "data/2016_CA1.html"},
		{name: "all states", dir: "data", state: AllStates, income: "5", want: "data/2016_None5.html"},
		{name: "test suffix", dir: "data", state: "TX", income: "Mid", testType: "ACT", want: "data/2016_TXMidACT.html"},
		{name: "no dir", state: "OH", income: "2", want: "2016_OH2.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Href(tt.dir, "2016", tt.state, tt.income, tt.testType))
		})
	}
}
