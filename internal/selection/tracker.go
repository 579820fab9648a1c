package selection

// View is the set of controls a Tracker reads clicks from and writes back to.
type View interface {
	// SetActive marks the control labelled label active and every other
	// control of the group inactive.
	SetActive(group Group, label string)
	// SetLink updates the go control.
	SetLink(target NavigationTarget)
	// Navigate leaves the picker for href. No events follow.
	Navigate(href string)
}

// Tracker owns the Selection of one picker session and keeps the go
// control of its View in sync with it.
type Tracker struct {
	view      View
	opts      Options
	sel       Selection
	target    NavigationTarget
	panels    *CostPanels
	navigated bool
}

// NewTracker returns a Tracker with nothing selected.
// A nil view is allowed; the tracker then only keeps state.
func NewTracker(view View, opts Options) *Tracker {
	return &Tracker{
		view: view,
		opts: opts.withDefaults(),
		target: NavigationTarget{
			Label: LabelInitial,
			Href:  PlaceholderHref,
		},
	}
}

// WithCostPanels attaches the detail panels used by RevealCost.
func (t *Tracker) WithCostPanels(panels *CostPanels) *Tracker {
	t.panels = panels
	return t
}

// Selection returns a copy of the current choices.
func (t *Tracker) Selection() Selection {
	return t.sel
}

// Target returns the current state of the go control.
func (t *Tracker) Target() NavigationTarget {
	return t.target
}

// Options returns the options the tracker was built with.
func (t *Tracker) Options() Options {
	return t.opts
}

// Navigated reports whether the tracker has left the picker.
func (t *Tracker) Navigated() bool {
	return t.navigated
}

// SetIncome records an income bracket click.
func (t *Tracker) SetIncome(value string) {
	if t.navigated {
		return
	}

	t.sel.Income = value
	t.sel.HasIncome = true
	t.setActive(GroupIncome, value)
	t.Recompute()
}

// SetState records a state click. The show-all label is stored as AllStates.
func (t *Tracker) SetState(label string) {
	if t.navigated {
		return
	}

	t.sel.State = NormalizeState(label)
	t.sel.HasState = true
	t.setActive(GroupState, label)
	t.Recompute()
}

// SetTestType records a test-type click. It does nothing unless
// Options.TestTypes is set.
func (t *Tracker) SetTestType(label string) {
	if t.navigated || !t.opts.TestTypes {
		return
	}

	t.sel.TestType = NormalizeTestType(label)
	t.setActive(GroupTest, label)
	t.sel.TestClicked = true
	t.Recompute()
}

// Recompute derives the go control from the current selection and pushes
// it to the view.
func (t *Tracker) Recompute() {
	if t.navigated {
		return
	}

	if t.opts.TestTypes {
		t.recomputeWithTestType()
	} else {
		t.recomputeBasic()
	}

	if t.view != nil {
		t.view.SetLink(t.target)
	}

	if t.opts.TestTypes && t.sel.Complete() && t.sel.TestClicked {
		t.navigate()
		t.sel.TestClicked = false
	}
}

// FollowLink navigates to the go control's target when it is enabled.
// It reports whether navigation happened.
func (t *Tracker) FollowLink() bool {
	if t.navigated || !t.target.Enabled {
		return false
	}

	t.navigate()
	return true
}

// RevealCost shows the detail panel of itemID and hides its control.
// Unknown ids are ignored.
func (t *Tracker) RevealCost(itemID string) {
	if t.panels == nil {
		return
	}

	t.panels.Reveal(itemID)
}

func (t *Tracker) recomputeBasic() {
	switch {
	case !t.sel.HasState:
		t.target = NavigationTarget{Label: LabelChooseState, Href: PlaceholderHref}
	case !t.sel.HasIncome:
		t.target = NavigationTarget{Label: LabelChooseIncome, Href: PlaceholderHref}
	default:
		t.target = NavigationTarget{
			Label:   LabelReady,
			Href:    Href(t.opts.DataDir, t.opts.Year, t.sel.State, t.sel.Income, ""),
			Enabled: true,
		}
	}
}

// recomputeWithTestType checks income before state. The href is left as is
// while income is missing and already points at the all-states page while
// state is missing, even though the link stays disabled.
func (t *Tracker) recomputeWithTestType() {
	switch {
	case !t.sel.HasIncome:
		t.target.Label = LabelChooseIncome
		t.target.Enabled = false
	case !t.sel.HasState:
		t.target = NavigationTarget{
			Label: LabelChooseState,
			Href:  Href(t.opts.DataDir, t.opts.Year, AllStates, t.sel.Income, t.sel.TestType),
		}
	default:
		t.target = NavigationTarget{
			Label:   LabelReady,
			Href:    Href(t.opts.DataDir, t.opts.Year, t.sel.State, t.sel.Income, t.sel.TestType),
			Enabled: true,
		}
	}
}

func (t *Tracker) navigate() {
	t.navigated = true
	if t.view != nil {
		t.view.Navigate(t.target.Href)
	}
}

func (t *Tracker) setActive(group Group, label string) {
	if t.view != nil {
		t.view.SetActive(group, label)
	}
}
