package site

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/cuthbertlab/college-costs/internal/reference"
)

// PageRef identifies the page behind a data page href.
type PageRef struct {
	State string
	Level int
	Test  string
}

// ParseHref splits a data page href such as "data/2016_TX3ACT.html" into
// its state, income level and test type.
func ParseHref(href, year string, ref *reference.Data) (PageRef, error) {
	base := path.Base(href)
	prefix := year + "_"
	if !strings.HasPrefix(base, prefix) || !strings.HasSuffix(base, ".html") {
		return PageRef{}, fmt.Errorf("not a %s data page: %q", year, href)
	}

	rest := strings.TrimSuffix(strings.TrimPrefix(base, prefix), ".html")

	for _, state := range statesLongestFirst(ref.States) {
		afterState, ok := strings.CutPrefix(rest, state.Code)
		if !ok {
			continue
		}

		for _, income := range ref.Incomes {
			suffix, ok := strings.CutPrefix(afterState, income.CodeOrLevel())
			if !ok {
				continue
			}

			test, ok := ref.TestBySuffix(suffix)
			if !ok {
				continue
			}

			return PageRef{State: state.Code, Level: income.Level, Test: test.Code}, nil
		}
	}

	return PageRef{}, fmt.Errorf("unknown data page %q", href)
}

func statesLongestFirst(states []reference.State) []reference.State {
	sorted := append([]reference.State(nil), states...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Code) > len(sorted[j].Code)
	})

	return sorted
}
