package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cuthbertlab/college-costs/internal/reference"
	"github.com/cuthbertlab/college-costs/internal/selection"
)

var errPickerCancelled = errors.New("picker cancelled")

// promptView is the selection.View of the prompt based pickers. It prints
// the go control whenever the tracker changes it.
type promptView struct {
	output io.Writer
	active map[selection.Group]string
	target selection.NavigationTarget
	href   string
}

func newPromptView(output io.Writer) *promptView {
	return &promptView{output: output, active: make(map[selection.Group]string)}
}

func (v *promptView) SetActive(group selection.Group, label string) {
	v.active[group] = label
}

func (v *promptView) SetLink(target selection.NavigationTarget) {
	v.target = target
	if v.output == nil {
		return
	}

	if target.Enabled {
		fmt.Fprintf(v.output, "-> %s (%s)\n", target.Label, target.Href)
		return
	}

	fmt.Fprintf(v.output, "-> %s\n", target.Label)
}

func (v *promptView) Navigate(href string) {
	v.href = href
}

// runPickerPlain asks for income, state and, when enabled, the test type
// with numbered prompts and returns the data page href.
func runPickerPlain(output io.Writer, reader *bufio.Reader, ref *reference.Data, opts selection.Options) (string, error) {
	view := newPromptView(output)
	tracker := selection.NewTracker(view, opts)

	fmt.Fprintln(output, "Step 1: Income")
	income, err := pickIncomePlain(output, reader, ref)
	if err != nil {
		return "", err
	}
	tracker.SetIncome(income.CodeOrLevel())

	fmt.Fprintln(output)
	fmt.Fprintln(output, "Step 2: State/Territory")
	state, err := pickStatePlain(output, reader, ref)
	if err != nil {
		return "", err
	}
	tracker.SetState(state.Label())

	if opts.TestTypes {
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Step 3: Test")
		test, err := pickTestPlain(output, reader, ref)
		if err != nil {
			return "", err
		}

		// Picking a test navigates on its own.
		tracker.SetTestType(test.Code)
	}

	if !tracker.Navigated() && !tracker.FollowLink() {
		return "", fmt.Errorf("no data page for the selection: %s", tracker.Target().Label)
	}

	return view.href, nil
}

func pickIncomePlain(output io.Writer, reader *bufio.Reader, ref *reference.Data) (reference.IncomeLevel, error) {
	if len(ref.Incomes) == 0 {
		return reference.IncomeLevel{}, errors.New("no income levels defined")
	}

	for i, l := range ref.Incomes {
		fmt.Fprintf(output, "  %d) %s\n", i+1, l.Label)
	}

	for {
		choice, err := readTrimmedLine(reader, output, fmt.Sprintf("Income [1-%d]: ", len(ref.Incomes)))
		if err != nil {
			return reference.IncomeLevel{}, fmt.Errorf("read income selection: %w", err)
		}

		index, err := strconv.Atoi(choice)
		if err != nil || index < 1 || index > len(ref.Incomes) {
			fmt.Fprintln(output, "Invalid selection.")
			continue
		}

		return ref.Incomes[index-1], nil
	}
}

func pickStatePlain(output io.Writer, reader *bufio.Reader, ref *reference.Data) (reference.State, error) {
	for {
		query, err := readTrimmedLine(reader, output, "State code or name (Enter=Show All): ")
		if err != nil {
			return reference.State{}, fmt.Errorf("read state search: %w", err)
		}

		if query == "" {
			query = selection.AllStates
		}

		if state, err := resolveState(ref, query); err == nil {
			return state, nil
		}

		matches := filterStates(ref.States, query)
		switch len(matches) {
		case 0:
			if guess, ok := suggestState(ref, query); ok {
				fmt.Fprintf(output, "No states match %q. Did you mean %s (%s)?\n", query, guess.Name, guess.Code)
				continue
			}

			fmt.Fprintf(output, "No states match %q.\n", query)
			continue
		case 1:
			return matches[0], nil
		}

		fmt.Fprintln(output, "Matches:")
		for i, s := range matches {
			fmt.Fprintf(output, "  %d) %s (%s)\n", i+1, s.Name, s.Label())
		}

		choice, err := readTrimmedLine(reader, output, "State number: ")
		if err != nil {
			return reference.State{}, fmt.Errorf("read state selection: %w", err)
		}

		index, err := strconv.Atoi(choice)
		if err != nil || index < 1 || index > len(matches) {
			fmt.Fprintln(output, "Invalid selection.")
			continue
		}

		return matches[index-1], nil
	}
}

func pickTestPlain(output io.Writer, reader *bufio.Reader, ref *reference.Data) (reference.TestType, error) {
	for i, t := range ref.Tests {
		fmt.Fprintf(output, "  %d) %s\n", i+1, t.Code)
	}

	for {
		choice, err := readTrimmedLine(reader, output, fmt.Sprintf("Test [1-%d]: ", len(ref.Tests)))
		if err != nil {
			return reference.TestType{}, fmt.Errorf("read test selection: %w", err)
		}

		if t, err := resolveTest(ref, choice); err == nil {
			return t, nil
		}

		index, err := strconv.Atoi(choice)
		if err != nil || index < 1 || index > len(ref.Tests) {
			fmt.Fprintln(output, "Invalid selection.")
			continue
		}

		return ref.Tests[index-1], nil
	}
}

// filterStates matches query against state names, case-insensitively.
func filterStates(states []reference.State, query string) []reference.State {
	lower := strings.ToLower(strings.TrimSpace(query))
	if lower == "" {
		return states
	}

	var out []reference.State
	for _, s := range states {
		if s.Code == selection.AllStates {
			continue
		}

		if strings.Contains(strings.ToLower(s.Name), lower) {
			out = append(out, s)
		}
	}

	return out
}
