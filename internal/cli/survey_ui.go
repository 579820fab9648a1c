package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	surveycore "github.com/AlecAivazis/survey/v2/core"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/cuthbertlab/college-costs/internal/reference"
	"github.com/cuthbertlab/college-costs/internal/selection"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errSurveyBack is returned by askSurveyPrompt when Esc was pressed.
var errSurveyBack = errors.New("back")

var askSurveyOne = func(prompt survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	return survey.AskOne(prompt, response, opts...)
}

func canUseInteractiveUI(input io.Reader, output io.Writer) bool {
	inputFile, inputOK := input.(*os.File)
	outputFile, outputOK := output.(*os.File)
	if !inputOK || !outputOK {
		return false
	}

	return term.IsTerminal(int(inputFile.Fd())) && term.IsTerminal(int(outputFile.Fd()))
}

func runGuidedMainMenuSurvey(cmd *cobra.Command, s *session) error {
	output := cmd.OutOrStdout()

	for {
		printSurveyHint(output, "Use Up/Down arrows, Enter to select.")

		choice := ""
		prompt := &survey.Select{
			Message:  "Main Menu",
			Options:  []string{"Choose state and income", "Cost inversions", "List states", "List incomes", "Exit"},
			PageSize: 5,
		}

		if err := askSurveyPrompt(cmd, prompt, &choice); err != nil {
			if errors.Is(err, errSurveyBack) {
				fmt.Fprintln(output, "Goodbye.")
				return nil
			}

			return fmt.Errorf("read menu option: %w", err)
		}

		fmt.Fprintln(output)

		switch choice {
		case "Choose state and income":
			href, err := runPickerSurvey(cmd, s.ref, s.options())
			if errors.Is(err, errPickerCancelled) {
				continue
			}
			if err != nil {
				return err
			}

			if err := showPicked(output, s, href); err != nil {
				return err
			}
		case "Cost inversions":
			if err := renderInversions(output, s); err != nil {
				fmt.Fprintf(output, "Error: %v\n", err)
			}
		case "List states":
			printStatesList(output, s.ref)
		case "List incomes":
			printIncomesList(output, s.ref)
		case "Exit":
			fmt.Fprintln(output, "Goodbye.")
			return nil
		}

		fmt.Fprintln(output)
	}
}

// runPickerSurvey asks for income, state and, when enabled, the test type
// with survey prompts. Esc steps back; Esc on the first step cancels.
func runPickerSurvey(cmd *cobra.Command, ref *reference.Data, opts selection.Options) (string, error) {
	view := newPromptView(cmd.OutOrStdout())
	tracker := selection.NewTracker(view, opts)

	steps := []func() error{
		func() error {
			income, err := pickIncomeSurvey(cmd, ref)
			if err == nil {
				tracker.SetIncome(income.CodeOrLevel())
			}
			return err
		},
		func() error {
			state, err := pickStateSurvey(cmd, ref)
			if err == nil {
				tracker.SetState(state.Label())
			}
			return err
		},
	}

	if opts.TestTypes {
		steps = append(steps, func() error {
			test, err := pickTestSurvey(cmd, ref)
			if err == nil {
				tracker.SetTestType(test.Code)
			}
			return err
		})
	}

	for i := 0; i < len(steps); {
		err := steps[i]()
		if errors.Is(err, errSurveyBack) {
			if i == 0 {
				return "", errPickerCancelled
			}

			i--
			continue
		}

		if err != nil {
			return "", err
		}

		i++
	}

	if !tracker.Navigated() && !tracker.FollowLink() {
		return "", fmt.Errorf("no data page for the selection: %s", tracker.Target().Label)
	}

	return view.href, nil
}

func pickIncomeSurvey(cmd *cobra.Command, ref *reference.Data) (reference.IncomeLevel, error) {
	labels := make([]string, 0, len(ref.Incomes))
	for _, l := range ref.Incomes {
		labels = append(labels, l.Label)
	}

	choice := ""
	printSurveyHint(cmd.OutOrStdout(), "Use Up/Down arrows, Enter to select, Esc to go back.")

	prompt := &survey.Select{Message: "Household income", Options: labels, PageSize: len(labels)}
	if err := askSurveyPrompt(cmd, prompt, &choice); err != nil {
		return reference.IncomeLevel{}, wrapSurveyErr("read income selection", err)
	}

	for _, l := range ref.Incomes {
		if l.Label == choice {
			return l, nil
		}
	}

	return reference.IncomeLevel{}, fmt.Errorf("selected income %q not found", choice)
}

func pickStateSurvey(cmd *cobra.Command, ref *reference.Data) (reference.State, error) {
	labels := make([]string, 0, len(ref.States))
	byLabel := make(map[string]reference.State, len(ref.States))
	for _, s := range ref.States {
		label := fmt.Sprintf("%s - %s", s.Label(), s.Name)
		if s.Code == selection.AllStates {
			label = selection.ShowAllLabel + " - every state"
		}

		labels = append(labels, label)
		byLabel[label] = s
	}

	choice := ""
	printSurveyHint(cmd.OutOrStdout(), "Use Up/Down arrows, Enter to select, Esc to go back. Type to filter.")

	prompt := &survey.Select{
		Message:  "State/Territory",
		Options:  labels,
		PageSize: 10,
		Filter: func(filter string, value string, _ int) bool {
			if strings.TrimSpace(filter) == "" {
				return true
			}

			return strings.Contains(strings.ToLower(value), strings.ToLower(filter))
		},
		FilterMessage: "Filter:",
	}

	if err := askSurveyPrompt(cmd, prompt, &choice); err != nil {
		return reference.State{}, wrapSurveyErr("read state selection", err)
	}

	state, ok := byLabel[choice]
	if !ok {
		return reference.State{}, fmt.Errorf("selected state %q not found", choice)
	}

	return state, nil
}

func pickTestSurvey(cmd *cobra.Command, ref *reference.Data) (reference.TestType, error) {
	codes := make([]string, 0, len(ref.Tests))
	for _, t := range ref.Tests {
		codes = append(codes, t.Code)
	}

	choice := ""
	printSurveyHint(cmd.OutOrStdout(), "Use Up/Down arrows, Enter to select, Esc to go back.")

	prompt := &survey.Select{Message: "Test", Options: codes, PageSize: len(codes)}
	if err := askSurveyPrompt(cmd, prompt, &choice); err != nil {
		return reference.TestType{}, wrapSurveyErr("read test selection", err)
	}

	return resolveTest(ref, choice)
}

// wrapSurveyErr keeps errSurveyBack unwrapped so callers can step back.
func wrapSurveyErr(action string, err error) error {
	if errors.Is(err, errSurveyBack) {
		return err
	}

	return fmt.Errorf("%s: %w", action, err)
}

func askSurveyPrompt(cmd *cobra.Command, prompt survey.Prompt, response interface{}) error {
	colorEnabled := surveyColorsEnabled()
	previousDisableColor := surveycore.DisableColor
	surveycore.DisableColor = !colorEnabled
	defer func() {
		surveycore.DisableColor = previousDisableColor
	}()

	questionFormat := "default"
	selectFocusFormat := "default"
	if colorEnabled {
		questionFormat = "cyan"
		selectFocusFormat = "cyan"
	}

	options := []survey.AskOpt{survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = ">"
		icons.Question.Format = questionFormat
		icons.SelectFocus.Text = ">"
		icons.SelectFocus.Format = selectFocusFormat
	})}

	var escInput *escBackReader
	inputFile, inputOK := cmd.InOrStdin().(*os.File)
	outputFile, outputOK := cmd.OutOrStdout().(*os.File)
	if inputOK && outputOK {
		escInput = newEscBackReader(inputFile)
		options = append(options, survey.WithStdio(escInput, outputFile, outputFile))
	}

	err := askSurveyOne(prompt, response, options...)
	if errors.Is(err, terminal.InterruptErr) && escInput != nil && escInput.takeBack() {
		return errSurveyBack
	}

	return err
}

func surveyColorsEnabled() bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}

	termValue := strings.TrimSpace(strings.ToLower(os.Getenv("TERM")))
	return termValue != "dumb"
}

func printSurveyHint(output io.Writer, message string) {
	fmt.Fprintln(output, message)
}
