package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/cuthbertlab/college-costs/internal/selection"
	"github.com/spf13/cobra"
)

type pickFlags struct {
	income string
	state  string
	test   string
}

func init() {
	rootCmd.AddCommand(newPickCmd())
}

func newPickCmd() *cobra.Command {
	var flags pickFlags

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose income, state and test and print the data page link",
		Long: `Choose an income bracket, a state and optionally a test type and print the
link to the matching data page.

With flags the choices are applied in the order income, state, test and
the resulting link is printed even when the selection is incomplete.
Without flags the interactive picker runs.`,
		Example: `  college-costs pick --income 2 --state CA
  college-costs pick --income 3 --state all --test ACT`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(false)
			if err != nil {
				return err
			}

			f := cmd.Flags()
			if !f.Changed("income") && !f.Changed("state") && !f.Changed("test") {
				return runPickInteractive(cmd, s)
			}

			opts := s.options()
			if f.Changed("test") {
				opts.TestTypes = true
			}

			return runPickFlags(cmd.OutOrStdout(), s, opts, flags)
		},
	}

	cmd.Flags().StringVar(&flags.income, "income", "", "income level (see: college-costs list incomes)")
	cmd.Flags().StringVar(&flags.state, "state", "", "state code, or \"all\"")
	cmd.Flags().StringVar(&flags.test, "test", "", "test type (SAT or ACT)")

	return cmd
}

func runPickInteractive(cmd *cobra.Command, s *session) error {
	var (
		href string
		err  error
	)

	if canUseInteractiveUI(cmd.InOrStdin(), cmd.OutOrStdout()) {
		href, err = runPickerSurvey(cmd, s.ref, s.options())
	} else {
		href, err = runPickerPlain(cmd.OutOrStdout(), bufio.NewReader(cmd.InOrStdin()), s.ref, s.options())
	}

	if errors.Is(err, errPickerCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	return showPicked(cmd.OutOrStdout(), s, href)
}

// runPickFlags replays the flags as clicks on a tracker and prints the
// resulting go control.
func runPickFlags(output io.Writer, s *session, opts selection.Options, flags pickFlags) error {
	view := newPromptView(nil)
	tracker := selection.NewTracker(view, opts)

	if flags.income != "" {
		income, err := resolveIncome(s.ref, flags.income)
		if err != nil {
			return err
		}

		tracker.SetIncome(income.CodeOrLevel())
	}

	if flags.state != "" {
		state, err := resolveState(s.ref, flags.state)
		if err != nil {
			return err
		}

		tracker.SetState(state.Label())
	}

	if flags.test != "" {
		test, err := resolveTest(s.ref, flags.test)
		if err != nil {
			return err
		}

		tracker.SetTestType(test.Code)
	}

	target := tracker.Target()
	fmt.Fprintf(output, "Label:   %s\n", target.Label)
	fmt.Fprintf(output, "Link:    %s\n", target.Href)
	fmt.Fprintf(output, "Enabled: %t\n", target.Enabled)

	if tracker.Navigated() {
		fmt.Fprintf(output, "Opened:  %s\n", view.href)
	}

	return nil
}
