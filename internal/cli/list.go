package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/cuthbertlab/college-costs/internal/reference"
	"github.com/cuthbertlab/college-costs/internal/selection"
	"github.com/spf13/cobra"
)

func init() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List states, income levels and test types",
	}

	listCmd.AddCommand(newListReferenceCmd("states", "List states with data pages", printStatesList))
	listCmd.AddCommand(newListReferenceCmd("incomes", "List household income levels", printIncomesList))
	listCmd.AddCommand(newListReferenceCmd("tests", "List admissions test types", printTestsList))
	rootCmd.AddCommand(listCmd)
}

func newListReferenceCmd(use, short string, print func(io.Writer, *reference.Data)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ref, err := loadReferenceData(cfg)
			if err != nil {
				return err
			}

			print(cmd.OutOrStdout(), ref)
			return nil
		},
	}
}

func printStatesList(output io.Writer, ref *reference.Data) {
	fmt.Fprintln(output, "States:")
	fmt.Fprintln(output)

	if len(ref.States) == 0 {
		fmt.Fprintln(output, "  (none)")
		return
	}

	maxLabelWidth := 0
	for _, s := range ref.States {
		maxLabelWidth = max(maxLabelWidth, len(s.Label()))
	}

	for _, s := range ref.States {
		name := strings.TrimSpace(s.Name)
		if s.Code == selection.AllStates {
			name += " (all)"
		}

		fmt.Fprintf(output, "  %-*s  %s\n", maxLabelWidth, s.Label(), name)
	}
}

func printIncomesList(output io.Writer, ref *reference.Data) {
	fmt.Fprintln(output, "Income levels:")
	fmt.Fprintln(output)

	if len(ref.Incomes) == 0 {
		fmt.Fprintln(output, "  (none)")
		return
	}

	maxCodeWidth := 0
	for _, l := range ref.Incomes {
		maxCodeWidth = max(maxCodeWidth, len(l.CodeOrLevel()))
	}

	for _, l := range ref.Incomes {
		fmt.Fprintf(output, "  %-*s  %s\n", maxCodeWidth, l.CodeOrLevel(), l.Label)
	}
}

func printTestsList(output io.Writer, ref *reference.Data) {
	fmt.Fprintln(output, "Test types:")
	fmt.Fprintln(output)

	if len(ref.Tests) == 0 {
		fmt.Fprintln(output, "  (none)")
		return
	}

	maxCodeWidth := 0
	for _, t := range ref.Tests {
		maxCodeWidth = max(maxCodeWidth, len(t.Code))
	}

	for _, t := range ref.Tests {
		fmt.Fprintf(output, "  %-*s  bands %d to %d step %d\n", maxCodeWidth, t.Code, t.BandStart, t.BandEnd, t.BandStep)
	}
}
