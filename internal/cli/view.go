package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cuthbertlab/college-costs/internal/app"
	"github.com/cuthbertlab/college-costs/internal/config"
	"github.com/cuthbertlab/college-costs/internal/site"
	"github.com/cuthbertlab/college-costs/internal/tui"
	"github.com/spf13/cobra"
)

var runPageTUI = tui.RunPage

func init() {
	rootCmd.AddCommand(newViewCmd())
}

func newViewCmd() *cobra.Command {
	var (
		state  string
		income string
		test   string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show one data page in the terminal",
		Example: `  college-costs view --csv scorecard.csv --state MA --income 2
  college-costs view --csv scorecard.csv --state all --income 5 --test ACT --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if state == "" || income == "" {
				return errors.New("--state and --income are required")
			}

			s, err := newSession(true)
			if err != nil {
				return err
			}

			st, err := resolveState(s.ref, state)
			if err != nil {
				return err
			}

			level, err := resolveIncome(s.ref, income)
			if err != nil {
				return err
			}

			testCode := ""
			if test != "" {
				t, err := resolveTest(s.ref, test)
				if err != nil {
					return err
				}

				testCode = t.Code
			}

			gen, err := s.pages()
			if err != nil {
				return err
			}

			page, err := gen.BuildPage(st.Code, level.Level, testCode)
			if err != nil {
				return err
			}

			if s.cfg.IsFeatureEnabled(config.FeatureTUI) && canUseInteractiveUI(cmd.InOrStdin(), cmd.OutOrStdout()) {
				return runPageTUI(page, app.Version)
			}

			printPageText(cmd.OutOrStdout(), page, all)
			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "state code, or \"all\"")
	cmd.Flags().StringVar(&income, "income", "", "income level")
	cmd.Flags().StringVar(&test, "test", "", "test type (default SAT)")
	cmd.Flags().BoolVar(&all, "all", false, "include the more expensive options")

	return cmd
}

// printPageText writes a page as fixed-width text. Expensive rows are
// listed only when expensive is set; rows above the extreme threshold are
// marked with "!".
func printPageText(output io.Writer, page site.Page, expensive bool) {
	fmt.Fprintf(output, "%s: %s (%s)\n", page.State.Name, page.Income.Label, page.Year)

	for _, band := range page.Bands {
		if len(band.Affordable) == 0 && len(band.Expensive) == 0 {
			continue
		}

		fmt.Fprintln(output)
		fmt.Fprintln(output, band.Heading)
		fmt.Fprintf(output, "%s  %-9s %4s     %s\n", strings.Repeat(" ", 32), "Cost", page.Test.Code, "Grad")

		for _, row := range band.Affordable {
			fmt.Fprintf(output, "  %s\n", row.Text(page.State.Code))
		}

		if len(band.Expensive) == 0 {
			continue
		}

		if !expensive {
			fmt.Fprintf(output, "  (%d more expensive options)\n", len(band.Expensive))
			continue
		}

		fmt.Fprintln(output, "  More expensive options:")
		for _, row := range band.Expensive {
			mark := " "
			if row.Danger {
				mark = "!"
			}

			fmt.Fprintf(output, "%s %s\n", mark, row.Text(page.State.Code))
		}
	}
}
