package cli

import (
	"fmt"
	"io"

	"github.com/cuthbertlab/college-costs/internal/scorecard"
	"github.com/cuthbertlab/college-costs/internal/site"
	"github.com/spf13/cobra"
)

// inversionScoreMax covers every SAT 25th percentile.
const inversionScoreMax = 2000

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "inversions",
		Short: "List schools whose net price drops as family income rises",
		Long: `List four-year schools whose average net price for an income level is
lower than for the level below it. Schools are filtered like the data pages
(graduation rate, SAT score present, lowest income price present).`,
		Example: "  college-costs inversions --csv scorecard.csv",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(true)
			if err != nil {
				return err
			}

			return renderInversions(cmd.OutOrStdout(), s)
		},
	})
}

func renderInversions(output io.Writer, s *session) error {
	if s.schools == nil {
		return errNoCSV
	}

	matches := scorecard.Filter(s.schools, scorecard.Criteria{
		Test:        "SAT",
		ScoreMin:    0,
		ScoreMax:    inversionScoreMax,
		Level:       1,
		MinGradRate: s.profile.MinGradRate,
	})

	schools := make([]scorecard.School, 0, len(matches))
	for _, m := range matches {
		schools = append(schools, m.School)
	}

	inversions := scorecard.CostInversions(schools, len(s.ref.Incomes))
	printInversions(output, inversions)
	return nil
}

func printInversions(output io.Writer, inversions []scorecard.Inversion) {
	fmt.Fprintln(output, "Cost inversions:")
	fmt.Fprintln(output)

	if len(inversions) == 0 {
		fmt.Fprintln(output, "  (none)")
		return
	}

	for _, inv := range inversions {
		fmt.Fprintf(output, "  %-30s %-2s  level %d $%s < level %d $%s\n",
			inv.School.ShortName(),
			inv.School.StateCode(),
			inv.Level,
			site.FormatCost(inv.Cost),
			inv.Level-1,
			site.FormatCost(inv.Previous),
		)
	}
}
