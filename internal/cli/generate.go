package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cuthbertlab/college-costs/internal/config"
	"github.com/cuthbertlab/college-costs/internal/site"
	"github.com/spf13/cobra"
)

var writeDefaultProfile = config.WriteDefaultProfile

func init() {
	rootCmd.AddCommand(newGenerateCmd())
}

func newGenerateCmd() *cobra.Command {
	var (
		outDir      string
		state       string
		income      string
		quiet       bool
		initProfile string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the static data pages from a scorecard CSV",
		Long: `Write one data page per income level, state (plus the all-states page)
and enabled test type into the output directory of the build profile.

With --state and --income only that page is written, for every enabled
test type.`,
		Example: `  college-costs generate --csv Most-Recent-Cohorts-All-Data-Elements.csv
  college-costs generate --csv scorecard.csv --state CA --income 1 --out public/data
  college-costs generate --init-profile profile.toml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if initProfile != "" {
				return runInitProfile(cmd.OutOrStdout(), initProfile)
			}

			if (state == "") != (income == "") {
				return errors.New("--state and --income must be given together")
			}

			s, err := newSession(true)
			if err != nil {
				return err
			}

			if strings.TrimSpace(outDir) != "" {
				s.profile.OutDir = outDir
			}

			logger := generateLogger(cmd.ErrOrStderr(), quiet)
			gen, err := s.generator(logger)
			if err != nil {
				return err
			}

			if state != "" {
				written, err := generateOne(gen, s, state, income)
				if err != nil {
					return err
				}

				for _, path := range written {
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				}

				return nil
			}

			count, err := gen.GenerateAll(cmd.Context(), s.tests())
			if err != nil {
				return fmt.Errorf("generate pages (%d written): %w", count, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d pages to %s\n", count, s.profile.OutDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "output directory (overrides the profile)")
	cmd.Flags().StringVar(&state, "state", "", "only write the pages of this state code (or \"all\")")
	cmd.Flags().StringVar(&income, "income", "", "only write the pages of this income level")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not log each written page")
	cmd.Flags().StringVar(&initProfile, "init-profile", "", "write the default build profile to this path and exit")

	return cmd
}

// generateLogger logs progress as text on w, or discards it when quiet.
func generateLogger(w io.Writer, quiet bool) *slog.Logger {
	if quiet {
		return nil
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// generateOne writes the pages of one state and income level, one per
// enabled test type, and returns their paths.
func generateOne(gen *site.Generator, s *session, stateInput, incomeInput string) ([]string, error) {
	state, err := resolveState(s.ref, stateInput)
	if err != nil {
		return nil, err
	}

	income, err := resolveIncome(s.ref, incomeInput)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, test := range s.tests() {
		page, err := gen.BuildPage(state.Code, income.Level, test.Code)
		if err != nil {
			return paths, err
		}

		path, err := gen.WritePage(page)
		if err != nil {
			return paths, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func runInitProfile(output io.Writer, path string) error {
	created, err := writeDefaultProfile(path)
	if err != nil {
		return err
	}

	if !created {
		fmt.Fprintf(output, "Profile %s already exists, left unchanged.\n", path)
		return nil
	}

	fmt.Fprintf(output, "Wrote default profile to %s\n", path)
	return nil
}
