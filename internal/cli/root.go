package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/cuthbertlab/college-costs/internal/app"
	"github.com/cuthbertlab/college-costs/internal/config"
	"github.com/cuthbertlab/college-costs/internal/site"
	"github.com/cuthbertlab/college-costs/internal/tui"
	"github.com/spf13/cobra"
)

var (
	csvPath      string
	profilePath  string
	referenceDir string
)

var rootCmd = &cobra.Command{
	Use:   "college-costs",
	Short: "Find colleges a family can afford by income, state and test score",
	Long: `college-costs helps students find the colleges they can afford.

Pick an income bracket and a state (or all states) and it points you at the
data page listing four-year colleges by 25th percentile test score, cheapest
first. The pages themselves are generated from the College Scorecard CSV
with the generate command.`,
	Version:      app.Version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGuidedMainMenu(cmd)
	},
}

func init() {
	rootCmd.SetVersionTemplate(app.New().GetFullVersion() + "\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&csvPath, "csv", "", "College Scorecard CSV file (or: config set csv)")
	flags.StringVar(&profilePath, "profile", "", "build profile TOML file (or: config set profile)")
	flags.StringVar(&referenceDir, "reference", "", "directory of reference YAML overrides (or: config set reference)")
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func runGuidedMainMenu(cmd *cobra.Command) error {
	s, err := newSession(false)
	if err != nil {
		return err
	}

	if canUseInteractiveUI(cmd.InOrStdin(), cmd.OutOrStdout()) {
		if s.cfg.IsFeatureEnabled(config.FeatureTUI) {
			href, err := tui.Run(tuiCallbacks(s), tui.PickerConfig{Reference: s.ref, Options: s.options()}, app.Version)
			if err != nil {
				return err
			}

			if href != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Data page: %s\n", href)
			}

			return nil
		}

		return runGuidedMainMenuSurvey(cmd, s)
	}

	return runGuidedMainMenuPlain(cmd, s)
}

func runGuidedMainMenuPlain(cmd *cobra.Command, s *session) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	output := cmd.OutOrStdout()

	for {
		fmt.Fprintln(output, "Main Menu")
		fmt.Fprintln(output, "  1) Choose state and income")
		fmt.Fprintln(output, "  2) Cost inversions")
		fmt.Fprintln(output, "  3) List states")
		fmt.Fprintln(output, "  4) List incomes")
		fmt.Fprintln(output, "  5) Exit")

		choice, err := readTrimmedLine(reader, output, "Option [1-5]: ")
		if err != nil {
			return fmt.Errorf("read menu option: %w", err)
		}

		fmt.Fprintln(output)

		switch strings.ToLower(choice) {
		case "1", "choose", "pick":
			href, err := runPickerPlain(output, reader, s.ref, s.options())
			if err != nil {
				return err
			}

			if err := showPicked(output, s, href); err != nil {
				return err
			}
		case "2", "inversions":
			if err := renderInversions(output, s); err != nil {
				fmt.Fprintf(output, "Error: %v\n", err)
			}
		case "3", "states":
			printStatesList(output, s.ref)
		case "4", "incomes":
			printIncomesList(output, s.ref)
		case "5", "exit", "q", "quit":
			fmt.Fprintln(output, "Goodbye.")
			return nil
		default:
			fmt.Fprintf(output, "Invalid option %q. Enter 1-5.\n", choice)
		}

		fmt.Fprintln(output)
	}
}

// showPicked prints the chosen data page, and its contents when a CSV is
// loaded.
func showPicked(output io.Writer, s *session, href string) error {
	fmt.Fprintf(output, "Data page: %s\n", href)
	if s.schools == nil {
		return nil
	}

	gen, err := s.pages()
	if err != nil {
		return err
	}

	page, err := gen.OpenPage(href)
	if err != nil {
		return err
	}

	fmt.Fprintln(output)
	printPageText(output, page, true)
	return nil
}

func tuiCallbacks(s *session) tui.Callbacks {
	cb := tui.Callbacks{
		RenderInversions: func(w io.Writer) error {
			return renderInversions(w, s)
		},
		RenderStatesList: func(w io.Writer) error {
			printStatesList(w, s.ref)
			return nil
		},
		RenderIncomesList: func(w io.Writer) error {
			printIncomesList(w, s.ref)
			return nil
		},
	}

	if s.schools != nil {
		cb.OpenPage = func(href string) (site.Page, error) {
			gen, err := s.pages()
			if err != nil {
				return site.Page{}, err
			}

			return gen.OpenPage(href)
		}
	}

	return cb
}

func readTrimmedLine(reader *bufio.Reader, output io.Writer, prompt string) (string, error) {
	fmt.Fprint(output, prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		if len(strings.TrimSpace(line)) == 0 {
			return "", err
		}
	}

	return strings.TrimSpace(line), nil
}
