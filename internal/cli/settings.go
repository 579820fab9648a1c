package cli

import (
	"fmt"
	"io"

	"github.com/cuthbertlab/college-costs/internal/config"
	"github.com/spf13/cobra"
)

var loadConfig = config.Load

func init() {
	featureCmd := &cobra.Command{
		Use:   "feature",
		Short: "Manage feature flags",
	}

	featureCmd.AddCommand(
		newFeatureToggleCmd("enable", "Enable a feature flag", true),
		newFeatureToggleCmd("disable", "Disable a feature flag", false),
		&cobra.Command{
			Use:   "list",
			Short: "List all feature flags and their status",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withConfig(func(cfg *config.Config) error {
					printFeatures(cmd.OutOrStdout(), cfg.Features())
					return nil
				})
			},
		},
	)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage default input paths",
		Long: `Manage the paths used when --csv, --profile or --reference is not given.

Settings: csv, profile, reference.`,
		Example: `  college-costs config set csv ~/Downloads/Most-Recent-Cohorts-All-Data-Elements.csv
  college-costs config unset profile`,
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List settings and their values",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withConfig(func(cfg *config.Config) error {
					printSettings(cmd.OutOrStdout(), cfg.Settings())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "get <setting>",
			Short: "Print a setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withConfig(func(cfg *config.Config) error {
					if _, ok := config.SettingRegistry[args[0]]; !ok {
						return fmt.Errorf("unknown setting %q", args[0])
					}

					fmt.Fprintln(cmd.OutOrStdout(), cfg.Setting(args[0]))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set <setting> <value>",
			Short: "Store a setting",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withConfig(func(cfg *config.Config) error {
					if err := cfg.SetSetting(args[0], args[1]); err != nil {
						return err
					}

					fmt.Fprintf(cmd.OutOrStdout(), "Setting %q set to %s.\n", args[0], cfg.Setting(args[0]))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "unset <setting>",
			Short: "Remove a setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withConfig(func(cfg *config.Config) error {
					if err := cfg.SetSetting(args[0], ""); err != nil {
						return err
					}

					fmt.Fprintf(cmd.OutOrStdout(), "Setting %q removed.\n", args[0])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withConfig(func(cfg *config.Config) error {
					fmt.Fprintln(cmd.OutOrStdout(), cfg.Path())
					return nil
				})
			},
		},
	)

	rootCmd.AddCommand(featureCmd, configCmd)
}

func newFeatureToggleCmd(use, short string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <feature>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setFeatureFlag(cmd.OutOrStdout(), args[0], enabled)
		},
	}
}

func withConfig(fn func(*config.Config) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	return fn(cfg)
}

func setFeatureFlag(output io.Writer, name string, enabled bool) error {
	return withConfig(func(cfg *config.Config) error {
		if err := cfg.SetFeature(name, enabled); err != nil {
			return err
		}

		action := "disabled"
		if enabled {
			action = "enabled"
		}

		fmt.Fprintf(output, "Feature %q %s.\n", name, action)
		return nil
	})
}

func printFeatures(output io.Writer, features []config.FeatureStatus) {
	if len(features) == 0 {
		fmt.Fprintln(output, "No feature flags available.")
		return
	}

	fmt.Fprintln(output, "Feature flags:")
	fmt.Fprintln(output)

	width := 0
	for _, f := range features {
		width = max(width, len(f.Name))
	}

	for _, f := range features {
		status := "disabled"
		if f.Enabled {
			status = "enabled"
		}

		fmt.Fprintf(output, "  %-*s  %-8s  %s\n", width, f.Name, status, f.Description)
	}
}

func printSettings(output io.Writer, settings []config.SettingStatus) {
	fmt.Fprintln(output, "Settings:")
	fmt.Fprintln(output)

	width := 0
	for _, s := range settings {
		width = max(width, len(s.Name))
	}

	for _, s := range settings {
		value := s.Value
		if value == "" {
			value = "(unset)"
		}

		fmt.Fprintf(output, "  %-*s  %s\n", width, s.Name, value)
		fmt.Fprintf(output, "  %-*s  %s\n", width, "", s.Description)
	}
}
