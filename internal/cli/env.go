package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/cuthbertlab/college-costs/internal/config"
	"github.com/cuthbertlab/college-costs/internal/reference"
	"github.com/cuthbertlab/college-costs/internal/scorecard"
	"github.com/cuthbertlab/college-costs/internal/selection"
	"github.com/cuthbertlab/college-costs/internal/site"
)

var errNoCSV = errors.New("a scorecard CSV is required (--csv)")

var loadReference = reference.Load
var readScorecard = scorecard.ReadFile
var loadProfile = config.LoadProfile

// inputPath returns the flag value, or the config default when the flag
// was not given.
func inputPath(cfg *config.Config, flagValue, setting string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}

	return cfg.Setting(setting)
}

// referenceDirs returns the override directory from --reference or the
// config, or nil for the default location.
func referenceDirs(cfg *config.Config) []string {
	dir := inputPath(cfg, referenceDir, config.SettingReference)
	if dir == "" {
		return nil
	}

	return []string{dir}
}

func loadReferenceData(cfg *config.Config) (*reference.Data, error) {
	ref, err := loadReference(referenceDirs(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("load reference data: %w", err)
	}

	return ref, nil
}

// trackerOptions builds selection options from the feature flags and the
// build profile.
func trackerOptions(cfg *config.Config, profile config.Profile) selection.Options {
	return selection.Options{
		TestTypes: cfg != nil && cfg.IsFeatureEnabled(config.FeatureTestType),
		DataDir:   profile.OutDir,
		Year:      profile.Year,
	}
}

// enabledTests returns the test types pages are built for.
func enabledTests(ref *reference.Data, testTypes bool) []reference.TestType {
	if testTypes {
		return ref.Tests
	}

	if t, ok := ref.Test(selection.DefaultTestLabel); ok {
		return []reference.TestType{t}
	}

	return ref.Tests[:min(1, len(ref.Tests))]
}

// resolveState accepts a state code in any case, "all" or the show-all
// label, and returns the picker label of that state.
func resolveState(ref *reference.Data, input string) (reference.State, error) {
	value := strings.TrimSpace(input)
	if strings.EqualFold(value, "all") || strings.EqualFold(value, selection.ShowAllLabel) {
		value = selection.AllStates
	}

	for _, s := range ref.States {
		if strings.EqualFold(s.Code, value) {
			return s, nil
		}
	}

	if guess, ok := suggestState(ref, input); ok {
		return reference.State{}, fmt.Errorf("unknown state %q (did you mean %s, %s?)", input, guess.Code, guess.Name)
	}

	return reference.State{}, fmt.Errorf("unknown state %q (see: college-costs list states)", input)
}

// suggestState returns the state whose name is within typo distance of
// input.
func suggestState(ref *reference.Data, input string) (reference.State, bool) {
	query := strings.ToLower(strings.TrimSpace(input))
	if len(query) < 3 {
		return reference.State{}, false
	}

	var best reference.State
	bestDist := -1
	for _, s := range ref.States {
		if s.Code == selection.AllStates {
			continue
		}

		dist := levenshtein.ComputeDistance(query, strings.ToLower(s.Name))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = s, dist
		}
	}

	return best, bestDist >= 0 && bestDist <= max(2, len(query)/4)
}

// resolveIncome accepts an income code or level number.
func resolveIncome(ref *reference.Data, input string) (reference.IncomeLevel, error) {
	value := strings.TrimSpace(input)
	if l, ok := ref.Income(value); ok {
		return l, nil
	}

	if n, err := strconv.Atoi(value); err == nil {
		for _, l := range ref.Incomes {
			if l.Level == n {
				return l, nil
			}
		}
	}

	return reference.IncomeLevel{}, fmt.Errorf("unknown income level %q (see: college-costs list incomes)", input)
}

func resolveTest(ref *reference.Data, input string) (reference.TestType, error) {
	if t, ok := ref.Test(strings.TrimSpace(input)); ok {
		return t, nil
	}

	return reference.TestType{}, fmt.Errorf("unknown test type %q (see: college-costs list tests)", input)
}

func loadSchools(path string) ([]scorecard.School, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errNoCSV
	}

	return readScorecard(path)
}

// session bundles what a command loads before it runs.
type session struct {
	cfg     *config.Config
	ref     *reference.Data
	profile config.Profile
	schools []scorecard.School // nil when no CSV was given
	pageGen *site.Generator
}

// newSession loads the config, the reference data and the build profile,
// and the scorecard CSV when requireCSV is set or a CSV path is known.
func newSession(requireCSV bool) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	ref, err := loadReferenceData(cfg)
	if err != nil {
		return nil, err
	}

	profile, err := loadProfile(inputPath(cfg, profilePath, config.SettingProfile))
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, ref: ref, profile: profile}

	csv := inputPath(cfg, csvPath, config.SettingCSV)
	if requireCSV || csv != "" {
		schools, err := loadSchools(csv)
		if err != nil {
			return nil, err
		}

		s.schools = schools
	}

	return s, nil
}

func (s *session) options() selection.Options {
	return trackerOptions(s.cfg, s.profile)
}

func (s *session) tests() []reference.TestType {
	return enabledTests(s.ref, s.options().TestTypes)
}

// generator returns a page generator over the loaded schools. A nil
// logger discards progress output.
func (s *session) generator(logger *slog.Logger) (*site.Generator, error) {
	renderer, err := site.NewRenderer(s.profile.Template)
	if err != nil {
		return nil, err
	}

	return site.NewGenerator(s.profile, s.ref, s.schools, renderer, logger), nil
}

// pages returns a shared quiet generator for opening pages one at a time.
func (s *session) pages() (*site.Generator, error) {
	if s.pageGen != nil {
		return s.pageGen, nil
	}

	gen, err := s.generator(nil)
	if err != nil {
		return nil, err
	}

	s.pageGen = gen
	return gen, nil
}
