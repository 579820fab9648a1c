package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultProfileTOML is the build profile used when no profile file exists.
const DefaultProfileTOML = `# college-costs build profile

year = "2016"
out_dir = "data"
# template = "dataTemplate.html"
min_grad_rate = 0.34

# Net price limits per income level. Schools costing more than
# "affordable" move behind the "more expensive" button and schools
# costing more than "extreme" are flagged.
[[income]]
level = 1
affordable = 10000
extreme = 20000

[[income]]
level = 2
affordable = 12000
extreme = 24000

[[income]]
level = 3
affordable = 18000
extreme = 30000

[[income]]
level = 4
affordable = 25000
extreme = 40000

[[income]]
level = 5
affordable = 35000
extreme = 55000
`

// Profile controls how data pages are generated.
type Profile struct {
	Year        string            `toml:"year"`
	OutDir      string            `toml:"out_dir"`
	Template    string            `toml:"template,omitempty"`
	MinGradRate float64           `toml:"min_grad_rate"`
	Incomes     []IncomeThreshold `toml:"income"`
}

// IncomeThreshold holds the net price limits of one income level.
type IncomeThreshold struct {
	Level      int `toml:"level"`
	Affordable int `toml:"affordable"`
	Extreme    int `toml:"extreme"`
}

// Threshold returns the limits for level.
func (p Profile) Threshold(level int) (IncomeThreshold, bool) {
	for _, t := range p.Incomes {
		if t.Level == level {
			return t, true
		}
	}

	return IncomeThreshold{}, false
}

// DefaultProfile returns the parsed DefaultProfileTOML.
func DefaultProfile() Profile {
	var p Profile
	if err := decodeProfile([]byte(DefaultProfileTOML), &p); err != nil {
		panic(fmt.Sprintf("parse default profile: %v", err))
	}

	return p
}

// LoadProfile reads a TOML build profile. An empty path or a missing file
// yields DefaultProfile. Keys missing from the file keep their defaults.
func LoadProfile(path string) (Profile, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultProfile(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultProfile(), nil
		}

		return Profile{}, fmt.Errorf("read profile %q: %w", path, err)
	}

	p, err := ParseProfile(data)
	if err != nil {
		return Profile{}, fmt.Errorf("parse profile %q: %w", path, err)
	}

	return p, nil
}

// ParseProfile decodes a profile on top of the built-in defaults. Income
// tables replace the default thresholds of their level only.
func ParseProfile(data []byte) (Profile, error) {
	defaults := DefaultProfile()

	p := defaults
	p.Incomes = nil
	if err := decodeProfile(data, &p); err != nil {
		return Profile{}, err
	}

	p.Incomes = mergeThresholds(defaults.Incomes, p.Incomes)
	return p, nil
}

func decodeProfile(data []byte, p *Profile) error {
	if err := toml.Unmarshal(data, p); err != nil {
		return err
	}

	return p.validate()
}

// mergeThresholds returns base with every level in overrides replaced or
// added, sorted by level.
func mergeThresholds(base, overrides []IncomeThreshold) []IncomeThreshold {
	merged := slices.Clone(base)
	for _, o := range overrides {
		i := slices.IndexFunc(merged, func(t IncomeThreshold) bool { return t.Level == o.Level })
		if i < 0 {
			merged = append(merged, o)
			continue
		}

		merged[i] = o
	}

	slices.SortFunc(merged, func(a, b IncomeThreshold) int { return a.Level - b.Level })
	return merged
}

// WriteDefaultProfile writes DefaultProfileTOML to path unless it exists.
func WriteDefaultProfile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(DefaultProfileTOML), 0o644); err != nil {
		return false, fmt.Errorf("write profile %q: %w", path, err)
	}

	return true, nil
}

func (p Profile) validate() error {
	if strings.TrimSpace(p.Year) == "" {
		return errors.New("year is required")
	}

	seen := make(map[int]bool, len(p.Incomes))
	for _, t := range p.Incomes {
		if t.Level <= 0 {
			return fmt.Errorf("income level must be positive, got %d", t.Level)
		}

		if seen[t.Level] {
			return fmt.Errorf("income level %d defined twice", t.Level)
		}
		seen[t.Level] = true

		if t.Extreme < t.Affordable {
			return fmt.Errorf("income level %d: extreme (%d) is below affordable (%d)", t.Level, t.Extreme, t.Affordable)
		}
	}

	return nil
}
