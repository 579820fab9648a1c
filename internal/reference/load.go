package reference

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	bundled "github.com/cuthbertlab/college-costs/reference"
	"gopkg.in/yaml.v3"
)

// Data is the merged reference data.
type Data struct {
	States  []State
	Incomes []IncomeLevel
	Tests   []TestType
}

// Load reads the bundled reference data and then every *.yaml file of the
// given directories.
//
// If no paths are provided, ~/.config/college-costs/reference is used.
// Entries are merged by code (by level for incomes); the last loaded
// definition wins, so local files override bundled ones.
func Load(paths ...string) (*Data, error) {
	data := &Data{}
	if err := loadEmbedded(data); err != nil {
		return nil, err
	}

	loadPaths := paths
	if len(loadPaths) == 0 {
		loadPaths = defaultPaths()
	}

	for _, rawPath := range loadPaths {
		path, err := expandHome(rawPath)
		if err != nil {
			return nil, fmt.Errorf("expand reference path %q: %w", rawPath, err)
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}

			return nil, fmt.Errorf("read reference directory %q: %w", path, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
				continue
			}

			filePath := filepath.Join(path, entry.Name())
			raw, err := os.ReadFile(filePath)
			if err != nil {
				return nil, fmt.Errorf("read reference file %q: %w", filePath, err)
			}

			if err := data.merge(filePath, raw); err != nil {
				return nil, err
			}
		}
	}

	sort.SliceStable(data.Incomes, func(i, j int) bool {
		return data.Incomes[i].Level < data.Incomes[j].Level
	})

	return data, nil
}

// State returns the state with the given code.
func (d *Data) State(code string) (State, bool) {
	for _, s := range d.States {
		if s.Code == code {
			return s, true
		}
	}

	return State{}, false
}

// Income returns the income bracket with the given code.
func (d *Data) Income(code string) (IncomeLevel, bool) {
	for _, l := range d.Incomes {
		if l.CodeOrLevel() == code {
			return l, true
		}
	}

	return IncomeLevel{}, false
}

// Test returns the test type with the given code, matched case-insensitively.
// An empty code selects the test with an empty suffix.
func (d *Data) Test(code string) (TestType, bool) {
	for _, t := range d.Tests {
		if strings.EqualFold(t.Code, code) || (code == "" && t.Suffix == "") {
			return t, true
		}
	}

	return TestType{}, false
}

// TestBySuffix returns the test type whose file name suffix is suffix.
func (d *Data) TestBySuffix(suffix string) (TestType, bool) {
	for _, t := range d.Tests {
		if t.Suffix == suffix {
			return t, true
		}
	}

	return TestType{}, false
}

func loadEmbedded(data *Data) error {
	entries, err := bundled.FS.ReadDir(".")
	if err != nil {
		return fmt.Errorf("read embedded reference data: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		raw, err := bundled.FS.ReadFile(entry.Name())
		if err != nil {
			return fmt.Errorf("read embedded reference file %q: %w", entry.Name(), err)
		}

		if err := data.merge("embedded/"+entry.Name(), raw); err != nil {
			return err
		}
	}

	return nil
}

func (d *Data) merge(path string, raw []byte) error {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse reference file %q: %w", path, err)
	}

	for _, s := range doc.States {
		s = normalizeState(s)
		if s.Code == "" {
			return fmt.Errorf("validate reference file %q: state code is required", path)
		}

		d.States = upsert(d.States, s, func(existing State) bool { return existing.Code == s.Code })
	}

	for _, l := range doc.Incomes {
		l.Code = strings.TrimSpace(l.Code)
		l.Label = strings.TrimSpace(l.Label)
		if l.Level <= 0 {
			return fmt.Errorf("validate reference file %q: income level must be positive, got %d", path, l.Level)
		}

		d.Incomes = upsert(d.Incomes, l, func(existing IncomeLevel) bool { return existing.Level == l.Level })
	}

	for _, t := range doc.Tests {
		t.Code = strings.TrimSpace(t.Code)
		if t.Code == "" {
			return fmt.Errorf("validate reference file %q: test code is required", path)
		}

		if t.BandStep <= 0 {
			return fmt.Errorf("validate reference file %q: test %q band_step must be positive", path, t.Code)
		}

		t.Suffix = strings.TrimSpace(t.Suffix)
		if err := checkSuffix(t); err != nil {
			return fmt.Errorf("validate reference file %q: %w", path, err)
		}

		d.Tests = upsert(d.Tests, t, func(existing TestType) bool { return existing.Code == t.Code })
	}

	return nil
}

// checkSuffix keeps file names in step with the links the picker builds,
// which use the test code as suffix and no suffix for DefaultTestCode.
func checkSuffix(t TestType) error {
	switch {
	case t.Code == DefaultTestCode && t.Suffix != "":
		return fmt.Errorf("test %q must have an empty suffix, got %q", t.Code, t.Suffix)
	case t.Code != DefaultTestCode && t.Suffix != t.Code:
		return fmt.Errorf("test %q suffix must equal its code, got %q", t.Code, t.Suffix)
	}

	return nil
}

func upsert[T any](items []T, item T, same func(T) bool) []T {
	for i := range items {
		if same(items[i]) {
			items[i] = item
			return items
		}
	}

	return append(items, item)
}

func normalizeState(s State) State {
	s.Code = strings.TrimSpace(s.Code)
	s.Name = strings.TrimSpace(s.Name)
	s.Accent = strings.TrimSpace(s.Accent)

	return s
}

func defaultPaths() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	return []string{filepath.Join(homeDir, ".config", "college-costs", "reference")}
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}

	if !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~\\") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, path[2:]), nil
}
