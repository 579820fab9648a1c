package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
)

const (
	configFileName = "config.json"
	configDirName  = "college-costs"

	featuresKey = "features"
	defaultsKey = "defaults"
)

// Feature flags.
const (
	// FeatureTUI switches the guided picker to the full-screen terminal UI.
	FeatureTUI = "tui"
	// FeatureTestType adds the SAT/ACT choice to the picker and the
	// generator, and navigates as soon as a test type is picked.
	FeatureTestType = "test-type"
)

// Default input paths, used when the matching command line flag is not given.
const (
	SettingCSV       = "csv"
	SettingProfile   = "profile"
	SettingReference = "reference"
)

// FeatureRegistry defines all known feature flags and their defaults.
var FeatureRegistry = map[string]FeatureDefinition{
	FeatureTUI: {
		Name:        FeatureTUI,
		Description: "Full-screen Bubble Tea terminal UI",
	},
	FeatureTestType: {
		Name:        FeatureTestType,
		Description: "Choose between SAT and ACT score bands",
	},
}

// SettingRegistry describes the settings stored under "defaults".
var SettingRegistry = map[string]string{
	SettingCSV:       "College Scorecard CSV used when --csv is not given",
	SettingProfile:   "build profile TOML used when --profile is not given",
	SettingReference: "reference YAML directory used when --reference is not given",
}

// FeatureDefinition describes a feature flag.
type FeatureDefinition struct {
	Name        string
	Description string
	Default     bool
}

// FeatureStatus describes the current state of a feature flag.
type FeatureStatus struct {
	Name        string
	Description string
	Enabled     bool
}

// SettingStatus is a setting and its current value, empty when unset.
type SettingStatus struct {
	Name        string
	Description string
	Value       string
}

// Config holds college-costs local settings. Keys it does not know are
// kept and written back on save.
type Config struct {
	path     string
	raw      map[string]json.RawMessage
	features map[string]bool
	defaults map[string]string
}

// Load reads the config from the default path.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom reads the config from the given path.
//
// If path is empty, it defaults to ~/.config/college-costs/config.json.
// If the file does not exist, a Config with default values is returned.
// Comments and trailing commas are accepted; they are dropped on save.
func LoadFrom(path string) (*Config, error) {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		resolved = defaultConfigPath()
	}

	cfg := &Config{
		path:     resolved,
		raw:      make(map[string]json.RawMessage),
		features: make(map[string]bool),
		defaults: make(map[string]string),
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return nil, fmt.Errorf("read config file %q: %w", resolved, err)
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg.raw); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", resolved, err)
	}

	if err := cfg.decode(featuresKey, &cfg.features); err != nil {
		return nil, err
	}

	if err := cfg.decode(defaultsKey, &cfg.defaults); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) decode(key string, dst any) error {
	section, ok := c.raw[key]
	if !ok {
		return nil
	}

	if err := json.Unmarshal(section, dst); err != nil {
		return fmt.Errorf("parse %s in config file %q: %w", key, c.path, err)
	}

	return nil
}

// Path returns the file the config is read from and saved to.
func (c *Config) Path() string {
	if c == nil {
		return ""
	}

	return c.path
}

// IsFeatureEnabled returns whether a feature flag is enabled.
//
// If the feature has not been explicitly set, the registry default is used.
// Unknown feature names always return false.
func (c *Config) IsFeatureEnabled(name string) bool {
	if c == nil {
		return false
	}

	name = strings.TrimSpace(name)
	if val, ok := c.features[name]; ok {
		return val
	}

	return FeatureRegistry[name].Default
}

// SetFeature sets a feature flag value and persists the config.
func (c *Config) SetFeature(name string, enabled bool) error {
	name, err := c.checkName(name, "feature", func(n string) bool {
		_, ok := FeatureRegistry[n]
		return ok
	})
	if err != nil {
		return err
	}

	c.features[name] = enabled
	return c.save()
}

// Features returns all known features with their status, sorted by name.
func (c *Config) Features() []FeatureStatus {
	result := make([]FeatureStatus, 0, len(FeatureRegistry))
	for _, def := range FeatureRegistry {
		result = append(result, FeatureStatus{
			Name:        def.Name,
			Description: def.Description,
			Enabled:     c.IsFeatureEnabled(def.Name),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Setting returns the value of a setting, or "" when it is unset.
func (c *Config) Setting(name string) string {
	if c == nil {
		return ""
	}

	return c.defaults[strings.TrimSpace(name)]
}

// SetSetting stores a setting and persists the config. An empty value
// removes it.
func (c *Config) SetSetting(name, value string) error {
	name, err := c.checkName(name, "setting", func(n string) bool {
		_, ok := SettingRegistry[n]
		return ok
	})
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	if value == "" {
		delete(c.defaults, name)
	} else {
		c.defaults[name] = value
	}

	return c.save()
}

// Settings returns all known settings with their values, sorted by name.
func (c *Config) Settings() []SettingStatus {
	result := make([]SettingStatus, 0, len(SettingRegistry))
	for name, description := range SettingRegistry {
		result = append(result, SettingStatus{
			Name:        name,
			Description: description,
			Value:       c.Setting(name),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

func (c *Config) checkName(name, kind string, known func(string) bool) (string, error) {
	if c == nil {
		return "", errors.New("config is nil")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%s name is required", kind)
	}

	if !known(name) {
		return "", fmt.Errorf("unknown %s %q", kind, name)
	}

	return name, nil
}

func (c *Config) save() error {
	configDir := filepath.Dir(c.path)
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("create config directory %q: %w", configDir, err)
	}

	if err := c.encode(featuresKey, c.features); err != nil {
		return err
	}

	if err := c.encode(defaultsKey, c.defaults); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c.raw, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(c.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write config file %q: %w", c.path, err)
	}

	return nil
}

// encode stores a section in raw, dropping it when empty.
func (c *Config) encode(key string, section any) error {
	if v, ok := section.(map[string]string); ok && len(v) == 0 {
		delete(c.raw, key)
		return nil
	}

	data, err := json.Marshal(section)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	c.raw[key] = data
	return nil
}

// Dir returns the college-costs config directory.
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", configDirName)
	}

	return filepath.Join(homeDir, ".config", configDirName)
}

func defaultConfigPath() string {
	return filepath.Join(Dir(), configFileName)
}
