package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a rule file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for structural errors.
// Regex syntax is not checked; a bad pattern only degrades its own rule.
// See PatternWarnings.
func Validate(cfg *Config) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("workers: must be >= 0, got %d", cfg.Workers)
	}

	if len(cfg.Rules) == 0 {
		return errors.New("rules: at least one rule is required")
	}

	for i := range cfg.Rules {
		rule := &cfg.Rules[i]
		if rule.IsEnabled() && rule.Text == "" {
			return fmt.Errorf("rules[%d]: text is required for enabled rules", i)
		}
	}

	return nil
}

// PatternWarning describes a regex rule that will never match.
type PatternWarning struct {
	Index int
	Text  string
	Err   error
}

func (w PatternWarning) String() string {
	return fmt.Sprintf("rules[%d] %q: %v", w.Index, w.Text, w.Err)
}

// PatternWarnings lists enabled regex rules whose pattern does not compile.
func (c *Config) PatternWarnings() []PatternWarning {
	var warnings []PatternWarning
	for i := range c.Rules {
		rule := &c.Rules[i]
		if !rule.IsEnabled() || !rule.Regex {
			continue
		}
		if _, err := regexp.Compile(rule.Text); err != nil {
			warnings = append(warnings, PatternWarning{Index: i, Text: rule.Text, Err: err})
		}
	}
	return warnings
}
