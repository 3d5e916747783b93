// Package config provides rule-set loading and validation for LogSift.
package config

import "github.com/ccollicutt/logsift/pkg/filter"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Workers bounds search and filter parallelism. 0 means one per CPU.
	Workers int `yaml:"workers,omitempty"`

	// Rules are evaluated in file order.
	Rules []RuleConfig `yaml:"rules"`
}

// RuleConfig defines a single filter rule as written in the rule file.
type RuleConfig struct {
	Text        string `yaml:"text"`
	Regex       bool   `yaml:"regex,omitempty"`
	Exclude     bool   `yaml:"exclude,omitempty"`
	Event       bool   `yaml:"event,omitempty"`
	Description string `yaml:"description,omitempty"`

	// Enabled defaults to true when omitted.
	Enabled *bool `yaml:"enabled,omitempty"`
}

// IsEnabled reports whether the rule takes part in filtering.
func (r *RuleConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// Kind returns "exclude" or "include".
func (r *RuleConfig) Kind() string {
	if r.Exclude {
		return "exclude"
	}
	return "include"
}

// ActiveRules returns the enabled, non-empty rules as engine rules.
// OriginalIndex is the rule's position in the file.
func (c *Config) ActiveRules() []filter.Rule {
	rules := make([]filter.Rule, 0, len(c.Rules))
	for i := range c.Rules {
		rc := &c.Rules[i]
		if !rc.IsEnabled() || rc.Text == "" {
			continue
		}
		rules = append(rules, filter.Rule{
			Pattern:       rc.Text,
			Regex:         rc.Regex,
			Exclude:       rc.Exclude,
			Event:         rc.Event,
			OriginalIndex: i,
		})
	}
	return rules
}

// MapHitCounts spreads engine hit counts back onto file positions.
// Rules that were not active get zero.
func (c *Config) MapHitCounts(active []filter.Rule, hits []int) []int {
	mapped := make([]int, len(c.Rules))
	for pos, rule := range active {
		if pos < len(hits) && rule.OriginalIndex >= 0 && rule.OriginalIndex < len(mapped) {
			mapped[rule.OriginalIndex] = hits[pos]
		}
	}
	return mapped
}
