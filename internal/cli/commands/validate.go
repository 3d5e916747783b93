package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logsift/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <rules-file>",
		Short: "Validate a rule file",
		Long: `Validate a LogSift rule file without reading any log.

Checks:
  - YAML syntax
  - At least one rule
  - Text present on every enabled rule
  - Regex pattern validity (warning only: an invalid pattern never matches)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	active := cfg.ActiveRules()
	fmt.Fprintf(w, "\nRule file valid!\n")
	fmt.Fprintf(w, "  Rules:  %d (%d active)\n", len(cfg.Rules), len(active))
	if cfg.Workers > 0 {
		fmt.Fprintf(w, "  Workers: %d\n", cfg.Workers)
	}

	fmt.Fprintf(w, "\nRules:\n")
	for i := range cfg.Rules {
		rule := &cfg.Rules[i]
		state := ""
		if !rule.IsEnabled() {
			state = " (disabled)"
		}
		flags := ""
		if rule.Regex {
			flags += " regex"
		}
		if rule.Event {
			flags += " event"
		}
		fmt.Fprintf(w, "  %d. [%s%s] %s%s\n", i+1, rule.Kind(), flags, rule.Text, state)
		if rule.Description != "" {
			fmt.Fprintf(w, "     %s\n", rule.Description)
		}
	}

	if warnings := cfg.PatternWarnings(); len(warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings:\n")
		for _, warn := range warnings {
			fmt.Fprintf(w, "  - %s (rule will never match)\n", warn)
		}
	}

	return nil
}
