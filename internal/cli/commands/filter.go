package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logsift/pkg/config"
	"github.com/ccollicutt/logsift/pkg/output"
)

// FilterOptions holds command-line options for the filter command.
type FilterOptions struct {
	OutputOptions

	RulesFile string
	ShowLines bool
	FailEmpty bool
}

// NewFilterCommand creates the filter command.
func NewFilterCommand() *cobra.Command {
	opts := &FilterOptions{}

	cmd := &cobra.Command{
		Use:   "filter <log-file>",
		Short: "Apply a rule set to a log file",
		Long: `Apply the include and exclude rules from a rule file to every line of a log file.

Rules are evaluated in file order:
  - Exclude rules run first; the first matching exclude drops the line.
  - Otherwise the first matching include rule claims the line.
  - With no include rules, every line that is not excluded is selected.

Include rules marked as events add the line's timestamp to the timeline.

Exit codes:
  0 - Success
  1 - No lines selected (only with --fail-empty)
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.RulesFile, "rules", "r", "", "Rule file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVar(&opts.ShowLines, "show-lines", false, "Print the selected lines")
	cmd.Flags().BoolVar(&opts.FailEmpty, "fail-empty", false, "Exit 1 when no line is selected")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include timings and metadata")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")
	_ = cmd.MarkFlagRequired("rules")

	return cmd
}

func runFilter(cmd *cobra.Command, args []string, opts *FilterOptions) error {
	formatter, err := createFormatter(&opts.OutputOptions)
	if err != nil {
		return err
	}

	report, err := buildFilterReport(cmd.Context(), args[0], opts.RulesFile, opts.ShowLines)
	if err != nil {
		return err
	}

	if err := formatter.FormatFilter(cmd.Context(), report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if opts.FailEmpty && report.Summary.LinesSelected == 0 {
		ExitCode = 1
	}
	return nil
}

// buildFilterReport loads the rule file and log, runs the filter and wraps
// the result in a report. Hit counts are keyed to rule positions in the file.
func buildFilterReport(ctx context.Context, logPath, rulesPath string, withLines bool) (*output.FilterReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if rulesPath == "" {
		return nil, errors.New("a rule file is required (--rules)")
	}

	cfg, err := config.Load(ctx, rulesPath)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	engine, err := openEngine(logPath, cfg.Workers, logger)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rules := cfg.ActiveRules()
	res := engine.Filter(rules)

	report := output.NewFilterReport(engine, rules, res, withLines)
	report.Metadata = output.Metadata{
		Source:     logPath,
		RuleFile:   rulesPath,
		AnalyzedAt: time.Now(),
		Duration:   time.Since(start),
	}
	return report, nil
}
