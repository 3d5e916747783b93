package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logsift/pkg/output"
)

// SearchOptions holds command-line options for the search command.
type SearchOptions struct {
	OutputOptions

	Regex         bool
	CaseSensitive bool
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	opts := &SearchOptions{}

	cmd := &cobra.Command{
		Use:   "search <log-file> <query>",
		Short: "Find lines matching a query",
		Long: `Search every line of a log file for a query.

The query is plain text unless --regex is given. Matching ignores case
(with full Unicode case folding) unless --case-sensitive is given.

Exit codes:
  0 - At least one line matched
  1 - No line matched
  2 - Invalid pattern, configuration or runtime error`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Regex, "regex", "e", false, "Treat the query as a regular expression")
	cmd.Flags().BoolVarP(&opts.CaseSensitive, "case-sensitive", "s", false, "Match case exactly")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include timings and search mode")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Match count only")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string, opts *SearchOptions) error {
	logPath, query := args[0], args[1]

	formatter, err := createFormatter(&opts.OutputOptions)
	if err != nil {
		return err
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	engine, err := openEngine(logPath, 0, logger)
	if err != nil {
		return err
	}

	start := time.Now()
	hits, err := engine.Search(query, opts.Regex, opts.CaseSensitive)
	if err != nil {
		return err
	}

	report := output.NewSearchReport(engine, query, opts.Regex, opts.CaseSensitive, hits)
	report.Metadata = output.Metadata{
		Source:     logPath,
		AnalyzedAt: time.Now(),
		Duration:   time.Since(start),
	}

	if err := formatter.FormatSearch(cmd.Context(), report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if len(hits) == 0 {
		ExitCode = 1
	}
	return nil
}
