package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// TimelineOptions holds command-line options for the timeline command.
type TimelineOptions struct {
	OutputOptions

	RulesFile string
}

// NewTimelineCommand creates the timeline command.
func NewTimelineCommand() *cobra.Command {
	opts := &TimelineOptions{}

	cmd := &cobra.Command{
		Use:   "timeline <log-file>",
		Short: "List timestamped events picked out by event rules",
		Long: `Run the rule file against a log file and print only the timeline.

An event is produced for every line claimed by an include rule with
"event: true" when a timestamp can be found in the line. Recognised forms:
  2024-01-15 10:30:00[.123]   2024-01-15T10:30:00[,123]
  01/15/2024-10:30:00.123     9:30:00.123 PM     10:30:00[.123]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimeline(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.RulesFile, "rules", "r", "", "Rule file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Event count only")
	_ = cmd.MarkFlagRequired("rules")

	return cmd
}

func runTimeline(cmd *cobra.Command, args []string, opts *TimelineOptions) error {
	formatter, err := createFormatter(&opts.OutputOptions)
	if err != nil {
		return err
	}

	report, err := buildFilterReport(cmd.Context(), args[0], opts.RulesFile, false)
	if err != nil {
		return err
	}

	if err := formatter.FormatTimeline(cmd.Context(), &report.Timeline, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	return nil
}
