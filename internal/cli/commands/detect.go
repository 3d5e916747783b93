package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/logsift/pkg/detector"
	"github.com/ccollicutt/logsift/pkg/output"
	"github.com/ccollicutt/logsift/pkg/parser"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output     string
	SampleSize int
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Report which timestamp forms a log file uses",
		Long: `Sample a log file and classify the timestamp found on each line.

Event rules only produce timeline entries for lines with a recognised
timestamp. Use this command to check coverage before writing a rule file.

Example:
  logsift detect /var/log/app.log
  logsift detect --sample 5000 -o json /var/log/app.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 1000, "Number of non-blank lines to sample")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	logFile := args[0]

	store, err := parser.Load(logFile)
	if err != nil {
		return err
	}

	result := detector.New(detector.WithSampleSize(opts.SampleSize)).DetectFromStore(store)

	w := cmd.OutOrStdout()
	switch opts.Output {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "text":
		return outputDetectText(w, result, logFile)
	default:
		return &output.UnknownFormatError{Name: opts.Output}
	}
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, logFile string) error {
	fmt.Fprintln(w, "=== Timestamp Detection ===")
	fmt.Fprintf(w, "File: %s\n", logFile)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintf(w, "Lines with timestamps: %d (%.1f%%)\n", result.ParsedLines, result.Coverage()*100)
	if result.UnparsedStamps > 0 {
		fmt.Fprintf(w, "Timestamp-like tokens that did not parse: %d\n", result.UnparsedStamps)
	}
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No recognised timestamp found. Event rules will not produce a timeline.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Form", "Lines", "Share", "Example")
	for _, m := range result.Matches {
		if err := table.Append([]string{
			m.Name,
			strconv.Itoa(m.MatchCount),
			fmt.Sprintf("%.1f%%", m.Confidence*100),
			m.Timestamp,
		}); err != nil {
			return fmt.Errorf("rendering form table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering form table: %w", err)
	}

	best := result.BestMatch()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sample match:\n  %s\n", best.SampleLine)
	fmt.Fprintf(w, "Parsed as: %s\n", best.ParsedTime.Format("2006-01-02 15:04:05.000"))

	if result.AmbiguityNote != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Note: %s\n", result.AmbiguityNote)
	}
	return nil
}
