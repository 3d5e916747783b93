package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// LinesOptions holds command-line options for the lines command.
type LinesOptions struct {
	From   int
	Count  int
	Number bool
}

// NewLinesCommand creates the lines command.
func NewLinesCommand() *cobra.Command {
	opts := &LinesOptions{}

	cmd := &cobra.Command{
		Use:   "lines <log-file>",
		Short: "Print a range of normalized lines",
		Long: `Print lines from a log file after line-ending normalization.

Line numbers are 1-based. Ranges past the end of the file print nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLines(cmd, args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.From, "from", 1, "First line to print (1-based)")
	cmd.Flags().IntVarP(&opts.Count, "count", "n", 20, "Number of lines to print (0 prints only the total)")
	cmd.Flags().BoolVar(&opts.Number, "number", true, "Prefix each line with its number")

	return cmd
}

func runLines(cmd *cobra.Command, args []string, opts *LinesOptions) error {
	if opts.From < 1 {
		return fmt.Errorf("invalid --from %d (must be >= 1)", opts.From)
	}
	if opts.Count < 0 {
		return fmt.Errorf("invalid --count %d (must be >= 0)", opts.Count)
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	engine, err := openEngine(args[0], 0, logger)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if opts.Count == 0 {
		fmt.Fprintf(w, "%d lines\n", engine.LineCount())
		return nil
	}

	first := opts.From - 1
	for i := first; i < first+opts.Count && i < engine.LineCount(); i++ {
		line := strings.TrimSuffix(engine.Line(i), "\n")
		if opts.Number {
			fmt.Fprintf(w, "%7d: %s\n", i+1, line)
		} else {
			fmt.Fprintln(w, line)
		}
	}
	return nil
}
