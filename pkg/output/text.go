package output

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// FormatFilter renders a filter report as text.
func (f *TextFormatter) FormatFilter(_ context.Context, report *FilterReport, w io.Writer) error {
	if f.opts.Quiet {
		fmt.Fprintf(w, "LogSift: %s\n", filterSummaryLine(report))
		return nil
	}

	fmt.Fprintln(w, "=== LogSift Filter Report ===")
	fmt.Fprintf(w, "Source: %s (%d lines)\n", report.Metadata.Source, report.Summary.LinesTotal)
	fmt.Fprintln(w)

	if err := f.formatRules(report.Rules, w); err != nil {
		return err
	}

	for _, rule := range report.Rules {
		if rule.Invalid != "" {
			fmt.Fprintf(w, "  ! rule %d %q never matches: %s\n", rule.Position+1, rule.Pattern, rule.Invalid)
		}
	}

	if len(report.Lines) > 0 {
		fmt.Fprintln(w)
		for _, line := range report.Lines {
			fmt.Fprintf(w, "%7d: %s\n", line.Index+1, line.Text)
		}
	}

	if len(report.Timeline.Events) > 0 {
		fmt.Fprintln(w)
		f.formatTimeline(&report.Timeline, w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %s\n", filterSummaryLine(report))

	if f.opts.Verbose {
		if report.Metadata.RuleFile != "" {
			fmt.Fprintf(w, "Rules file: %s\n", report.Metadata.RuleFile)
		}
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

func filterSummaryLine(report *FilterReport) string {
	return fmt.Sprintf("%d of %d lines selected, %d excluded, %d events",
		report.Summary.LinesSelected,
		report.Summary.LinesTotal,
		report.Summary.LinesExcluded,
		report.Summary.Events)
}

func (f *TextFormatter) formatRules(rules []RuleSummary, w io.Writer) error {
	if len(rules) == 0 {
		fmt.Fprintln(w, "No active rules")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Kind", "Pattern", "Regex", "Event", "Hits")
	for _, rule := range rules {
		if err := table.Append([]string{
			strconv.Itoa(rule.Position + 1),
			rule.Kind,
			rule.Pattern,
			yesNo(rule.Regex),
			yesNo(rule.Event),
			strconv.Itoa(rule.Hits),
		}); err != nil {
			return fmt.Errorf("rendering rule table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering rule table: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// FormatSearch renders a search report as text.
func (f *TextFormatter) FormatSearch(_ context.Context, report *SearchReport, w io.Writer) error {
	if f.opts.Quiet {
		fmt.Fprintf(w, "LogSift: %d of %d lines match %q\n", len(report.Matches), report.LinesTotal, report.Query)
		return nil
	}

	for _, m := range report.Matches {
		fmt.Fprintf(w, "%7d: %s\n", m.Index+1, m.Text)
	}
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "%d of %d lines match %q\n", len(report.Matches), report.LinesTotal, report.Query)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Mode: regex=%t case_sensitive=%t\n", report.Regex, report.CaseSensitive)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}
	return nil
}

// FormatTimeline renders timeline events as text.
func (f *TextFormatter) FormatTimeline(_ context.Context, timeline *Timeline, w io.Writer) error {
	f.formatTimeline(timeline, w)
	return nil
}

func (f *TextFormatter) formatTimeline(timeline *Timeline, w io.Writer) {
	fmt.Fprintf(w, "Timeline: %d event(s)\n", len(timeline.Events))
	if f.opts.Quiet {
		return
	}
	for _, ev := range timeline.Events {
		fmt.Fprintf(w, "  %-26s %-20s line %d\n", ev.Timestamp, ev.Label, ev.LineIndex+1)
	}
	if timeline.First != nil && timeline.Last != nil {
		fmt.Fprintf(w, "  Span: %s\n", timeline.Span())
	}
}
