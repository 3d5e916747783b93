package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter formats reports as JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// FormatFilter renders a filter report as JSON.
func (f *JSONFormatter) FormatFilter(_ context.Context, report *FilterReport, w io.Writer) error {
	if f.opts.Quiet {
		return f.encode(w, report.Summary)
	}
	return f.encode(w, report)
}

// FormatSearch renders a search report as JSON.
func (f *JSONFormatter) FormatSearch(_ context.Context, report *SearchReport, w io.Writer) error {
	if f.opts.Quiet {
		return f.encode(w, struct {
			Query   string `json:"query"`
			Matches int    `json:"matches"`
		}{report.Query, len(report.Matches)})
	}
	return f.encode(w, report)
}

// FormatTimeline renders a timeline as JSON.
func (f *JSONFormatter) FormatTimeline(_ context.Context, timeline *Timeline, w io.Writer) error {
	return f.encode(w, timeline)
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
