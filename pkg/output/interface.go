package output

import (
	"context"
	"io"
)

// Formatter renders reports in a specific format.
type Formatter interface {
	// FormatFilter renders the result of applying a rule set.
	FormatFilter(ctx context.Context, report *FilterReport, w io.Writer) error

	// FormatSearch renders the result of a search.
	FormatSearch(ctx context.Context, report *SearchReport, w io.Writer) error

	// FormatTimeline renders timeline events only.
	FormatTimeline(ctx context.Context, timeline *Timeline, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds metadata such as timings.
	Verbose bool

	// Quiet enables minimal summary-only output.
	Quiet bool
}

// New returns the formatter registered under name.
func New(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	default:
		return nil, &UnknownFormatError{Name: name}
	}
}

// UnknownFormatError is returned by New for unsupported format names.
type UnknownFormatError struct {
	Name string
}

func (e *UnknownFormatError) Error() string {
	return "unknown output format \"" + e.Name + "\" (use text or json)"
}
