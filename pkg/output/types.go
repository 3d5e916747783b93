// Package output provides formatting for filter, search and timeline results.
package output

import (
	"strings"
	"time"

	"github.com/ccollicutt/logsift/pkg/filter"
	"github.com/ccollicutt/logsift/pkg/parser"
)

// LineSource is the read access a report needs to the analysed log.
type LineSource interface {
	Line(index int) string
	LineCount() int
}

// Metadata provides context about the run.
type Metadata struct {
	// Source is the log file that was analysed.
	Source string `json:"source"`

	// RuleFile is the rule set used, if any.
	RuleFile string `json:"rule_file,omitempty"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration"`
}

// LineEntry is one log line in a report.
type LineEntry struct {
	// Index is the zero-based line index.
	Index int `json:"index"`

	// Text is the line content without its trailing newline.
	Text string `json:"text"`

	// Tag is the filter classification, empty for search results.
	Tag string `json:"tag,omitempty"`
}

// RuleSummary describes one rule and how many lines it claimed.
type RuleSummary struct {
	Position      int    `json:"position"`
	OriginalIndex int    `json:"original_index"`
	Pattern       string `json:"pattern"`
	Kind          string `json:"kind"`
	Regex         bool   `json:"regex"`
	Event         bool   `json:"event"`
	Hits          int    `json:"hits"`
	Invalid       string `json:"invalid,omitempty"`
}

// FilterSummary provides aggregate statistics for a filter run.
type FilterSummary struct {
	LinesTotal    int `json:"lines_total"`
	LinesSelected int `json:"lines_selected"`
	LinesExcluded int `json:"lines_excluded"`
	Events        int `json:"events"`
}

// FilterReport is the complete output of applying a rule set.
type FilterReport struct {
	Summary  FilterSummary `json:"summary"`
	Rules    []RuleSummary `json:"rules"`
	Lines    []LineEntry   `json:"lines,omitempty"`
	Timeline Timeline      `json:"timeline"`
	Metadata Metadata      `json:"metadata"`
}

// Event is a timeline event with its timestamp parsed when possible.
type Event struct {
	filter.TimelineEvent

	// Time is the parsed timestamp; nil when the text could not be parsed.
	Time *time.Time `json:"time,omitempty"`
}

// Timeline lists events in line order with the parsed time span.
type Timeline struct {
	Events []Event    `json:"events"`
	First  *time.Time `json:"first,omitempty"`
	Last   *time.Time `json:"last,omitempty"`
}

// Span returns the distance between the earliest and latest parsed event.
func (t *Timeline) Span() time.Duration {
	if t.First == nil || t.Last == nil {
		return 0
	}
	return t.Last.Sub(*t.First)
}

// NewTimeline parses event timestamps and records the earliest and latest.
func NewTimeline(events []filter.TimelineEvent) Timeline {
	tl := Timeline{Events: make([]Event, 0, len(events))}
	for _, ev := range events {
		out := Event{TimelineEvent: ev}
		if ts, err := parser.ParseTimestamp(ev.Timestamp); err == nil {
			out.Time = &ts
			if tl.First == nil || ts.Before(*tl.First) {
				first := ts
				tl.First = &first
			}
			if tl.Last == nil || ts.After(*tl.Last) {
				last := ts
				tl.Last = &last
			}
		}
		tl.Events = append(tl.Events, out)
	}
	return tl
}

// NewFilterReport builds a report from a filter result.
// When withLines is set the selected lines are copied into the report.
func NewFilterReport(src LineSource, rules []filter.Rule, res *filter.Result, withLines bool) *FilterReport {
	report := &FilterReport{
		Rules:    make([]RuleSummary, len(rules)),
		Timeline: NewTimeline(res.Events),
		Summary: FilterSummary{
			LinesTotal:    src.LineCount(),
			LinesSelected: len(res.Filtered),
			Events:        len(res.Events),
		},
	}

	for pos, rule := range rules {
		kind := "include"
		if rule.Exclude {
			kind = "exclude"
		}
		hits := 0
		if pos < len(res.HitCounts) {
			hits = res.HitCounts[pos]
		}
		report.Rules[pos] = RuleSummary{
			Position:      pos,
			OriginalIndex: rule.OriginalIndex,
			Pattern:       rule.Pattern,
			Kind:          kind,
			Regex:         rule.Regex,
			Event:         rule.Event,
			Hits:          hits,
		}
	}
	for _, bad := range res.InvalidRules {
		if bad.Position < len(report.Rules) {
			report.Rules[bad.Position].Invalid = bad.Error
		}
	}

	for _, code := range res.Tags {
		if code == filter.CodeExcluded {
			report.Summary.LinesExcluded++
		}
	}

	if withLines {
		report.Lines = make([]LineEntry, 0, len(res.Filtered))
		for _, idx := range res.Filtered {
			report.Lines = append(report.Lines, LineEntry{
				Index: idx,
				Text:  trimNewline(src.Line(idx)),
				Tag:   res.Tags[idx].Tag().String(),
			})
		}
	}

	return report
}

// SearchReport is the output of a search.
type SearchReport struct {
	Query         string      `json:"query"`
	Regex         bool        `json:"regex"`
	CaseSensitive bool        `json:"case_sensitive"`
	LinesTotal    int         `json:"lines_total"`
	Matches       []LineEntry `json:"matches"`
	Metadata      Metadata    `json:"metadata"`
}

// NewSearchReport builds a report from search hits.
func NewSearchReport(src LineSource, query string, regex, caseSensitive bool, hits []int) *SearchReport {
	report := &SearchReport{
		Query:         query,
		Regex:         regex,
		CaseSensitive: caseSensitive,
		LinesTotal:    src.LineCount(),
		Matches:       make([]LineEntry, 0, len(hits)),
	}
	for _, idx := range hits {
		report.Matches = append(report.Matches, LineEntry{Index: idx, Text: trimNewline(src.Line(idx))})
	}
	return report
}

func trimNewline(s string) string {
	return strings.TrimSuffix(s, "\n")
}
