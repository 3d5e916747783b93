// Package detector reports which timestamp forms occur in a log, so a user
// can tell ahead of time whether event rules will yield a timeline.
package detector

import (
	"sort"
	"strings"
	"time"

	"github.com/ccollicutt/logsift/pkg/parser"
)

// DetectionResult holds the result of sampling a log.
type DetectionResult struct {
	Matches        []FormMatch `json:"matches"`         // Forms seen, most frequent first
	SampledLines   int         `json:"sampled_lines"`   // Non-blank lines examined
	ParsedLines    int         `json:"parsed_lines"`    // Lines whose timestamp parsed
	UnparsedStamps int         `json:"unparsed_stamps"` // Lines with a timestamp-like token that did not parse
	AmbiguityNote  string      `json:"ambiguity_note,omitempty"`
}

// FormMatch is one timestamp form and how often it was seen.
type FormMatch struct {
	Form       *TimestampForm `json:"-"`
	Name       string         `json:"name"`
	Confidence float64        `json:"confidence"` // Share of sampled lines, 0.0 to 1.0
	MatchCount int            `json:"match_count"`
	SampleLine string         `json:"sample_line"`
	Timestamp  string         `json:"timestamp"`
	ParsedTime time.Time      `json:"parsed_time"`
}

// Detector samples log lines and classifies their timestamps.
type Detector struct {
	extractor  *parser.TimestampExtractor
	forms      []*TimestampForm
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of non-blank lines to sample (default 1000).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a Detector for the recognised timestamp forms.
func New(opts ...Option) *Detector {
	d := &Detector{
		extractor:  parser.NewTimestampExtractor(),
		forms:      Forms(),
		sampleSize: 1000,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromStore samples the head of a loaded log.
func (d *Detector) DetectFromStore(store *parser.Store) *DetectionResult {
	return d.DetectFromLines(store.Lines())
}

// DetectFromLines classifies the timestamp of each sampled line.
// Blank lines are not sampled.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{Matches: []FormMatch{}}

	order := make(map[*TimestampForm]int, len(d.forms))
	for i, form := range d.forms {
		order[form] = i
	}
	stats := make(map[*TimestampForm]*FormMatch)

	for _, line := range lines {
		if result.SampledLines >= d.sampleSize {
			break
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		result.SampledLines++

		ts, ok := d.extractor.Extract(line)
		if !ok {
			continue
		}
		parsed, err := parser.ParseTimestamp(ts)
		form := classify(d.forms, ts)
		if err != nil || form == nil {
			result.UnparsedStamps++
			continue
		}
		result.ParsedLines++

		m, seen := stats[form]
		if !seen {
			m = &FormMatch{
				Form:       form,
				Name:       form.Name,
				SampleLine: line,
				Timestamp:  ts,
				ParsedTime: parsed,
			}
			stats[form] = m
		}
		m.MatchCount++
	}

	for _, m := range stats {
		m.Confidence = float64(m.MatchCount) / float64(result.SampledLines)
		result.Matches = append(result.Matches, *m)
	}

	// Most frequent first; ties keep extractor precedence.
	sort.Slice(result.Matches, func(i, j int) bool {
		if result.Matches[i].MatchCount != result.Matches[j].MatchCount {
			return result.Matches[i].MatchCount > result.Matches[j].MatchCount
		}
		return order[result.Matches[i].Form] < order[result.Matches[j].Form]
	})

	for _, m := range result.Matches {
		if m.Form.Ambiguous {
			result.AmbiguityNote = "Slash dates are read month first (MM/DD/YYYY). " +
				"Logs written day first will produce wrong or unparsed event times."
			break
		}
	}

	return result
}

// BestMatch returns the most frequent form, or nil if none was found.
func (r *DetectionResult) BestMatch() *FormMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one form was found.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}

// Coverage is the share of sampled lines with a parsed timestamp.
func (r *DetectionResult) Coverage() float64 {
	if r.SampledLines == 0 {
		return 0
	}
	return float64(r.ParsedLines) / float64(r.SampledLines)
}
