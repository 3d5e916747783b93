// Package filter tags every log line against an ordered list of include and
// exclude rules.
package filter

import "fmt"

// Rule is a single include or exclude criterion.
// Rules are evaluated in slice order; order decides which rule a line is
// attributed to.
type Rule struct {
	// Pattern is the literal text or regular expression to match.
	Pattern string `json:"pattern"`

	// Regex treats Pattern as a regular expression.
	Regex bool `json:"regex"`

	// Exclude drops matching lines instead of selecting them.
	Exclude bool `json:"exclude"`

	// Event records a timeline event for lines this rule includes.
	Event bool `json:"event"`

	// OriginalIndex is carried through untouched so callers can map results
	// back to their own rule identity.
	OriginalIndex int `json:"original_index"`
}

// TagKind classifies the outcome for one line.
type TagKind uint8

const (
	TagNone TagKind = iota
	TagExcluded
	TagIncluded
)

// Tag is the classification of one line.
// Rule is the position of the matching include rule when Kind is TagIncluded.
type Tag struct {
	Kind TagKind
	Rule int
}

// TagCode is the compact integer form of a Tag:
// 0 = none, 1 = excluded, 2+position = included by the rule at position.
type TagCode int

const (
	CodeNone     TagCode = 0
	CodeExcluded TagCode = 1
)

// Code returns the compact encoding of t.
func (t Tag) Code() TagCode {
	switch t.Kind {
	case TagExcluded:
		return CodeExcluded
	case TagIncluded:
		return TagCode(2 + t.Rule)
	default:
		return CodeNone
	}
}

// Tag decodes c.
func (c TagCode) Tag() Tag {
	switch {
	case c == CodeExcluded:
		return Tag{Kind: TagExcluded}
	case c >= 2:
		return Tag{Kind: TagIncluded, Rule: int(c) - 2}
	default:
		return Tag{Kind: TagNone}
	}
}

func (t Tag) String() string {
	switch t.Kind {
	case TagExcluded:
		return "excluded"
	case TagIncluded:
		return fmt.Sprintf("include[%d]", t.Rule)
	default:
		return "none"
	}
}

// TimelineEvent marks a line included by an event rule that carries a timestamp.
type TimelineEvent struct {
	Timestamp string `json:"timestamp"`
	Label     string `json:"label"`
	LineIndex int    `json:"line_index"`
}

// InvalidRule records a regex rule that failed to compile and was treated as
// matching nothing.
type InvalidRule struct {
	Position int    `json:"position"`
	Pattern  string `json:"pattern"`
	Error    string `json:"error"`
}

// Result is the output of one Evaluate call.
type Result struct {
	// Tags holds one entry per line, indexed by line.
	Tags []TagCode

	// Filtered lists the selected line indices in ascending order.
	Filtered []int

	// HitCounts holds, per rule position, how many lines were attributed to it.
	HitCounts []int

	// Events lists timeline events in ascending line order.
	Events []TimelineEvent

	// InvalidRules lists regex rules that could not be compiled.
	InvalidRules []InvalidRule
}

// TotalHits returns the number of lines attributed to any rule.
func (r *Result) TotalHits() int {
	total := 0
	for _, n := range r.HitCounts {
		total += n
	}
	return total
}
