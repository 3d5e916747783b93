package filter

import (
	"regexp"
	"strings"

	"github.com/ccollicutt/logsift/internal/workers"
	"github.com/ccollicutt/logsift/pkg/parser"
)

// compiledRule is a Rule ready for matching. A regex rule whose pattern did
// not compile has a nil re and never matches.
type compiledRule struct {
	Rule
	re *regexp.Regexp
}

func (r *compiledRule) match(line string) bool {
	if r.Regex {
		return r.re != nil && r.re.MatchString(line)
	}
	return strings.Contains(line, r.Pattern)
}

// ruleSet is the read-only state shared by every worker during one Evaluate.
type ruleSet struct {
	rules       []compiledRule
	hasIncludes bool
	timestamps  *parser.TimestampExtractor
}

func compile(rules []Rule) (*ruleSet, []InvalidRule) {
	set := &ruleSet{
		rules:      make([]compiledRule, len(rules)),
		timestamps: parser.NewTimestampExtractor(),
	}

	var invalid []InvalidRule
	for i, rule := range rules {
		set.rules[i] = compiledRule{Rule: rule}
		if !rule.Exclude {
			set.hasIncludes = true
		}
		if !rule.Regex {
			continue
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			invalid = append(invalid, InvalidRule{Position: i, Pattern: rule.Pattern, Error: err.Error()})
			continue
		}
		set.rules[i].re = re
	}

	return set, invalid
}

// lineResult is the per-line outcome before aggregation.
type lineResult struct {
	tag      Tag
	attrib   int // rule position, -1 when untagged
	hasEvent bool
	event    TimelineEvent
}

// evaluate classifies one line. Excludes are checked first; the first
// matching rule in each pass wins.
func (s *ruleSet) evaluate(index int, line string) lineResult {
	for i := range s.rules {
		r := &s.rules[i]
		if r.Exclude && r.match(line) {
			return lineResult{tag: Tag{Kind: TagExcluded}, attrib: i}
		}
	}

	for i := range s.rules {
		r := &s.rules[i]
		if r.Exclude || !r.match(line) {
			continue
		}
		res := lineResult{tag: Tag{Kind: TagIncluded, Rule: i}, attrib: i}
		if r.Event {
			if ts, ok := s.timestamps.Extract(line); ok {
				res.hasEvent = true
				res.event = TimelineEvent{Timestamp: ts, Label: r.Pattern, LineIndex: index}
			}
		}
		return res
	}

	return lineResult{attrib: -1}
}

// selected reports whether a line with tag belongs in the filtered view.
// With no include rules every non-excluded line passes; otherwise only
// included lines do.
func (s *ruleSet) selected(tag Tag) bool {
	switch tag.Kind {
	case TagIncluded:
		return true
	case TagNone:
		return !s.hasIncludes
	default:
		return false
	}
}

// Evaluate tags every line against rules.
//
// Lines are classified in parallel on pool (nil means one worker per CPU),
// then aggregated in a single ascending pass, so the result is identical for
// any pool size. Evaluate never fails: a regex rule that does not compile
// matches no line and is reported in Result.InvalidRules.
func Evaluate(lines []string, rules []Rule, pool *workers.Pool) *Result {
	set, invalid := compile(rules)

	perLine := make([]lineResult, len(lines))
	pool.Range(len(lines), func(start, end int) {
		for i := start; i < end; i++ {
			perLine[i] = set.evaluate(i, lines[i])
		}
	})

	result := &Result{
		Tags:         make([]TagCode, len(lines)),
		Filtered:     make([]int, 0),
		HitCounts:    make([]int, len(rules)),
		Events:       make([]TimelineEvent, 0),
		InvalidRules: invalid,
	}

	for i, lr := range perLine {
		result.Tags[i] = lr.tag.Code()
		if lr.attrib >= 0 {
			result.HitCounts[lr.attrib]++
		}
		if set.selected(lr.tag) {
			result.Filtered = append(result.Filtered, i)
		}
		if lr.hasEvent {
			result.Events = append(result.Events, lr.event)
		}
	}

	return result
}
