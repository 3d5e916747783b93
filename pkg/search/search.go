// Package search finds the lines that match a single ad-hoc query.
package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ccollicutt/logsift/internal/workers"
)

// Query describes one search request.
type Query struct {
	// Text is the literal text or regular expression to look for.
	Text string

	// Regex treats Text as a regular expression.
	Regex bool

	// CaseSensitive disables case folding.
	CaseSensitive bool
}

// PatternError reports a query that is not a valid regular expression.
type PatternError struct {
	Query string
	Err   error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid search pattern %q: %v", e.Query, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Matcher reports whether a single line satisfies a query.
type Matcher func(line string) bool

// Compile builds the matcher for q.
//
// Case-insensitive literal queries go through a quoted regular expression so
// that Unicode case folding applies, not just ASCII lowering.
func Compile(q Query) (Matcher, error) {
	switch {
	case q.Regex:
		expr := q.Text
		if !q.CaseSensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, &PatternError{Query: q.Text, Err: err}
		}
		return re.MatchString, nil

	case q.CaseSensitive:
		text := q.Text
		return func(line string) bool { return strings.Contains(line, text) }, nil

	default:
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(q.Text))
		if err != nil {
			return nil, &PatternError{Query: q.Text, Err: err}
		}
		return re.MatchString, nil
	}
}

// Search returns the ascending indices of lines matching q.
// Lines are evaluated in parallel on pool; the result order does not depend
// on scheduling. A nil pool uses one worker per CPU.
func Search(lines []string, q Query, pool *workers.Pool) ([]int, error) {
	match, err := Compile(q)
	if err != nil {
		return nil, err
	}

	hits := make([]bool, len(lines))
	pool.Range(len(lines), func(start, end int) {
		for i := start; i < end; i++ {
			hits[i] = match(lines[i])
		}
	})

	result := make([]int, 0)
	for i, hit := range hits {
		if hit {
			result = append(result, i)
		}
	}
	return result, nil
}
