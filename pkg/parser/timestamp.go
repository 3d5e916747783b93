package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// timestampPattern recognizes the timestamp families found in common log files.
// Alternatives are tried left to right; the leftmost match in the line wins,
// and at the same offset the earlier alternative wins.
//
//  1. 2024-01-15 10:30:00[.123|,123]  (space or T separator)
//  2. 01/15/2024-10:30:00.123
//  3. 9:30:00.123 AM
//  4. 10:30:00[.123|,123]
var timestampPattern = regexp.MustCompile(
	`(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}(?:[.,]\d+)?` +
		`|\d{2}/\d{2}/\d{4}-\d{2}:\d{2}:\d{2}\.\d+` +
		`|\b\d{1,2}:\d{2}:\d{2}\.\d+\s+(?:AM|PM)\b` +
		`|\b\d{2}:\d{2}:\d{2}(?:[.,]\d+)?\b)`)

// TimestampExtractor extracts timestamp substrings from log lines.
// The zero value is not usable; use NewTimestampExtractor.
type TimestampExtractor struct {
	pattern *regexp.Regexp
}

// NewTimestampExtractor creates an extractor for the built-in timestamp families.
func NewTimestampExtractor() *TimestampExtractor {
	return &TimestampExtractor{pattern: timestampPattern}
}

// Extract returns the first timestamp substring found anywhere in line.
// The second return value is false when no timestamp family matches.
func (e *TimestampExtractor) Extract(line string) (string, bool) {
	matches := e.pattern.FindStringSubmatch(line)
	if len(matches) < 2 || matches[1] == "" {
		return "", false
	}
	return matches[1], true
}

// timestampLayouts parse the strings produced by Extract. Fractional seconds
// after the seconds field are accepted by time.Parse without a layout element.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006-15:04:05",
	"3:04:05.999999999 PM",
	"15:04:05",
}

// ParseTimestamp converts an extracted timestamp into a time.Time in UTC.
// Time-only families carry a zero date.
func ParseTimestamp(ts string) (time.Time, error) {
	ts = strings.Join(strings.Fields(ts), " ")
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", ts)
}
