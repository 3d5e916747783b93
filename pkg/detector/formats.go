package detector

import "regexp"

// TimestampForm is one of the timestamp shapes the extractor recognises.
type TimestampForm struct {
	Name      string         // Human-readable name
	Pattern   *regexp.Regexp // Matches a whole extracted timestamp
	Layout    string         // Go time layout used when parsing
	Examples  []string       // Example timestamps
	Ambiguous bool           // Month/day order cannot be told from the text
}

// Forms returns the recognised timestamp forms in extractor precedence order.
func Forms() []*TimestampForm {
	return []*TimestampForm{
		{
			Name:     "Date and time",
			Pattern:  regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:[.,]\d+)?$`),
			Layout:   "2006-01-02 15:04:05",
			Examples: []string{"2024-01-15 10:30:00", "2024-01-15 10:30:00.123"},
		},
		{
			Name:     "ISO 8601",
			Pattern:  regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:[.,]\d+)?$`),
			Layout:   "2006-01-02T15:04:05",
			Examples: []string{"2024-01-15T10:30:00", "2024-01-15T10:30:00,500"},
		},
		{
			Name:      "US date with time (MM/DD/YYYY-hh:mm:ss.f)",
			Pattern:   regexp.MustCompile(`^\d{2}/\d{2}/\d{4}-\d{2}:\d{2}:\d{2}\.\d+$`),
			Layout:    "01/02/2006-15:04:05",
			Examples:  []string{"01/15/2024-10:30:00.000"},
			Ambiguous: true,
		},
		{
			Name:     "12-hour clock",
			Pattern:  regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}\.\d+\s+(?:AM|PM)$`),
			Layout:   "3:04:05.999999999 PM",
			Examples: []string{"9:30:00.123 PM"},
		},
		{
			Name:     "Time of day",
			Pattern:  regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(?:[.,]\d+)?$`),
			Layout:   "15:04:05",
			Examples: []string{"10:30:00", "10:30:00.250"},
		},
	}
}

// classify returns the first form matching ts, or nil.
func classify(forms []*TimestampForm, ts string) *TimestampForm {
	for _, form := range forms {
		if form.Pattern.MatchString(ts) {
			return form
		}
	}
	return nil
}
