package detector

import (
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/logsift/pkg/parser"
)

func TestDetector_DetectFromLines(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		wantForm  string
		wantCount int
	}{
		{
			name: "date and time",
			lines: []string{
				"2024-01-15 10:30:00 Application started",
				"2024-01-15 10:30:05.250 Processing request",
				"2024-01-15 10:30:10,999 Request completed",
			},
			wantForm:  "Date and time",
			wantCount: 3,
		},
		{
			name: "iso 8601",
			lines: []string{
				"2024-01-15T10:30:00 Application started",
				"2024-01-15T10:30:05,500 Processing request",
			},
			wantForm:  "ISO 8601",
			wantCount: 2,
		},
		{
			name: "us date",
			lines: []string{
				"01/15/2024-10:30:00.000 job queued",
				"01/15/2024-10:30:01.125 job started",
			},
			wantForm:  "US date with time (MM/DD/YYYY-hh:mm:ss.f)",
			wantCount: 2,
		},
		{
			name: "12-hour clock",
			lines: []string{
				"9:30:00.123 PM tick",
				"11:02:59.5  AM tock",
			},
			wantForm:  "12-hour clock",
			wantCount: 2,
		},
		{
			name: "time of day",
			lines: []string{
				"[10:30:00] worker up",
				"[10:30:00.250] worker busy",
			},
			wantForm:  "Time of day",
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().DetectFromLines(tt.lines)

			if !result.HasMatch() {
				t.Fatal("Expected to detect a form")
			}
			best := result.BestMatch()
			if best.Name != tt.wantForm {
				t.Errorf("Expected %s, got %s", tt.wantForm, best.Name)
			}
			if best.MatchCount != tt.wantCount {
				t.Errorf("MatchCount = %d, want %d", best.MatchCount, tt.wantCount)
			}
			if best.Confidence != 1.0 {
				t.Errorf("Expected 100%% confidence, got %.1f%%", best.Confidence*100)
			}
			if best.SampleLine != tt.lines[0] {
				t.Errorf("SampleLine = %q, want %q", best.SampleLine, tt.lines[0])
			}
		})
	}
}

func TestDetector_MixedForms(t *testing.T) {
	lines := []string{
		"2024-01-15 10:30:00 a",
		"10:31:00 b",
		"2024-01-15 10:32:00 c",
		"no timestamp here",
		"2024-01-15 10:33:00 d",
	}

	result := New().DetectFromLines(lines)

	if len(result.Matches) != 2 {
		t.Fatalf("Matches = %d, want 2", len(result.Matches))
	}
	if result.Matches[0].Name != "Date and time" || result.Matches[0].MatchCount != 3 {
		t.Errorf("Matches[0] = %+v", result.Matches[0])
	}
	if result.Matches[1].Name != "Time of day" || result.Matches[1].MatchCount != 1 {
		t.Errorf("Matches[1] = %+v", result.Matches[1])
	}
	if result.SampledLines != 5 {
		t.Errorf("SampledLines = %d, want 5", result.SampledLines)
	}
	if result.ParsedLines != 4 {
		t.Errorf("ParsedLines = %d, want 4", result.ParsedLines)
	}
	if got := result.Coverage(); got != 0.8 {
		t.Errorf("Coverage = %v, want 0.8", got)
	}
}

func TestDetector_TiesKeepPrecedence(t *testing.T) {
	lines := []string{
		"10:31:00 b",
		"2024-01-15 10:30:00 a",
	}

	result := New().DetectFromLines(lines)

	if result.BestMatch().Name != "Date and time" {
		t.Errorf("BestMatch = %s, want Date and time", result.BestMatch().Name)
	}
}

func TestDetector_UnparsedStamps(t *testing.T) {
	lines := []string{
		"2024-13-45 10:30:00 impossible date",
		"99:99:99 impossible time",
		"2024-01-15 10:30:00 fine",
	}

	result := New().DetectFromLines(lines)

	if result.UnparsedStamps != 2 {
		t.Errorf("UnparsedStamps = %d, want 2", result.UnparsedStamps)
	}
	if result.ParsedLines != 1 {
		t.Errorf("ParsedLines = %d, want 1", result.ParsedLines)
	}
}

func TestDetector_ParsedTime(t *testing.T) {
	result := New().DetectFromLines([]string{"01/15/2024-10:30:00.500 go"})

	best := result.BestMatch()
	if best == nil {
		t.Fatal("Expected a match")
	}
	want := time.Date(2024, 1, 15, 10, 30, 0, 500_000_000, time.UTC)
	if !best.ParsedTime.Equal(want) {
		t.Errorf("ParsedTime = %v, want %v", best.ParsedTime, want)
	}
	if best.Timestamp != "01/15/2024-10:30:00.500" {
		t.Errorf("Timestamp = %q", best.Timestamp)
	}
	if result.AmbiguityNote == "" {
		t.Error("Expected ambiguity note for slash dates")
	}
}

func TestDetector_NoMatch(t *testing.T) {
	result := New().DetectFromLines([]string{"plain text", "more text"})

	if result.HasMatch() {
		t.Error("Expected no match")
	}
	if result.BestMatch() != nil {
		t.Error("BestMatch should be nil")
	}
	if result.AmbiguityNote != "" {
		t.Errorf("unexpected ambiguity note: %s", result.AmbiguityNote)
	}
}

func TestDetector_Empty(t *testing.T) {
	result := New().DetectFromLines(nil)

	if result.SampledLines != 0 || result.HasMatch() {
		t.Errorf("unexpected result for empty input: %+v", result)
	}
	if result.Coverage() != 0 {
		t.Errorf("Coverage = %v, want 0", result.Coverage())
	}
}

func TestDetector_WithSampleSize(t *testing.T) {
	lines := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		lines = append(lines, "", "2024-01-15 10:30:00 line")
	}

	result := New(WithSampleSize(10)).DetectFromLines(lines)

	if result.SampledLines != 10 {
		t.Errorf("SampledLines = %d, want 10 (blank lines are not sampled)", result.SampledLines)
	}

	result = New(WithSampleSize(-1)).DetectFromLines(lines)
	if result.SampledLines != 50 {
		t.Errorf("SampledLines = %d, want 50 with default sample size", result.SampledLines)
	}
}

func TestDetector_DetectFromStore(t *testing.T) {
	store, err := parser.Read(strings.NewReader("2024-01-15T10:30:00 a\r\n2024-01-15T10:30:01 b\r"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	result := New().DetectFromStore(store)

	best := result.BestMatch()
	if best == nil || best.Name != "ISO 8601" {
		t.Fatalf("BestMatch = %+v", best)
	}
	if best.SampleLine != "2024-01-15T10:30:00 a" {
		t.Errorf("SampleLine = %q, line endings should be stripped", best.SampleLine)
	}
}

func TestForms_Examples(t *testing.T) {
	forms := Forms()
	extractor := parser.NewTimestampExtractor()

	for _, form := range forms {
		for _, example := range form.Examples {
			if got := classify(forms, example); got != form {
				t.Errorf("%q classified as %v, want %s", example, got, form.Name)
			}
			ts, ok := extractor.Extract("x " + example + " y")
			if !ok || ts != example {
				t.Errorf("extractor on %q = %q, %v", example, ts, ok)
			}
			if _, err := parser.ParseTimestamp(example); err != nil {
				t.Errorf("ParseTimestamp(%q) failed: %v", example, err)
			}
		}
	}
}
