// Package parser loads log files into memory and extracts timestamps from lines.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Store is an ordered, immutable sequence of log lines.
// Every stored line ends in exactly one "\n", whatever terminator the source used.
// A Store is safe for concurrent readers; nothing mutates it after construction.
type Store struct {
	lines []string
}

// Load reads the file at path into a Store.
// Invalid UTF-8 is replaced with U+FFFD rather than rejected.
func Load(path string) (*Store, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s, nil
}

// Read builds a Store from r, normalizing LF, CRLF, CR and mixed line endings.
func Read(r io.Reader) (*Store, error) {
	br := bufio.NewReaderSize(transform.NewReader(r, unicode.UTF8.NewDecoder()), 64*1024)

	var lines []string
	for {
		chunk, err := br.ReadString('\n')
		if len(chunk) > 0 {
			lines = appendLogical(lines, chunk)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return &Store{lines: lines}, nil
}

// appendLogical splits one "\n"-terminated chunk into logical lines.
// A trailing "\n" then a trailing "\r" are dropped; any "\r" left inside the
// chunk separates further lines (old Mac or mixed endings).
func appendLogical(lines []string, chunk string) []string {
	chunk = strings.TrimSuffix(chunk, "\n")
	chunk = strings.TrimSuffix(chunk, "\r")

	if !strings.Contains(chunk, "\r") {
		return append(lines, chunk+"\n")
	}
	for _, part := range strings.Split(chunk, "\r") {
		lines = append(lines, part+"\n")
	}
	return lines
}

// Line returns the line at index, or "" when index is out of range.
func (s *Store) Line(index int) string {
	if s == nil || index < 0 || index >= len(s.lines) {
		return ""
	}
	return s.lines[index]
}

// Count returns the number of stored lines.
func (s *Store) Count() int {
	if s == nil {
		return 0
	}
	return len(s.lines)
}

// Lines exposes the backing slice for read-only iteration by the search and
// filter engines. Callers must not modify it.
func (s *Store) Lines() []string {
	if s == nil {
		return nil
	}
	return s.lines
}
