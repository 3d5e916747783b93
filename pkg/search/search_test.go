package search

import (
	"errors"
	"fmt"
	"regexp/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/logsift/internal/workers"
)

var sample = []string{
	"2024-01-02 03:04:05 INFO service started\n",
	"2024-01-02 03:04:06 ERROR disk full\n",
	"2024-01-02 03:04:07 error retrying\n",
	"2024-01-02 03:04:08 WARN Straße gesperrt\n",
	"2024-01-02 03:04:09 INFO ΣΊΣΥΦΟΣ rolled the stone\n",
}

func TestSearch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query Query
		want  []int
	}{
		{
			name:  "literal case sensitive",
			query: Query{Text: "ERROR", CaseSensitive: true},
			want:  []int{1},
		},
		{
			name:  "literal case insensitive",
			query: Query{Text: "error"},
			want:  []int{1, 2},
		},
		{
			name:  "literal case insensitive unicode",
			query: Query{Text: "σίσυφος"},
			want:  []int{4},
		},
		{
			name:  "literal with regex metacharacters",
			query: Query{Text: "03:04:0[5"},
			want:  []int{},
		},
		{
			name:  "literal metacharacters match literally",
			query: Query{Text: "(disk)"},
			want:  []int{},
		},
		{
			name:  "regex case sensitive",
			query: Query{Text: `WARN|ERROR`, Regex: true, CaseSensitive: true},
			want:  []int{1, 3},
		},
		{
			name:  "regex case insensitive",
			query: Query{Text: `^\S+ \S+ error`, Regex: true},
			want:  []int{1, 2},
		},
		{
			name:  "no match",
			query: Query{Text: "panic"},
			want:  []int{},
		},
		{
			name:  "empty query matches all",
			query: Query{Text: "", CaseSensitive: true},
			want:  []int{0, 1, 2, 3, 4},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Search(sample, tt.query, workers.New(2))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearch_InvalidPattern(t *testing.T) {
	t.Parallel()

	got, err := Search(sample, Query{Text: "([", Regex: true}, nil)
	require.Error(t, err)
	assert.Nil(t, got)

	var perr *PatternError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "([", perr.Query)

	var serr *syntax.Error
	assert.True(t, errors.As(err, &serr), "underlying regexp error should be reachable")
}

func TestSearch_IdempotentAndOrdered(t *testing.T) {
	t.Parallel()

	lines := make([]string, 20_000)
	for i := range lines {
		if i%7 == 0 {
			lines[i] = fmt.Sprintf("line %d needle\n", i)
		} else {
			lines[i] = fmt.Sprintf("line %d hay\n", i)
		}
	}

	q := Query{Text: "NEEDLE"}
	first, err := Search(lines, q, workers.New(8))
	require.NoError(t, err)
	second, err := Search(lines, q, workers.New(3))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, (len(lines)+6)/7)
	assert.IsIncreasing(t, first)
}

func TestSearch_EmptyInput(t *testing.T) {
	t.Parallel()

	got, err := Search(nil, Query{Text: "x"}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
