package logsift

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ccollicutt/logsift/pkg/filter"
	"github.com/ccollicutt/logsift/pkg/parser"
	"github.com/ccollicutt/logsift/pkg/search"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOpen(t *testing.T) {
	t.Parallel()

	path := writeLog(t, "a\r\nb\nc\rd")
	e, err := Open(path, WithWorkers(2))
	require.NoError(t, err)

	assert.Equal(t, path, e.Path())
	assert.Equal(t, 4, e.LineCount())
	assert.Equal(t, "a\n", e.Line(0))
	assert.Equal(t, "d\n", e.Line(3))
	assert.Equal(t, "", e.Line(e.LineCount()))
}

func TestOpen_Missing(t *testing.T) {
	t.Parallel()

	e, err := Open(filepath.Join(t.TempDir(), "missing.log"))
	require.Error(t, err)
	assert.Nil(t, e)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestEngine_Search(t *testing.T) {
	t.Parallel()

	path := writeLog(t, "INFO start\nERROR boom\ninfo lower\n")
	e, err := Open(path)
	require.NoError(t, err)

	hits, err := e.Search("info", false, false)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, hits)

	again, err := e.Search("info", false, false)
	require.NoError(t, err)
	assert.Equal(t, hits, again)

	hits, err = e.Search("info", false, true)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, hits)

	_, err = e.Search("[", true, true)
	var perr *search.PatternError
	assert.True(t, errors.As(err, &perr))
}

func TestEngine_Filter(t *testing.T) {
	t.Parallel()

	store, err := parser.Read(strings.NewReader(
		"2024-01-02 03:04:05 ERROR boom\n" +
			"2024-01-02 03:04:06 INFO fine\n" +
			"2024-01-02 03:04:07 DEBUG noise\n"))
	require.NoError(t, err)

	e := New(store)
	res := e.Filter([]filter.Rule{
		{Pattern: "DEBUG", Exclude: true, OriginalIndex: 3},
		{Pattern: "ERROR", Event: true, OriginalIndex: 5},
	})

	assert.Equal(t, []filter.TagCode{3, 0, 1}, res.Tags)
	assert.Equal(t, []int{0}, res.Filtered)
	assert.Equal(t, []int{1, 1}, res.HitCounts)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "2024-01-02 03:04:05", res.Events[0].Timestamp)
	assert.Equal(t, "ERROR", res.Events[0].Label)
	assert.Equal(t, 0, res.Events[0].LineIndex)
}

func TestEngine_FilterLogsInvalidRules(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	store, err := parser.Read(strings.NewReader("x\ny\n"))
	require.NoError(t, err)

	e := New(store, WithLogger(zap.New(core)))
	res := e.Filter([]filter.Rule{{Pattern: "(", Regex: true, OriginalIndex: 4}})

	assert.Equal(t, []int{0}, res.HitCounts)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, int64(4), entry.ContextMap()["original_index"])
}

func TestWithLogger_NilKeepsDefault(t *testing.T) {
	t.Parallel()

	e := New(nil, WithLogger(nil))
	assert.NotNil(t, e.logger)
	assert.Equal(t, 0, e.LineCount())
}
