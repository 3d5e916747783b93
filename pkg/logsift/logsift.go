// Package logsift is the embeddable log analysis engine: it loads a log file
// once and answers search and filter requests against it.
package logsift

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ccollicutt/logsift/internal/workers"
	"github.com/ccollicutt/logsift/pkg/filter"
	"github.com/ccollicutt/logsift/pkg/parser"
	"github.com/ccollicutt/logsift/pkg/search"
)

// Engine holds one loaded log file. All methods are safe for concurrent use;
// the line buffer is never modified after Open returns.
type Engine struct {
	path   string
	store  *parser.Store
	pool   *workers.Pool
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets how many goroutines search and filter may use.
// Values below 1 mean one per CPU.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.pool = workers.New(n)
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Open loads the file at path. A missing or unreadable file is an error and
// no engine is returned.
func Open(path string, opts ...Option) (*Engine, error) {
	e := newEngine(path, opts)

	start := time.Now()
	store, err := parser.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading log: %w", err)
	}
	e.store = store

	e.logger.Debug("log loaded",
		zap.String("path", path),
		zap.Int("lines", store.Count()),
		zap.Duration("took", time.Since(start)))

	return e, nil
}

// New wraps an already-built store, mainly for callers that read from
// something other than a file.
func New(store *parser.Store, opts ...Option) *Engine {
	e := newEngine("", opts)
	e.store = store
	return e
}

func newEngine(path string, opts []Option) *Engine {
	e := &Engine{
		path:   path,
		pool:   workers.New(0),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Path returns the file the engine was opened from, or "" for New.
func (e *Engine) Path() string {
	return e.path
}

// Line returns the line at index including its trailing "\n",
// or "" when index is out of range.
func (e *Engine) Line(index int) string {
	return e.store.Line(index)
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	return e.store.Count()
}

// Search returns the ascending indices of lines matching query.
// An invalid regex yields a *search.PatternError and no results.
func (e *Engine) Search(query string, regex, caseSensitive bool) ([]int, error) {
	start := time.Now()
	hits, err := search.Search(e.store.Lines(), search.Query{
		Text:          query,
		Regex:         regex,
		CaseSensitive: caseSensitive,
	}, e.pool)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("search finished",
		zap.String("query", query),
		zap.Bool("regex", regex),
		zap.Bool("case_sensitive", caseSensitive),
		zap.Int("hits", len(hits)),
		zap.Duration("took", time.Since(start)))

	return hits, nil
}

// Filter evaluates rules against every line. It never fails; rules whose
// regex does not compile match nothing and are listed in the result.
func (e *Engine) Filter(rules []filter.Rule) *filter.Result {
	start := time.Now()
	res := filter.Evaluate(e.store.Lines(), rules, e.pool)

	for _, bad := range res.InvalidRules {
		e.logger.Warn("filter rule never matches: invalid regex",
			zap.Int("position", bad.Position),
			zap.Int("original_index", rules[bad.Position].OriginalIndex),
			zap.String("pattern", bad.Pattern),
			zap.String("error", bad.Error))
	}

	e.logger.Debug("filter finished",
		zap.Int("rules", len(rules)),
		zap.Int("selected", len(res.Filtered)),
		zap.Int("events", len(res.Events)),
		zap.Duration("took", time.Since(start)))

	return res
}
