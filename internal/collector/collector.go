// Package collector times benchmark scenarios and accumulates their averages
// for a single run.
//
// Scenarios declared through the *Suite handed to Benchmark are recorded under
// that benchmark; each Run owns its own results.
package collector

import (
	"log/slog"
	"time"

	perferrors "perfledger/internal/errors"
	"perfledger/internal/ledger"
)

// DefaultCount is the number of iterations used when a scenario gives none.
const DefaultCount = 1000

// errNoBody is the reason reported for a scenario without a body.
const errNoBody = "benchmark contents not defined"

// Run accumulates results for one invocation. It is not safe for concurrent use.
type Run struct {
	now          func() time.Time
	defaultCount int
	logger       *slog.Logger

	results ledger.Benchmarks
	err     error
}

// Option configures a Run.
type Option func(*Run)

// WithClock replaces time.Now. Tests use it to make elapsed times deterministic.
func WithClock(now func() time.Time) Option {
	return func(r *Run) { r.now = now }
}

// WithDefaultCount sets the iteration count used by the two-argument form.
func WithDefaultCount(n int) Option {
	return func(r *Run) {
		if n > 0 {
			r.defaultCount = n
		}
	}
}

// WithLogger sets the logger used for per-scenario debug output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Run) { r.logger = l }
}

// New returns an empty Run.
func New(opts ...Option) *Run {
	r := &Run{
		now:          time.Now,
		defaultCount: DefaultCount,
		logger:       slog.Default(),
		results:      make(ledger.Benchmarks),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reset discards accumulated results and any recorded error.
func (r *Run) Reset() {
	r.results = make(ledger.Benchmarks)
	r.err = nil
}

// Err returns the first error raised during the run.
func (r *Run) Err() error {
	return r.err
}

// Results returns a copy of the results accumulated so far.
func (r *Run) Results() ledger.Benchmarks {
	return r.results.Clone()
}

// Suite scopes scenario declarations to one benchmark title.
type Suite struct {
	run   *Run
	title string
}

// Title returns the benchmark title the suite records under.
func (s *Suite) Title() string {
	return s.title
}

// Benchmark declares a suite and runs body synchronously. Scenarios declared
// on the suite are recorded under title. The first error raised by a scenario
// in body is returned.
func (r *Run) Benchmark(title string, body func(*Suite)) error {
	if r.err != nil {
		return r.err
	}
	if body == nil {
		return r.fail(perferrors.NewConfigurationError(title, "", errNoBody))
	}
	body(&Suite{run: r, title: title})
	return r.err
}

// Scenario times body DefaultCount times (or the configured default).
func (s *Suite) Scenario(title string, body func()) error {
	return s.run.measure(s.title, title, s.run.defaultCount, body)
}

// ScenarioN times body count times.
func (s *Suite) ScenarioN(title string, count int, body func()) error {
	return s.run.measure(s.title, title, count, body)
}

// Scenario declares a scenario outside any suite. Such scenarios are grouped
// under the empty benchmark title.
func (r *Run) Scenario(title string, body func()) error {
	return r.measure("", title, r.defaultCount, body)
}

// ScenarioN is the explicit-count form of Run.Scenario.
func (r *Run) ScenarioN(title string, count int, body func()) error {
	return r.measure("", title, count, body)
}

func (r *Run) measure(benchmark, title string, count int, body func()) error {
	if r.err != nil {
		return r.err
	}
	if body == nil {
		return r.fail(perferrors.NewConfigurationError(benchmark, title, errNoBody))
	}
	if count < 1 {
		return r.fail(perferrors.NewConfigurationError(benchmark, title, "scenario count must be at least 1"))
	}

	var total time.Duration
	for i := 0; i < count; i++ {
		start := r.now()
		body()
		total += r.now().Sub(start)
	}
	avg := ledger.Duration(float64(total) / float64(time.Millisecond) / float64(count))

	scenarios := r.results[benchmark]
	if scenarios == nil {
		scenarios = make(ledger.Scenarios)
		r.results[benchmark] = scenarios
	}
	scenarios[title] = avg

	r.logger.Debug("scenario measured",
		"benchmark", benchmark,
		"scenario", title,
		"count", count,
		"avg_ms", float64(avg))
	return nil
}

// Fail aborts the run with err, as a scenario body that cannot report errors
// itself would, and drops whatever was recorded for scenario under benchmark.
// It returns the run's first error.
func (r *Run) Fail(benchmark, scenario string, err error) error {
	if s, ok := r.results[benchmark]; ok {
		delete(s, scenario)
		if len(s) == 0 {
			delete(r.results, benchmark)
		}
	}
	return r.fail(err)
}

func (r *Run) fail(err error) error {
	if r.err == nil {
		r.err = err
	}
	return r.err
}
