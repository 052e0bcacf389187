package ledger

import "fmt"

// Verdict is the outcome of comparing a run against its reference version.
type Verdict int

const (
	Equal Verdict = iota
	Faster
	Slower
)

func (v Verdict) String() string {
	switch v {
	case Faster:
		return "faster"
	case Slower:
		return "slower"
	default:
		return "equal"
	}
}

// Reference is the point a benchmark is compared against.
type Reference struct {
	Version  VersionKey
	Scenario string
	Duration Duration
}

// Fastest is the quickest scenario of a benchmark.
type Fastest struct {
	Scenario string
	Duration Duration
}

// Comparison is one benchmark of a run set against its closest predecessor.
type Comparison struct {
	Benchmark string
	Fastest   Fastest
	Reference *Reference // nil when no earlier version measured the benchmark
	Verdict   Verdict
	DeltaPct  float64 // percentage change from the reference duration
}

// FastestScenario returns the scenario with the smallest duration.
// Scenarios are visited in lexical order, so ties go to the first title.
func FastestScenario(s Scenarios) (title string, d Duration, ok bool) {
	for _, t := range s.Titles() {
		if !ok || s[t] < d {
			title, d, ok = t, s[t], true
		}
	}
	return title, d, ok
}

// FindComparisonPoint looks for the greatest version strictly before key
// that has an entry for benchmark, and returns the fastest scenario recorded
// by that version. It reports false when no earlier version has the entry,
// or when the closest one recorded no scenarios for it.
func FindComparisonPoint(l Ledger, key VersionKey, benchmark string) (Reference, bool) {
	var (
		closest VersionKey
		found   bool
	)
	for candidate, benchmarks := range l {
		if !candidate.Less(key) {
			continue
		}
		if _, has := benchmarks[benchmark]; !has {
			continue
		}
		if found && !closest.Less(candidate) {
			continue
		}
		closest, found = candidate, true
	}
	if !found {
		return Reference{}, false
	}

	title, d, ok := FastestScenario(l[closest][benchmark])
	if !ok {
		return Reference{}, false
	}
	return Reference{Version: closest, Scenario: title, Duration: d}, true
}

// CompareDurations reports how current stands against reference.
func CompareDurations(current, reference Duration) Verdict {
	switch {
	case current < reference:
		return Faster
	case current > reference:
		return Slower
	default:
		return Equal
	}
}

// Compare builds a Comparison for every benchmark recorded under key.
func Compare(l Ledger, key VersionKey) []Comparison {
	run := l[key]
	var comparisons []Comparison
	for _, title := range run.Titles() {
		scenario, d, ok := FastestScenario(run[title])
		if !ok {
			continue
		}
		comp := Comparison{
			Benchmark: title,
			Fastest:   Fastest{Scenario: scenario, Duration: d},
		}
		if ref, ok := FindComparisonPoint(l, key, title); ok {
			comp.Reference = &ref
			comp.Verdict = CompareDurations(d, ref.Duration)
			if ref.Duration > 0 {
				comp.DeltaPct = float64((d - ref.Duration) / ref.Duration * 100)
			}
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

// Regressions returns the comparisons whose verdict is Slower.
func Regressions(comps []Comparison) []Comparison {
	var out []Comparison
	for _, c := range comps {
		if c.Reference != nil && c.Verdict == Slower {
			out = append(out, c)
		}
	}
	return out
}

// Sentence renders the comparison as a single plain-text line, or "" when
// there is nothing to compare against.
func (c Comparison) Sentence() string {
	if c.Reference == nil {
		return ""
	}
	phrase := "is same as"
	switch c.Verdict {
	case Faster:
		phrase = "is faster than"
	case Slower:
		phrase = "is slower than"
	}
	return fmt.Sprintf("%s %s %s of %s: %.4f ms vs %.4f ms",
		c.Fastest.Scenario, phrase, c.Reference.Scenario, c.Reference.Version,
		c.Fastest.Duration, c.Reference.Duration)
}
