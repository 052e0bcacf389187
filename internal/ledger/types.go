package ledger

import (
	"maps"
	"slices"
)

// Duration is an averaged scenario time in milliseconds.
type Duration float64

// Scenarios maps scenario titles to their averaged durations.
type Scenarios map[string]Duration

// Benchmarks maps benchmark titles to their scenarios for a single run.
type Benchmarks map[string]Scenarios

// Ledger is the persisted history of runs, keyed by version.
type Ledger map[VersionKey]Benchmarks

// Titles returns the scenario titles in lexical order.
func (s Scenarios) Titles() []string {
	return slices.Sorted(maps.Keys(s))
}

// Titles returns the benchmark titles in lexical order.
func (b Benchmarks) Titles() []string {
	return slices.Sorted(maps.Keys(b))
}

// Clone returns a deep copy of b.
func (b Benchmarks) Clone() Benchmarks {
	if b == nil {
		return nil
	}
	out := make(Benchmarks, len(b))
	for title, scenarios := range b {
		out[title] = maps.Clone(scenarios)
	}
	return out
}

// Versions returns the ledger keys in ascending version order.
// Keys that do not parse are placed last, in lexical order.
func (l Ledger) Versions() []VersionKey {
	keys := slices.Collect(maps.Keys(l))
	SortVersionKeys(keys)
	return keys
}

// RecordRun stores b under key, replacing whatever that version held before.
func RecordRun(l Ledger, key VersionKey, b Benchmarks) Ledger {
	if l == nil {
		l = make(Ledger)
	}
	if b == nil {
		b = Benchmarks{}
	}
	l[key] = b
	return l
}
