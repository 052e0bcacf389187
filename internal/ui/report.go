package ui

import (
	"fmt"
	"io"

	"perfledger/internal/ledger"
)

// Printer writes human-facing benchmark reports.
type Printer struct {
	w  io.Writer
	st styles
}

// NewPrinter returns a Printer writing to w. Colors are used only when w is
// a terminal, and never when noColor is set.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	return &Printer{w: w, st: newStyles(w, noColor)}
}

// Warn prints a highlighted one-line warning.
func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.w, p.st.warning.Render(msg))
}

// Report prints every benchmark recorded under key, each followed by its
// comparison against the closest earlier version when there is one.
func (p *Printer) Report(l ledger.Ledger, key ledger.VersionKey) []ledger.Comparison {
	comps := ledger.Compare(l, key)
	byTitle := make(map[string]ledger.Comparison, len(comps))
	for _, c := range comps {
		byTitle[c.Benchmark] = c
	}

	run := l[key]
	for _, title := range run.Titles() {
		scenarios := run[title]
		fastest, _, _ := ledger.FastestScenario(scenarios)

		fmt.Fprintln(p.w)
		fmt.Fprintf(p.w, "Benchmark: %s, %s\n", p.st.title.Render(title), key)
		for _, s := range scenarios.Titles() {
			style := p.st.slow
			if s == fastest {
				style = p.st.fastest
			}
			fmt.Fprintf(p.w, "  * %s: %s ms\n", p.st.title.Render(s), style.Render(fmt.Sprintf("%.4f", scenarios[s])))
		}

		if c, ok := byTitle[title]; ok && c.Reference != nil {
			fmt.Fprintln(p.w)
			fmt.Fprintln(p.w, p.sentence(c))
		}
	}
	return comps
}

// sentence is Comparison.Sentence with the current duration colored by verdict.
func (p *Printer) sentence(c ledger.Comparison) string {
	phrase, style := "is same as", p.st.value
	switch c.Verdict {
	case ledger.Faster:
		phrase, style = "is faster than", p.st.fastest
	case ledger.Slower:
		phrase, style = "is slower than", p.st.slow
	}
	return fmt.Sprintf("%s %s %s of %s: %s ms vs %s ms",
		c.Fastest.Scenario, phrase, c.Reference.Scenario, c.Reference.Version,
		style.Render(fmt.Sprintf("%.4f", c.Fastest.Duration)),
		p.st.value.Render(fmt.Sprintf("%.4f", c.Reference.Duration)))
}
