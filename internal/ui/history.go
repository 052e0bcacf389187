package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"perfledger/internal/ledger"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// HistoryMarkdown renders the ledger as a markdown table with one row per
// version and benchmark, showing the fastest scenario of each.
func HistoryMarkdown(l ledger.Ledger, benchmark string) string {
	var sb strings.Builder
	sb.WriteString("| Version | Benchmark | Fastest | ms |\n")
	sb.WriteString("|---|---|---|---:|\n")
	for _, v := range l.Versions() {
		run := l[v]
		for _, title := range run.Titles() {
			if benchmark != "" && title != benchmark {
				continue
			}
			scenario, d, ok := ledger.FastestScenario(run[title])
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %.4f |\n",
				escapeCell(string(v)), escapeCell(title), escapeCell(scenario), d)
		}
	}
	return sb.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "*", `\*`)
	if s == "" {
		return "-"
	}
	return s
}

// History writes the ledger table to w. Terminals get the table rendered
// through glamour; anything else receives the raw markdown.
func (p *Printer) History(l ledger.Ledger, benchmark string) error {
	md := HistoryMarkdown(l, benchmark)
	if !isTerminal(p.w) {
		_, err := io.WriteString(p.w, md)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		if out, err := renderer.Render(md); err == nil {
			_, err = io.WriteString(p.w, out)
			return err
		}
	}
	// Fallback to plain text
	_, err = io.WriteString(p.w, md)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
