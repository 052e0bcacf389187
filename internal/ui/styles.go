package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// This file centralizes the lipgloss styles used by the console report.

// styles are bound to one renderer so color detection follows the
// destination writer rather than os.Stdout.
type styles struct {
	title   lipgloss.Style
	fastest lipgloss.Style
	slow    lipgloss.Style
	value   lipgloss.Style
	warning lipgloss.Style
}

func newStyles(w io.Writer, noColor bool) styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		title: r.NewStyle().Bold(true),
		fastest: r.NewStyle().
			Foreground(lipgloss.Color("46")). // Green
			Bold(true),
		slow: r.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true),
		value: r.NewStyle().Bold(true),
		warning: r.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
	}
}
