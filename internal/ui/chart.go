package ui

import (
	"io"
	"maps"
	"slices"

	"perfledger/internal/ledger"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HistoryChart writes an HTML page with one line chart per benchmark. Each
// chart plots every scenario over the versions that measured the benchmark.
// An empty benchmark selects all of them.
func HistoryChart(w io.Writer, l ledger.Ledger, benchmark string) error {
	versions := l.Versions()
	page := components.NewPage()
	for _, title := range benchmarkTitles(l) {
		if benchmark != "" && title != benchmark {
			continue
		}
		page.AddCharts(benchmarkChart(l, versions, title))
	}
	return page.Render(w)
}

func benchmarkTitles(l ledger.Ledger) []string {
	seen := make(map[string]bool)
	for _, run := range l {
		for title := range run {
			seen[title] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

func benchmarkChart(l ledger.Ledger, versions []ledger.VersionKey, title string) *charts.Line {
	var (
		measured  []ledger.VersionKey
		axis      []string
		scenarios = make(map[string]bool)
	)
	for _, v := range versions {
		s := l[v][title]
		if len(s) == 0 {
			continue
		}
		measured = append(measured, v)
		axis = append(axis, string(v))
		for name := range s {
			scenarios[name] = true
		}
	}

	name := title
	if name == "" {
		name = "(no benchmark)"
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    name,
			Subtitle: "average ms per iteration",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ms"}),
	)
	line.SetXAxis(axis)

	for _, scenario := range slices.Sorted(maps.Keys(scenarios)) {
		data := make([]opts.LineData, 0, len(measured))
		for _, v := range measured {
			d, ok := l[v][title][scenario]
			if !ok {
				// echarts leaves a gap for "-"
				data = append(data, opts.LineData{Value: "-"})
				continue
			}
			data = append(data, opts.LineData{Value: float64(d)})
		}
		line.AddSeries(scenario, data)
	}
	return line
}
