package telemetry

import (
	"fmt"

	"perfledger/internal/ledger"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the gauges describing one run. Each run gets its own registry
// so the textfile only ever carries the latest results.
type Metrics struct {
	registry *prometheus.Registry

	scenarioDuration *prometheus.GaugeVec
	comparisonDelta  *prometheus.GaugeVec
	scenariosTotal   prometheus.Counter
}

// NewMetrics creates and registers the run metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		scenarioDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "perfledger_scenario_duration_milliseconds",
			Help: "Average scenario duration in milliseconds.",
		}, []string{"benchmark", "scenario", "version"}),
		comparisonDelta: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "perfledger_comparison_delta_percent",
			Help: "Change of the fastest scenario against the reference version, in percent.",
		}, []string{"benchmark", "reference"}),
		scenariosTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "perfledger_scenarios_total",
			Help: "Number of scenarios measured in the run.",
		}),
	}
	m.registry.MustRegister(m.scenarioDuration, m.comparisonDelta, m.scenariosTotal)
	return m
}

// ObserveRun records every scenario of run and every comparison that has a
// reference.
func (m *Metrics) ObserveRun(key ledger.VersionKey, run ledger.Benchmarks, comps []ledger.Comparison) {
	for benchmark, scenarios := range run {
		for scenario, d := range scenarios {
			m.scenarioDuration.WithLabelValues(benchmark, scenario, string(key)).Set(float64(d))
			m.scenariosTotal.Inc()
		}
	}
	for _, c := range comps {
		if c.Reference == nil {
			continue
		}
		m.comparisonDelta.WithLabelValues(c.Benchmark, string(c.Reference.Version)).Set(c.DeltaPct)
	}
}

// WriteTextfile writes the metrics in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
