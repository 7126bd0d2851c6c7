package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/repositories"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// PrometheusMetricsRepository keeps scan counters in a private registry and
// writes them in the node-exporter textfile format at the end of a run.
type PrometheusMetricsRepository struct {
	registry *prometheus.Registry

	Extractions        *prometheus.CounterVec
	MalformedVariables *prometheus.CounterVec
	ParentFetches      *prometheus.CounterVec
}

// NewPrometheusMetricsRepository creates and registers all scan metrics.
func NewPrometheusMetricsRepository() *PrometheusMetricsRepository {
	m := &PrometheusMetricsRepository{registry: prometheus.NewRegistry()}

	m.Extractions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "depscan_extractions_total",
			Help: "Total number of candidate files processed, by outcome",
		},
		[]string{"dialect", "outcome"},
	)

	m.MalformedVariables = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "depscan_malformed_variables_total",
			Help: "Total number of files skipped because of a malformed variable reference",
		},
		[]string{"dialect"},
	)

	m.ParentFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "depscan_parent_fetches_total",
			Help: "Total number of parent build file fetches",
		},
		[]string{"fetcher", "result"},
	)

	m.registry.MustRegister(m.Extractions, m.MalformedVariables, m.ParentFetches)
	return m
}

var _ repositories.MetricsRepository = (*PrometheusMetricsRepository)(nil)

func (m *PrometheusMetricsRepository) ObserveExtraction(dialect entities.Dialect, outcome entities.Outcome) {
	m.Extractions.WithLabelValues(string(dialect), string(outcome)).Inc()
}

func (m *PrometheusMetricsRepository) ObserveMalformed(dialect entities.Dialect) {
	m.MalformedVariables.WithLabelValues(string(dialect)).Inc()
}

func (m *PrometheusMetricsRepository) ObserveFetch(fetcher string, err error) {
	result := resultSuccess
	if err != nil {
		result = resultFailure
	}
	m.ParentFetches.WithLabelValues(fetcher, result).Inc()
}

// Flush writes all counters to path. An empty path disables the export.
func (m *PrometheusMetricsRepository) Flush(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %q: %w", path, err)
	}
	return nil
}
