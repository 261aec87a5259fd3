// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// A batch loader has no long-lived scrape endpoint, so metrics are collected
// into a private registry during the run and pushed to a Pushgateway at the
// end. All Prometheus-specific dependencies stay in this package; the rest of
// the program depends only on metrics.Backend.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"dwetl/internal/metrics"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	stepCounter  *prometheus.CounterVec // dw_step_total
	stepDuration *prometheus.SummaryVec // dw_step_duration_seconds

	rowCounter   *prometheus.CounterVec // dw_rows_total
	batchCounter *prometheus.CounterVec // dw_batches_total
}

// NewBackend constructs a Prometheus Pushgateway backend. jobName is the
// Pushgateway "job" grouping key; gatewayURL is the base URL of the server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "dwetl"
	}

	reg := prometheus.NewRegistry()

	stepCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dw_step_total",
			Help: "Total pipeline step executions, partitioned by pipeline, step, and status.",
		},
		[]string{"pipeline", "step", "status"},
	)
	stepDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "dw_step_duration_seconds",
			Help:       "Duration of pipeline steps in seconds, partitioned by pipeline, step, and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"pipeline", "step", "status"},
	)
	rowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dw_rows_total",
			Help: "Row-level counts per pipeline and kind (extracted, built, duplicates_dropped, loaded).",
		},
		[]string{"pipeline", "kind"},
	)
	batchCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dw_batches_total",
			Help: "Total bulk-append batches flushed per pipeline.",
		},
		[]string{"pipeline"},
	)

	if err := reg.Register(stepCounter); err != nil {
		return nil, fmt.Errorf("prompush: register step counter: %w", err)
	}
	if err := reg.Register(stepDuration); err != nil {
		return nil, fmt.Errorf("prompush: register step summary: %w", err)
	}
	if err := reg.Register(rowCounter); err != nil {
		return nil, fmt.Errorf("prompush: register row counter: %w", err)
	}
	if err := reg.Register(batchCounter); err != nil {
		return nil, fmt.Errorf("prompush: register batch counter: %w", err)
	}

	return &Backend{
		gatewayURL:   gatewayURL,
		jobName:      jobName,
		reg:          reg,
		stepCounter:  stepCounter,
		stepDuration: stepDuration,
		rowCounter:   rowCounter,
		batchCounter: batchCounter,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "dw_step_total":
		b.stepCounter.WithLabelValues(
			labels["pipeline"], labels["step"], labels["status"],
		).Add(delta)

	case "dw_rows_total":
		b.rowCounter.WithLabelValues(
			labels["pipeline"], labels["kind"],
		).Add(delta)

	case "dw_batches_total":
		b.batchCounter.WithLabelValues(labels["pipeline"]).Add(delta)

	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != "dw_step_duration_seconds" {
		return
	}
	b.stepDuration.WithLabelValues(
		labels["pipeline"], labels["step"], labels["status"],
	).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
