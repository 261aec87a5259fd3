// Package metrics provides a small, backend-agnostic abstraction for recording
// operational metrics from the warehouse load.
//
// It exposes a narrow interface (Backend) focused on counters and timing
// data, with a global pluggable backend that defaults to a no-op
// implementation, so metric calls are always safe even when no real backend
// is configured. Concrete systems (Prometheus Pushgateway, Datadog) live in
// subpackages and are wired in at startup, mirroring the storage factory
// pattern.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures latency plus success/failure for one pipeline step
// (extract, build, truncate, load).
func RecordStep(pipeline, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"pipeline": pipeline,
		"step":     step,
		"status":   status,
	}

	backend.IncCounter("dw_step_total", 1, lbls)
	backend.ObserveHistogram("dw_step_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a row-level counter for the given pipeline and kind.
//
// Typical kinds mirror the run summary fields:
//   - "extracted"
//   - "built"
//   - "duplicates_dropped"
//   - "loaded"
func RecordRows(pipeline, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("dw_rows_total", float64(delta), Labels{
		"pipeline": pipeline,
		"kind":     kind,
	})
}

// RecordBatches increments the flushed-batch counter for the given pipeline.
func RecordBatches(pipeline string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("dw_batches_total", float64(delta), Labels{
		"pipeline": pipeline,
	})
}
