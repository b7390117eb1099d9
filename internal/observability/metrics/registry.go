package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"compliance-prefilter/internal/domain/entity"
)

// Recorder receives classification events.
type Recorder interface {
	// RecordClassification records one successful classification and its endpoint latency.
	RecordClassification(decision entity.Decision, duration time.Duration)

	// RecordFailure records a classification call that returned an error.
	RecordFailure(backend string)

	// RecordSkipped records input elements dropped before classification.
	RecordSkipped(count int)
}

// PrometheusRecorder implements Recorder on a private Prometheus registry.
type PrometheusRecorder struct {
	registry         *prometheus.Registry
	classifications  *prometheus.CounterVec
	failures         *prometheus.CounterVec
	skipped          prometheus.Counter
	classifyDuration prometheus.Histogram
	lastRunTimestamp prometheus.Gauge
}

// NewPrometheusRecorder creates a recorder with its own registry, so several
// recorders (e.g. one per test) never collide on registration.
func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prefilter_classifications_total",
				Help: "Total number of classified articles by decision",
			},
			[]string{"decision"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prefilter_classification_failures_total",
				Help: "Total number of classification calls that failed",
			},
			[]string{"backend"},
		),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prefilter_skipped_articles_total",
			Help: "Total number of input elements dropped before classification",
		}),
		classifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "prefilter_classification_duration_seconds",
			Help:    "Time taken by the inference endpoint to classify one article",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
		lastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "prefilter_last_run_timestamp_seconds",
			Help: "Unix time at which the metrics of the last run were written",
		}),
	}

	r.registry.MustRegister(
		r.classifications,
		r.failures,
		r.skipped,
		r.classifyDuration,
		r.lastRunTimestamp,
	)

	return r
}

// RecordClassification implements Recorder.
func (r *PrometheusRecorder) RecordClassification(decision entity.Decision, duration time.Duration) {
	r.classifications.WithLabelValues(string(decision)).Inc()
	r.classifyDuration.Observe(duration.Seconds())
}

// RecordFailure implements Recorder.
func (r *PrometheusRecorder) RecordFailure(backend string) {
	r.failures.WithLabelValues(backend).Inc()
}

// RecordSkipped implements Recorder.
func (r *PrometheusRecorder) RecordSkipped(count int) {
	if count > 0 {
		r.skipped.Add(float64(count))
	}
}

// Registry exposes the underlying registry, e.g. for tests or a push gateway.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile stamps the run time and writes all metrics in the Prometheus
// text format to path, atomically replacing any previous file.
func (r *PrometheusRecorder) WriteTextfile(path string) error {
	r.lastRunTimestamp.SetToCurrentTime()
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// NoopRecorder discards all events.
type NoopRecorder struct{}

// RecordClassification implements Recorder.
func (NoopRecorder) RecordClassification(entity.Decision, time.Duration) {}

// RecordFailure implements Recorder.
func (NoopRecorder) RecordFailure(string) {}

// RecordSkipped implements Recorder.
func (NoopRecorder) RecordSkipped(int) {}
