// Package metrics records prefilter run metrics with Prometheus.
//
// A batch run is short-lived, so metrics are kept in a private registry and
// written once at the end of the run to a node_exporter textfile instead of
// being scraped from an HTTP endpoint.
//
// Example usage:
//
//	recorder := metrics.NewPrometheusRecorder()
//	recorder.RecordClassification(entity.DecisionRelevant, 850*time.Millisecond)
//	if err := recorder.WriteTextfile("/var/lib/node_exporter/prefilter.prom"); err != nil {
//	    slog.Warn("failed to write metrics", slog.Any("error", err))
//	}
package metrics
