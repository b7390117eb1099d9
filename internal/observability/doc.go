// Package observability groups the prefilter's observability infrastructure.
//
// Subpackages:
//   - logging: Structured logging utilities with slog and run ID propagation
//   - metrics: Prometheus recorder written to a textfile at the end of a run
//   - tracing: OpenTelemetry spans around classification calls
package observability
