// Package tracing provides OpenTelemetry tracing helpers.
//
// Spans are created through the global tracer provider. Without an installed
// SDK provider they are no-ops; the CLI installs one when TRACING_ENABLED is
// set so that trace and span IDs appear in the run logs.
package tracing
