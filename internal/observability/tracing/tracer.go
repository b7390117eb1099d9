package tracing

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName identifies spans created by the prefilter.
const instrumentationName = "compliance-prefilter"

// GetTracer returns the tracer for creating spans.
// It is resolved from the global provider on every call so a provider
// installed later (or swapped in tests) takes effect immediately.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// InstallProvider installs an SDK tracer provider as the global provider and
// returns a shutdown function. Spans are sampled but not exported; their IDs
// are surfaced through LogAttrs.
func InstallProvider(opts ...sdktrace.TracerProviderOption) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}

// LogAttrs returns trace_id and span_id attributes for the span in ctx, or
// nil when ctx carries no valid span.
func LogAttrs(ctx context.Context) []any {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []any{
		slog.String("trace_id", sc.TraceID().String()),
		slog.String("span_id", sc.SpanID().String()),
	}
}
