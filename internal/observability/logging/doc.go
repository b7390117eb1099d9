// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the prefilter.
//
// Key features:
//   - JSON and text output formats
//   - Run ID propagation
//   - Context-aware logging
//   - Configurable log levels
//
// Example usage:
//
//	logger := logging.WithRunID(logging.NewLogger(os.Stderr), uuid.New().String())
//	ctx := logging.WithLogger(context.Background(), logger)
//	logging.FromContext(ctx).Info("run started")
package logging
