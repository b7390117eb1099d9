// Package main runs one compliance prefilter pass.
// Usage: prefilter
//
// It reads the article list (PREFILTER_INPUT, default articles.json), asks the
// configured chat-completion endpoint to classify each article and writes the
// results to PREFILTER_OUTPUT (default answers.csv). All settings come from
// the environment, optionally layered over PREFILTER_CONFIG_FILE.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"compliance-prefilter/internal/config"
	"compliance-prefilter/internal/domain/entity"
	"compliance-prefilter/internal/infra/classifier"
	"compliance-prefilter/internal/infra/loader"
	"compliance-prefilter/internal/infra/report"
	"compliance-prefilter/internal/observability/logging"
	"compliance-prefilter/internal/observability/metrics"
	"compliance-prefilter/internal/observability/tracing"
	"compliance-prefilter/internal/usecase/prefilter"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one pass and returns the process exit code.
func run(ctx context.Context, stdout, stderr io.Writer) int {
	runID := uuid.NewString()
	logger := logging.WithRunID(logging.NewLogger(stderr), runID)
	slog.SetDefault(logger)
	ctx = logging.WithLogger(ctx, logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.TracingEnabled {
		shutdown := tracing.InstallProvider()
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("tracer provider shutdown failed", slog.Any("error", err))
			}
		}()
	}

	batch, err := loader.LoadBatch(cfg.InputPath)
	if err != nil {
		if errors.Is(err, entity.ErrInputNotFound) {
			fmt.Fprintf(stdout, "ERROR: %s not found.\n", cfg.InputPath)
			return 0
		}
		logger.Error("failed to load articles",
			slog.String("path", cfg.InputPath),
			slog.Any("error", err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	recorder := metrics.NewPrometheusRecorder()
	clf, err := classifier.NewFromConfig(cfg.Classifier, recorder)
	if err != nil {
		logger.Error("failed to create classifier", slog.Any("error", err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger.Info("prefilter run started",
		slog.String("input", cfg.InputPath),
		slog.String("output", cfg.OutputPath),
		slog.String("provider", cfg.Classifier.Provider),
		slog.String("model", cfg.Classifier.Model),
		slog.Int("records", len(batch.Records)),
		slog.Int("skipped", len(batch.Skipped)))

	svc := prefilter.NewService(clf, report.NewFileRepository(cfg.OutputPath), recorder)
	result, runErr := svc.Run(ctx, batch)

	if cfg.MetricsTextfile != "" {
		if err := recorder.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Warn("failed to write metrics textfile",
				slog.String("path", cfg.MetricsTextfile),
				slog.Any("error", err))
		}
	}

	if runErr != nil {
		logger.Error("prefilter run failed", slog.Any("error", runErr))
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		return 1
	}

	fmt.Fprintf(stdout, "Done. Wrote %d rows to %s\n", result.Written, cfg.OutputPath)
	return 0
}
