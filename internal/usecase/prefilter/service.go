// Package prefilter runs one classification pass over a batch of articles.
package prefilter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"compliance-prefilter/internal/domain/entity"
	"compliance-prefilter/internal/infra/loader"
	"compliance-prefilter/internal/observability/logging"
	"compliance-prefilter/internal/observability/metrics"
	"compliance-prefilter/internal/observability/tracing"
	"compliance-prefilter/internal/repository"
)

// Classifier produces a verdict for one article text.
type Classifier interface {
	Classify(ctx context.Context, text string) (entity.Verdict, error)
}

// Service classifies every record of a batch in input order and stores the
// resulting table.
type Service struct {
	Classifier Classifier
	Repo       repository.ClassificationRepository
	Recorder   metrics.Recorder
}

// NewService creates a Service. A nil recorder disables metrics.
func NewService(classifier Classifier, repo repository.ClassificationRepository, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Service{Classifier: classifier, Repo: repo, Recorder: recorder}
}

// Report summarizes a run.
type Report struct {
	Total      int // elements in the input list
	Skipped    int // elements that produced no record
	Written    int // rows stored
	Relevant   int
	Irrelevant int
	Duration   time.Duration
}

// Run classifies batch.Records one at a time and saves the rows.
//
// The first classification error aborts the run; it is returned wrapped with
// the record id and nothing is saved.
func (s *Service) Run(ctx context.Context, batch loader.Batch) (Report, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "prefilter.Run")
	defer span.End()

	logger := logging.FromContext(ctx)
	start := time.Now()

	report := Report{
		Total:   len(batch.Records) + len(batch.Skipped),
		Skipped: len(batch.Skipped),
	}
	span.SetAttributes(
		attribute.Int("batch.records", len(batch.Records)),
		attribute.Int("batch.skipped", report.Skipped),
	)

	for _, skipped := range batch.Skipped {
		logger.Debug("article skipped",
			slog.Int("index", skipped.Index),
			slog.String("reason", string(skipped.Reason)))
	}
	s.recorder().RecordSkipped(report.Skipped)

	rows := make([]entity.Classification, 0, len(batch.Records))
	for _, record := range batch.Records {
		if err := ctx.Err(); err != nil {
			return s.fail(span, report, fmt.Errorf("run interrupted before article %s: %w", record.ID, err))
		}

		verdict, err := s.Classifier.Classify(ctx, record.Text)
		if err != nil {
			return s.fail(span, report, fmt.Errorf("classify article %s: %w", record.ID, err))
		}

		if verdict.Decision.IsRelevant() {
			report.Relevant++
		} else {
			report.Irrelevant++
		}
		rows = append(rows, entity.NewClassification(record.ID, verdict))

		logger.Debug("article classified",
			slog.String("article_id", record.ID.String()),
			slog.String("decision", string(verdict.Decision)))
	}

	if err := s.Repo.SaveAll(ctx, rows); err != nil {
		return s.fail(span, report, fmt.Errorf("save results: %w", err))
	}
	report.Written = len(rows)
	report.Duration = time.Since(start)
	span.SetAttributes(attribute.Int("batch.written", report.Written))

	logger.Info("prefilter run completed",
		slog.Int("total", report.Total),
		slog.Int("skipped", report.Skipped),
		slog.Int("written", report.Written),
		slog.Int("relevant", report.Relevant),
		slog.Int("irrelevant", report.Irrelevant),
		slog.Duration("duration", report.Duration))

	return report, nil
}

func (s *Service) recorder() metrics.Recorder {
	if s.Recorder == nil {
		return metrics.NoopRecorder{}
	}
	return s.Recorder
}

// fail marks the run span as failed. The returned report holds the counts
// reached before the failure; Written stays zero.
func (s *Service) fail(span trace.Span, report Report, err error) (Report, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return report, err
}
