// Package classifier implements the compliance relevance classifier.
//
// A Classifier truncates an article, renders the fixed compliance prompt,
// sends it to a chat-completion Backend and turns the free-form reply into a
// normalized entity.Verdict. Reply parsing never fails; only endpoint errors
// are returned.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"compliance-prefilter/internal/domain/entity"
	"compliance-prefilter/internal/observability/logging"
	"compliance-prefilter/internal/observability/metrics"
	"compliance-prefilter/internal/observability/tracing"
	"compliance-prefilter/internal/utils/text"
)

// DefaultMaxInputChars is the number of article characters embedded in the prompt.
const DefaultMaxInputChars = 2500

// Backend sends one rendered prompt as a single user message and returns the
// generated reply.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)

	// Name identifies the backend in logs and metrics, e.g. "openai".
	Name() string
}

// Options configures a Classifier.
type Options struct {
	// MaxInputChars truncates article text before prompting. Default: 2500
	MaxInputChars int

	// StripHTML converts HTML article bodies to plain text before truncation.
	StripHTML bool

	// Timeout bounds each endpoint call. Zero leaves it unbounded.
	Timeout time.Duration

	// Recorder receives classification metrics. Default: metrics.NoopRecorder
	Recorder metrics.Recorder
}

// Classifier classifies article texts for compliance relevance.
type Classifier struct {
	backend Backend
	opts    Options
}

// New creates a Classifier over backend.
func New(backend Backend, opts Options) *Classifier {
	if opts.MaxInputChars <= 0 {
		opts.MaxInputChars = DefaultMaxInputChars
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	return &Classifier{backend: backend, opts: opts}
}

// Classify returns the verdict for one article text.
func (c *Classifier) Classify(ctx context.Context, article string) (entity.Verdict, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "classifier.Classify",
		trace.WithAttributes(attribute.String("classifier.backend", c.backend.Name())))
	defer span.End()

	logger := logging.FromContext(ctx).With(tracing.LogAttrs(ctx)...)

	input := c.prepare(ctx, logger, article)
	prompt := BuildPrompt(input)
	span.SetAttributes(attribute.Int("classifier.input_chars", text.CountRunes(input)))

	callCtx := ctx
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	logger.DebugContext(ctx, "Starting classification",
		slog.String("backend", c.backend.Name()),
		slog.Int("input_length", text.CountRunes(input)))

	start := time.Now()
	reply, err := c.backend.Complete(callCtx, prompt)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "classification failed")
		c.opts.Recorder.RecordFailure(c.backend.Name())
		logger.ErrorContext(ctx, "Classification failed",
			slog.String("backend", c.backend.Name()),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return entity.Verdict{}, fmt.Errorf("%s classification failed: %w", c.backend.Name(), err)
	}

	parsed := ParseReply(reply)
	verdict := parsed.Normalize()

	if parsed.Decision == nil || parsed.Reason == nil {
		logger.WarnContext(ctx, "Model reply is missing fields, defaults applied",
			slog.Bool("has_decision", parsed.Decision != nil),
			slog.Bool("has_reason", parsed.Reason != nil),
			slog.Int("reply_length", text.CountRunes(reply)))
	}

	span.SetAttributes(attribute.String("classifier.decision", string(verdict.Decision)))
	c.opts.Recorder.RecordClassification(verdict.Decision, duration)

	logger.InfoContext(ctx, "Classification completed",
		slog.String("decision", string(verdict.Decision)),
		slog.String("company", verdict.Company),
		slog.Duration("duration", duration))

	return verdict, nil
}

// prepare strips HTML when enabled and truncates to the configured length.
func (c *Classifier) prepare(ctx context.Context, logger *slog.Logger, article string) string {
	if c.opts.StripHTML {
		stripped, err := text.StripHTML(article)
		if err != nil {
			logger.WarnContext(ctx, "HTML stripping failed, using raw text",
				slog.String("error", err.Error()))
		} else {
			article = stripped
		}
	}

	truncated := text.Truncate(article, c.opts.MaxInputChars)
	if len(truncated) < len(article) {
		logger.DebugContext(ctx, "article truncated for prompt",
			slog.Int("original_length", text.CountRunes(article)),
			slog.Int("truncated_length", c.opts.MaxInputChars))
	}
	return truncated
}
