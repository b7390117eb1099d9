package classifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"compliance-prefilter/internal/resilience/retry"
)

// ClaudeConfig configures the Anthropic Messages API backend.
type ClaudeConfig struct {
	// BaseURL overrides the SDK default endpoint.
	BaseURL string
	APIKey  string
	Model   string

	// MaxTokens caps the generated reply.
	MaxTokens int

	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
}

// Claude is a Backend using github.com/anthropics/anthropic-sdk-go.
type Claude struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewClaude creates an Anthropic backend. SDK-level retries are disabled;
// retries are governed by the classifier's Guard.
func NewClaude(cfg ClaudeConfig) *Claude {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &Claude{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Name implements Backend.
func (c *Claude) Name() string {
	return "claude"
}

// Complete implements Backend.
func (c *Claude) Complete(ctx context.Context, prompt string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(c.maxTokens),
		Temperature: anthropic.Float(0),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("claude api error: %w",
				&retry.HTTPError{StatusCode: apiErr.StatusCode, Message: http.StatusText(apiErr.StatusCode)})
		}
		return "", fmt.Errorf("claude api error: %w", err)
	}

	var reply strings.Builder
	for _, block := range message.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			reply.WriteString(textBlock.Text)
		}
	}

	if reply.Len() == 0 {
		return "", errors.New("claude api returned empty response")
	}

	return strings.TrimSpace(reply.String()), nil
}
