package classifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"compliance-prefilter/internal/resilience/retry"
)

// OpenAIConfig configures a backend for any OpenAI-compatible chat-completion
// endpoint, such as a local LM Studio server.
type OpenAIConfig struct {
	// BaseURL of the API, e.g. http://127.0.0.1:1234/v1. Empty means api.openai.com.
	BaseURL string
	APIKey  string
	Model   string

	// MaxTokens caps the generated reply.
	MaxTokens int

	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
}

// greedyTemperature stands in for 0, which go-openai omits from the request.
// It is below the greedy cutoff of servers that special-case small values,
// and logits divided by it stay finite in float32.
const greedyTemperature float32 = 1e-6

// OpenAI is a Backend using github.com/sashabaranov/go-openai.
type OpenAI struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAI creates an OpenAI-compatible backend.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.HTTPClient != nil {
		clientConfig.HTTPClient = cfg.HTTPClient
	}

	return &OpenAI{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Name implements Backend.
func (o *OpenAI) Name() string {
	return "openai"
}

// Complete implements Backend.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
		Temperature: greedyTemperature,
		MaxTokens:   o.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", openAIStatusError(err))
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai api returned empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// openAIStatusError converts go-openai status errors into retry.HTTPError.
// Transport errors are returned unchanged.
func openAIStatusError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &retry.HTTPError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &retry.HTTPError{StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error()}
	}

	return err
}
