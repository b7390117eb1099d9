package config

import (
	"fmt"
	"time"

	envconfig "compliance-prefilter/pkg/config"
)

// Supported classifier backends.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

// Provider defaults, applied to fields left empty after file and env overlays.
const (
	DefaultOpenAIBaseURL = "http://127.0.0.1:1234/v1"
	DefaultOpenAIAPIKey  = "lm-studio"
	DefaultOpenAIModel   = "phi-3-mini-4k-instruct"
	DefaultClaudeModel   = "claude-haiku-4-5"
)

// ClassifierConfig holds configuration for the relevance classifier.
type ClassifierConfig struct {
	// Provider selects the backend: "openai" (any OpenAI-compatible endpoint) or "claude".
	// Default: openai
	Provider string `yaml:"provider"`

	// BaseURL of the inference endpoint. Default for openai: http://127.0.0.1:1234/v1
	// Empty for claude means the SDK default.
	BaseURL string `yaml:"base_url"`

	// APIKey sent to the endpoint. Default for openai: lm-studio
	// For claude it falls back to ANTHROPIC_API_KEY.
	APIKey string `yaml:"api_key"`

	// Model identifier sent with every request.
	Model string `yaml:"model"`

	// MaxTokens caps the generated reply. Default: 120
	MaxTokens int `yaml:"max_tokens"`

	// MaxInputChars is the number of characters of article text embedded in the prompt. Default: 2500
	MaxInputChars int `yaml:"max_input_chars"`

	// Timeout per classification call. Zero leaves the call unbounded. Default: 0
	Timeout time.Duration `yaml:"timeout"`

	// StripHTML converts HTML article bodies to plain text before truncation. Default: false
	StripHTML bool `yaml:"strip_html"`

	// RateLimit caps requests per second to the endpoint. Zero disables. Default: 0
	RateLimit float64 `yaml:"rate_limit"`

	// Retry for transient endpoint failures.
	Retry RetryConfig `yaml:"retry"`

	// CircuitBreaker for endpoint calls.
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
}

// RetryConfig controls retries of a single classification call.
type RetryConfig struct {
	// MaxAttempts including the first call. 1 means fail fast. Default: 1
	MaxAttempts int `yaml:"max_attempts"`
	// InitialDelay before the first retry. Default: 2s
	InitialDelay time.Duration `yaml:"initial_delay"`
	// MaxDelay between retries. Default: 10s
	MaxDelay time.Duration `yaml:"max_delay"`
}

// CircuitBreakerConfig for endpoint calls.
type CircuitBreakerConfig struct {
	// Enabled wraps endpoint calls in a circuit breaker. Default: false
	Enabled bool `yaml:"enabled"`

	// MaxRequests in half-open state.
	MaxRequests uint32 `yaml:"max_requests"`

	// Interval for clearing failure counts.
	Interval time.Duration `yaml:"interval"`

	// Timeout before transitioning from open to half-open.
	Timeout time.Duration `yaml:"timeout"`

	// FailureThreshold ratio to trip circuit (0.0 to 1.0).
	FailureThreshold float64 `yaml:"failure_threshold"`

	// MinRequests before calculating failure ratio.
	MinRequests uint32 `yaml:"min_requests"`
}

// DefaultClassifierConfig returns the classifier defaults. Endpoint, key and
// model are left empty and filled per provider by Load.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		Provider:      ProviderOpenAI,
		MaxTokens:     120,
		MaxInputChars: 2500,
		Retry: RetryConfig{
			MaxAttempts:  1,
			InitialDelay: 2 * time.Second,
			MaxDelay:     10 * time.Second,
		},
		CircuitBreaker: CircuitBreakerConfig{
			MaxRequests:      3,
			Interval:         30 * time.Second,
			Timeout:          60 * time.Second,
			FailureThreshold: 0.6,
			MinRequests:      5,
		},
	}
}

func (c *ClassifierConfig) overlayEnv() {
	c.Provider = envconfig.GetEnvString("CLASSIFIER_PROVIDER", c.Provider)
	c.BaseURL = envconfig.GetEnvString("CLASSIFIER_BASE_URL", c.BaseURL)
	c.APIKey = envconfig.GetEnvString("CLASSIFIER_API_KEY", c.APIKey)
	c.Model = envconfig.GetEnvString("CLASSIFIER_MODEL", c.Model)
	c.MaxTokens = envconfig.GetEnvInt("CLASSIFIER_MAX_TOKENS", c.MaxTokens)
	c.MaxInputChars = envconfig.GetEnvInt("CLASSIFIER_MAX_INPUT_CHARS", c.MaxInputChars)
	c.Timeout = envconfig.GetEnvDuration("CLASSIFIER_TIMEOUT", c.Timeout)
	c.StripHTML = envconfig.GetEnvBool("ARTICLE_STRIP_HTML", c.StripHTML)
	c.RateLimit = envconfig.GetEnvFloat("CLASSIFIER_RATE_LIMIT", c.RateLimit)

	c.Retry.MaxAttempts = envconfig.GetEnvInt("CLASSIFIER_RETRY_ATTEMPTS", c.Retry.MaxAttempts)
	c.Retry.InitialDelay = envconfig.GetEnvDuration("CLASSIFIER_RETRY_INITIAL_DELAY", c.Retry.InitialDelay)
	c.Retry.MaxDelay = envconfig.GetEnvDuration("CLASSIFIER_RETRY_MAX_DELAY", c.Retry.MaxDelay)

	c.CircuitBreaker.Enabled = envconfig.GetEnvBool("CLASSIFIER_CB_ENABLED", c.CircuitBreaker.Enabled)
	c.CircuitBreaker.Timeout = envconfig.GetEnvDuration("CLASSIFIER_CB_TIMEOUT", c.CircuitBreaker.Timeout)
}

func (c *ClassifierConfig) applyProviderDefaults() {
	switch c.Provider {
	case ProviderOpenAI:
		if c.BaseURL == "" {
			c.BaseURL = DefaultOpenAIBaseURL
		}
		if c.APIKey == "" {
			c.APIKey = DefaultOpenAIAPIKey
		}
		if c.Model == "" {
			c.Model = DefaultOpenAIModel
		}
	case ProviderClaude:
		if c.APIKey == "" {
			c.APIKey = envconfig.GetEnvString("ANTHROPIC_API_KEY", "")
		}
		if c.Model == "" {
			c.Model = DefaultClaudeModel
		}
	}
}

// Validate checks configuration correctness.
func (c *ClassifierConfig) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
	case ProviderClaude:
		if c.APIKey == "" {
			return fmt.Errorf("CLASSIFIER_API_KEY or ANTHROPIC_API_KEY is required for provider %q", c.Provider)
		}
	default:
		return fmt.Errorf("CLASSIFIER_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderClaude, c.Provider)
	}

	if c.Model == "" {
		return fmt.Errorf("CLASSIFIER_MODEL cannot be empty")
	}

	if c.MaxTokens <= 0 {
		return fmt.Errorf("CLASSIFIER_MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}

	if c.MaxInputChars <= 0 {
		return fmt.Errorf("CLASSIFIER_MAX_INPUT_CHARS must be positive, got %d", c.MaxInputChars)
	}

	if err := envconfig.ValidateNonNegativeDuration(c.Timeout); err != nil {
		return fmt.Errorf("CLASSIFIER_TIMEOUT: %w", err)
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("CLASSIFIER_RATE_LIMIT must not be negative, got %v", c.RateLimit)
	}

	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("CLASSIFIER_RETRY_ATTEMPTS must be at least 1, got %d", c.Retry.MaxAttempts)
	}

	if c.Retry.MaxAttempts > 1 {
		if err := envconfig.ValidatePositiveDuration(c.Retry.InitialDelay); err != nil {
			return fmt.Errorf("CLASSIFIER_RETRY_INITIAL_DELAY: %w", err)
		}
		if c.Retry.MaxDelay < c.Retry.InitialDelay {
			return fmt.Errorf("CLASSIFIER_RETRY_MAX_DELAY must be >= CLASSIFIER_RETRY_INITIAL_DELAY")
		}
	}

	if c.CircuitBreaker.Enabled {
		if c.CircuitBreaker.FailureThreshold <= 0 || c.CircuitBreaker.FailureThreshold > 1 {
			return fmt.Errorf("circuit breaker failure threshold must be in (0, 1], got %v", c.CircuitBreaker.FailureThreshold)
		}
		if err := envconfig.ValidatePositiveDuration(c.CircuitBreaker.Timeout); err != nil {
			return fmt.Errorf("CLASSIFIER_CB_TIMEOUT: %w", err)
		}
	}

	return nil
}
