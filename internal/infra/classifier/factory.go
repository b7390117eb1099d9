package classifier

import (
	"fmt"

	"compliance-prefilter/internal/config"
	"compliance-prefilter/internal/observability/metrics"
	"compliance-prefilter/internal/resilience/circuitbreaker"
	"compliance-prefilter/internal/resilience/retry"
)

// NewFromConfig builds a Classifier for the configured provider, wrapping the
// backend in a Guard when any reliability layer is enabled.
func NewFromConfig(cfg config.ClassifierConfig, recorder metrics.Recorder) (*Classifier, error) {
	backend, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}

	guardCfg := GuardConfig{
		Retry:     retry.InferenceConfig(cfg.Retry.MaxAttempts, cfg.Retry.InitialDelay, cfg.Retry.MaxDelay),
		RateLimit: cfg.RateLimit,
	}
	if cfg.CircuitBreaker.Enabled {
		cb := circuitbreaker.InferenceConfig(backend.Name())
		cb.MaxRequests = cfg.CircuitBreaker.MaxRequests
		cb.Interval = cfg.CircuitBreaker.Interval
		cb.Timeout = cfg.CircuitBreaker.Timeout
		cb.FailureThreshold = cfg.CircuitBreaker.FailureThreshold
		cb.MinRequests = cfg.CircuitBreaker.MinRequests
		guardCfg.CircuitBreaker = &cb
	}
	if guardCfg.enabled() {
		backend = NewGuard(backend, guardCfg)
	}

	return New(backend, Options{
		MaxInputChars: cfg.MaxInputChars,
		StripHTML:     cfg.StripHTML,
		Timeout:       cfg.Timeout,
		Recorder:      recorder,
	}), nil
}

func newBackend(cfg config.ClassifierConfig) (Backend, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(OpenAIConfig{
			BaseURL:   cfg.BaseURL,
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		}), nil
	case config.ProviderClaude:
		return NewClaude(ClaudeConfig{
			BaseURL:   cfg.BaseURL,
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		}), nil
	default:
		return nil, fmt.Errorf("unknown classifier provider %q", cfg.Provider)
	}
}
