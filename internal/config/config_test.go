package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var prefilterEnvVars = []string{
	"PREFILTER_CONFIG_FILE",
	"PREFILTER_INPUT",
	"PREFILTER_OUTPUT",
	"METRICS_TEXTFILE",
	"TRACING_ENABLED",
	"CLASSIFIER_PROVIDER",
	"CLASSIFIER_BASE_URL",
	"CLASSIFIER_API_KEY",
	"CLASSIFIER_MODEL",
	"CLASSIFIER_MAX_TOKENS",
	"CLASSIFIER_MAX_INPUT_CHARS",
	"CLASSIFIER_TIMEOUT",
	"ARTICLE_STRIP_HTML",
	"CLASSIFIER_RATE_LIMIT",
	"CLASSIFIER_RETRY_ATTEMPTS",
	"CLASSIFIER_RETRY_INITIAL_DELAY",
	"CLASSIFIER_RETRY_MAX_DELAY",
	"CLASSIFIER_CB_ENABLED",
	"CLASSIFIER_CB_TIMEOUT",
	"ANTHROPIC_API_KEY",
}

func clearPrefilterEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range prefilterEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearPrefilterEnvVars(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "articles.json", cfg.InputPath)
	assert.Equal(t, "answers.csv", cfg.OutputPath)
	assert.Empty(t, cfg.MetricsTextfile)
	assert.False(t, cfg.TracingEnabled)

	c := cfg.Classifier
	assert.Equal(t, ProviderOpenAI, c.Provider)
	assert.Equal(t, "http://127.0.0.1:1234/v1", c.BaseURL)
	assert.Equal(t, "lm-studio", c.APIKey)
	assert.Equal(t, "phi-3-mini-4k-instruct", c.Model)
	assert.Equal(t, 120, c.MaxTokens)
	assert.Equal(t, 2500, c.MaxInputChars)
	assert.Equal(t, time.Duration(0), c.Timeout)
	assert.False(t, c.StripHTML)
	assert.Zero(t, c.RateLimit)
	assert.Equal(t, 1, c.Retry.MaxAttempts)
	assert.False(t, c.CircuitBreaker.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearPrefilterEnvVars(t)
	t.Setenv("PREFILTER_INPUT", "in.json")
	t.Setenv("PREFILTER_OUTPUT", "out.csv")
	t.Setenv("CLASSIFIER_BASE_URL", "http://gpu-box:8080/v1")
	t.Setenv("CLASSIFIER_MODEL", "llama-3-8b-instruct")
	t.Setenv("CLASSIFIER_MAX_TOKENS", "200")
	t.Setenv("CLASSIFIER_TIMEOUT", "90s")
	t.Setenv("CLASSIFIER_RETRY_ATTEMPTS", "3")
	t.Setenv("CLASSIFIER_RATE_LIMIT", "0.5")
	t.Setenv("ARTICLE_STRIP_HTML", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "in.json", cfg.InputPath)
	assert.Equal(t, "out.csv", cfg.OutputPath)
	assert.Equal(t, "http://gpu-box:8080/v1", cfg.Classifier.BaseURL)
	assert.Equal(t, "lm-studio", cfg.Classifier.APIKey)
	assert.Equal(t, "llama-3-8b-instruct", cfg.Classifier.Model)
	assert.Equal(t, 200, cfg.Classifier.MaxTokens)
	assert.Equal(t, 90*time.Second, cfg.Classifier.Timeout)
	assert.Equal(t, 3, cfg.Classifier.Retry.MaxAttempts)
	assert.InDelta(t, 0.5, cfg.Classifier.RateLimit, 1e-9)
	assert.True(t, cfg.Classifier.StripHTML)
}

func TestLoad_ClaudeProvider(t *testing.T) {
	clearPrefilterEnvVars(t)
	t.Setenv("CLASSIFIER_PROVIDER", "claude")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderClaude, cfg.Classifier.Provider)
	assert.Empty(t, cfg.Classifier.BaseURL)
	assert.Equal(t, "sk-ant-test", cfg.Classifier.APIKey)
	assert.Equal(t, DefaultClaudeModel, cfg.Classifier.Model)
}

func TestLoad_ClaudeWithoutKey(t *testing.T) {
	clearPrefilterEnvVars(t)
	t.Setenv("CLASSIFIER_PROVIDER", "claude")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestLoad_ConfigFile(t *testing.T) {
	clearPrefilterEnvVars(t)

	path := filepath.Join(t.TempDir(), "prefilter.yaml")
	content := `
input: batch.json
metrics_textfile: prefilter.prom
classifier:
  model: mistral-7b-instruct
  timeout: 45s
  retry:
    max_attempts: 2
  circuit_breaker:
    enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("PREFILTER_CONFIG_FILE", path)
	t.Setenv("CLASSIFIER_MODEL", "env-wins")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "batch.json", cfg.InputPath)
	assert.Equal(t, "answers.csv", cfg.OutputPath)
	assert.Equal(t, "prefilter.prom", cfg.MetricsTextfile)
	assert.Equal(t, "env-wins", cfg.Classifier.Model)
	assert.Equal(t, 45*time.Second, cfg.Classifier.Timeout)
	assert.Equal(t, 2, cfg.Classifier.Retry.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Classifier.Retry.InitialDelay, "keys absent from the file keep defaults")
	assert.True(t, cfg.Classifier.CircuitBreaker.Enabled)
	assert.InDelta(t, 0.6, cfg.Classifier.CircuitBreaker.FailureThreshold, 1e-9)
}

func TestLoad_ConfigFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		clearPrefilterEnvVars(t)
		t.Setenv("PREFILTER_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		clearPrefilterEnvVars(t)
		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("classifier: [unclosed"), 0o600))
		t.Setenv("PREFILTER_CONFIG_FILE", path)

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestClassifierConfig_Validate(t *testing.T) {
	valid := func() ClassifierConfig {
		c := DefaultClassifierConfig()
		c.applyProviderDefaults()
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *ClassifierConfig)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *ClassifierConfig) {}},
		{name: "unknown provider", mutate: func(c *ClassifierConfig) { c.Provider = "gemini" }, wantErr: "CLASSIFIER_PROVIDER"},
		{name: "empty model", mutate: func(c *ClassifierConfig) { c.Model = "" }, wantErr: "CLASSIFIER_MODEL"},
		{name: "zero max tokens", mutate: func(c *ClassifierConfig) { c.MaxTokens = 0 }, wantErr: "CLASSIFIER_MAX_TOKENS"},
		{name: "zero input chars", mutate: func(c *ClassifierConfig) { c.MaxInputChars = 0 }, wantErr: "CLASSIFIER_MAX_INPUT_CHARS"},
		{name: "negative timeout", mutate: func(c *ClassifierConfig) { c.Timeout = -time.Second }, wantErr: "CLASSIFIER_TIMEOUT"},
		{name: "negative rate limit", mutate: func(c *ClassifierConfig) { c.RateLimit = -1 }, wantErr: "CLASSIFIER_RATE_LIMIT"},
		{name: "zero attempts", mutate: func(c *ClassifierConfig) { c.Retry.MaxAttempts = 0 }, wantErr: "CLASSIFIER_RETRY_ATTEMPTS"},
		{
			name: "retry max delay below initial",
			mutate: func(c *ClassifierConfig) {
				c.Retry.MaxAttempts = 3
				c.Retry.MaxDelay = time.Second
			},
			wantErr: "CLASSIFIER_RETRY_MAX_DELAY",
		},
		{
			name: "breaker threshold out of range",
			mutate: func(c *ClassifierConfig) {
				c.CircuitBreaker.Enabled = true
				c.CircuitBreaker.FailureThreshold = 1.5
			},
			wantErr: "failure threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateSamePaths(t *testing.T) {
	cfg := Default()
	cfg.Classifier.applyProviderDefaults()
	cfg.OutputPath = cfg.InputPath

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}
