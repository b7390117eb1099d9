// Package config loads the prefilter run configuration.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file named by PREFILTER_CONFIG_FILE, then environment variables. Provider
// specific defaults (endpoint, key, model) are filled last for any field that
// is still empty, and the result is validated before use.
package config

import (
	"fmt"

	envconfig "compliance-prefilter/pkg/config"
)

const (
	// DefaultInputPath is the article list read when PREFILTER_INPUT is unset.
	DefaultInputPath = "articles.json"
	// DefaultOutputPath is the table written when PREFILTER_OUTPUT is unset.
	DefaultOutputPath = "answers.csv"
)

// Config holds everything a prefilter run needs.
type Config struct {
	// InputPath is the JSON article list. Default: articles.json
	InputPath string `yaml:"input"`

	// OutputPath is the CSV table written on success. Default: answers.csv
	OutputPath string `yaml:"output"`

	// MetricsTextfile, when set, receives a Prometheus text exposition at the end of the run.
	MetricsTextfile string `yaml:"metrics_textfile"`

	// TracingEnabled installs an OpenTelemetry SDK tracer provider for the run.
	TracingEnabled bool `yaml:"tracing_enabled"`

	// Classifier configures the relevance classifier.
	Classifier ClassifierConfig `yaml:"classifier"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		InputPath:  DefaultInputPath,
		OutputPath: DefaultOutputPath,
		Classifier: DefaultClassifierConfig(),
	}
}

// Load resolves the run configuration from defaults, the optional YAML file
// and the environment.
func Load() (*Config, error) {
	cfg := Default()

	if path := envconfig.GetEnvString("PREFILTER_CONFIG_FILE", ""); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}

	cfg.overlayEnv()
	cfg.Classifier.applyProviderDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid prefilter configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) overlayEnv() {
	c.InputPath = envconfig.GetEnvString("PREFILTER_INPUT", c.InputPath)
	c.OutputPath = envconfig.GetEnvString("PREFILTER_OUTPUT", c.OutputPath)
	c.MetricsTextfile = envconfig.GetEnvString("METRICS_TEXTFILE", c.MetricsTextfile)
	c.TracingEnabled = envconfig.GetEnvBool("TRACING_ENABLED", c.TracingEnabled)
	c.Classifier.overlayEnv()
}

// Validate checks configuration correctness.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("PREFILTER_INPUT cannot be empty")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("PREFILTER_OUTPUT cannot be empty")
	}
	if c.InputPath == c.OutputPath {
		return fmt.Errorf("PREFILTER_OUTPUT must differ from PREFILTER_INPUT")
	}
	return c.Classifier.Validate()
}
