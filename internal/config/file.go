package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overlayFile applies the values present in a YAML file on top of c.
// Keys missing from the file keep their current value.
func (c *Config) overlayFile(path string) error {
	// #nosec G304 -- path comes from the operator's environment
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}
