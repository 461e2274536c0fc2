package ccfield

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML configuration file.
type FileConfig struct {
	Origin string `yaml:"origin"`
	Host   string `yaml:"host"`
	Mode   Mode   `yaml:"mode"`
	Rules  Rules  `yaml:"rules"`
}

// LoadConfig reads and validates a configuration file.
func LoadConfig(filename string) (FileConfig, error) {
	var config FileConfig
	configBytes, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(configBytes, &config); err != nil {
		return config, fmt.Errorf("parse %s: %w", filename, err)
	}
	if config.Mode, err = ParseMode(string(config.Mode)); err != nil {
		return config, fmt.Errorf("%s: %w", filename, err)
	}
	if config.Rules, err = config.Rules.Canonical(); err != nil {
		return config, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}
