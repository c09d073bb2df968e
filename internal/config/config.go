// Package config loads the settings of a run from an optional yml file
// and environment variables.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jakopako/sessionscraper/internal/fetch"
	"github.com/jakopako/sessionscraper/internal/output"
	"gopkg.in/yaml.v3"
)

// Config defines the overall structure of the scraper configuration.
// Values will be taken from a config yml file or environment variables
// or both. Environment variables take precedence over the file.
type Config struct {
	Fetcher fetch.FetcherConfig `yaml:"fetcher"`
	Writer  output.WriterConfig `yaml:"writer"`
}

// NewConfig reads the config file at configPath. If configPath is empty
// only environment variables and defaults are used.
func NewConfig(configPath string) (*Config, error) {
	var config Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&config); err != nil {
			return nil, fmt.Errorf("failed to read config from environment: %w", err)
		}
		return &config, nil
	}

	if err := cleanenv.ReadConfig(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	return &config, nil
}

// String returns the config as yml with the writer password masked.
func (c Config) String() string {
	if c.Writer.Password != "" {
		c.Writer.Password = "***"
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<unprintable config: %v>", err)
	}
	return string(b)
}
