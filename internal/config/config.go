package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SlackConfig holds the chat platform settings.
type SlackConfig struct {
	Token string `yaml:"token"` // shared secret the platform sends with every command
}

// ProvidersConfig holds the external collaborator endpoints. Empty URLs
// select the public APIs; tests point them at local fakes.
type ProvidersConfig struct {
	TriviaURL   string `yaml:"trivia_url"`
	GeocodeURL  string `yaml:"geocode_url"`
	CurrencyURL string `yaml:"currency_url"`
	GuardianURL string `yaml:"guardian_url"`
	GuardianKey string `yaml:"guardian_key"`
}

// Config holds the hausbot configuration.
type Config struct {
	Listen         string          `yaml:"listen"`          // HTTP listen address
	DataDir        string          `yaml:"data_dir"`        // snapshot and ranking documents
	Slack          SlackConfig     `yaml:"slack"`
	Providers      ProvidersConfig `yaml:"providers"`
	TimeoutSeconds int             `yaml:"timeout_seconds"` // outbound call budget
	LogFile        string          `yaml:"log_file"`        // path to log file
	Debug          bool            `yaml:"debug"`           // enable debug logging
}

// Load reads and parses the config file from the given path. The
// HAUSBOT_SLACK_TOKEN and HAUSBOT_GUARDIAN_KEY environment variables
// override their file counterparts so secrets can stay out of the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if v := os.Getenv("HAUSBOT_SLACK_TOKEN"); v != "" {
		cfg.Slack.Token = v
	}
	if v := os.Getenv("HAUSBOT_GUARDIAN_KEY"); v != "" {
		cfg.Providers.GuardianKey = v
	}

	if cfg.Slack.Token == "" {
		return nil, fmt.Errorf("slack.token is required")
	}
	if cfg.Listen == "" {
		cfg.Listen = ":5005"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 10
	}

	return &cfg, nil
}

// Timeout returns the outbound call budget as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
