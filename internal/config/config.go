package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/tavla/internal/board"
)

// Config represents the application configuration
type Config struct {
	ServerURL             string           `yaml:"server_url"`
	AuthToken             string           `yaml:"auth_token"`
	BoardID               string           `yaml:"board_id"`
	RequestTimeoutSeconds int              `yaml:"request_timeout_seconds"`
	CachePath             string           `yaml:"cache_path"`
	GroupNames            board.GroupNames `yaml:"group_names"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		ServerURL:             "http://localhost:8080",
		RequestTimeoutSeconds: 10,
		GroupNames:            board.DefaultGroupNames(),
	}
}

// RequestTimeout returns the confirmation-call timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Load loads config from the user's config directory, or from the file named
// by TAVLA_CONFIG when set. Returns the default config if no file exists.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return Default(), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.fillDefaults()
	return config, nil
}

func (c *Config) fillDefaults() {
	defaults := board.DefaultGroupNames()
	if c.GroupNames.Intake == "" {
		c.GroupNames.Intake = defaults.Intake
	}
	if c.GroupNames.InProgress == "" {
		c.GroupNames.InProgress = defaults.InProgress
	}
	if c.GroupNames.Complete == "" {
		c.GroupNames.Complete = defaults.Complete
	}
}

func getConfigPath() (string, error) {
	if override := os.Getenv("TAVLA_CONFIG"); override != "" {
		return override, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tavla", "config.yaml"), nil
}
