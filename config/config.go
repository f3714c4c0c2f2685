// Package config handles configuration for the mention CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables. Following 12-factor practice, the access token
// is only ever read from the environment, never from a config file.
const (
	EnvAccessToken = "MENTION_ACCESS_TOKEN"
	EnvAccountID   = "MENTION_ACCOUNT_ID"
)

// DefaultTimeoutSeconds bounds each API request when the config and
// flags are silent.
const DefaultTimeoutSeconds = 30

// Config represents the application configuration.
type Config struct {
	DefaultAccount string `yaml:"default_account,omitempty"`
	DefaultFormat  string `yaml:"default_format,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// DefaultConfigDir returns the default config directory.
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".mention"
	}
	return filepath.Join(configDir, "mention")
}

// ConfigPath returns the path to the global config file.
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the
// current directory.
func LocalConfigPath() string {
	return ".mention.yaml"
}

// Load loads the configuration from disk. It first loads the global
// config from the XDG config directory, then merges any local
// .mention.yaml on top (local values take precedence).
func Load() (*Config, error) {
	cfg := &Config{
		DefaultFormat:  "table",
		TimeoutSeconds: DefaultTimeoutSeconds,
	}

	globalPath := ConfigPath()
	if _, err := os.Stat(globalPath); err == nil {
		data, err := os.ReadFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read global config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse global config file: %w", err)
		}
	}

	localPath := LocalConfigPath()
	if _, err := os.Stat(localPath); err == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read local config file: %w", err)
		}
		var localCfg Config
		if err := yaml.Unmarshal(data, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to parse local config file: %w", err)
		}
		cfg = mergeConfig(cfg, &localCfg)
	}

	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "table"
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}

	return cfg, nil
}

// mergeConfig merges local config on top of global config. Local values
// take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := *global
	if local.DefaultAccount != "" {
		result.DefaultAccount = local.DefaultAccount
	}
	if local.DefaultFormat != "" {
		result.DefaultFormat = local.DefaultFormat
	}
	if local.TimeoutSeconds > 0 {
		result.TimeoutSeconds = local.TimeoutSeconds
	}
	return &result
}

// Save saves the configuration to the global config path.
func (c *Config) Save() error {
	configDir := DefaultConfigDir()
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// AccessToken returns the Mention API token from the environment.
func (c *Config) AccessToken() string {
	return os.Getenv(EnvAccessToken)
}

// AccountID resolves the account to operate on: an explicit flag value
// wins, then the environment, then the configured default.
func (c *Config) AccountID(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvAccountID); env != "" {
		return env
	}
	return c.DefaultAccount
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	seconds := c.TimeoutSeconds
	if seconds <= 0 {
		seconds = DefaultTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

// ToYAML returns the config as a YAML string.
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths.
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs.
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments.
func MinimalConfig() string {
	return `# Mention CLI configuration file

# Account used when --account is not given.
# The MENTION_ACCOUNT_ID environment variable overrides this.
# default_account: 923891_xxxxxxxx

# Output format: table or json
default_format: table

# Per-request timeout in seconds
timeout_seconds: 30
`
}

// SaveTo writes content to a specific path, creating directories as needed.
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
