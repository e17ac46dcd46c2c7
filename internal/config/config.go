// Package config provides configuration management for sitecheck using Viper.
// It supports configuration from files, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default configuration values.
//
// The probe timeout and body-length floor are sanity thresholds, not
// semantic limits; both are overridable via file, env, or flag.
const (
	DefaultBaseURL      = "http://localhost:8080"
	DefaultProbeTimeout = 10 * time.Second
	DefaultMinBodyBytes = 1000
)

// Config holds all configuration for the application.
type Config struct {
	Probe   ProbeConfig   `mapstructure:"probe"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ProbeConfig holds settings for HTTP probes against the target site.
type ProbeConfig struct {
	// BaseURL is the root address all page paths are resolved against.
	BaseURL string `mapstructure:"base_url"`

	// Timeout bounds each individual page request.
	Timeout time.Duration `mapstructure:"timeout"`

	// MinBodyBytes is the sanity floor for page body length. Responses
	// shorter than this fail the check even when the status is 200.
	MinBodyBytes int `mapstructure:"min_body_bytes"`

	// UserAgent overrides the User-Agent header sent with probes.
	// Empty means the built-in sitecheck/<version> string.
	UserAgent string `mapstructure:"user_agent"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // json, text
	AddSource  bool   `mapstructure:"add_source"`
	TimeFormat string `mapstructure:"time_format"`
}

// Load reads configuration from file and environment variables.
// Environment variables take precedence over file configuration.
// Environment variables are prefixed with SITECHECK_ and use underscores
// for nesting. Example: SITECHECK_PROBE_BASE_URL=http://staging:8080.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.sitecheck")
		v.AddConfigPath("/etc/sitecheck")
	}

	v.SetEnvPrefix("SITECHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Config file not found is OK - we'll use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// SetDefaults configures default values for all configuration options.
// This should be called before reading the config file to ensure defaults
// are in place.
func SetDefaults(v *viper.Viper) {
	// Probe defaults
	v.SetDefault("probe.base_url", DefaultBaseURL)
	v.SetDefault("probe.timeout", DefaultProbeTimeout)
	v.SetDefault("probe.min_body_bytes", DefaultMinBodyBytes)
	v.SetDefault("probe.user_agent", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Probe.BaseURL == "" {
		return fmt.Errorf("probe.base_url is required")
	}
	u, err := url.Parse(c.Probe.BaseURL)
	if err != nil {
		return fmt.Errorf("probe.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("probe.base_url must use http or https scheme")
	}

	if c.Probe.Timeout <= 0 {
		return fmt.Errorf("probe.timeout must be positive")
	}
	if c.Probe.MinBodyBytes < 0 {
		return fmt.Errorf("probe.min_body_bytes must not be negative")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
