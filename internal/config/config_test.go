package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		Probe: ProbeConfig{
			BaseURL:      "http://localhost:8080",
			Timeout:      10 * time.Second,
			MinBodyBytes: 1000,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Load without config file should use defaults
	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "http://localhost:8080", cfg.Probe.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Probe.Timeout)
	assert.Equal(t, 1000, cfg.Probe.MinBodyBytes)
	assert.Empty(t, cfg.Probe.UserAgent)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.False(t, cfg.Logging.AddSource)
}

func TestLoad_FromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
probe:
  base_url: "https://staging.sitefy.example"
  timeout: 30s
  min_body_bytes: 500

logging:
  level: "debug"
  format: "json"
`
	err := os.WriteFile(configPath, []byte(configContent), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://staging.sitefy.example", cfg.Probe.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Probe.Timeout)
	assert.Equal(t, 500, cfg.Probe.MinBodyBytes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SITECHECK_PROBE_BASE_URL", "http://env.sitefy.example:9090")
	t.Setenv("SITECHECK_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://env.sitefy.example:9090", cfg.Probe.BaseURL)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_InvalidFileRejected(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte("probe:\n  timeout: -5s\n"), 0o600)
	require.NoError(t, err)

	_, err = Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe.timeout")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty base url", func(c *Config) { c.Probe.BaseURL = "" }, "probe.base_url is required"},
		{"bad scheme", func(c *Config) { c.Probe.BaseURL = "ftp://example.com" }, "http or https"},
		{"zero timeout", func(c *Config) { c.Probe.Timeout = 0 }, "probe.timeout"},
		{"negative floor", func(c *Config) { c.Probe.MinBodyBytes = -1 }, "min_body_bytes"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
