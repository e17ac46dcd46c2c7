package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sitefy/sitecheck/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  `Commands for managing sitecheck configuration.`,
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the default configuration",
	Long: `Dump the default configuration values in YAML format.

You can redirect this output to a file to create a configuration template:

  sitecheck config dump > .sitecheck.yaml

Configuration can be set via:
  - Config file (.sitecheck.yaml, config.yaml, /etc/sitecheck/config.yaml)
  - Environment variables (SITECHECK_PROBE_BASE_URL, SITECHECK_PROBE_TIMEOUT, etc.)
  - Command-line flags (for some options)

Environment variables use the SITECHECK_ prefix and underscores for nesting.
Example: probe.base_url -> SITECHECK_PROBE_BASE_URL`,
	RunE: runConfigDump,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configDumpCmd)
}

func runConfigDump(cmd *cobra.Command, args []string) error {
	// Load config with defaults (no file, just defaults)
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Durations marshal as their string form for readability.
	cfgMap := map[string]any{
		"probe": map[string]any{
			"base_url":       cfg.Probe.BaseURL,
			"timeout":        cfg.Probe.Timeout.String(),
			"min_body_bytes": cfg.Probe.MinBodyBytes,
			"user_agent":     cfg.Probe.UserAgent,
		},
		"logging": map[string]any{
			"level":       cfg.Logging.Level,
			"format":      cfg.Logging.Format,
			"add_source":  cfg.Logging.AddSource,
			"time_format": cfg.Logging.TimeFormat,
		},
	}

	yamlData, err := yaml.Marshal(cfgMap)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "# sitecheck Configuration File")
	fmt.Fprintln(out, "# ============================")
	fmt.Fprintln(out, "#")
	fmt.Fprintln(out, "# All values shown below are defaults.")
	fmt.Fprintln(out, "#")
	fmt.Fprintln(out, "# Environment variable overrides:")
	fmt.Fprintln(out, "#   SITECHECK_PROBE_BASE_URL, SITECHECK_PROBE_TIMEOUT")
	fmt.Fprintln(out, "#   SITECHECK_PROBE_MIN_BODY_BYTES")
	fmt.Fprintln(out, "#   SITECHECK_LOGGING_LEVEL, SITECHECK_LOGGING_FORMAT")
	fmt.Fprintln(out, "#")
	fmt.Fprintln(out, "")
	fmt.Fprint(out, string(yamlData))

	return nil
}
