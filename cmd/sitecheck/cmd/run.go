package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sitefy/sitecheck/internal/checks"
	"github.com/sitefy/sitecheck/internal/config"
	"github.com/sitefy/sitecheck/internal/fetch"
	"github.com/sitefy/sitecheck/internal/observability"
	"github.com/sitefy/sitecheck/internal/runner"
)

var runVerbose bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the smoke-check suite",
	Long: `Run the full ordered smoke-check suite against a Sitefy deployment.

Every check fetches its page fresh and inspects the body. Checks are
independent: a failing check never aborts the run. The command exits 0
only when all checks passed.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("base-url", config.DefaultBaseURL, "Base URL the page paths are resolved against")
	runCmd.Flags().Duration("timeout", config.DefaultProbeTimeout, "Per-request timeout")
	runCmd.Flags().Int("min-body-bytes", config.DefaultMinBodyBytes, "Sanity floor for page body length")
	runCmd.Flags().BoolVar(&runVerbose, "verbose", false, "Print each check's description before it runs")

	mustBindPFlag("probe.base_url", runCmd.Flags().Lookup("base-url"))
	mustBindPFlag("probe.timeout", runCmd.Flags().Lookup("timeout"))
	mustBindPFlag("probe.min_body_bytes", runCmd.Flags().Lookup("min-body-bytes"))
}

func runRun(cmd *cobra.Command, args []string) error {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	logger := slog.Default()

	client := fetch.New(fetch.Config{
		BaseURL:             cfg.Probe.BaseURL,
		Timeout:             cfg.Probe.Timeout,
		UserAgent:           cfg.Probe.UserAgent,
		Logger:              observability.WithComponent(logger, "fetch"),
		EnableDecompression: true,
	})

	suite := checks.Suite(client, cfg.Probe.MinBodyBytes)

	r := runner.New(runner.Options{
		Checks:  suite,
		Verbose: runVerbose,
		Out:     cmd.OutOrStdout(),
		Logger:  observability.WithComponent(logger, "runner"),
	})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Sitefy Smoke Test Runner")
	fmt.Fprintf(out, "Base URL:   %s\n", cfg.Probe.BaseURL)
	fmt.Fprintf(out, "Timeout:    %s\n", cfg.Probe.Timeout)
	fmt.Fprintf(out, "Body floor: %d bytes\n", cfg.Probe.MinBodyBytes)
	fmt.Fprintf(out, "Run ID:     %s\n", r.RunID())
	fmt.Fprintln(out)

	r.Run(cmd.Context())

	if code := r.PrintSummary(); code != 0 {
		return fmt.Errorf("%d of %d checks failed", r.Attempted()-r.Passed(), r.Attempted())
	}
	return nil
}
