// Package runner executes the smoke-check catalogue sequentially and
// reports the outcome. No check's failure aborts the run: every error or
// panic raised by a check is confined to that check's result, and the run
// always proceeds through the full list.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/sitefy/sitecheck/internal/checks"
)

// Result records the outcome of a single check.
type Result struct {
	Name    string
	Passed  bool
	Message string
	Elapsed time.Duration
}

// Options holds configuration options for the runner.
type Options struct {
	// Checks is the ordered catalogue to execute.
	Checks []checks.Check

	// Verbose also prints each check's info line before it runs.
	Verbose bool

	// Out receives the human-readable status lines and summary.
	// Defaults to os.Stdout.
	Out io.Writer

	// Logger receives structured run events. Defaults to slog.Default().
	Logger *slog.Logger
}

// Runner runs the check suite. Single-threaded: one check runs to
// completion, network call included, before the next begins.
type Runner struct {
	checks  []checks.Check
	out     io.Writer
	logger  *slog.Logger
	verbose bool
	runID   string

	results   []Result
	attempted int
	passed    int
}

// New creates a new runner for the given checks.
func New(opts Options) *Runner {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		checks:  opts.Checks,
		out:     out,
		logger:  logger,
		verbose: opts.Verbose,
		runID:   ulid.Make().String(),
	}
}

// RunID returns the unique ID for this run.
func (r *Runner) RunID() string {
	return r.runID
}

// Run executes every check in order, printing a status line per check.
func (r *Runner) Run(ctx context.Context) {
	r.logger.Info("run started",
		slog.String("run_id", r.runID),
		slog.Int("checks", len(r.checks)),
	)

	for _, c := range r.checks {
		r.runCheck(ctx, c)
	}

	r.logger.Info("run finished",
		slog.String("run_id", r.runID),
		slog.Int("attempted", r.attempted),
		slog.Int("passed", r.passed),
	)
}

// runCheck executes one check inside the fault boundary and records the
// result. Errors and panics alike become a failed result for this check
// only; nothing propagates to the run.
func (r *Runner) runCheck(ctx context.Context, c checks.Check) {
	r.attempted++
	if r.verbose && c.Info != "" {
		fmt.Fprintf(r.out, "  [INFO] %s\n", c.Info)
	}

	start := time.Now()
	err := invoke(ctx, c)
	elapsed := time.Since(start)

	result := Result{
		Name:    c.Name,
		Passed:  err == nil,
		Elapsed: elapsed,
	}

	if err != nil {
		result.Message = err.Error()
		fmt.Fprintf(r.out, "[FAIL] %s (%s)\n", c.Name, formatDuration(elapsed))
		fmt.Fprintf(r.out, "       Error: %s\n", result.Message)
		r.logger.Debug("check failed",
			slog.String("check", c.Name),
			slog.String("error", result.Message),
			slog.Duration("elapsed", elapsed),
		)
	} else {
		result.Message = "OK"
		r.passed++
		fmt.Fprintf(r.out, "[PASS] %s (%s)\n", c.Name, formatDuration(elapsed))
		r.logger.Debug("check passed",
			slog.String("check", c.Name),
			slog.Duration("elapsed", elapsed),
		)
	}

	r.results = append(r.results, result)
}

// invoke calls the check function, converting a panic into an error.
func invoke(ctx context.Context, c checks.Check) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return c.Fn(ctx)
}

// Attempted returns the number of checks started so far.
func (r *Runner) Attempted() int {
	return r.attempted
}

// Passed returns the number of checks that succeeded so far.
func (r *Runner) Passed() int {
	return r.passed
}

// Results returns the recorded per-check results in execution order.
func (r *Runner) Results() []Result {
	return r.results
}

// PrintSummary prints the final tally and returns the process exit code:
// 0 when every check passed, 1 otherwise.
func (r *Runner) PrintSummary() int {
	var total time.Duration
	for _, result := range r.results {
		total += result.Elapsed
	}

	fmt.Fprintln(r.out, strings.Repeat("-", 60))
	fmt.Fprintf(r.out, "Result: %d/%d checks passed (%s)\n",
		r.passed, r.attempted, formatDuration(total))

	if r.passed == r.attempted {
		fmt.Fprintln(r.out, "All checks passed.")
		return 0
	}
	fmt.Fprintf(r.out, "%d checks failed.\n", r.attempted-r.passed)
	return 1
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return "<1ms"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", minutes, seconds)
}
