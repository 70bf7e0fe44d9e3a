// Package core has core logic for parsing, aggregation and reporting.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/covlens/covlens/internal/contract"
	"github.com/covlens/covlens/internal/outwriter"
	"github.com/covlens/covlens/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteCoverageReport parses the configured profile, aggregates per-file
// coverage and prints the full report. It serves as the main entry point
// for the 'report' command.
func ExecuteCoverageReport(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	report, err := runCoverageAnalysis(cfg, mgr, start)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintCoverageReport(report, cfg, duration)
}

// GetCoverageResults runs the coverage analysis and returns the report
// without printing it. It is used by callers that consume the report
// programmatically, such as the MCP server.
func GetCoverageResults(_ context.Context, cfg *contract.Config, mgr contract.HistoryManager) (*schema.CoverageReport, error) {
	return runCoverageAnalysis(cfg, mgr, time.Now())
}

// GetGenericsResults collects compiler diagnostics and returns the
// instantiation report without printing it.
func GetGenericsResults(ctx context.Context, cfg *contract.Config, runner contract.GoRunner) (*schema.GenericsReport, error) {
	output, err := collectDiagnostics(ctx, cfg, runner)
	if err != nil {
		return nil, err
	}
	instances := ExtractGenericInstances(output)
	if len(instances) == 0 {
		return nil, errors.New("no generic instantiations found; ensure the package uses generics and builds with -gcflags=-m")
	}
	return BuildGenericsReport(instances), nil
}

// ExecuteCoverageCheck runs the same analysis as the report command but
// prints only a pass/fail summary and returns an error when the overall
// coverage falls below the threshold, so CI pipelines exit non-zero.
func ExecuteCoverageCheck(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	report, err := runCoverageAnalysis(cfg, mgr, start)
	if err != nil {
		return err
	}
	if err := outwriter.PrintCheckResult(report, cfg); err != nil {
		return err
	}
	if report.OverallPercent < cfg.Threshold {
		return fmt.Errorf("overall coverage %.2f%% is below threshold %.2f%%",
			report.OverallPercent, cfg.Threshold)
	}
	return nil
}

// ExecuteGenericsReport collects -gcflags=-m diagnostics, either from a
// saved file or by invoking the toolchain, and prints the instantiation
// report. It serves as the main entry point for the 'generics' command.
func ExecuteGenericsReport(ctx context.Context, cfg *contract.Config, runner contract.GoRunner) error {
	start := time.Now()

	output, err := collectDiagnostics(ctx, cfg, runner)
	if err != nil {
		return err
	}

	instances := ExtractGenericInstances(output)
	if len(instances) == 0 {
		return errors.New("no generic instantiations found; ensure the package uses generics and builds with -gcflags=-m")
	}

	if cfg.GenericsSave != "" {
		raw := make([]string, 0, len(instances))
		for _, inst := range instances {
			raw = append(raw, inst.Raw)
		}
		if err := writeLines(cfg.GenericsSave, raw); err != nil {
			return fmt.Errorf("failed to save generics diagnostics: %w", err)
		}
	}

	report := BuildGenericsReport(instances)
	duration := time.Since(start)
	return outwriter.PrintGenericsReport(report, cfg, duration)
}

// runCoverageAnalysis performs the shared parse, aggregate and record steps.
func runCoverageAnalysis(cfg *contract.Config, mgr contract.HistoryManager, start time.Time) (*schema.CoverageReport, error) {
	parsed, err := ParseProfileFile(cfg.ProfilePath)
	if err != nil {
		return nil, err
	}

	if cfg.SaveRaw != "" {
		if err := writeLines(cfg.SaveRaw, parsed.RawLines); err != nil {
			return nil, fmt.Errorf("failed to save raw coverage lines: %w", err)
		}
	}

	acc := NewAccumulator()
	acc.AddAll(parsed.Records)
	report := BuildReport(acc, cfg)

	recordRunHistory(mgr, start, cfg.ProfilePath, report)
	return report, nil
}

// collectDiagnostics returns compiler output from the configured input file
// or by running the toolchain against the target directory.
func collectDiagnostics(ctx context.Context, cfg *contract.Config, runner contract.GoRunner) ([]byte, error) {
	if cfg.GenericsInput != "" {
		output, err := os.ReadFile(cfg.GenericsInput)
		if err != nil {
			return nil, fmt.Errorf("cannot read diagnostics input: %w", err)
		}
		return output, nil
	}
	if cfg.GenericsTest {
		return runner.TestDiagnostics(ctx, cfg.GenericsDir)
	}
	return runner.BuildDiagnostics(ctx, cfg.GenericsDir)
}

// recordRunHistory persists the run outcome to the history store, if one
// is configured. Failures are warnings; they never fail the analysis.
func recordRunHistory(mgr contract.HistoryManager, start time.Time, profilePath string, report *schema.CoverageReport) {
	if mgr == nil {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}

	runID, err := store.BeginRun(start, profilePath)
	if err != nil {
		contract.LogWarn("Run history tracking initialization failed", err)
		return
	}

	now := time.Now()
	for _, file := range report.Files {
		if err := store.RecordFileCoverage(runID, now, file); err != nil {
			contract.LogWarn(fmt.Sprintf("Failed to record coverage for %s", file.File), err)
		}
	}

	if err := store.FinishRun(runID, time.Now(), report); err != nil {
		contract.LogWarn("Failed to finalize run history", err)
	}
}

// writeLines writes lines to a file with a trailing newline.
func writeLines(path string, lines []string) error {
	data := strings.Join(lines, "\n") + "\n"
	return os.WriteFile(path, []byte(data), 0o644)
}
