package cmd

import (
	"github.com/covlens/covlens/core"
	"github.com/covlens/covlens/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd performs the full coverage analysis.
var reportCmd = &cobra.Command{
	Use:   "report [profile-path]",
	Short: "Show per-file statement coverage, ranked worst-first.",
	Long: `Parse a Go coverage profile and rank files by statement coverage.

Aggregates every coverage record into per-file totals, helping you:
- Identify which files are most poorly tested
- See exactly which line ranges have never executed
- Spot code that only runs once across the whole test suite
- Track the overall coverage percentage of the codebase

Files below the threshold are listed worst-first with their uncovered
and low-execution line ranges.

Examples:
  # Analyze the default cover.out in the current directory
  covlens report

  # Analyze a specific profile with a stricter threshold
  covlens report build/cover.out --threshold 90

  # Focus on one package and skip generated code
  covlens report --filter internal/server --exclude "vendor/,_gen.go"

  # Export findings to CSV for tracking
  covlens report --output csv --output-file coverage.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCoverageReport(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot run coverage report", err)
		}
	},
}
