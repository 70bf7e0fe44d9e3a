package cmd

import (
	"github.com/covlens/covlens/core"
	"github.com/covlens/covlens/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check [profile-path]",
	Short: "Enforce a coverage threshold for CI/CD pipelines (fails build on violations)",
	Long: `Verify the overall coverage percentage against the threshold.

Designed specifically for CI/CD integration - fails with non-zero exit code when
overall coverage falls below the threshold. Prints a single pass/fail summary.

Use cases:
- Pull request gates - block merges that drop coverage
- Release validation - ensure coverage standards before deployment
- Quality enforcement - maintain testing discipline over time

Examples:
  # Gate on the default 95% threshold
  covlens check

  # Gate a specific profile at 80%
  covlens check build/cover.out --threshold 80

  # Gate one package only
  covlens check --filter internal/server --threshold 90`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Threshold comparison is done in ExecuteCoverageCheck
		if err := core.ExecuteCoverageCheck(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Coverage check failed", err)
		}
	},
}
