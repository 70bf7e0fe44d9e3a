package cmd

import (
	"github.com/covlens/covlens/core"
	"github.com/covlens/covlens/internal/contract"
	"github.com/spf13/cobra"
)

// genericsCmd analyzes generic instantiations from compiler diagnostics.
var genericsCmd = &cobra.Command{
	Use:   "generics [package-dir]",
	Short: "Rank generic instantiations from Go compiler diagnostics.",
	Long: `Extract go.shape instantiations from -gcflags=-m compiler output and rank them.

Every generic function the compiler stencils shows up in its diagnostics.
This command tallies those instantiations, helping you:
- See which generic functions are instantiated most often
- Find shape types that dominate compile time
- Spot multi-parameter generics with combinatorial explosion risk
- Flag functions instantiated often enough to be compiler memory hogs

By default the target package is built with -gcflags=-m. Use --test to
include test compilation, or --input to analyze saved compiler output.

Examples:
  # Analyze the current package
  covlens generics

  # Analyze a specific package including its tests
  covlens generics ./internal/server --test

  # Analyze saved compiler output
  covlens generics --input diagnostics.txt

  # Save the matched diagnostic lines for later
  covlens generics --save diagnostics.txt`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: genericsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGenericsReport(rootCtx, cfg, goRunner); err != nil {
			contract.LogFatal("Cannot run generics analysis", err)
		}
	},
}
