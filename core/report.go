package core

import (
	"sort"
	"strings"

	"github.com/covlens/covlens/internal/contract"
	"github.com/covlens/covlens/schema"
)

// BuildReport derives the final coverage report from accumulated stats.
// Files are filtered by the configured path filter and exclude patterns,
// sorted ascending by coverage percentage with ties kept in encounter
// order, and the low-coverage subset is selected against the threshold.
func BuildReport(acc *Accumulator, cfg *contract.Config) *schema.CoverageReport {
	report := &schema.CoverageReport{
		Threshold: cfg.Threshold,
	}

	pathFilterSet := cfg.PathFilter != ""
	for _, file := range acc.Files() {
		if pathFilterSet && !strings.HasPrefix(file, cfg.PathFilter) {
			continue
		}
		if contract.ShouldIgnore(file, cfg.Excludes) {
			continue
		}

		stats := acc.Stats(file)
		summary := schema.FileCoverageSummary{
			File:              file,
			Percent:           CoveragePercent(stats.CoveredStatements, stats.TotalStatements),
			TotalStatements:   stats.TotalStatements,
			CoveredStatements: stats.CoveredStatements,
			UncoveredRanges:   schema.CompressRanges(stats.UncoveredLines.Sorted()),
			LowExecRanges:     schema.CompressRanges(stats.LowExecLines.Sorted()),
		}

		report.Files = append(report.Files, summary)
		report.TotalStatements += stats.TotalStatements
		report.CoveredStatements += stats.CoveredStatements
	}

	// Stable sort keeps encounter order for equal percentages.
	sort.SliceStable(report.Files, func(i, j int) bool {
		return report.Files[i].Percent < report.Files[j].Percent
	})

	for _, summary := range report.Files {
		// Files at exactly 0% are excluded so wholly unexercised
		// generated or vendored files do not flood the report.
		if summary.Percent > 0 && summary.Percent < cfg.Threshold {
			report.LowCoverage = append(report.LowCoverage, summary)
		}
	}

	report.TotalFiles = len(report.Files)
	report.OverallPercent = CoveragePercent(report.CoveredStatements, report.TotalStatements)
	return report
}
