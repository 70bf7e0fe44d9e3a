// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/covlens/covlens/internal/contract"
	"github.com/covlens/covlens/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteCoverage prints the coverage report using the configured output format.
func (ow *OutWriter) WriteCoverage(report *schema.CoverageReport, cfg *contract.Config, duration time.Duration) error {
	return PrintCoverageReport(report, cfg, duration)
}

// WriteCheck prints the pass/fail check summary.
func (ow *OutWriter) WriteCheck(report *schema.CoverageReport, cfg *contract.Config) error {
	return PrintCheckResult(report, cfg)
}

// WriteGenerics prints the generic instantiation report using the configured output format.
func (ow *OutWriter) WriteGenerics(report *schema.GenericsReport, cfg *contract.Config, duration time.Duration) error {
	return PrintGenericsReport(report, cfg, duration)
}
