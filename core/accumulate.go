package core

import "github.com/covlens/covlens/schema"

// Accumulator folds coverage records into per-file aggregates while
// preserving the order in which files were first seen. Encounter order is
// what keeps the final report sort stable for files with equal coverage.
type Accumulator struct {
	stats map[string]*schema.FileCoverageStats
	order []string
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		stats: make(map[string]*schema.FileCoverageStats),
	}
}

// Add folds one record into the aggregate for its file. Every record
// contributes its statement count to the total; records with a non-zero
// execution count also contribute to the covered total. Records that never
// ran mark their line span uncovered, and records that ran exactly once
// mark it low-execution.
func (a *Accumulator) Add(rec schema.CoverageRecord) {
	stats, ok := a.stats[rec.File]
	if !ok {
		stats = schema.NewFileCoverageStats()
		a.stats[rec.File] = stats
		a.order = append(a.order, rec.File)
	}

	stats.TotalStatements += rec.Statements
	switch {
	case rec.Count == 0:
		stats.UncoveredLines.AddRange(rec.StartLine, rec.EndLine)
	case rec.Count == 1:
		stats.CoveredStatements += rec.Statements
		stats.LowExecLines.AddRange(rec.StartLine, rec.EndLine)
	default:
		stats.CoveredStatements += rec.Statements
	}
}

// AddAll folds a slice of records in order.
func (a *Accumulator) AddAll(recs []schema.CoverageRecord) {
	for _, rec := range recs {
		a.Add(rec)
	}
}

// Files returns the file identifiers in first-seen order.
func (a *Accumulator) Files() []string {
	return a.order
}

// Stats returns the aggregate for a file, or nil if the file was never seen.
func (a *Accumulator) Stats(file string) *schema.FileCoverageStats {
	return a.stats[file]
}

// Len returns the number of distinct files accumulated.
func (a *Accumulator) Len() int {
	return len(a.order)
}
