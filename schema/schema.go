// Package schema has configs, models and global variables for all parts of covlens.
package schema

import "time"

// CoverageRecord represents one parsed line of a coverage profile.
// It covers a source span from StartLine.StartCol to EndLine.EndCol,
// with the number of statements in the span and how often they ran.
type CoverageRecord struct {
	File       string // File identifier as it appears in the profile
	StartLine  int    // First line of the covered span
	StartCol   int    // Column where the span starts
	EndLine    int    // Last line of the covered span
	EndCol     int    // Column where the span ends
	Statements int    // Number of statements in the span
	Count      int    // Number of times the span was executed
}

// FileCoverageStats is the per-file aggregate built from coverage records.
// Counts only increase and line sets only grow while a profile is consumed;
// the struct is read-only once the full input has been read.
type FileCoverageStats struct {
	TotalStatements   int     // Statements seen across all records for the file
	CoveredStatements int     // Statements from records with a non-zero count
	UncoveredLines    LineSet // Lines spanned by records that never executed
	LowExecLines      LineSet // Lines spanned by records that executed exactly once
}

// NewFileCoverageStats returns an empty per-file aggregate.
func NewFileCoverageStats() *FileCoverageStats {
	return &FileCoverageStats{
		UncoveredLines: NewLineSet(),
		LowExecLines:   NewLineSet(),
	}
}

// FileCoverageSummary is the derived, render-ready view of one file.
type FileCoverageSummary struct {
	File              string   `json:"file"`
	Percent           float64  `json:"percent"`
	TotalStatements   int      `json:"total_statements"`
	CoveredStatements int      `json:"covered_statements"`
	UncoveredRanges   []string `json:"uncovered_ranges"`
	LowExecRanges     []string `json:"low_exec_ranges"`
}

// CoverageReport holds the complete outcome of one aggregation pass.
type CoverageReport struct {
	// Files contains every file seen in the profile, sorted ascending by
	// coverage percentage with ties kept in encounter order.
	Files []FileCoverageSummary `json:"files"`

	// LowCoverage is the subset of Files with 0 < percent < Threshold.
	// Files at exactly 0% are excluded by policy so wholly unexercised
	// generated/vendored files do not flood the report.
	LowCoverage []FileCoverageSummary `json:"low_coverage"`

	Threshold         float64 `json:"threshold"`
	TotalFiles        int     `json:"total_files"`
	TotalStatements   int     `json:"total_statements"`
	CoveredStatements int     `json:"covered_statements"`
	OverallPercent    float64 `json:"overall_percent"`
}

// UncoveredStatements returns the number of statements never executed.
func (r *CoverageReport) UncoveredStatements() int {
	return r.TotalStatements - r.CoveredStatements
}

// GenericInstance is one generic instantiation extracted from compiler
// diagnostics, e.g. "Map[go.shape.int]" reported by -gcflags=-m.
type GenericInstance struct {
	Func  string `json:"func"`  // Fully qualified function or type name
	Shape string `json:"shape"` // The go.shape type argument list
	File  string `json:"file"`  // Source file from the diagnostic position, if any
	Line  int    `json:"line"`  // Line from the diagnostic position, if any
	Col   int    `json:"col"`   // Column from the diagnostic position, if any
	Raw   string `json:"raw"`   // The raw diagnostic line, unmodified
}

// MultiParam reports whether the instantiation has more than one shape
// argument, a combinatorial-explosion signal.
func (g GenericInstance) MultiParam() bool {
	for _, r := range g.Shape {
		if r == ',' {
			return true
		}
	}
	return false
}

// GenericsReport aggregates generic instantiation diagnostics.
type GenericsReport struct {
	Total        int              `json:"total"`
	ByFunc       []KeyCount       `json:"by_func"`
	ByShape      []KeyCount       `json:"by_shape"`
	ByFile       []KeyCount       `json:"by_file"`
	ByFuncShape  []KeyCount       `json:"by_func_shape"`
	MultiParam   []KeyCount       `json:"multi_param"`
	TestTotal    int              `json:"test_total"`
	SourceTotal  int              `json:"source_total"`
	HighInstance []KeyCount       `json:"high_instance"`
	Instances    []GenericInstance `json:"-"`
}

// KeyCount is a named tally, ordered by count descending when produced
// from a counter.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// RunRecord represents a stored coverage report run.
type RunRecord struct {
	RunID             int64      `json:"run_id"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           *time.Time `json:"end_time"`
	ProfilePath       string     `json:"profile_path"`
	TotalFiles        int32      `json:"total_files"`
	TotalStatements   int64      `json:"total_statements"`
	CoveredStatements int64      `json:"covered_statements"`
	OverallPercent    float64    `json:"overall_percent"`
}

// FileCoverageRow represents the stored per-file outcome of one run.
type FileCoverageRow struct {
	RunID             int64     `json:"run_id"`
	FilePath          string    `json:"file_path"`
	RecordedAt        time.Time `json:"recorded_at"`
	Percent           float64   `json:"percent"`
	TotalStatements   int64     `json:"total_statements"`
	CoveredStatements int64     `json:"covered_statements"`
	UncoveredRanges   string    `json:"uncovered_ranges"`
	LowExecRanges     string    `json:"low_exec_ranges"`
}

// HistoryStatus holds status information about the run-history store.
type HistoryStatus struct {
	Backend       string
	Connected     bool
	TotalRuns     int64
	TotalFileRows int64
	LastRunTime   time.Time
	OldestRunTime time.Time
}
