// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/covlens/covlens/schema"
)

// GoRunner defines the toolchain invocations needed for generics analysis.
// This allows the core logic to be tested without a real go executable.
type GoRunner interface {
	// BuildDiagnostics compiles the package in dir with -gcflags=-m and
	// returns the combined compiler output. A failing build still returns
	// whatever diagnostics the compiler produced.
	BuildDiagnostics(ctx context.Context, dir string) ([]byte, error)

	// TestDiagnostics compiles and runs the tests in dir with -gcflags=-m
	// and returns the combined compiler output from both passes.
	TestDiagnostics(ctx context.Context, dir string) ([]byte, error)
}

// HistoryManager defines the interface for accessing the run-history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking coverage report runs.
type HistoryStore interface {
	// BeginRun creates a new run row and returns its unique ID
	BeginRun(startTime time.Time, profilePath string) (int64, error)

	// FinishRun updates the run row with completion data
	FinishRun(runID int64, endTime time.Time, report *schema.CoverageReport) error

	// RecordFileCoverage stores the per-file outcome of a run
	RecordFileCoverage(runID int64, recordedAt time.Time, file schema.FileCoverageSummary) error

	// ListRuns returns the most recent runs, newest first.
	// A limit <= 0 returns every run.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// ListFileCoverage returns all per-file rows for a run.
	// A runID <= 0 returns rows for every run.
	ListFileCoverage(runID int64) ([]schema.FileCoverageRow, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection
	Close() error
}
