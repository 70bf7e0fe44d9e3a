// Package parquet provides data structures and functions for exporting
// coverage data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/covlens/covlens/schema"
	"github.com/parquet-go/parquet-go"
)

// CoverageRun represents a single coverage report run with metadata.
// This struct maps to the covlens_runs database table.
type CoverageRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// ProfilePath is the coverage profile that was analyzed
	ProfilePath string `parquet:"profile_path,snappy"`

	// TotalFiles is the number of files seen in the profile
	TotalFiles int32 `parquet:"total_files,snappy"`

	// TotalStatements is the statement count across all files
	TotalStatements int64 `parquet:"total_statements,snappy"`

	// CoveredStatements is the covered statement count across all files
	CoveredStatements int64 `parquet:"covered_statements,snappy"`

	// OverallPercent is the aggregate coverage percentage
	OverallPercent float64 `parquet:"overall_percent,snappy"`
}

// FileCoverage represents the per-file outcome of one run.
// This struct maps to the covlens_file_coverage database table.
type FileCoverage struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// FilePath is the file identifier as it appears in the profile
	FilePath string `parquet:"file_path,snappy"`

	// RecordedAt is when this row was written
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	// Percent is the file's coverage percentage
	Percent float64 `parquet:"percent,snappy"`

	// TotalStatements is the file's statement count
	TotalStatements int64 `parquet:"total_statements,snappy"`

	// CoveredStatements is the file's covered statement count
	CoveredStatements int64 `parquet:"covered_statements,snappy"`

	// UncoveredRanges is the pipe-joined list of uncovered line ranges
	UncoveredRanges string `parquet:"uncovered_ranges,snappy"`

	// LowExecRanges is the pipe-joined list of low-execution line ranges
	LowExecRanges string `parquet:"low_exec_ranges,snappy"`
}

// WriteCoverageRunsParquet writes a slice of CoverageRun structs to a Parquet file.
func WriteCoverageRunsParquet(data []CoverageRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the CoverageRun struct tags
	writer := parquet.NewGenericWriter[CoverageRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteFileCoverageParquet writes a slice of FileCoverage structs to a Parquet file.
func WriteFileCoverageParquet(data []FileCoverage, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the FileCoverage struct tags
	writer := parquet.NewGenericWriter[FileCoverage](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteCoverageReport exports a freshly built report as per-file parquet rows.
// All rows share RunID 0 since the report may never be persisted to history.
func WriteCoverageReport(outputPath string, report *schema.CoverageReport) error {
	now := time.Now()
	rows := make([]FileCoverage, len(report.Files))
	for i, f := range report.Files {
		rows[i] = FileCoverage{
			RecordedAt:        now,
			FilePath:          f.File,
			Percent:           f.Percent,
			TotalStatements:   int64(f.TotalStatements),
			CoveredStatements: int64(f.CoveredStatements),
			UncoveredRanges:   strings.Join(f.UncoveredRanges, "|"),
			LowExecRanges:     strings.Join(f.LowExecRanges, "|"),
		}
	}
	return WriteFileCoverageParquet(rows, outputPath)
}

// ConvertRunRecords converts schema.RunRecord to CoverageRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []CoverageRun {
	result := make([]CoverageRun, len(records))
	for i, record := range records {
		result[i] = CoverageRun{
			RunID:             record.RunID,
			StartTime:         record.StartTime,
			EndTime:           record.EndTime,
			ProfilePath:       record.ProfilePath,
			TotalFiles:        record.TotalFiles,
			TotalStatements:   record.TotalStatements,
			CoveredStatements: record.CoveredStatements,
			OverallPercent:    record.OverallPercent,
		}
	}
	return result
}

// ConvertFileCoverageRows converts schema.FileCoverageRow to FileCoverage for Parquet export.
func ConvertFileCoverageRows(records []schema.FileCoverageRow) []FileCoverage {
	result := make([]FileCoverage, len(records))
	for i, record := range records {
		result[i] = FileCoverage{
			RunID:             record.RunID,
			FilePath:          record.FilePath,
			RecordedAt:        record.RecordedAt,
			Percent:           record.Percent,
			TotalStatements:   record.TotalStatements,
			CoveredStatements: record.CoveredStatements,
			UncoveredRanges:   record.UncoveredRanges,
			LowExecRanges:     record.LowExecRanges,
		}
	}
	return result
}
