package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/covlens/covlens/internal/contract"
	"github.com/covlens/covlens/internal/parquet"
	"github.com/covlens/covlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// DefaultParquetReportFile is used when parquet output is selected without
// an explicit output file, since parquet cannot stream to stdout.
const DefaultParquetReportFile = "covlens_report.parquet"

// PrintCoverageReport outputs the coverage report, dispatching based on the
// output format configured.
func PrintCoverageReport(report *schema.CoverageReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeCoverageJSON(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCoverageCSV(report, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		outputFile := cfg.OutputFile
		if outputFile == "" {
			outputFile = DefaultParquetReportFile
		}
		if err := parquet.WriteCoverageReport(outputFile, report); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Printf("💾 Wrote parquet to %s\n", outputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCoverageTable(report, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// PrintCheckResult prints a single pass/fail line against the threshold.
func PrintCheckResult(report *schema.CoverageReport, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	if report.OverallPercent >= cfg.Threshold {
		fmt.Printf("✅ Coverage check passed: %s%% >= %s%% (%d/%d statements, %d files)\n",
			fmtFloat(report.OverallPercent), fmtFloat(cfg.Threshold),
			report.CoveredStatements, report.TotalStatements, report.TotalFiles)
		return nil
	}
	fmt.Printf("❌ Coverage check failed: %s%% < %s%% (%d/%d statements, %d files below threshold: %d)\n",
		fmtFloat(report.OverallPercent), fmtFloat(cfg.Threshold),
		report.CoveredStatements, report.TotalStatements,
		report.TotalFiles, len(report.LowCoverage))
	return nil
}

// writeCoverageJSON handles opening the file and calling the JSON writer.
func writeCoverageJSON(report *schema.CoverageReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, report)
	}, "Wrote JSON")
}

// writeCoverageCSV handles opening the file and calling the CSV writer.
// Every file appears in the CSV, not just the low-coverage subset, so the
// output is suitable for downstream joins.
func writeCoverageCSV(report *schema.CoverageReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"file",
		"percent",
		"label",
		"total_statements",
		"covered_statements",
		"uncovered_ranges",
		"low_exec_ranges",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, f := range report.Files {
				rec := []string{
					strconv.Itoa(i + 1),
					f.File,
					fmtFloat(f.Percent),
					contract.GetPlainLabel(f.Percent),
					fmt.Sprintf(intFmt, f.TotalStatements),
					fmt.Sprintf(intFmt, f.CoveredStatements),
					strings.Join(f.UncoveredRanges, "|"),
					strings.Join(f.LowExecRanges, "|"),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeCoverageTable generates and writes the human-readable report.
func writeCoverageTable(report *schema.CoverageReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	label := contract.GetPlainLabel
	if cfg.UseColors && cfg.OutputFile == "" {
		label = contract.GetColorLabel
	}

	shown := report.LowCoverage
	if len(shown) > cfg.TopLimit {
		shown = shown[:cfg.TopLimit]
	}

	if len(shown) == 0 {
		if _, err := fmt.Fprintf(writer, "🎉 No files below the %s%% threshold\n", fmtFloat(cfg.Threshold)); err != nil {
			return err
		}
	} else {
		table := tablewriter.NewWriter(writer)
		table.Header([]string{"Rank", "File", "Covered", "Stmts", "Percent", "Label"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for i, f := range shown {
			data = append(data, []string{
				strconv.Itoa(i + 1),
				contract.TruncatePath(f.File, getMaxTablePathWidth(cfg)),
				fmt.Sprintf(intFmt, f.CoveredStatements),
				fmt.Sprintf(intFmt, f.TotalStatements),
				fmtFloat(f.Percent),
				label(f.Percent),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}

		if err := writeRangeDetails(writer, shown, cfg); err != nil {
			return err
		}
	}

	// Overall summary across all files, including those above the threshold.
	if _, err := fmt.Fprintf(writer, "\nOverall coverage: %s%% (%d/%d statements across %d files)\n",
		fmtFloat(report.OverallPercent), report.CoveredStatements, report.TotalStatements, report.TotalFiles); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "%d files below threshold %s%%\n",
		len(report.LowCoverage), fmtFloat(cfg.Threshold)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. History backend: %s\n",
		duration, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}

// writeRangeDetails prints the uncovered and low-execution line ranges for
// each low-coverage file, truncated to the configured limits.
func writeRangeDetails(writer io.Writer, files []schema.FileCoverageSummary, cfg *contract.Config) error {
	for _, f := range files {
		if len(f.UncoveredRanges) == 0 && len(f.LowExecRanges) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(writer, "\n%s\n", f.File); err != nil {
			return err
		}
		if len(f.UncoveredRanges) > 0 {
			if _, err := fmt.Fprintf(writer, "  uncovered: %s\n",
				schema.FormatRangeList(f.UncoveredRanges, cfg.UncoveredLimit)); err != nil {
				return err
			}
		}
		if len(f.LowExecRanges) > 0 {
			if _, err := fmt.Fprintf(writer, "  low-exec:  %s\n",
				schema.FormatRangeList(f.LowExecRanges, cfg.LowExecLimit)); err != nil {
				return err
			}
		}
	}
	return nil
}
