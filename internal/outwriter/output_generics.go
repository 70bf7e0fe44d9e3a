package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/covlens/covlens/internal/contract"
	"github.com/covlens/covlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintGenericsReport outputs the generic instantiation report, dispatching
// based on the output format configured.
func PrintGenericsReport(report *schema.GenericsReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeGenericsCSV(report, cfg)
	case schema.ParquetOut:
		return errors.New("parquet output is not supported for the generics report")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGenericsText(report, cfg, duration, w)
		}, "Wrote report")
	}
}

// writeGenericsCSV flattens every tally into category/key/count rows.
func writeGenericsCSV(report *schema.GenericsReport, cfg *contract.Config) error {
	header := []string{"category", "key", "count"}
	sections := []struct {
		name    string
		entries []schema.KeyCount
	}{
		{"func", report.ByFunc},
		{"shape", report.ByShape},
		{"file", report.ByFile},
		{"func_shape", report.ByFuncShape},
		{"multi_param", report.MultiParam},
		{"high_instance", report.HighInstance},
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, section := range sections {
				for _, kc := range section.entries {
					if err := csvWriter.Write([]string{section.name, kc.Key, strconv.Itoa(kc.Count)}); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeGenericsText renders the human-readable instantiation report.
func writeGenericsText(report *schema.GenericsReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	pct := func(count int) string {
		if report.Total == 0 {
			return fmtFloat(0)
		}
		return fmtFloat(float64(count) / float64(report.Total) * 100.0)
	}

	if _, err := fmt.Fprintf(writer, "📊 Generic instantiations: %d total, %d unique functions, %d unique shapes\n",
		report.Total, len(report.ByFunc), len(report.ByShape)); err != nil {
		return err
	}

	sections := []struct {
		title   string
		entries []schema.KeyCount
	}{
		{"Top instantiated functions", report.ByFunc},
		{"Top shape types", report.ByShape},
		{"Top files", report.ByFile},
		{"Top function/shape combinations", report.ByFuncShape},
	}
	for _, section := range sections {
		if len(section.entries) == 0 {
			continue
		}
		if err := writeTallyTable(writer, section.title, section.entries, cfg.TopLimit, pct); err != nil {
			return err
		}
	}

	if report.TestTotal > 0 || report.SourceTotal > 0 {
		if _, err := fmt.Fprintf(writer, "\n📁 Test files: %d (%s%%), source files: %d (%s%%)\n",
			report.TestTotal, pct(report.TestTotal),
			report.SourceTotal, pct(report.SourceTotal)); err != nil {
			return err
		}
	}

	if len(report.MultiParam) > 0 {
		if _, err := fmt.Fprintf(writer, "\n⚠️  Multi-parameter generics (combinatorial explosion risk):\n"); err != nil {
			return err
		}
		for _, kc := range limitTally(report.MultiParam, cfg.TopLimit) {
			if _, err := fmt.Fprintf(writer, "  %4dx  %s\n", kc.Count, kc.Key); err != nil {
				return err
			}
		}
	}

	if len(report.HighInstance) > 0 {
		if _, err := fmt.Fprintf(writer, "\n🚨 Functions instantiated more than %d times (likely compiler memory hogs):\n",
			schema.HighInstanceThreshold); err != nil {
			return err
		}
		for _, kc := range report.HighInstance {
			if _, err := fmt.Fprintf(writer, "  %4dx  %s\n", kc.Count, kc.Key); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(writer, "\nAnalysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeTallyTable renders one ranked tally as a table, truncated to limit.
func writeTallyTable(writer io.Writer, title string, entries []schema.KeyCount, limit int, pct func(int) string) error {
	if _, err := fmt.Fprintf(writer, "\n🔝 %s:\n", title); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Key", "Count", "Share"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, kc := range limitTally(entries, limit) {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncateKey(kc.Key, 70),
			strconv.Itoa(kc.Count),
			pct(kc.Count) + "%",
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// limitTally returns at most limit entries. A limit <= 0 means no cap.
func limitTally(entries []schema.KeyCount, limit int) []schema.KeyCount {
	if limit <= 0 || len(entries) <= limit {
		return entries
	}
	return entries[:limit]
}

// truncateKey shortens long shape keys so tables stay readable.
func truncateKey(key string, maxLen int) string {
	if len(key) <= maxLen {
		return key
	}
	return strings.TrimSpace(key[:maxLen-3]) + "..."
}
