package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/covlens/covlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGenericsReport() *schema.GenericsReport {
	return &schema.GenericsReport{
		Total: 10,
		ByFunc: []schema.KeyCount{
			{Key: "pkg.Map", Count: 6},
			{Key: "pkg.Filter", Count: 4},
		},
		ByShape: []schema.KeyCount{
			{Key: "int", Count: 7},
			{Key: "string", Count: 3},
		},
		ByFile: []schema.KeyCount{
			{Key: "pkg/map.go", Count: 10},
		},
		ByFuncShape: []schema.KeyCount{
			{Key: "pkg.Map[int]", Count: 5},
		},
		MultiParam: []schema.KeyCount{
			{Key: "pkg.Zip", Count: 2},
		},
		TestTotal:   3,
		SourceTotal: 7,
	}
}

func TestWriteGenericsText(t *testing.T) {
	cfg := reportTestConfig()
	report := sampleGenericsReport()

	var buf bytes.Buffer
	require.NoError(t, writeGenericsText(report, cfg, time.Millisecond, &buf))

	out := buf.String()
	assert.Contains(t, out, "📊 Generic instantiations: 10 total, 2 unique functions, 2 unique shapes")
	assert.Contains(t, out, "Top instantiated functions")
	assert.Contains(t, out, "pkg.Map")
	assert.Contains(t, out, "60.00%") // 6 of 10
	assert.Contains(t, out, "Top shape types")
	assert.Contains(t, out, "Test files: 3 (30.00%), source files: 7 (70.00%)")
	assert.Contains(t, out, "Multi-parameter generics")
	assert.Contains(t, out, "pkg.Zip")
	assert.NotContains(t, out, "compiler memory hogs") // no high-instance entries
}

func TestWriteGenericsTextHighInstance(t *testing.T) {
	cfg := reportTestConfig()
	report := sampleGenericsReport()
	report.HighInstance = []schema.KeyCount{{Key: "pkg.Hot", Count: 51}}

	var buf bytes.Buffer
	require.NoError(t, writeGenericsText(report, cfg, time.Millisecond, &buf))

	out := buf.String()
	assert.Contains(t, out, "🚨 Functions instantiated more than 50 times")
	assert.Contains(t, out, "pkg.Hot")
}

func TestWriteGenericsTextTopLimit(t *testing.T) {
	cfg := reportTestConfig()
	cfg.TopLimit = 1
	report := sampleGenericsReport()

	var buf bytes.Buffer
	require.NoError(t, writeGenericsText(report, cfg, time.Millisecond, &buf))

	out := buf.String()
	assert.Contains(t, out, "pkg.Map")
	assert.NotContains(t, out, "pkg.Filter")
}

func TestPrintGenericsReportJSON(t *testing.T) {
	cfg := reportTestConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "generics.json")

	require.NoError(t, PrintGenericsReport(sampleGenericsReport(), cfg, time.Millisecond))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var decoded schema.GenericsReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 10, decoded.Total)
	assert.Len(t, decoded.ByFunc, 2)
}

func TestPrintGenericsReportCSV(t *testing.T) {
	cfg := reportTestConfig()
	cfg.Output = schema.CSVOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "generics.csv")

	require.NoError(t, PrintGenericsReport(sampleGenericsReport(), cfg, time.Millisecond))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "category,key,count", lines[0])
	assert.Contains(t, lines, "func,pkg.Map,6")
	assert.Contains(t, lines, "shape,int,7")
	assert.Contains(t, lines, "multi_param,pkg.Zip,2")
}

func TestPrintGenericsReportParquetUnsupported(t *testing.T) {
	cfg := reportTestConfig()
	cfg.Output = schema.ParquetOut

	err := PrintGenericsReport(sampleGenericsReport(), cfg, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestLimitTally(t *testing.T) {
	entries := []schema.KeyCount{{Key: "a", Count: 3}, {Key: "b", Count: 2}, {Key: "c", Count: 1}}

	assert.Len(t, limitTally(entries, 2), 2)
	assert.Len(t, limitTally(entries, 0), 3)
	assert.Len(t, limitTally(entries, 10), 3)
}

func TestTruncateKey(t *testing.T) {
	assert.Equal(t, "short", truncateKey("short", 10))

	long := strings.Repeat("x", 80)
	got := truncateKey(long, 70)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), 70)
}
