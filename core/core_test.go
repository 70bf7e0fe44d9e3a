package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/covlens/covlens/internal/contract"
	"github.com/covlens/covlens/internal/iocache"
	"github.com/covlens/covlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const coreTestProfile = `mode: set
pkg/a.go:1.2,3.4 2 0
pkg/a.go:5.1,5.9 2 3
pkg/b.go:10.1,12.8 6 1
`

func coreTestConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		Threshold:      95,
		UncoveredLimit: schema.DefaultUncoveredLimit,
		LowExecLimit:   schema.DefaultLowExecLimit,
		TopLimit:       contract.DefaultTopLimit,
		Precision:      2,
		Output:         schema.TextOut,
		HistoryBackend: schema.NoneBackend,
	}
}

func writeTestProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cover.out")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunCoverageAnalysis(t *testing.T) {
	cfg := coreTestConfig(t)
	cfg.ProfilePath = writeTestProfile(t, coreTestProfile)

	report, err := runCoverageAnalysis(cfg, nil, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalFiles)
	assert.Equal(t, 10, report.TotalStatements)
	assert.Equal(t, 8, report.CoveredStatements)
	assert.InDelta(t, 80.0, report.OverallPercent, 0.001)
	// Only pkg/a.go (50%) sits below the 95% threshold
	require.Len(t, report.LowCoverage, 1)
	assert.Equal(t, "pkg/a.go", report.LowCoverage[0].File)
}

func TestRunCoverageAnalysisMissingProfile(t *testing.T) {
	cfg := coreTestConfig(t)
	cfg.ProfilePath = filepath.Join(t.TempDir(), "nope.out")

	_, err := runCoverageAnalysis(cfg, nil, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open coverage profile")
}

func TestRunCoverageAnalysisSaveRaw(t *testing.T) {
	cfg := coreTestConfig(t)
	cfg.ProfilePath = writeTestProfile(t, coreTestProfile)
	cfg.SaveRaw = filepath.Join(t.TempDir(), "raw.txt")

	_, err := runCoverageAnalysis(cfg, nil, time.Now())
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.SaveRaw)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pkg/a.go:1.2,3.4 2 0")
	assert.NotContains(t, string(data), "mode: set")
}

func TestRecordRunHistory(t *testing.T) {
	store := &iocache.MockHistoryStore{}
	mgr := &iocache.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(store)

	start := time.Now()
	report := &schema.CoverageReport{
		Files: []schema.FileCoverageSummary{
			{File: "pkg/a.go", Percent: 50},
			{File: "pkg/b.go", Percent: 100},
		},
		TotalFiles: 2,
	}

	store.On("BeginRun", start, "cover.out").Return(int64(3), nil)
	store.On("RecordFileCoverage", int64(3), mock.Anything, report.Files[0]).Return(nil)
	store.On("RecordFileCoverage", int64(3), mock.Anything, report.Files[1]).Return(nil)
	store.On("FinishRun", int64(3), mock.Anything, report).Return(nil)

	recordRunHistory(mgr, start, "cover.out", report)

	store.AssertExpectations(t)
	mgr.AssertExpectations(t)
}

func TestRecordRunHistoryNilStore(t *testing.T) {
	mgr := &iocache.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(nil)

	// Must not panic and must not touch any store method
	recordRunHistory(mgr, time.Now(), "cover.out", &schema.CoverageReport{})
	recordRunHistory(nil, time.Now(), "cover.out", &schema.CoverageReport{})

	mgr.AssertExpectations(t)
}

func TestExecuteCoverageCheckBelowThreshold(t *testing.T) {
	cfg := coreTestConfig(t)
	cfg.ProfilePath = writeTestProfile(t, coreTestProfile)
	cfg.OutputFile = filepath.Join(t.TempDir(), "check.txt")

	err := ExecuteCoverageCheck(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below threshold")
}

func TestExecuteCoverageCheckPasses(t *testing.T) {
	cfg := coreTestConfig(t)
	cfg.Threshold = 50
	cfg.ProfilePath = writeTestProfile(t, coreTestProfile)
	cfg.OutputFile = filepath.Join(t.TempDir(), "check.txt")

	require.NoError(t, ExecuteCoverageCheck(context.Background(), cfg, nil))
}

func TestExecuteCoverageReport(t *testing.T) {
	cfg := coreTestConfig(t)
	cfg.Output = schema.JSONOut
	cfg.ProfilePath = writeTestProfile(t, coreTestProfile)
	cfg.OutputFile = filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, ExecuteCoverageReport(context.Background(), cfg, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"overall_percent"`)
}

func TestCollectDiagnosticsFromInputFile(t *testing.T) {
	cfg := coreTestConfig(t)
	cfg.GenericsInput = filepath.Join(t.TempDir(), "diag.txt")
	require.NoError(t, os.WriteFile(cfg.GenericsInput, []byte("saved output"), 0o644))

	runner := &contract.MockGoRunner{}
	output, err := collectDiagnostics(context.Background(), cfg, runner)
	require.NoError(t, err)
	assert.Equal(t, "saved output", string(output))
	runner.AssertNotCalled(t, "BuildDiagnostics")
	runner.AssertNotCalled(t, "TestDiagnostics")
}

func TestCollectDiagnosticsDispatch(t *testing.T) {
	ctx := context.Background()

	cfg := coreTestConfig(t)
	cfg.GenericsDir = "./pkg"

	runner := &contract.MockGoRunner{}
	runner.On("BuildDiagnostics", ctx, "./pkg").Return([]byte("build"), nil)
	output, err := collectDiagnostics(ctx, cfg, runner)
	require.NoError(t, err)
	assert.Equal(t, "build", string(output))

	cfg.GenericsTest = true
	runner.On("TestDiagnostics", ctx, "./pkg").Return([]byte("test"), nil)
	output, err = collectDiagnostics(ctx, cfg, runner)
	require.NoError(t, err)
	assert.Equal(t, "test", string(output))

	runner.AssertExpectations(t)
}

func TestExecuteGenericsReport(t *testing.T) {
	ctx := context.Background()
	cfg := coreTestConfig(t)
	cfg.GenericsDir = "."
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "generics.json")
	cfg.GenericsSave = filepath.Join(t.TempDir(), "raw.txt")

	diag := "pkg/map.go:10:6: Map[go.shape.int] escapes to heap\n"
	runner := &contract.MockGoRunner{}
	runner.On("BuildDiagnostics", ctx, ".").Return([]byte(diag), nil)

	require.NoError(t, ExecuteGenericsReport(ctx, cfg, runner))

	saved, err := os.ReadFile(cfg.GenericsSave)
	require.NoError(t, err)
	assert.Contains(t, string(saved), "Map[go.shape.int]")

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"by_func"`)
	runner.AssertExpectations(t)
}

func TestExecuteGenericsReportNoInstances(t *testing.T) {
	ctx := context.Background()
	cfg := coreTestConfig(t)
	cfg.GenericsDir = "."

	runner := &contract.MockGoRunner{}
	runner.On("BuildDiagnostics", ctx, ".").Return([]byte("nothing generic here\n"), nil)

	err := ExecuteGenericsReport(ctx, cfg, runner)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no generic instantiations found")
}
