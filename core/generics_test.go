package core

import (
	"testing"

	"github.com/covlens/covlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiagnostics = `# example.com/mod
./map.go:12:6: can inline Map[go.shape.int]
./map.go:30:10: inlining call to Map[go.shape.int]
./map_test.go:8:2: inlining call to Map[go.shape.string]
./zip.go:4:6: can inline Zip[go.shape.int,go.shape.string]
no instantiation on this line
`

func TestExtractGenericInstances(t *testing.T) {
	instances := ExtractGenericInstances([]byte(sampleDiagnostics))
	require.Len(t, instances, 4)

	first := instances[0]
	assert.Equal(t, "Map", first.Func)
	assert.Equal(t, "int", first.Shape)
	assert.Equal(t, "./map.go", first.File)
	assert.Equal(t, 12, first.Line)
	assert.Equal(t, 6, first.Col)
	assert.Equal(t, "./map.go:12:6: can inline Map[go.shape.int]", first.Raw)

	multi := instances[3]
	assert.Equal(t, "Zip", multi.Func)
	assert.Equal(t, "int,go.shape.string", multi.Shape)
	assert.True(t, multi.MultiParam())
}

func TestExtractGenericInstancesEmptyOutput(t *testing.T) {
	assert.Empty(t, ExtractGenericInstances([]byte("nothing generic here\n")))
}

func TestBuildGenericsReport(t *testing.T) {
	instances := ExtractGenericInstances([]byte(sampleDiagnostics))
	report := BuildGenericsReport(instances)

	assert.Equal(t, 4, report.Total)

	// Map appears three times, Zip once.
	require.NotEmpty(t, report.ByFunc)
	assert.Equal(t, schema.KeyCount{Key: "Map", Count: 3}, report.ByFunc[0])

	// One instantiation came from a test file.
	assert.Equal(t, 1, report.TestTotal)
	assert.Equal(t, 3, report.SourceTotal)

	// Zip is the only multi-parameter instantiation.
	require.Len(t, report.MultiParam, 1)
	assert.Equal(t, "Zip", report.MultiParam[0].Key)

	// Nothing crosses the high-instance threshold in this sample.
	assert.Empty(t, report.HighInstance)
}

func TestBuildGenericsReportHighInstance(t *testing.T) {
	var instances []schema.GenericInstance
	for range schema.HighInstanceThreshold + 1 {
		instances = append(instances, schema.GenericInstance{Func: "Hot", Shape: "int"})
	}
	instances = append(instances, schema.GenericInstance{Func: "Cold", Shape: "int"})

	report := BuildGenericsReport(instances)

	require.Len(t, report.HighInstance, 1)
	assert.Equal(t, "Hot", report.HighInstance[0].Key)
	assert.Equal(t, schema.HighInstanceThreshold+1, report.HighInstance[0].Count)
}

func TestRankCounterOrdering(t *testing.T) {
	ranked := rankCounter(map[string]int{"b": 2, "a": 2, "c": 5})

	require.Len(t, ranked, 3)
	assert.Equal(t, "c", ranked[0].Key)
	// Ties break by key for deterministic output.
	assert.Equal(t, "a", ranked[1].Key)
	assert.Equal(t, "b", ranked[2].Key)
}
