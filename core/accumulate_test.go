package core

import (
	"testing"

	"github.com/covlens/covlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulatorBasics(t *testing.T) {
	acc := NewAccumulator()
	acc.AddAll([]schema.CoverageRecord{
		{File: "f.go", StartLine: 1, EndLine: 3, Statements: 2, Count: 0},
		{File: "f.go", StartLine: 5, EndLine: 5, Statements: 1, Count: 2},
	})

	require.Equal(t, 1, acc.Len())
	stats := acc.Stats("f.go")
	require.NotNil(t, stats)

	assert.Equal(t, 3, stats.TotalStatements)
	assert.Equal(t, 1, stats.CoveredStatements)
	assert.InDelta(t, 33.33, CoveragePercent(stats.CoveredStatements, stats.TotalStatements), 0.01)
	assert.Equal(t, []int{1, 2, 3}, stats.UncoveredLines.Sorted())
	assert.Empty(t, stats.LowExecLines.Sorted())
}

func TestAccumulatorLowExecution(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(schema.CoverageRecord{File: "f.go", StartLine: 10, EndLine: 11, Statements: 2, Count: 1})

	stats := acc.Stats("f.go")
	assert.Equal(t, 2, stats.CoveredStatements)
	assert.Equal(t, []int{10, 11}, stats.LowExecLines.Sorted())
	assert.Empty(t, stats.UncoveredLines.Sorted())
}

func TestAccumulatorOverlappingSpans(t *testing.T) {
	acc := NewAccumulator()
	// Overlapping uncovered spans must not double-count lines.
	acc.AddAll([]schema.CoverageRecord{
		{File: "f.go", StartLine: 5, EndLine: 7, Statements: 1, Count: 0},
		{File: "f.go", StartLine: 6, EndLine: 8, Statements: 1, Count: 0},
	})

	stats := acc.Stats("f.go")
	assert.Equal(t, []int{5, 6, 7, 8}, stats.UncoveredLines.Sorted())
	assert.Equal(t, 2, stats.TotalStatements)
	assert.Zero(t, stats.CoveredStatements)
}

func TestAccumulatorInvertedSpan(t *testing.T) {
	acc := NewAccumulator()
	// A record whose span is inverted still counts statements but marks
	// no lines.
	acc.Add(schema.CoverageRecord{File: "f.go", StartLine: 9, EndLine: 4, Statements: 3, Count: 0})

	stats := acc.Stats("f.go")
	assert.Equal(t, 3, stats.TotalStatements)
	assert.Empty(t, stats.UncoveredLines.Sorted())
}

func TestAccumulatorEncounterOrder(t *testing.T) {
	acc := NewAccumulator()
	acc.AddAll([]schema.CoverageRecord{
		{File: "b.go", Statements: 1, Count: 1},
		{File: "a.go", Statements: 1, Count: 1},
		{File: "b.go", Statements: 1, Count: 1},
		{File: "c.go", Statements: 1, Count: 1},
	})

	assert.Equal(t, []string{"b.go", "a.go", "c.go"}, acc.Files())
}
