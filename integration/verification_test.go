//go:build integration

// Package integration contains integration tests for covlens.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Or use: make test-integration
package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildCovlens builds the covlens binary into dir and returns its path.
func buildCovlens(t *testing.T, dir string) string {
	t.Helper()
	covlensPath := filepath.Join(dir, "covlens")
	buildCmd := exec.Command("go", "build", "-o", covlensPath, ".")
	buildCmd.Dir = ".." // Project root
	require.NoError(t, buildCmd.Run())
	return covlensPath
}

// TestReportVerification runs covlens report on a known profile and verifies
// the computed percentages against hand-counted values.
func TestReportVerification(t *testing.T) {
	dir := t.TempDir()
	covlensPath := buildCovlens(t, dir)

	profile := filepath.Join(dir, "cover.out")
	content := `mode: set
pkg/a.go:1.2,3.4 2 0
pkg/a.go:5.1,5.9 2 3
pkg/b.go:10.1,12.8 6 1
`
	require.NoError(t, os.WriteFile(profile, []byte(content), 0o644))

	cmd := exec.Command(covlensPath, "report", profile, "--history-backend", "none", "--color", "no")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	require.NoError(t, cmd.Run())

	out := stdout.String()
	// pkg/a.go: 2 of 4 statements covered, pkg/b.go: 6 of 6
	assert.Contains(t, out, "pkg/a.go")
	assert.Contains(t, out, "Overall coverage: 80.00% (8/10 statements across 2 files)")
}

// TestCheckExitCode verifies the check command fails the build when coverage
// is below the threshold and passes otherwise.
func TestCheckExitCode(t *testing.T) {
	dir := t.TempDir()
	covlensPath := buildCovlens(t, dir)

	profile := filepath.Join(dir, "cover.out")
	content := "mode: set\npkg/a.go:1.2,3.4 1 0\npkg/a.go:5.1,5.9 1 2\n"
	require.NoError(t, os.WriteFile(profile, []byte(content), 0o644))

	// 50% coverage fails a 95% gate
	cmd := exec.Command(covlensPath, "check", profile, "--history-backend", "none")
	output, err := cmd.CombinedOutput()
	require.Error(t, err, "check should exit non-zero below threshold")
	assert.Contains(t, string(output), "❌")

	// The same profile passes a 40% gate
	cmd = exec.Command(covlensPath, "check", profile, "--threshold", "40", "--history-backend", "none")
	output, err = cmd.CombinedOutput()
	require.NoError(t, err, "check should pass: %s", string(output))
	assert.Contains(t, string(output), "✅")
}

// TestGenericsVerification runs covlens generics against saved diagnostics.
func TestGenericsVerification(t *testing.T) {
	dir := t.TempDir()
	covlensPath := buildCovlens(t, dir)

	diag := filepath.Join(dir, "diag.txt")
	content := strings.Join([]string{
		"pkg/map.go:10:6: Map[go.shape.int] escapes to heap",
		"pkg/map.go:12:6: Map[go.shape.string] escapes to heap",
		"pkg/zip_test.go:20:2: Zip[go.shape.int,go.shape.string] does not escape",
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(diag, []byte(content), 0o644))

	cmd := exec.Command(covlensPath, "generics", "--input", diag, "--history-backend", "none")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	require.NoError(t, cmd.Run())

	out := stdout.String()
	assert.Contains(t, out, "Generic instantiations: 3 total")
	assert.Contains(t, out, "Map")
	assert.Contains(t, out, "Multi-parameter generics")
}
