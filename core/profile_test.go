package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/covlens/covlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProfile = `mode: atomic
example.com/mod/f.go:1.2,3.4 2 0
example.com/mod/f.go:5.1,5.9 1 2

this line is garbage
example.com/mod/g.go:10.1,12.8 4 1 trailing junk
`

func TestParseProfile(t *testing.T) {
	result, err := ParseProfile(strings.NewReader(sampleProfile))
	require.NoError(t, err)

	require.Len(t, result.Records, 3)
	assert.Equal(t, 1, result.Skipped)

	first := result.Records[0]
	assert.Equal(t, schema.CoverageRecord{
		File:       "example.com/mod/f.go",
		StartLine:  1,
		StartCol:   2,
		EndLine:    3,
		EndCol:     4,
		Statements: 2,
		Count:      0,
	}, first)

	// Raw lines keep the original text, including trailing junk after
	// the matched prefix.
	require.Len(t, result.RawLines, 3)
	assert.Equal(t, "example.com/mod/g.go:10.1,12.8 4 1 trailing junk", result.RawLines[2])
}

func TestParseProfileIgnoresHeaderAndBlanks(t *testing.T) {
	input := "mode: set\n\n   \nmode: atomic\n"
	result, err := ParseProfile(strings.NewReader(input))
	require.NoError(t, err)

	assert.Empty(t, result.Records)
	assert.Zero(t, result.Skipped)
}

func TestParseProfileFile(t *testing.T) {
	t.Run("missing file is an error", func(t *testing.T) {
		_, err := ParseProfileFile("/definitely/not/a/real/cover.out")
		assert.Error(t, err)
	})

	t.Run("reads a file from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cover.out")
		require.NoError(t, os.WriteFile(path, []byte(sampleProfile), 0o644))

		result, err := ParseProfileFile(path)
		require.NoError(t, err)
		assert.Len(t, result.Records, 3)
	})
}
