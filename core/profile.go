package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/covlens/covlens/schema"
)

// profileLineRe matches one coverage profile record:
//
//	path/to/file.go:12.34,18.2 5 1
//
// The pattern is anchored at the start only, so trailing garbage after the
// count does not invalidate a record. Lines that do not match are skipped.
var profileLineRe = regexp.MustCompile(`^([^:]+):(\d+)\.(\d+),(\d+)\.(\d+)\s+(\d+)\s+(\d+)`)

// ParseResult holds the outcome of parsing one coverage profile.
type ParseResult struct {
	Records  []schema.CoverageRecord
	RawLines []string // Matched input lines, unmodified, in input order
	Skipped  int      // Non-blank, non-header lines that did not match
}

// ParseProfileFile opens and parses a coverage profile from disk.
// A missing or unreadable file is a hard error.
func ParseProfileFile(path string) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open coverage profile: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseProfile(f)
}

// ParseProfile parses a coverage profile from a reader. Blank lines and the
// "mode:" header are ignored. Any other line that does not match the record
// grammar is counted as skipped but does not fail the parse.
func ParseProfile(r io.Reader) (*ParseResult, error) {
	result := &ParseResult{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "mode:") {
			continue
		}

		m := profileLineRe.FindStringSubmatch(line)
		if m == nil {
			result.Skipped++
			continue
		}

		result.Records = append(result.Records, schema.CoverageRecord{
			File:       m[1],
			StartLine:  mustAtoi(m[2]),
			StartCol:   mustAtoi(m[3]),
			EndLine:    mustAtoi(m[4]),
			EndCol:     mustAtoi(m[5]),
			Statements: mustAtoi(m[6]),
			Count:      mustAtoi(m[7]),
		})
		result.RawLines = append(result.RawLines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read coverage profile: %w", err)
	}

	return result, nil
}

// mustAtoi converts a digits-only regex capture to int.
// The pattern guarantees the capture is numeric.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
