package schema

import (
	"fmt"
	"sort"
	"strings"
)

// LineSet is a set of source line numbers. Membership is idempotent, so
// overlapping coverage spans never double-count a line.
type LineSet map[int]struct{}

// NewLineSet returns an empty line set.
func NewLineSet() LineSet {
	return make(LineSet)
}

// Add inserts a single line number.
func (s LineSet) Add(line int) {
	s[line] = struct{}{}
}

// AddRange inserts every line in [start, end] inclusive.
// An inverted range (start > end) inserts nothing.
func (s LineSet) AddRange(start, end int) {
	for line := start; line <= end; line++ {
		s[line] = struct{}{}
	}
}

// Contains reports whether the line is in the set.
func (s LineSet) Contains(line int) bool {
	_, ok := s[line]
	return ok
}

// Sorted returns the line numbers in ascending order.
func (s LineSet) Sorted() []int {
	lines := make([]int, 0, len(s))
	for line := range s {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}

// CompressRanges encodes a sorted slice of line numbers as compact range
// tokens: a run of consecutive lines becomes "start-end", a lone line
// becomes "start". Input must be sorted ascending and free of duplicates,
// as produced by LineSet.Sorted.
func CompressRanges(lines []int) []string {
	if len(lines) == 0 {
		return nil
	}

	var ranges []string
	start, end := lines[0], lines[0]
	for _, line := range lines[1:] {
		if line == end+1 {
			end = line
			continue
		}
		ranges = append(ranges, formatRange(start, end))
		start, end = line, line
	}
	ranges = append(ranges, formatRange(start, end))
	return ranges
}

// TruncateRanges limits a range token list to at most limit entries,
// appending an ellipsis marker when tokens were dropped. A limit <= 0
// means no truncation.
func TruncateRanges(ranges []string, limit int) []string {
	if limit <= 0 || len(ranges) <= limit {
		return ranges
	}
	truncated := make([]string, 0, limit+1)
	truncated = append(truncated, ranges[:limit]...)
	return append(truncated, RangeEllipsis)
}

// FormatRangeList renders range tokens as a comma-separated string,
// applying truncation first.
func FormatRangeList(ranges []string, limit int) string {
	return strings.Join(TruncateRanges(ranges, limit), ", ")
}

func formatRange(start, end int) string {
	if start == end {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}
