package core

import (
	"regexp"
	"sort"
	"strings"

	"github.com/covlens/covlens/schema"
)

// genericInstanceRe matches one generic instantiation in compiler output,
// e.g. "pkg.Map[go.shape.int]" optionally followed by a :line:col position.
// Multiple instantiations can appear on a single diagnostic line.
var genericInstanceRe = regexp.MustCompile(`([a-zA-Z0-9_]+(?:\.[a-zA-Z0-9_]+)*)\[go\.shape\.([^\]]+)\](?::(\d+):(\d+))?`)

// diagnosticPosRe extracts the file:line:col prefix of a diagnostic line.
var diagnosticPosRe = regexp.MustCompile(`([^:]+):(\d+):(\d+)`)

// ExtractGenericInstances scans -gcflags=-m compiler output for generic
// instantiations. The source position is taken from the diagnostic line
// prefix when present; lines without any instantiation are ignored.
func ExtractGenericInstances(output []byte) []schema.GenericInstance {
	var instances []schema.GenericInstance

	for line := range strings.SplitSeq(string(output), "\n") {
		matches := genericInstanceRe.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}

		var file string
		var posLine, posCol int
		if pos := diagnosticPosRe.FindStringSubmatch(line); pos != nil {
			file = pos[1]
			posLine = mustAtoi(pos[2])
			posCol = mustAtoi(pos[3])
		}

		for _, m := range matches {
			inst := schema.GenericInstance{
				Func:  m[1],
				Shape: m[2],
				File:  file,
				Line:  posLine,
				Col:   posCol,
				Raw:   strings.TrimSpace(line),
			}
			// Position attached to the instantiation itself wins over
			// the line prefix.
			if m[3] != "" {
				inst.Line = mustAtoi(m[3])
				inst.Col = mustAtoi(m[4])
			}
			instances = append(instances, inst)
		}
	}

	return instances
}

// BuildGenericsReport aggregates extracted instantiations into ranked
// tallies. High-instance entries are functions instantiated more than
// schema.HighInstanceThreshold times, the usual suspects when compiling
// a generics-heavy package eats memory.
func BuildGenericsReport(instances []schema.GenericInstance) *schema.GenericsReport {
	byFunc := make(map[string]int)
	byShape := make(map[string]int)
	byFile := make(map[string]int)
	byFuncShape := make(map[string]int)
	multiParam := make(map[string]int)

	report := &schema.GenericsReport{
		Total:     len(instances),
		Instances: instances,
	}

	for _, inst := range instances {
		byFunc[inst.Func]++
		byShape[inst.Shape]++
		byFuncShape[inst.Func+"["+inst.Shape+"]"]++
		if inst.File != "" {
			byFile[inst.File]++
			if strings.HasSuffix(inst.File, "_test.go") {
				report.TestTotal++
			} else {
				report.SourceTotal++
			}
		}
		if inst.MultiParam() {
			multiParam[inst.Func]++
		}
	}

	report.ByFunc = rankCounter(byFunc)
	report.ByShape = rankCounter(byShape)
	report.ByFile = rankCounter(byFile)
	report.ByFuncShape = rankCounter(byFuncShape)
	report.MultiParam = rankCounter(multiParam)

	for _, kc := range report.ByFunc {
		if kc.Count > schema.HighInstanceThreshold {
			report.HighInstance = append(report.HighInstance, kc)
		}
	}

	return report
}

// rankCounter converts a counter map to a slice sorted by count descending,
// with ties broken by key for deterministic output.
func rankCounter(counter map[string]int) []schema.KeyCount {
	ranked := make([]schema.KeyCount, 0, len(counter))
	for key, count := range counter {
		ranked = append(ranked, schema.KeyCount{Key: key, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Key < ranked[j].Key
	})
	return ranked
}
