// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt reads Go benchmark results files.
//
// The format is specified at:
// https://github.com/golang/proposal/blob/master/design/14313-benchmark-format.md
package benchfmt

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A Run is one benchmark result line.
type Run struct {
	// Name is the benchmark name without the "Benchmark" prefix,
	// sub-benchmark configuration, or GOMAXPROCS suffix.
	Name string

	// Config holds the configuration in effect for this run: keys
	// from configuration lines preceding it, "key:value" parts of
	// the benchmark name, and "gomaxprocs".
	Config map[string]string

	// Values maps each unit (such as "ns/op") to its measurement.
	Values map[string]float64
}

var configRe = regexp.MustCompile(`^(\p{Ll}[^\p{Lu}\s\x85\xa0\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}]*):(?:[ \t]+(.*))?$`)

// Read returns the runs in r in the order they appear. Lines that are
// neither configuration nor well-formed benchmark results are
// ignored.
func Read(r io.Reader) ([]Run, error) {
	var runs []Run
	config := map[string]string{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if m := configRe.FindStringSubmatch(line); m != nil {
			// Runs share their config maps, so replace
			// rather than modify.
			nc := make(map[string]string, len(config)+1)
			for k, v := range config {
				nc[k] = v
			}
			nc[m[1]] = m[2]
			config = nc
			continue
		}
		if run, ok := parseRun(line, config); ok {
			runs = append(runs, run)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

func parseRun(line string, config map[string]string) (Run, bool) {
	f := strings.Fields(line)
	if len(f) < 4 || !strings.HasPrefix(f[0], "Benchmark") {
		return Run{}, false
	}
	name := f[0][len("Benchmark"):]
	if next, _ := utf8.DecodeRuneInString(name); name != "" && !unicode.IsUpper(next) {
		return Run{}, false
	}
	if n, err := strconv.Atoi(f[1]); err != nil || n <= 0 {
		return Run{}, false
	}

	run := Run{
		Config: make(map[string]string, len(config)+1),
		Values: make(map[string]float64),
	}
	for k, v := range config {
		run.Config[k] = v
	}

	procs := "1"
	if parts := strings.Split(name, "/"); len(parts) > 1 {
		name = parts[0]
		for _, part := range parts[1:] {
			if k, v, ok := strings.Cut(part, ":"); ok {
				run.Config[k] = v
			}
		}
	} else if i := strings.LastIndex(name, "-"); i >= 0 {
		if _, err := strconv.Atoi(name[i+1:]); err == nil {
			name, procs = name[:i], name[i+1:]
		}
	}
	run.Name = name
	if _, ok := run.Config["gomaxprocs"]; !ok {
		run.Config["gomaxprocs"] = procs
	}

	for i := 2; i+1 < len(f); i += 2 {
		if v, err := strconv.ParseFloat(f[i], 64); err == nil {
			run.Values[f[i+1]] = v
		}
	}
	return run, true
}
