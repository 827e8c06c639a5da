// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aclements/go-moves/internal/benchfmt"
	"github.com/aclements/go-moves/move"
	"github.com/google/go-cmp/cmp"
)

const oldRuns = `goos: linux
BenchmarkSort	100	20 ns/op
BenchmarkSort	100	22 ns/op
BenchmarkMap	100	5 ns/op	16 B/op
`

const newRuns = `goos: linux
BenchmarkMap	100	4 ns/op
BenchmarkSort	100	18 ns/op
BenchmarkHash	100	9 B/op
`

func mustRead(t *testing.T, name, data string) source {
	t.Helper()
	runs, err := benchfmt.Read(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return source{name, runs}
}

func TestStripTable(t *testing.T) {
	sources := []source{mustRead(t, "old", oldRuns), mustRead(t, "new", newRuns)}
	if diff := cmp.Diff([]string{"Sort", "Map", "Hash"}, slotNames(sources)); diff != "" {
		t.Errorf("slots (-want +got):\n%s", diff)
	}

	tab, err := stripTable(sources, "ns/op", "", 0.8, move.X)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]interface{}{
		"name":   []string{"Sort", "Sort", "Map", "Map", "Sort"},
		"x":      []float64{0, 0, 1, 1, 0},
		"y":      []float64{20, 22, 5, 4, 18},
		"space":  []float64{0.8, 0.8, 0.8, 0.8, 0.8},
		"config": []string{"old", "old", "old", "new", "new"},
	}
	if diff := cmp.Diff([]string{"name", "x", "y", "space", "config"}, tab.Columns()); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
	for col, w := range want {
		if diff := cmp.Diff(w, tab.Column(col)); diff != "" {
			t.Errorf("column %s (-want +got):\n%s", col, diff)
		}
	}

	// Y orientation swaps the axes. Only Map reports B/op in
	// old, so Hash keeps its slot from first appearance.
	tab, err = stripTable(sources, "B/op", "goos", 1, move.Y)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{16, 9}, tab.Column("x")); diff != "" {
		t.Errorf("x (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 2}, tab.Column("y")); diff != "" {
		t.Errorf("y (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"linux", "linux"}, tab.Column("config")); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}

	tab, err = stripTable(sources, "ns/op", "commit", 1, move.X)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range tab.Column("config").([]string) {
		if c != noConfig {
			t.Errorf("missing config key: want %q; got %q", noConfig, c)
		}
	}

	if _, err := stripTable(sources, "allocs/op", "", 1, move.X); !errors.Is(err, errNoRuns) {
		t.Errorf("want errNoRuns; got %v", err)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), err
}

func writeInputs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	oldPath, newPath := filepath.Join(dir, "old.txt"), filepath.Join(dir, "new.txt")
	for path, data := range map[string]string{oldPath: oldRuns, newPath: newRuns} {
		if err := os.WriteFile(path, []byte(data), 0666); err != nil {
			t.Fatal(err)
		}
	}
	return oldPath, newPath
}

func TestRunTable(t *testing.T) {
	oldPath, newPath := writeInputs(t)
	out, err := execute(t, "", "--table", "--move", "dodge gap=0.5", oldPath, newPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"name", "space", "config", "old.txt", "new.txt", "Sort"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Stdin input.
	out, err = execute(t, oldRuns, "--table")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "stdin") {
		t.Errorf("output missing stdin source:\n%s", out)
	}
}

func TestRunPipeline(t *testing.T) {
	oldPath, newPath := writeInputs(t)
	o := &options{metric: "ns/op", width: 0.8, moves: []string{"dodge"}}
	pipeline, grouping, orient, err := o.pipeline()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"x", "config"}, grouping.Order()); diff != "" {
		t.Errorf("grouping (-want +got):\n%s", diff)
	}

	var sources []source
	for _, path := range []string{oldPath, newPath} {
		src, err := readSource(path, nil)
		if err != nil {
			t.Fatal(err)
		}
		sources = append(sources, src)
	}
	tab, err := stripTable(sources, o.metric, "", o.width, orient)
	if err != nil {
		t.Fatal(err)
	}
	tab, err = pipeline.Apply(tab, grouping, orient)
	if err != nil {
		t.Fatal(err)
	}

	// Every slot has a run from each file, so each gets half the
	// slot, with old.txt on the left.
	want := []float64{-0.2, -0.2, 0.8, 1.2, 0.2}
	got := tab.Column("x").([]float64)
	for i := range want {
		if math.Abs(want[i]-got[i]) > 1e-9 {
			t.Errorf("x: want %v; got %v", want, got)
			break
		}
	}
	for _, s := range tab.Column("space").([]float64) {
		if math.Abs(s-0.4) > 1e-9 {
			t.Errorf("space: want 0.4; got %v", s)
		}
	}
}

func TestRunSVG(t *testing.T) {
	oldPath, newPath := writeInputs(t)
	path := filepath.Join(t.TempDir(), "out.svg")
	if _, err := execute(t, "", "-o", path, "--move", "jitter width=0.5 seed=1", oldPath, newPath); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Errorf("output is not SVG:\n%.200s", data)
	}
}

func TestRunErrors(t *testing.T) {
	oldPath, _ := writeInputs(t)
	for _, args := range [][]string{
		{"--move", "shove", oldPath},
		{"--move", "dodge gap=2", oldPath},
		{"--config", filepath.Join(t.TempDir(), "missing.toml"), oldPath},
		{"--metric", "allocs/op", oldPath},
		{filepath.Join(t.TempDir(), "missing.txt")},
	} {
		if _, err := execute(t, "", args...); err == nil {
			t.Errorf("%v: want error", args)
		}
	}
}
