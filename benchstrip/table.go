// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moves/internal/benchfmt"
	"github.com/aclements/go-moves/move"
)

// A source is the runs read from one input.
type source struct {
	name string
	runs []benchfmt.Run
}

// noConfig labels runs that lack the -by configuration key.
const noConfig = "(none)"

var errNoRuns = errors.New("no runs")

// slotNames returns the distinct benchmark names in sources in order
// of first appearance. A name's index is its slot on the categorical
// axis.
func slotNames(sources []source) []string {
	var names []string
	seen := map[string]bool{}
	for _, src := range sources {
		for _, r := range src.runs {
			if !seen[r.Name] {
				seen[r.Name] = true
				names = append(names, r.Name)
			}
		}
	}
	return names
}

// stripTable returns one row per run in sources that reports metric.
// The orient column holds the run's slot and the other axis column
// holds its metric value. Each row's config is by's value in the run's
// configuration or, if by is "", the name of its source.
func stripTable(sources []source, metric, by string, width float64, orient move.Orientation) (*table.Table, error) {
	slot := map[string]float64{}
	for i, name := range slotNames(sources) {
		slot[name] = float64(i)
	}

	var names, configs []string
	var pos, vals, space []float64
	for _, src := range sources {
		for _, r := range src.runs {
			v, ok := r.Values[metric]
			if !ok {
				continue
			}
			config := src.name
			if by != "" {
				config, ok = r.Config[by]
				if !ok {
					config = noConfig
				}
			}
			names = append(names, r.Name)
			configs = append(configs, config)
			pos = append(pos, slot[r.Name])
			vals = append(vals, v)
			space = append(space, width)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w reporting %s", errNoRuns, metric)
	}

	xs, ys := pos, vals
	if orient == move.Y {
		xs, ys = vals, pos
	}
	return new(table.Builder).
		Add("name", names).
		Add("x", xs).
		Add("y", ys).
		Add("space", space).
		Add("config", configs).
		Done(), nil
}
