// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moves/move"
)

func plot(t *table.Table, orient move.Orientation, metric string) *gg.Plot {
	slotAxis, valueAxis := "x", "y"
	if orient == move.Y {
		slotAxis, valueAxis = "y", "x"
	}

	// Runs in dropped groups have no position.
	plot := gg.NewPlot(removeNaNs(removeNaNs(t, "x"), "y"))

	// Always show a value of 0.
	plot.SetScale(valueAxis, gg.NewLinearScaler().Include(0))

	plot.Add(gg.AxisLabel(slotAxis, "benchmark"), gg.AxisLabel(valueAxis, metric))
	plot.Add(gg.LayerPoints{
		X:     "x",
		Y:     "y",
		Color: "config",
	})

	// Interactive tooltip with the run's benchmark and config.
	plot.Stat(tooltip{valueAxis})
	plot.Add(gg.LayerTooltips{X: "x", Y: "y", Label: "tooltip"})

	return plot
}

func titleFor(paths []string) gg.Plotter {
	return gg.Title(strings.Join(paths, " "))
}

func removeNaNs(g table.Grouping, col string) table.Grouping {
	return table.Filter(g, func(v float64) bool {
		return !math.IsNaN(v)
	}, col)
}

type tooltip struct {
	Value string
}

func (t tooltip) F(g table.Grouping) table.Grouping {
	return table.MapCols(g,
		func(name, config []string, value []float64, tooltip []string) {
			for i := range name {
				tooltip[i] = fmt.Sprintf("%s %s %.4g", name[i], config[i], value[i])
			}
		}, "name", "config", t.Value)("tooltip")
}
