// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package move

import (
	"fmt"
	"math"
	"reflect"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// A Grouping partitions the rows of a table into groups and reduces
// each group to a single row.
type Grouping interface {
	// Order returns the grouping column names, outermost first.
	// Columns that are not present in a table are ignored when
	// grouping that table.
	Order() []string

	// Aggregate returns a table with one row per group of t. The
	// result has a column for each grouping column present in t
	// and a column for each reducer, holding the reducer applied
	// to that column's values in the group.
	Aggregate(t *table.Table, reducers map[string]Reducer) (*table.Table, error)
}

// A Reducer summarizes the values of a column within one group. It
// must not modify xs.
type Reducer func(xs []float64) float64

// Max returns the largest value of xs, ignoring NaNs. If there are no
// such values, it returns NaN.
func Max(xs []float64) float64 {
	xs = defined(xs)
	if len(xs) == 0 {
		return math.NaN()
	}
	_, max := stats.Bounds(xs)
	return max
}

// Min returns the smallest value of xs, ignoring NaNs. If there are
// no such values, it returns NaN.
func Min(xs []float64) float64 {
	xs = defined(xs)
	if len(xs) == 0 {
		return math.NaN()
	}
	min, _ := stats.Bounds(xs)
	return min
}

// Mean returns the mean of xs, ignoring NaNs. If there are no such
// values, it returns NaN.
func Mean(xs []float64) float64 {
	xs = defined(xs)
	if len(xs) == 0 {
		return math.NaN()
	}
	return stats.Mean(xs)
}

// defined returns the non-NaN values of xs.
func defined(xs []float64) []float64 {
	for i, x := range xs {
		if math.IsNaN(x) {
			out := append([]float64(nil), xs[:i]...)
			for _, x := range xs[i+1:] {
				if !math.IsNaN(x) {
					out = append(out, x)
				}
			}
			return out
		}
	}
	return xs
}

// GroupBy is a Grouping over an ordered list of categorical columns.
//
// The levels of each column are its distinct values: sorted for
// numeric columns (ignoring NaN) and in order of first appearance
// otherwise, unless pinned with Levels. Aggregate produces a row for
// every combination of levels, even combinations with no rows in the
// table; reduced values for those are NaN.
type GroupBy struct {
	order  []string
	pinned map[string][]interface{}
}

// NewGroupBy returns a GroupBy over the given columns, outermost
// first.
func NewGroupBy(order ...string) (*GroupBy, error) {
	if len(order) == 0 {
		return nil, ErrNoGrouping
	}
	return &GroupBy{order: append([]string(nil), order...)}, nil
}

// Levels returns a copy of g that uses levels, in order, as the
// levels of column col. Rows whose value of col is not in levels do
// not belong to any group.
func (g *GroupBy) Levels(col string, levels table.Slice) *GroupBy {
	ng := &GroupBy{order: g.order, pinned: make(map[string][]interface{}, len(g.pinned)+1)}
	for k, v := range g.pinned {
		ng.pinned[k] = v
	}
	ng.pinned[col] = asValues(levels)
	return ng
}

// Restrict returns a Grouping over the columns of g's order that are
// also in cols. Pinned levels carry over.
func (g *GroupBy) Restrict(cols []string) Grouping {
	keep := make(map[string]bool, len(cols))
	for _, c := range cols {
		keep[c] = true
	}
	ng := &GroupBy{pinned: g.pinned}
	for _, c := range g.order {
		if keep[c] {
			ng.order = append(ng.order, c)
		}
	}
	return ng
}

func (g *GroupBy) Order() []string {
	return append([]string(nil), g.order...)
}

// present returns the columns of g's order that t has.
func present(order []string, t *table.Table) []string {
	var cols []string
	for _, c := range order {
		if t.Column(c) != nil {
			cols = append(cols, c)
		}
	}
	return cols
}

func (g *GroupBy) levels(t *table.Table, col string) ([]interface{}, error) {
	if lv, ok := g.pinned[col]; ok {
		et := table.ColType(t, col).Elem()
		if !et.Comparable() {
			return nil, fmt.Errorf("%w: %s values cannot be grouped", ErrColumnType, et)
		}
		for _, x := range lv {
			if xt := reflect.TypeOf(x); xt == nil || !xt.AssignableTo(et) {
				return nil, fmt.Errorf("%w: level %v is not a %s", ErrColumnType, x, et)
			}
		}
		return lv, nil
	}
	return categoricalOrder(t.Column(col))
}

func (g *GroupBy) Aggregate(t *table.Table, reducers map[string]Reducer) (*table.Table, error) {
	cols := present(g.order, t)
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w (want one of %q)", ErrNoGroupingColumns, g.order)
	}

	levels := make([][]interface{}, len(cols))
	for i, col := range cols {
		lv, err := g.levels(t, col)
		if err != nil {
			return nil, fmt.Errorf("grouping column %q: %w", col, err)
		}
		levels[i] = lv
	}

	n, err := productSize(cols, levels)
	if err != nil {
		return nil, err
	}

	// Split t into its groups and place each group in its slot of
	// the product of levels. Groups whose labels are not levels,
	// such as NaN or values missing from pinned levels, belong
	// nowhere.
	k := newKeyer(cols, levels)
	grouped := table.GroupBy(t, cols...)
	members := make(map[tupleKey]*table.Table)
	idx := make([]int, len(cols))
groups:
	for _, gid := range grouped.Tables() {
		// Labels run from the innermost column out.
		p := gid
		for i := len(cols) - 1; i >= 0; i-- {
			j, ok := k.index[i][p.Label()]
			if !ok {
				continue groups
			}
			idx[i] = j
			p = p.Parent()
		}
		members[k.key(idx)] = grouped.Table(gid)
	}

	// Enumerate the product of the levels with the first column
	// varying slowest.
	out := make([]reflect.Value, len(cols))
	for i, col := range cols {
		out[i] = reflect.MakeSlice(table.ColType(t, col), n, n)
	}
	combos := make([]tupleKey, n)
	for i := range idx {
		idx[i] = 0
	}
	for r := 0; r < n; r++ {
		for i := range cols {
			out[i].Index(r).Set(reflect.ValueOf(levels[i][idx[i]]))
		}
		combos[r] = k.key(idx)
		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(levels[i]) {
				break
			}
			idx[i] = 0
		}
	}

	reduced := make(map[string][]float64, len(reducers))
	for name, f := range reducers {
		if _, err := floatColumn(t, name); err != nil {
			return nil, err
		}
		res := make([]float64, n)
		for r, key := range combos {
			gt, ok := members[key]
			if !ok {
				res[r] = math.NaN()
				continue
			}
			xs, err := floatColumn(gt, name)
			if err != nil {
				return nil, err
			}
			res[r] = f(xs)
		}
		reduced[name] = res
	}

	// Keep the columns in t's order.
	b := new(table.Builder)
	for _, col := range t.Columns() {
		if i := indexOf(cols, col); i >= 0 {
			b.Add(col, out[i].Interface())
		} else if res, ok := reduced[col]; ok {
			b.Add(col, res)
		}
	}
	return b.Done(), nil
}

// maxGroups bounds the number of level combinations Aggregate will
// enumerate.
const maxGroups = 1 << 20

// productSize returns the number of combinations of levels, or
// ErrTooManyGroups if it exceeds maxGroups.
func productSize(cols []string, levels [][]interface{}) (int, error) {
	n := 1
	for i, lv := range levels {
		if len(lv) == 0 {
			return 0, nil
		}
		if n > maxGroups/len(lv) {
			return 0, fmt.Errorf("%w: %q and earlier columns have more than %d level combinations", ErrTooManyGroups, cols[i], maxGroups)
		}
		n *= len(lv)
	}
	return n, nil
}

func indexOf(xs []string, x string) int {
	for i, y := range xs {
		if x == y {
			return i
		}
	}
	return -1
}
