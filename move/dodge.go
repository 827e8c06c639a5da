// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package move

import (
	"fmt"
	"math"
	"reflect"

	"github.com/aclements/go-gg/table"
)

// Dodge places groups that share a position side by side.
//
// Dodge reduces each group to its largest "space" value, then, at each
// outer position (the orientation coordinate and the "col" and "row"
// facets, when present), divides the space among the groups there in
// grouping order. The orientation column of each row becomes its
// group's position plus the group's offset, and "space" becomes the
// group's share of the space.
//
// The zero Dodge keeps empty groups and leaves no gap.
type Dodge struct {
	// Empty controls how groups with undefined width are treated.
	Empty EmptyPolicy

	// Gap is the fraction of each group's width to leave empty
	// between adjacent groups. It must be in [0, 1). The gap
	// shrinks groups around their centers without moving them.
	Gap float64

	// By, if non-nil, restricts grouping to these columns (plus
	// the outer position columns).
	By []string
}

// NewDodge returns a Dodge with the named empty policy, gap, and
// grouping restriction.
func NewDodge(empty string, gap float64, by []string) (Dodge, error) {
	p, err := ParseEmptyPolicy(empty)
	if err != nil {
		return Dodge{}, err
	}
	d := Dodge{Empty: p, Gap: gap, By: by}
	if err := d.validate(); err != nil {
		return Dodge{}, err
	}
	return d, nil
}

func (d Dodge) validate() error {
	if !d.Empty.valid() {
		return fmt.Errorf("%w %s", ErrEmptyPolicy, d.Empty)
	}
	if !(d.Gap >= 0 && d.Gap < 1) {
		return fmt.Errorf("%w, got %v", ErrGap, d.Gap)
	}
	return nil
}

// outerColumns lists the columns that, with the orientation column,
// identify an outer position.
var outerColumns = []string{"col", "row"}

// restricter is implemented by Groupings that can narrow themselves
// to a subset of their columns.
type restricter interface {
	Restrict(cols []string) Grouping
}

func (d Dodge) restrict(g Grouping, pos string) Grouping {
	cols := append(append([]string{pos}, outerColumns...), d.By...)
	if r, ok := g.(restricter); ok {
		return r.Restrict(cols)
	}
	ng := new(GroupBy)
	for _, c := range g.Order() {
		if indexOf(cols, c) >= 0 {
			ng.order = append(ng.order, c)
		}
	}
	return ng
}

func (d Dodge) Apply(t *table.Table, g Grouping, orient Orientation) (*table.Table, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNoGrouping
	}
	if err := orient.check(); err != nil {
		return nil, err
	}
	pos := string(orient)
	for _, col := range []string{pos, "space"} {
		if t.Column(col) == nil {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, col)
		}
	}
	if d.By != nil {
		g = d.restrict(g, pos)
	}

	joinCols := present(g.Order(), t)
	groups, err := g.Aggregate(t, map[string]Reducer{"space": Max})
	if err != nil {
		return nil, fmt.Errorf("aggregating space: %w", err)
	}
	gpos, err := floatColumn(groups, pos)
	if err != nil {
		return nil, fmt.Errorf("aggregated groups: %w", err)
	}
	gspace, err := floatColumn(groups, "space")
	if err != nil {
		return nil, fmt.Errorf("aggregated groups: %w", err)
	}

	newPos, newSpace, err := d.allocate(t, groups, pos, gpos, gspace)
	if err != nil {
		return nil, err
	}

	// Join the group positions back onto the rows.
	jk, err := keyerFor(groups, joinCols)
	if err != nil {
		return nil, fmt.Errorf("aggregated groups: %w", err)
	}
	gkeys, gok, err := jk.rowKeys(groups)
	if err != nil {
		return nil, fmt.Errorf("aggregated groups: %w", err)
	}
	index := make(map[tupleKey]int, len(gkeys))
	for i, key := range gkeys {
		if !gok[i] {
			continue
		}
		if _, dup := index[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateGroup, describeRow(groups, joinCols, i))
		}
		index[key] = i
	}

	rkeys, rok, err := jk.rowKeys(t)
	if err != nil {
		return nil, err
	}
	outPos := make([]float64, t.Len())
	outSpace := make([]float64, t.Len())
	for row, key := range rkeys {
		gi, found := index[key]
		if !rok[row] || !found {
			return nil, fmt.Errorf("%w: row %d (%s)", ErrUnmatchedRow, row, describeRow(t, joinCols, row))
		}
		outPos[row] = newPos[gi]
		outSpace[row] = newSpace[gi]
	}

	return table.NewBuilder(t).Add(pos, outPos).Add("space", outSpace).Done(), nil
}

// allocate computes the dodged position and space of every aggregated
// group. Groups that are dropped or that have no outer position get
// NaN.
func (d Dodge) allocate(t, groups *table.Table, pos string, gpos, gspace []float64) (newPos, newSpace []float64, err error) {
	outer := []string{pos}
	for _, col := range outerColumns {
		if t.Column(col) == nil {
			continue
		}
		if groups.Column(col) == nil {
			return nil, nil, fmt.Errorf("%w %q in aggregated groups (is it in the grouping order?)", ErrMissingColumn, col)
		}
		outer = append(outer, col)
	}
	pk, err := keyerFor(groups, outer)
	if err != nil {
		return nil, nil, fmt.Errorf("aggregated groups: %w", err)
	}
	okeys, valid, err := pk.rowKeys(groups)
	if err != nil {
		return nil, nil, err
	}

	// Partition the groups by outer position, keeping the
	// positions in order of first appearance.
	var order []tupleKey
	parts := make(map[tupleKey][]int)
	for i, key := range okeys {
		if !valid[i] || (d.Empty == Drop && math.IsNaN(gspace[i])) {
			continue
		}
		if _, seen := parts[key]; !seen {
			order = append(order, key)
		}
		parts[key] = append(parts[key], i)
	}

	n := groups.Len()
	newPos, newSpace = make([]float64, n), make([]float64, n)
	for i := range newPos {
		newPos[i], newSpace[i] = math.NaN(), math.NaN()
	}
	widths := make([]float64, 0, 8)
	for _, key := range order {
		members := parts[key]
		widths = widths[:0]
		for _, i := range members {
			widths = append(widths, gspace[i])
		}
		space, offsets := AllocateSpace(widths, d.Empty)
		for j, i := range members {
			newPos[i] = gpos[i] + offsets[j]
			newSpace[i] = space[j] * (1 - d.Gap)
		}
	}
	return newPos, newSpace, nil
}

// keyerFor returns a keyer over cols whose levels are the distinct
// values of those columns in t.
func keyerFor(t *table.Table, cols []string) (*keyer, error) {
	levels := make([][]interface{}, len(cols))
	for i, col := range cols {
		c := t.Column(col)
		if c == nil {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, col)
		}
		lv, err := categoricalOrder(c)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		levels[i] = lv
	}
	return newKeyer(cols, levels), nil
}

// describeRow formats the values of cols in row i of t for error
// messages.
func describeRow(t *table.Table, cols []string, i int) string {
	s := ""
	for j, col := range cols {
		if j > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%v", col, reflect.ValueOf(t.Column(col)).Index(i).Interface())
	}
	return s
}
