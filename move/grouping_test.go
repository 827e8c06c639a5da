// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package move

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReducers(t *testing.T) {
	nan := math.NaN()
	for _, test := range []struct {
		xs             []float64
		max, min, mean float64
	}{
		{[]float64{1, 3, 2}, 3, 1, 2},
		{[]float64{nan, 4, 2}, 4, 2, 3},
		{[]float64{nan}, nan, nan, nan},
		{nil, nan, nan, nan},
	} {
		got := []float64{Max(test.xs), Min(test.xs), Mean(test.xs)}
		want := []float64{test.max, test.min, test.mean}
		if diff := cmp.Diff(want, got, approx); diff != "" {
			t.Errorf("%v: max, min, mean (-want +got):\n%s", test.xs, diff)
		}
	}
}

func TestNewGroupBy(t *testing.T) {
	if _, err := NewGroupBy(); !errors.Is(err, ErrNoGrouping) {
		t.Fatalf("want ErrNoGrouping; got %v", err)
	}
	order := []string{"x", "hue"}
	g := mustGroupBy(t, order...)
	order[0] = "y"
	if want := []string{"x", "hue"}; !reflect.DeepEqual(want, g.Order()) {
		t.Fatalf("want order %v; got %v", want, g.Order())
	}
}

func TestAggregateProduct(t *testing.T) {
	tab := newTable(
		"x", []float64{1, 0, 0},
		"label", []string{"p", "q", "r"},
		"hue", []string{"b", "a", "b"},
		"space", []float64{3, 2, 1},
	)
	g := mustGroupBy(t, "x", "hue", "missing")
	agg, err := g.Aggregate(tab, map[string]Reducer{"space": Max})
	if err != nil {
		t.Fatal(err)
	}

	// Numeric levels are sorted; others keep first appearance.
	if want := []string{"x", "hue", "space"}; !reflect.DeepEqual(want, agg.Columns()) {
		t.Fatalf("want columns %v; got %v", want, agg.Columns())
	}
	if want := []float64{0, 0, 1, 1}; !reflect.DeepEqual(want, agg.Column("x")) {
		t.Errorf("x: want %v; got %v", want, agg.Column("x"))
	}
	if want := []string{"b", "a", "b", "a"}; !reflect.DeepEqual(want, agg.Column("hue")) {
		t.Errorf("hue: want %v; got %v", want, agg.Column("hue"))
	}
	want := []float64{1, 2, 3, math.NaN()}
	if diff := cmp.Diff(want, agg.Column("space"), approx); diff != "" {
		t.Errorf("space (-want +got):\n%s", diff)
	}
}

func TestAggregateLevels(t *testing.T) {
	tab := newTable(
		"x", []int{2, 2, 2, 2},
		"hue", []string{"b", "a", "b", "c"},
		"space", []int{1, 5, 4, 9},
	)
	g := mustGroupBy(t, "x", "hue").Levels("hue", []string{"c", "a", "b", "d"})
	agg, err := g.Aggregate(tab, map[string]Reducer{"space": Max})
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{2, 2, 2, 2}; !reflect.DeepEqual(want, agg.Column("x")) {
		t.Errorf("x: want %v; got %v", want, agg.Column("x"))
	}
	if want := []string{"c", "a", "b", "d"}; !reflect.DeepEqual(want, agg.Column("hue")) {
		t.Errorf("hue: want %v; got %v", want, agg.Column("hue"))
	}
	if diff := cmp.Diff([]float64{9, 5, 4, math.NaN()}, agg.Column("space"), approx); diff != "" {
		t.Errorf("space (-want +got):\n%s", diff)
	}

	// Rows outside the pinned levels belong to no group.
	g = mustGroupBy(t, "hue").Levels("hue", []string{"a"})
	agg, err = g.Aggregate(tab, map[string]Reducer{"space": Mean})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{5}, agg.Column("space"), approx); diff != "" {
		t.Errorf("pinned subset: space (-want +got):\n%s", diff)
	}

	// Levels of the wrong type are rejected.
	g = mustGroupBy(t, "hue").Levels("hue", []int{1})
	if _, err := g.Aggregate(tab, map[string]Reducer{"space": Max}); !errors.Is(err, ErrColumnType) {
		t.Fatalf("want ErrColumnType; got %v", err)
	}
}

func TestAggregateNaNKey(t *testing.T) {
	tab := newTable(
		"x", []float64{math.NaN(), 1, 1},
		"space", []float64{10, 2, 3},
	)
	agg, err := mustGroupBy(t, "x").Aggregate(tab, map[string]Reducer{"space": Max})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{1}, agg.Column("x")); diff != "" {
		t.Errorf("x (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{3}, agg.Column("space")); diff != "" {
		t.Errorf("space (-want +got):\n%s", diff)
	}
}

func TestAggregateErrors(t *testing.T) {
	tab := newTable(
		"x", []float64{0},
		"name", []string{"a"},
		"space", []float64{1},
	)
	if _, err := mustGroupBy(t, "hue").Aggregate(tab, nil); !errors.Is(err, ErrNoGroupingColumns) {
		t.Errorf("want ErrNoGroupingColumns; got %v", err)
	}
	if _, err := mustGroupBy(t, "x").Aggregate(tab, map[string]Reducer{"width": Max}); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("want ErrMissingColumn; got %v", err)
	}
	if _, err := mustGroupBy(t, "x").Aggregate(tab, map[string]Reducer{"name": Max}); !errors.Is(err, ErrColumnType) {
		t.Errorf("want ErrColumnType; got %v", err)
	}
	bad := newTable("x", [][]int{{1}}, "space", []float64{1})
	if _, err := mustGroupBy(t, "x").Aggregate(bad, nil); !errors.Is(err, ErrColumnType) {
		t.Errorf("want ErrColumnType; got %v", err)
	}
}

func TestAggregateTooManyGroups(t *testing.T) {
	// Two continuous columns, as after jittering both axes.
	const n = 1100
	xs, ys, space := make([]float64, n), make([]float64, n), make([]float64, n)
	for i := range xs {
		xs[i], ys[i], space[i] = float64(i)+0.5, float64(i)*2, 1
	}
	tab := newTable("x", xs, "y", ys, "space", space)
	g := mustGroupBy(t, "x", "y")
	if _, err := g.Aggregate(tab, map[string]Reducer{"space": Max}); !errors.Is(err, ErrTooManyGroups) {
		t.Errorf("want ErrTooManyGroups; got %v", err)
	}
	if _, err := (Dodge{}).Apply(tab, g, X); !errors.Is(err, ErrTooManyGroups) {
		t.Errorf("dodge: want ErrTooManyGroups; got %v", err)
	}

	// One continuous column stays within bounds.
	agg, err := mustGroupBy(t, "x").Aggregate(tab, map[string]Reducer{"space": Max})
	if err != nil {
		t.Fatal(err)
	}
	if agg.Len() != n {
		t.Errorf("want %d groups; got %d", n, agg.Len())
	}
}

func TestRestrict(t *testing.T) {
	g := mustGroupBy(t, "x", "hue", "sub").Levels("hue", []string{"b", "a"})
	r := g.Restrict([]string{"sub", "x", "other"})
	if want := []string{"x", "sub"}; !reflect.DeepEqual(want, r.Order()) {
		t.Fatalf("want order %v; got %v", want, r.Order())
	}
	r = g.Restrict([]string{"hue"})
	tab := newTable("hue", []string{"a", "b"}, "space", []float64{1, 2})
	agg, err := r.Aggregate(tab, map[string]Reducer{"space": Max})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"b", "a"}; !reflect.DeepEqual(want, agg.Column("hue")) {
		t.Fatalf("pinned levels lost: want %v; got %v", want, agg.Column("hue"))
	}
}
