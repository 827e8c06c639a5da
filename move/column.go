// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package move

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// floatColumn returns column name of t as a []float64. The result may
// alias t's storage and must not be modified.
func floatColumn(t *table.Table, name string) ([]float64, error) {
	col := t.Column(name)
	if col == nil {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
	}
	if xs, ok := col.([]float64); ok {
		return xs, nil
	}
	if !isNumeric(reflect.TypeOf(col).Elem().Kind()) {
		return nil, fmt.Errorf("%w: column %q is %T, not numeric", ErrColumnType, name, col)
	}
	var xs []float64
	slice.Convert(&xs, col)
	return xs, nil
}

// categoricalOrder returns the distinct values of col. Numeric values
// are sorted and NaNs are omitted; other values are returned in the
// order they first appear.
func categoricalOrder(col table.Slice) ([]interface{}, error) {
	cv := reflect.ValueOf(col)
	et := cv.Type().Elem()
	if !et.Comparable() {
		return nil, fmt.Errorf("%w: %s values cannot be grouped", ErrColumnType, et)
	}
	numeric := isNumeric(et.Kind())

	seen := make(map[interface{}]bool)
	var levels []interface{}
	for i := 0; i < cv.Len(); i++ {
		v := cv.Index(i)
		if numeric && isNaN(v) {
			continue
		}
		x := v.Interface()
		if !seen[x] {
			seen[x] = true
			levels = append(levels, x)
		}
	}
	if numeric {
		sort.SliceStable(levels, func(i, j int) bool {
			return toFloat(reflect.ValueOf(levels[i])) < toFloat(reflect.ValueOf(levels[j]))
		})
	}
	return levels, nil
}

func isNaN(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(v.Float())
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint())
	}
	return float64(v.Int())
}

// asValues converts a slice to a []interface{} of its elements.
func asValues(col table.Slice) []interface{} {
	cv := reflect.ValueOf(col)
	vals := make([]interface{}, cv.Len())
	for i := range vals {
		vals[i] = cv.Index(i).Interface()
	}
	return vals
}

// A tupleKey identifies one combination of grouping values.
type tupleKey string

// keyer maps rows to tupleKeys by looking up each grouping value in a
// fixed set of levels.
type keyer struct {
	cols  []string
	index []map[interface{}]int
	buf   []byte
}

func newKeyer(cols []string, levels [][]interface{}) *keyer {
	k := &keyer{cols: cols, index: make([]map[interface{}]int, len(cols))}
	for i, lv := range levels {
		m := make(map[interface{}]int, len(lv))
		for j, x := range lv {
			if _, ok := m[x]; !ok {
				m[x] = j
			}
		}
		k.index[i] = m
	}
	return k
}

// key returns the tupleKey for the given level indexes.
func (k *keyer) key(idx []int) tupleKey {
	k.buf = k.buf[:0]
	for _, i := range idx {
		k.buf = strconv.AppendInt(k.buf, int64(i), 36)
		k.buf = append(k.buf, ',')
	}
	return tupleKey(k.buf)
}

// rowKeys returns the key of every row of t. ok[i] is false if some
// grouping value of row i is not a known level.
func (k *keyer) rowKeys(t *table.Table) (keys []tupleKey, ok []bool, err error) {
	cols := make([]reflect.Value, len(k.cols))
	for i, name := range k.cols {
		col := t.Column(name)
		if col == nil {
			return nil, nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		if !reflect.TypeOf(col).Elem().Comparable() {
			return nil, nil, fmt.Errorf("%w: column %q is %T", ErrColumnType, name, col)
		}
		cols[i] = reflect.ValueOf(col)
	}

	keys = make([]tupleKey, t.Len())
	ok = make([]bool, t.Len())
	idx := make([]int, len(k.cols))
rows:
	for row := range keys {
		for i, cv := range cols {
			j, found := k.index[i][cv.Index(row).Interface()]
			if !found {
				continue rows
			}
			idx[i] = j
		}
		keys[row], ok[row] = k.key(idx), true
	}
	return keys, ok, nil
}
