// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package move

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// EmptyPolicy controls how Dodge treats groups whose width is
// undefined, typically because no row belongs to them.
type EmptyPolicy int

const (
	// Keep reserves space for empty groups. Their width is the
	// mean width of the other groups at the same position.
	Keep EmptyPolicy = iota

	// Drop removes empty groups before space is divided.
	Drop

	// Fill gives empty groups zero width, so they reserve no
	// space but still occupy a slot in the order.
	Fill
)

var emptyPolicyNames = []string{"keep", "drop", "fill"}

func (p EmptyPolicy) String() string {
	if p.valid() {
		return emptyPolicyNames[p]
	}
	return fmt.Sprintf("EmptyPolicy(%d)", int(p))
}

func (p EmptyPolicy) valid() bool {
	return p >= Keep && p <= Fill
}

// ParseEmptyPolicy returns the policy named s: "keep", "drop", or
// "fill". The empty string means Keep.
func ParseEmptyPolicy(s string) (EmptyPolicy, error) {
	if s == "" {
		return Keep, nil
	}
	for i, name := range emptyPolicyNames {
		if s == name {
			return EmptyPolicy(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q (want keep, drop, or fill)", ErrEmptyPolicy, s)
}

// AllocateSpace divides the space at one outer position among the
// groups at that position.
//
// widths gives each group's available width, in grouping order; NaN
// marks an undefined width and is filled according to empty (Drop
// fills like Fill). The returned space rescales the filled widths so
// that they sum to the largest of them. offsets places the groups side
// by side in order, centered on zero: offsets[i] is the displacement
// of group i's center from the position's nominal coordinate.
//
// If the filled widths sum to zero, all offsets are zero.
func AllocateSpace(widths []float64, empty EmptyPolicy) (space, offsets []float64) {
	filled := fillWidths(widths, empty)

	space = make([]float64, len(filled))
	offsets = make([]float64, len(filled))
	if len(filled) == 0 {
		return
	}

	_, scale := stats.Bounds(filled)
	norm := vec.Sum(filled)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		copy(space, filled)
		return
	}
	for i, w := range filled {
		space[i] = w / norm * scale
	}

	total := vec.Sum(space)
	left := 0.0
	for i, w := range space {
		offsets[i] = left + (w-total)/2
		left += w
	}
	return
}

// fillWidths returns a copy of widths with NaNs replaced according to
// empty. If no width is defined, they are all filled with zero.
func fillWidths(widths []float64, empty EmptyPolicy) []float64 {
	fill := 0.0
	if empty == Keep {
		fill = Mean(widths)
		if math.IsNaN(fill) {
			fill = 0
		}
	}
	filled := make([]float64, len(widths))
	for i, w := range widths {
		if math.IsNaN(w) {
			w = fill
		}
		filled[i] = w
	}
	return filled
}
