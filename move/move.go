// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package move adjusts the positions of plot elements that share a
// categorical slot.
//
// A move takes a table with one row per visual element and returns
// a new table with some coordinate columns replaced. Dodge places
// sibling groups side by side within the space available at their
// position. Jitter adds bounded random noise to reduce overplotting.
//
// Tables are go-gg tables. The columns a move understands are "x"
// and "y" (coordinates), "space" (the width available to a row along
// the orientation axis), "col" and "row" (facets), and any number of
// grouping columns named by a Grouping. Moves never modify their
// input table.
package move

import (
	"fmt"

	"github.com/aclements/go-gg/table"
)

// A Move is a stateless transform of element positions. Apply must
// return a table with the same number of rows as t.
type Move interface {
	Apply(t *table.Table, g Grouping, orient Orientation) (*table.Table, error)
}

// Orientation names the coordinate axis a move operates along.
type Orientation string

const (
	X Orientation = "x"
	Y Orientation = "y"
)

// Valid reports whether o is X or Y.
func (o Orientation) Valid() bool {
	return o == X || o == Y
}

func (o Orientation) check() error {
	if !o.Valid() {
		return fmt.Errorf("%w: %q", ErrOrientation, string(o))
	}
	return nil
}

// Pipeline applies a sequence of moves, each to the output of the
// previous one.
type Pipeline []Move

func (p Pipeline) Apply(t *table.Table, g Grouping, orient Orientation) (*table.Table, error) {
	for i, m := range p {
		var err error
		t, err = m.Apply(t, g, orient)
		if err != nil {
			return nil, fmt.Errorf("move %d (%T): %w", i, m, err)
		}
	}
	return t, nil
}
