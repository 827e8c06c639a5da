// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package move

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/table"
)

// Jitter adds uniform random noise to coordinates.
//
// Each nonzero magnitude jitters one column by a value drawn uniformly
// from [-m/2, m/2). Columns with a zero magnitude are left untouched
// and consume no random values. The noise is drawn in a fixed order:
// the orientation column (Width), then "x", then "y". If the
// orientation is X and both Width and X are set, "x" is jittered
// twice.
//
// Jitter does not use its Grouping argument.
type Jitter struct {
	// Width is the magnitude of noise added to the orientation
	// column, as a fraction of each row's "space".
	Width float64

	// X and Y are absolute magnitudes of noise added to the "x"
	// and "y" columns.
	X, Y float64

	// Seed, if non-nil, seeds a new generator on each call, making
	// the noise reproducible. Otherwise the noise is seeded from
	// process entropy.
	Seed *int64
}

// NewJitter returns a Jitter with the given magnitudes and seed.
func NewJitter(width, x, y float64, seed *int64) (Jitter, error) {
	j := Jitter{Width: width, X: x, Y: y, Seed: seed}
	if err := j.validate(); err != nil {
		return Jitter{}, err
	}
	return j, nil
}

func (j Jitter) validate() error {
	for _, m := range []struct {
		name string
		v    float64
	}{{"width", j.Width}, {"x", j.X}, {"y", j.Y}} {
		if !(m.v >= 0) || math.IsInf(m.v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrMagnitude, m.name, m.v)
		}
	}
	return nil
}

func (j Jitter) Apply(t *table.Table, _ Grouping, orient Orientation) (*table.Table, error) {
	if err := j.validate(); err != nil {
		return nil, err
	}
	if err := orient.check(); err != nil {
		return nil, err
	}
	pos := string(orient)

	cols := make(map[string][]float64)
	get := func(name string) error {
		if _, ok := cols[name]; ok {
			return nil
		}
		xs, err := floatColumn(t, name)
		if err != nil {
			return err
		}
		cols[name] = xs
		return nil
	}
	var need []string
	if j.Width != 0 {
		need = append(need, pos, "space")
	}
	if j.X != 0 {
		need = append(need, "x")
	}
	if j.Y != 0 {
		need = append(need, "y")
	}
	if len(need) == 0 {
		return table.NewBuilder(t).Done(), nil
	}
	for _, name := range need {
		if err := get(name); err != nil {
			return nil, err
		}
	}

	rng := newNoise(j.Seed)
	jitter := func(name string, scale func(i int) float64) {
		xs := cols[name]
		out := make([]float64, len(xs))
		for i, u := range rng.uniform(len(xs)) {
			out[i] = xs[i] + u*scale(i)
		}
		cols[name] = out
	}
	if j.Width != 0 {
		space := cols["space"]
		jitter(pos, func(i int) float64 { return j.Width * space[i] })
	}
	if j.X != 0 {
		jitter("x", func(int) float64 { return j.X })
	}
	if j.Y != 0 {
		jitter("y", func(int) float64 { return j.Y })
	}

	b := table.NewBuilder(t)
	for _, name := range []string{pos, "x", "y"} {
		if xs, ok := cols[name]; ok && t.Column(name) != nil {
			b.Add(name, xs)
		}
	}
	return b.Done(), nil
}
