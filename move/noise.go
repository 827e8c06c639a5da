// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package move

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// noise is a source of uniform offsets owned by a single call.
type noise struct {
	r *rand.Rand
}

// newNoise returns a noise source seeded with *seed, or with process
// entropy if seed is nil.
func newNoise(seed *int64) *noise {
	var s int64
	if seed != nil {
		s = *seed
	} else {
		s = entropySeed()
	}
	return &noise{rand.New(rand.NewSource(s))}
}

func entropySeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// uniform returns count values drawn uniformly from [-0.5, 0.5).
func (n *noise) uniform(count int) []float64 {
	xs := make([]float64, count)
	for i := range xs {
		xs[i] = n.r.Float64() - 0.5
	}
	return xs
}
