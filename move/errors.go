// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package move

import "errors"

// Configuration errors.
var (
	ErrNoGrouping        = errors.New("grouping is required")
	ErrNoGroupingColumns = errors.New("no grouping columns are present in table")
	ErrEmptyPolicy       = errors.New("invalid empty policy")
	ErrGap               = errors.New("gap must be in [0, 1)")
	ErrMagnitude         = errors.New("jitter magnitude must be finite and non-negative")
	ErrOrientation       = errors.New("orientation must be \"x\" or \"y\"")
	ErrMissingColumn     = errors.New("missing column")
	ErrColumnType        = errors.New("unsupported column type")
	ErrTooManyGroups     = errors.New("too many groups")
)

// ErrUnmatchedRow indicates that a row's grouping values do not
// identify any aggregated group. This happens when a Grouping
// aggregates on different columns or levels than the rows carry.
var ErrUnmatchedRow = errors.New("row matches no aggregated group")

// ErrDuplicateGroup indicates that a Grouping returned more than one
// aggregated row for the same grouping values.
var ErrDuplicateGroup = errors.New("duplicate aggregated group")
