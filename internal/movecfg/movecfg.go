// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package movecfg describes move pipelines in configuration files and
// on the command line.
//
// A pipeline file is TOML:
//
//	orient = "x"
//	group = ["x", "config"]
//
//	[[move]]
//	kind = "dodge"
//	empty = "fill"
//	gap = 0.1
//
//	[[move]]
//	kind = "jitter"
//	width = 0.5
//	seed = 1
//
// On the command line, a single move is a shell-quoted word list: the
// kind followed by key=value settings, such as
//
//	dodge empty=fill gap=0.1 by='config goos'
package movecfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aclements/go-moves/move"
	"github.com/kballard/go-shellquote"
)

// File is a pipeline configuration.
type File struct {
	// Orient is "x" or "y". Empty means "x".
	Orient string `toml:"orient"`

	// Group is the grouping order. Empty means the caller's
	// default.
	Group []string `toml:"group"`

	Moves []Move `toml:"move"`
}

// Move configures one move. Kind selects which of the other fields
// apply.
type Move struct {
	Kind string `toml:"kind"`

	// Dodge settings.
	Empty string   `toml:"empty"`
	Gap   float64  `toml:"gap"`
	By    []string `toml:"by"`

	// Jitter settings.
	Width float64 `toml:"width"`
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
	Seed  *int64  `toml:"seed"`
}

// Load reads the pipeline file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse parses a pipeline file. Unknown keys are an error.
func Parse(data string) (*File, error) {
	var f File
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, err
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return &f, nil
}

var moveKeys = map[string][]string{
	"dodge":  {"empty", "gap", "by"},
	"jitter": {"width", "x", "y", "seed"},
}

// ParseMove parses a move from its command line form.
func ParseMove(spec string) (Move, error) {
	words, err := shellquote.Split(spec)
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", spec, err)
	}
	if len(words) == 0 {
		return Move{}, fmt.Errorf("empty move")
	}
	m := Move{Kind: words[0]}
	keys, ok := moveKeys[m.Kind]
	if !ok {
		return Move{}, fmt.Errorf("unknown move kind %q", m.Kind)
	}
	for _, w := range words[1:] {
		k, v, ok := strings.Cut(w, "=")
		if !ok {
			return Move{}, fmt.Errorf("move %q: setting %q is not key=value", spec, w)
		}
		if !contains(keys, k) {
			return Move{}, fmt.Errorf("move %q: %s has no setting %q", spec, m.Kind, k)
		}
		if err := m.set(k, v); err != nil {
			return Move{}, fmt.Errorf("move %q: %s: %w", spec, k, err)
		}
	}
	return m, nil
}

func (m *Move) set(key, val string) error {
	var err error
	switch key {
	case "empty":
		m.Empty = val
	case "by":
		m.By = strings.FieldsFunc(val, func(r rune) bool { return r == ',' || r == ' ' })
	case "gap":
		m.Gap, err = strconv.ParseFloat(val, 64)
	case "width":
		m.Width, err = strconv.ParseFloat(val, 64)
	case "x":
		m.X, err = strconv.ParseFloat(val, 64)
	case "y":
		m.Y, err = strconv.ParseFloat(val, 64)
	case "seed":
		var s int64
		s, err = strconv.ParseInt(val, 10, 64)
		m.Seed = &s
	}
	return err
}

// Build returns the move m describes.
func (m Move) Build() (move.Move, error) {
	switch m.Kind {
	case "dodge":
		if m.Width != 0 || m.X != 0 || m.Y != 0 || m.Seed != nil {
			return nil, fmt.Errorf("dodge does not take jitter settings")
		}
		d, err := move.NewDodge(m.Empty, m.Gap, m.By)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "jitter":
		if m.Empty != "" || m.Gap != 0 || m.By != nil {
			return nil, fmt.Errorf("jitter does not take dodge settings")
		}
		j, err := move.NewJitter(m.Width, m.X, m.Y, m.Seed)
		if err != nil {
			return nil, err
		}
		return j, nil
	}
	return nil, fmt.Errorf("unknown move kind %q", m.Kind)
}

// Pipeline builds all of f's moves in order.
func (f *File) Pipeline() (move.Pipeline, error) {
	var p move.Pipeline
	for i, m := range f.Moves {
		mv, err := m.Build()
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i, err)
		}
		p = append(p, mv)
	}
	return p, nil
}

// Orientation returns f's orientation.
func (f *File) Orientation() (move.Orientation, error) {
	if f.Orient == "" {
		return move.X, nil
	}
	o := move.Orientation(f.Orient)
	if !o.Valid() {
		return "", fmt.Errorf("%w: %q", move.ErrOrientation, f.Orient)
	}
	return o, nil
}

// Grouping returns a GroupBy over f's grouping order, or over def if
// f does not set one.
func (f *File) Grouping(def ...string) (*move.GroupBy, error) {
	if len(f.Group) > 0 {
		return move.NewGroupBy(f.Group...)
	}
	return move.NewGroupBy(def...)
}

func contains(xs []string, x string) bool {
	for _, y := range xs {
		if x == y {
			return true
		}
	}
	return false
}
