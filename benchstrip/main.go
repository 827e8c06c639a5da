// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command benchstrip plots individual benchmark runs as a strip chart.
//
// benchstrip takes input files in Go benchmark format [1] and plots
// every run of every benchmark as a point, with one slot per benchmark
// name. Within a slot, runs from different input files (or with
// different values of the configuration key given by -by) are dodged
// side by side and then jittered so that repeated runs do not hide
// each other.
//
// The moves applied to the points can be replaced with -move, which
// may be repeated, or with a pipeline file given by -config:
//
//	benchstrip -move 'dodge gap=0.2' -move 'jitter width=0.3 seed=1' old.txt new.txt
//
// [1] https://github.com/golang/proposal/blob/master/design/14313-benchmark-format.md
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moves/internal/benchfmt"
	"github.com/aclements/go-moves/internal/movecfg"
	"github.com/aclements/go-moves/move"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	out        string
	asTable    bool
	metric     string
	by         string
	width      float64
	config     string
	moves      []string
	cpuProfile string
	verbose    bool
}

// defaultMoves is used when neither -config nor -move give any moves.
var defaultMoves = []movecfg.Move{
	{Kind: "dodge"},
	{Kind: "jitter", Width: 0.5},
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:           "benchstrip [flags] [inputs...]",
		Short:         "Plot individual benchmark runs as a strip chart",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), o.verbose)
			err := run(&o, args, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
			if err != nil {
				logger.Error(err)
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.out, "output", "o", "", "write output to `file` (default: stdout)")
	f.BoolVar(&o.asTable, "table", false, "output a table instead of a plot")
	f.StringVar(&o.metric, "metric", "ns/op", "plot the `unit` metric")
	f.StringVar(&o.by, "by", "", "dodge by configuration `key` instead of by input file")
	f.Float64Var(&o.width, "width", 0.8, "width of each benchmark's slot")
	f.StringVar(&o.config, "config", "", "read the move pipeline from TOML `file`")
	f.StringArrayVar(&o.moves, "move", nil, "append a `move` to the pipeline, such as 'jitter width=0.5'")
	f.StringVar(&o.cpuProfile, "cpuprofile", "", "write CPU profile to `file`")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "benchstrip",
		Level:  level,
	})
}

func run(o *options, paths []string, stdin io.Reader, stdout io.Writer, logger *log.Logger) error {
	if o.cpuProfile != "" {
		f, err := os.Create(o.cpuProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	pipeline, grouping, orient, err := o.pipeline()
	if err != nil {
		return err
	}
	logger.Debug("pipeline", "orient", orient, "group", grouping.Order(), "moves", len(pipeline))

	// Parse benchmark inputs.
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	var sources []source
	for _, path := range paths {
		src, err := readSource(path, stdin)
		if err != nil {
			return err
		}
		logger.Debug("read input", "path", path, "runs", len(src.runs))
		sources = append(sources, src)
	}

	tab, err := stripTable(sources, o.metric, o.by, o.width, orient)
	if err != nil {
		return err
	}
	tab, err = pipeline.Apply(tab, grouping, orient)
	if err != nil {
		return err
	}

	// Prepare for output.
	w := stdout
	if o.out != "" {
		f, err := os.Create(o.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	// Output table.
	asTable := o.asTable
	if !asTable && o.out == "" && isTerminal(stdout) {
		logger.Info("stdout is a terminal; printing a table (use -o for SVG)")
		asTable = true
	}
	if asTable {
		table.Fprint(w, tab)
		return nil
	}

	// Plot.
	p := plot(tab, orient, o.metric)
	if !(len(paths) == 1 && paths[0] == "-") {
		p.Add(titleFor(paths))
	}
	width, height := 200+60*len(slotNames(sources)), 400
	if orient == move.Y {
		width, height = height, width
	}
	return p.WriteSVG(w, width, height)
}

func (o *options) pipeline() (move.Pipeline, *move.GroupBy, move.Orientation, error) {
	cfg := new(movecfg.File)
	if o.config != "" {
		var err error
		if cfg, err = movecfg.Load(o.config); err != nil {
			return nil, nil, "", err
		}
	}
	for _, spec := range o.moves {
		m, err := movecfg.ParseMove(spec)
		if err != nil {
			return nil, nil, "", err
		}
		cfg.Moves = append(cfg.Moves, m)
	}
	if len(cfg.Moves) == 0 {
		cfg.Moves = defaultMoves
	}

	orient, err := cfg.Orientation()
	if err != nil {
		return nil, nil, "", err
	}
	grouping, err := cfg.Grouping(string(orient), "config")
	if err != nil {
		return nil, nil, "", err
	}
	pipeline, err := cfg.Pipeline()
	if err != nil {
		return nil, nil, "", err
	}
	return pipeline, grouping, orient, nil
}

func readSource(path string, stdin io.Reader) (source, error) {
	r := stdin
	name := "stdin"
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return source{}, err
		}
		defer f.Close()
		r, name = f, filepath.Base(path)
	}
	runs, err := benchfmt.Read(r)
	if err != nil {
		return source{}, fmt.Errorf("%s: %w", path, err)
	}
	return source{name, runs}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("TERM") == "dumb" {
		return false
	}
	return terminal.IsTerminal(int(f.Fd()))
}
