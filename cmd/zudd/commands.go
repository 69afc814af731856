// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/golang/snappy"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var CountCmd = cli.Command{
	Action:    doCount,
	Name:      "count",
	Usage:     "count the sets of each family",
	ArgsUsage: "<family>...",
}

var DotCmd = cli.Command{
	Action:    printWith(func(w *workspace, out io.Writer) error { return w.m.PrintDot(out, w.roots...) }),
	Name:      "dot",
	Usage:     "print the diagram of the families in the GraphViz DOT format",
	ArgsUsage: "<family>...",
	Flags:     []cli.Flag{&outputFlag, &snappyFlag},
}

var AutCmd = cli.Command{
	Action:    printWith(func(w *workspace, out io.Writer) error { return w.m.PrintAut(out, w.roots...) }),
	Name:      "aut",
	Usage:     "print the diagram of the families in the AUT format",
	ArgsUsage: "<family>...",
	Flags:     []cli.Flag{&outputFlag, &snappyFlag},
}

var NodesCmd = cli.Command{
	Action:    printWith(func(w *workspace, out io.Writer) error { return w.m.PrintNodes(out, w.roots...) }),
	Name:      "nodes",
	Usage:     "list the nodes of the families, children first",
	ArgsUsage: "<family>...",
	Flags:     []cli.Flag{&outputFlag, &snappyFlag},
}

var StatsCmd = cli.Command{
	Action:    doStats,
	Name:      "stats",
	Usage:     "build the families and print statistics about the manager",
	ArgsUsage: "<family>...",
}

// counts are the results of the three counting methods for one family.
type counts struct {
	count  int
	double float64
	big    *big.Int
}

func doCount(ctx *cli.Context) error {
	w, err := build(ctx)
	if err != nil {
		return err
	}
	// counts only take the read lock and can run in parallel
	results := make([]counts, len(w.roots))
	var g errgroup.Group
	for k, e := range w.roots {
		k, e := k, e
		g.Go(func() error {
			b, err := w.m.CountBig(e)
			if err != nil {
				return fmt.Errorf("cannot count family %q: %w", w.args[k], err)
			}
			results[k] = counts{
				count:  w.m.Count(e),
				double: w.m.CountDouble(e),
				big:    b,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	out := ctx.App.Writer
	for k, r := range results {
		fmt.Fprintf(out, "%s\t%d\t%g\t%s\n", w.args[k], r.count, r.double, r.big)
	}
	return nil
}

func doStats(ctx *cli.Context) error {
	w, err := build(ctx)
	if err != nil {
		return err
	}
	if err := w.m.Check(); err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, w.m.Stats())
	return nil
}

// printWith returns the action of a printing command. The output goes to the
// file given with --output, optionally through a snappy compressor.
func printWith(printer func(*workspace, io.Writer) error) cli.ActionFunc {
	return func(ctx *cli.Context) (err error) {
		w, err := build(ctx)
		if err != nil {
			return err
		}
		var out io.Writer = ctx.App.Writer
		if path := ctx.String(outputFlag.Name); path != "-" {
			file, ferr := os.Create(path)
			if ferr != nil {
				return ferr
			}
			defer func() {
				if cerr := file.Close(); err == nil {
					err = cerr
				}
			}()
			out = file
		}
		if ctx.Bool(snappyFlag.Name) {
			sw := snappy.NewBufferedWriter(out)
			defer func() {
				if cerr := sw.Close(); err == nil {
					err = cerr
				}
			}()
			out = sw
		}
		return printer(w, out)
	}
}
