// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Run using
//  go run ./cmd/zudd <command> <flags> <families>
//
// A family is written as a list of sets separated by ';', each set being a
// list of variables separated by ','. For example "0,2;1;" is the family
// {{0, 2}, {1}} and "0;;" is {{0}, {}}.

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "YAML file with default values for the manager parameters",
	}
	varnumFlag = cli.IntFlag{
		Name:  "varnum",
		Usage: "number of variables, 0 to use the largest variable in the families",
	}
	nodesizeFlag = cli.IntFlag{
		Name:  "nodesize",
		Usage: "initial number of nodes in the arena",
	}
	maxNodesFlag = cli.StringFlag{
		Name:  "max-nodes",
		Usage: "maximal number of nodes in the arena, 0 for no limit or 'auto' to derive it from physical memory",
	}
	memoLimitFlag = cli.IntFlag{
		Name:  "memo-limit",
		Usage: "maximal number of entries in the memo table of a count, 0 for no limit",
	}
	verboseFlag = cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log the operations of the manager on stderr",
	}
	outputFlag = cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file, '-' for the standard output",
		Value:   "-",
	}
	snappyFlag = cli.BoolFlag{
		Name:  "snappy",
		Usage: "compress the output using the snappy framing format",
	}
)

var commands = []*cli.Command{
	&CountCmd,
	&DotCmd,
	&AutCmd,
	&NodesCmd,
	&StatsCmd,
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "zudd",
		Usage:     "build, count and print families of sets with zero-suppressed decision diagrams",
		Copyright: "(c) 2021 Silvano DAL ZILIO",
		Flags: []cli.Flag{
			&configFlag,
			&varnumFlag,
			&nodesizeFlag,
			&maxNodesFlag,
			&memoLimitFlag,
			&verboseFlag,
		},
		Commands: commands,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
