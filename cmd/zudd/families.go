// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dalzilio/zudd"
	"github.com/urfave/cli/v2"
)

// parseFamily reads a family written as sets separated by ';', each set being
// a list of variables separated by ','. A trailing ';' is optional, so the
// empty set must be written as an empty entry: "1;;" is {{1}, {}}.
func parseFamily(s string) ([][]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	sets := make([][]int, 0, len(parts))
	for _, p := range parts {
		set := []int{}
		for _, v := range strings.Split(p, ",") {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid variable %q in family %q", v, s)
			}
			set = append(set, n)
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// workspace is the result of parsing the arguments of a command: a manager and
// one root per family.
type workspace struct {
	m     *zudd.Manager
	roots []zudd.Edge
	args  []string
}

// build parses the families given as arguments and builds them in a new
// manager.
func build(ctx *cli.Context) (*workspace, error) {
	if ctx.Args().Len() == 0 {
		return nil, fmt.Errorf("missing family parameter")
	}
	cfg, err := configFromContext(ctx)
	if err != nil {
		return nil, err
	}
	families := make([][][]int, ctx.Args().Len())
	varnum := cfg.Varnum
	for k, arg := range ctx.Args().Slice() {
		if families[k], err = parseFamily(arg); err != nil {
			return nil, err
		}
		for _, set := range families[k] {
			for _, v := range set {
				if cfg.Varnum > 0 && v >= cfg.Varnum {
					return nil, fmt.Errorf("variable %d out of range in family %q (varnum is %d)", v, arg, cfg.Varnum)
				}
				varnum = max(varnum, v+1)
			}
		}
	}
	options, err := cfg.options()
	if err != nil {
		return nil, err
	}
	m, err := zudd.New(varnum, options...)
	if err != nil {
		return nil, err
	}
	s := &workspace{m: m, args: ctx.Args().Slice()}
	for k, f := range families {
		e, err := m.Family(f...)
		if err != nil {
			return nil, fmt.Errorf("cannot build family %q: %w", s.args[k], err)
		}
		s.roots = append(s.roots, m.Ref(e))
	}
	return s, nil
}
