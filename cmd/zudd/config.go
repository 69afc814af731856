// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"unsafe"

	"github.com/dalzilio/zudd"
	"github.com/pbnjay/memory"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// toolConfig contains the parameters of the manager built by a command. Values
// are read from the file given with --config, then overridden by the flags
// that are set on the command line.
type toolConfig struct {
	Varnum    int    `yaml:"varnum"`
	Nodesize  int    `yaml:"nodesize"`
	Cachesize int    `yaml:"cachesize"`
	MaxNodes  string `yaml:"max_nodes"`
	MemoLimit int    `yaml:"memo_limit"`
	Verbose   bool   `yaml:"verbose"`
}

// nodeBytes is an estimate of the memory used by one node, including its
// share of the subtables.
const nodeBytes = 2 * int(unsafe.Sizeof(struct {
	level, then, els, ref, scratch int32
	tag                            uint8
}{}))

func loadConfig(path string) (toolConfig, error) {
	var cfg toolConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	return cfg, nil
}

// configFromContext merges the config file with the global flags.
func configFromContext(ctx *cli.Context) (toolConfig, error) {
	cfg, err := loadConfig(ctx.String(configFlag.Name))
	if err != nil {
		return cfg, err
	}
	if ctx.IsSet(varnumFlag.Name) {
		cfg.Varnum = ctx.Int(varnumFlag.Name)
	}
	if ctx.IsSet(nodesizeFlag.Name) {
		cfg.Nodesize = ctx.Int(nodesizeFlag.Name)
	}
	if ctx.IsSet(maxNodesFlag.Name) {
		cfg.MaxNodes = ctx.String(maxNodesFlag.Name)
	}
	if ctx.IsSet(memoLimitFlag.Name) {
		cfg.MemoLimit = ctx.Int(memoLimitFlag.Name)
	}
	if ctx.IsSet(verboseFlag.Name) {
		cfg.Verbose = ctx.Bool(verboseFlag.Name)
	}
	return cfg, nil
}

// maxNodes returns the node limit for the manager. The value "auto" allows a
// quarter of the physical memory.
func (cfg toolConfig) maxNodes() (int, error) {
	switch cfg.MaxNodes {
	case "", "0":
		return 0, nil
	case "auto":
		total := memory.TotalMemory()
		if total == 0 {
			return 0, nil
		}
		return int(min(total/4/uint64(nodeBytes), 1<<31-1)), nil
	}
	n, err := strconv.Atoi(cfg.MaxNodes)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid value for max-nodes: %q", cfg.MaxNodes)
	}
	return n, nil
}

func (cfg toolConfig) logger() *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// options returns the configuration options of the manager.
func (cfg toolConfig) options() ([]zudd.Option, error) {
	limit, err := cfg.maxNodes()
	if err != nil {
		return nil, err
	}
	options := []zudd.Option{
		zudd.Maxnodesize(limit),
		zudd.Memolimit(cfg.MemoLimit),
		zudd.WithLogger(cfg.logger()),
	}
	if cfg.Nodesize > 0 {
		options = append(options, zudd.Nodesize(cfg.Nodesize))
	}
	if cfg.Cachesize > 0 {
		options = append(options, zudd.Cachesize(cfg.Cachesize))
	}
	return options, nil
}
