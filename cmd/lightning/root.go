package main

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/udisondev/lightning/internal/build"
	"github.com/udisondev/lightning/internal/calc"
	"github.com/udisondev/lightning/internal/config"
	"github.com/udisondev/lightning/internal/data"
	"github.com/udisondev/lightning/internal/modifier"
)

// app is the state shared by every subcommand, filled in before any of
// them runs.
type app struct {
	cfgPath string
	cfg     config.Config
	tables  *data.Tables
	parser  *modifier.Parser
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "lightning",
		Short:         "Character build calculator",
		Long:          "lightning parses modifier text, edits passive tree allocations and summarises build defence and offence.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")

	root.AddCommand(
		a.parseCmd(),
		a.defenceCmd(),
		a.offenceCmd(),
		a.compareCmd(),
		a.treeCmd(),
		a.buildCmd(),
	)
	return root
}

func (a *app) init() error {
	path := a.cfgPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	tables, err := data.Load(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("loading data: %w", err)
	}
	a.tables = tables

	var cache *modifier.Cache
	if cfg.ParserCache {
		cache = modifier.NewCache()
	}
	a.parser = modifier.NewParser(cache)
	return nil
}

func (a *app) loadBuild(path string) (*build.Build, error) {
	return build.LoadFile(a.tables, a.parser, path)
}

func printSummary(cmd *cobra.Command, s calc.Summary) {
	out := cmd.OutOrStdout()
	for _, k := range slices.Sorted(maps.Keys(s)) {
		fmt.Fprintf(out, "%s: %d\n", k, s[k])
	}
}
