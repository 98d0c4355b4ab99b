package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/udisondev/lightning/internal/calc"
	"github.com/udisondev/lightning/internal/modifier"
)

var errUnparsed = errors.New("no modifier template matched")

func (a *app) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse a modifier line and print the resulting modifiers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			mods, ok := a.parser.Parse(text, modifier.Innate)
			if !ok {
				return fmt.Errorf("parsing %q: %w", text, errUnparsed)
			}
			for _, m := range mods {
				fmt.Fprintln(cmd.OutOrStdout(), m.String())
			}
			return nil
		},
	}
}

func (a *app) defenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defence <build.yaml>",
		Short: "Summarise life, resistances and defences of a build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.loadBuild(args[0])
			if err != nil {
				return err
			}
			printSummary(cmd, calc.Defence(b))
			return nil
		},
	}
}

func (a *app) offenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "offence <build.yaml>",
		Short: "Summarise every active skill of a build with its linked supports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.loadBuild(args[0])
			if err != nil {
				return err
			}
			for _, link := range b.GemLinks {
				for _, active := range link.Active() {
					s, err := calc.Offence(b, active, link.Supports())
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "== %s (%s)\n", active.Data.Name, link.Slot)
					printSummary(cmd, s)
				}
			}
			return nil
		},
	}
}

func (a *app) compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <a.yaml> <b.yaml>",
		Short: "Print the defence changes going from build a to build b",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := a.loadBuild(args[0])
			if err != nil {
				return err
			}
			after, err := a.loadBuild(args[1])
			if err != nil {
				return err
			}
			printSummary(cmd, calc.Compare(calc.Defence(before), calc.Defence(after)))
			return nil
		},
	}
}
