package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/udisondev/lightning/internal/tree"
)

func (a *app) treeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Query and edit the passive tree allocation of a build",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path <build.yaml> <node>",
			Short: "Print the nodes that allocating node would add",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := a.loadBuild(args[0])
				if err != nil {
					return err
				}
				node, err := parseNode(args[1])
				if err != nil {
					return err
				}
				path, ok := b.Tree.FindPath(node)
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "node %d is unreachable\n", node)
					return nil
				}
				// drop the allocated anchor, print from it outward
				path = path[:len(path)-1]
				slices.Reverse(path)
				for _, id := range path {
					fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", id, b.Tables().Tree.Node(id).Name)
				}
				return nil
			},
		},
		a.treeEditCmd("alloc", "Allocate node and the path to it", (*tree.Allocation).Allocate),
		a.treeEditCmd("dealloc", "Deallocate node and everything cut off by it", (*tree.Allocation).Deallocate),
	)
	return cmd
}

func (a *app) treeEditCmd(use, short string, edit func(*tree.Allocation, uint16) tree.Change) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <build.yaml> <node>",
		Short: short + ", then save the build",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.loadBuild(args[0])
			if err != nil {
				return err
			}
			node, err := parseNode(args[1])
			if err != nil {
				return err
			}
			c := edit(b.Tree, node)
			fmt.Fprintf(cmd.OutOrStdout(), "%s added=%v removed=%v\n", c.Outcome, c.Added, c.Removed)
			if c.Outcome != tree.Applied {
				return nil
			}
			return b.SaveFile(args[0])
		},
	}
}

func parseNode(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("parsing node id %q: %w", s, err)
	}
	return uint16(n), nil
}
