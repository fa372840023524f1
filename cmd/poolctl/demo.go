package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/poolkit/list"
	"github.com/joshuapare/poolkit/pool"
)

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	var capacity int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk a pool-backed linked list through its operations",
		Long: `The demo command builds a singly linked list whose nodes live inside a
pool, mutates it, and prints the allocator state along the way.

Example:
  poolctl demo --capacity 4096`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(capacity)
		},
	}

	cmd.Flags().IntVar(&capacity, "capacity", 4096, "Pool capacity in bytes")
	return cmd
}

func runDemo(capacity int) error {
	p, err := pool.New(capacity)
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}
	defer p.Close()

	l := list.New(p)
	for _, v := range []uint16{10, 20, 40} {
		if _, appendErr := l.Append(v); appendErr != nil {
			return fmt.Errorf("append %d: %w", v, appendErr)
		}
	}
	printInfo("After appends:        %s\n", l)

	node, ok := l.Find(40)
	if !ok {
		return fmt.Errorf("expected to find 40")
	}
	if _, err := l.InsertBefore(node, 30); err != nil {
		return fmt.Errorf("insert before: %w", err)
	}
	printInfo("After insert-before:  %s\n", l)

	if _, err := l.Remove(20); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	printInfo("After remove:         %s (%d nodes)\n", l, l.Len())

	printVerbose("\nAllocator state with the list live:\n%s", pool.FormatStats(p.Stats()))

	l.Clear()
	printInfo("After clear:          %s\n", l)
	printInfo("\n%s", pool.FormatStats(p.Stats()))
	return nil
}
