package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fixheap/alloc"
)

func init() {
	rootCmd.AddCommand(newFreeCmd())
}

func newFreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "free <file> <ptr>",
		Short: "Free a block in a heap file",
		Long: `The free command returns the block at ptr to the heap and merges
adjacent free blocks. ptr is a value printed by alloc.

Example:
  heapctl free heap.bin 16`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFree(args)
		},
	}
	return cmd
}

func runFree(args []string) (err error) {
	v, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return fmt.Errorf("invalid pointer %q: %w", args[1], err)
	}
	p := alloc.Ptr(v)

	h, err := openHeap(args[0])
	if err != nil {
		return err
	}
	defer closeHeap(h, &err)

	if err := h.Deallocate(p); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{"ptr": uint32(p), "freed": true})
	}
	printVerbose("Freed %d\n", p)
	return nil
}
