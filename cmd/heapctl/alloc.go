package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newAllocCmd())
}

func newAllocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alloc <file> <size>",
		Short: "Allocate a block in a heap file",
		Long: `The alloc command reserves size bytes with first fit and prints the
payload pointer. The block stays allocated in the file until freed.

Example:
  heapctl alloc heap.bin 128
  heapctl alloc heap.bin 4096 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlloc(args)
		},
	}
	return cmd
}

type allocResult struct {
	Ptr       uint32 `json:"ptr"`
	Requested int    `json:"requested"`
	Size      int    `json:"size"`
}

func runAlloc(args []string) (err error) {
	size, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", args[1], err)
	}

	h, err := openHeap(args[0])
	if err != nil {
		return err
	}
	defer closeHeap(h, &err)

	p, err := h.Allocate(size)
	if err != nil {
		return err
	}
	got, err := h.SizeOf(p)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(allocResult{Ptr: uint32(p), Requested: size, Size: got})
	}
	printInfo("%d\n", p)
	printVerbose("Block size: %d bytes\n", got)
	return nil
}
