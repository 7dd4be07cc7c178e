package main

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var dumpFreeOnly bool

func init() {
	cmd := newDumpCmd()
	cmd.Flags().BoolVar(&dumpFreeOnly, "free-only", false, "Show only free blocks")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "List every block of a heap file",
		Long: `The dump command prints the block list in address order.

Example:
  heapctl dump heap.bin
  heapctl dump heap.bin --free-only
  heapctl dump heap.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) (err error) {
	h, err := openHeap(args[0])
	if err != nil {
		return err
	}
	defer closeHeap(h, &err)

	blocks := h.Blocks()
	if dumpFreeOnly {
		kept := blocks[:0]
		for _, b := range blocks {
			if b.Free {
				kept = append(kept, b)
			}
		}
		blocks = kept
	}

	if jsonOut {
		return printJSON(blocks)
	}

	printInfo("%-10s %-10s %-10s %-10s %-6s %s\n", "HEADER", "PTR", "SIZE", "IEC", "STATE", "NEXT")
	printInfo("%s\n", strings.Repeat("-", 60))
	for _, b := range blocks {
		state := "used"
		if b.Free {
			state = "free"
		}
		next := "-"
		if b.Next >= 0 {
			next = humanize.Comma(int64(b.Next))
		}
		printInfo("%-10d %-10d %-10d %-10s %-6s %s\n",
			b.Offset, b.Ptr, b.Size, humanize.IBytes(uint64(b.Size)), state, next)
	}
	return nil
}
