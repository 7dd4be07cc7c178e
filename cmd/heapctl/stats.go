package main

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Show heap statistics",
		Long: `The stats command summarises block counts, byte usage and
fragmentation of a heap file.

Example:
  heapctl stats heap.bin
  heapctl stats heap.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

type heapStats struct {
	Path          string  `json:"path"`
	Capacity      int     `json:"capacity"`
	Blocks        int     `json:"blocks"`
	UsedBlocks    int     `json:"used_blocks"`
	FreeBlocks    int     `json:"free_blocks"`
	UsedBytes     int     `json:"used_bytes"`
	FreeBytes     int     `json:"free_bytes"`
	OverheadBytes int     `json:"overhead_bytes"`
	LargestFree   int     `json:"largest_free"`
	Fragmentation float64 `json:"fragmentation"`
}

func runStats(args []string) (err error) {
	path := args[0]
	h, err := openHeap(path)
	if err != nil {
		return err
	}
	defer closeHeap(h, &err)

	s := h.Stats()
	stats := heapStats{
		Path:          path,
		Capacity:      s.Capacity,
		Blocks:        s.Blocks,
		UsedBlocks:    s.UsedBlocks(),
		FreeBlocks:    s.FreeBlocks,
		UsedBytes:     s.UsedBytes,
		FreeBytes:     s.FreeBytes,
		OverheadBytes: s.OverheadBytes,
		LargestFree:   s.LargestFree,
		Fragmentation: s.Fragmentation(),
	}

	if jsonOut {
		return printJSON(stats)
	}

	p := message.NewPrinter(language.English)
	size := func(n int) string {
		return p.Sprintf("%s (%d bytes)", humanize.IBytes(uint64(n)), n)
	}

	printInfo("\nHeap Statistics: %s\n", path)
	printInfo("%s\n\n", strings.Repeat("=", 40))

	printInfo("Capacity: %s\n\n", size(stats.Capacity))

	printInfo("Blocks:\n")
	printInfo("  Total: %s\n", p.Sprintf("%d", stats.Blocks))
	printInfo("  Used: %s\n", p.Sprintf("%d", stats.UsedBlocks))
	printInfo("  Free: %s\n\n", p.Sprintf("%d", stats.FreeBlocks))

	printInfo("Bytes:\n")
	printInfo("  Used: %s\n", size(stats.UsedBytes))
	printInfo("  Free: %s\n", size(stats.FreeBytes))
	printInfo("  Headers: %s\n", size(stats.OverheadBytes))
	printInfo("  Largest free block: %s\n", size(stats.LargestFree))
	printInfo("  Fragmentation: %.1f%%\n", stats.Fragmentation*100)
	return nil
}
