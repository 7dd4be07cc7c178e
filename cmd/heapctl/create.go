package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fixheap/alloc"
	"github.com/joshuapare/fixheap/internal/logger"
)

var (
	createCapacity int
	createForce    bool
)

func init() {
	cmd := newCreateCmd()
	cmd.Flags().IntVar(&createCapacity, "capacity", 0, "Heap capacity in bytes (default from config)")
	cmd.Flags().BoolVarP(&createForce, "force", "f", false, "Overwrite an existing file")
	rootCmd.AddCommand(cmd)
}

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <file>",
		Short: "Create an empty file-backed heap",
		Long: `The create command writes a new heap file holding a single free block.

Example:
  heapctl create heap.bin
  heapctl create heap.bin --capacity 65536 --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args)
		},
	}
	return cmd
}

func runCreate(args []string) (err error) {
	path := args[0]
	capacity := createCapacity
	if capacity == 0 {
		capacity = cfg.Capacity
	}

	if _, statErr := os.Stat(path); statErr == nil && !createForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return fmt.Errorf("failed to stat file: %w", statErr)
	}

	printVerbose("Creating heap: %s (%d bytes)\n", path, capacity)
	h, err := alloc.CreateFile(path, capacity, allocOptions())
	if err != nil {
		return fmt.Errorf("failed to create heap: %w", err)
	}
	defer closeHeap(h, &err)
	logger.Info("heap created", "path", path, "capacity", capacity)

	s := h.Stats()
	if jsonOut {
		return printJSON(map[string]any{
			"path":     path,
			"capacity": s.Capacity,
			"free":     s.FreeBytes,
		})
	}
	printInfo("Created %s: %d bytes, %d free\n", path, s.Capacity, s.FreeBytes)
	return nil
}
