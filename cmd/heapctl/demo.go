package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fixheap/alloc"
)

var demoCapacity int

func init() {
	cmd := newDemoCmd()
	cmd.Flags().IntVar(&demoCapacity, "capacity", 0, "Heap capacity in bytes (default from config)")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the allocation walkthrough on an in-memory heap",
		Long: `The demo command allocates 128, 1024 and 4096 bytes, frees the
second block, re-allocates 512 bytes and then tries to allocate 100000 bytes.

Example:
  heapctl demo
  heapctl demo --capacity 204800 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	return cmd
}

// demoStep records one line of the walkthrough.
type demoStep struct {
	Op      string    `json:"op"`
	Size    int       `json:"size,omitempty"`
	Ptr     alloc.Ptr `json:"ptr,omitempty"`
	OK      bool      `json:"ok"`
	Message string    `json:"message"`
}

type demoResult struct {
	Steps []demoStep  `json:"steps"`
	Stats alloc.Stats `json:"stats"`
}

func runDemo() error {
	capacity := demoCapacity
	if capacity == 0 {
		capacity = cfg.Capacity
	}
	a, err := alloc.New(capacity, allocOptions())
	if err != nil {
		return err
	}

	steps, err := demoSequence(a)
	if err != nil {
		return err
	}
	if err := a.Verify(); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(demoResult{Steps: steps, Stats: a.Stats()})
	}
	for _, s := range steps {
		if s.Message != "" {
			printInfo("%s\n", s.Message)
		}
	}
	printVerbose("Blocks: %d, free bytes: %d\n", a.Stats().Blocks, a.Stats().FreeBytes)
	return nil
}

// demoSequence runs the walkthrough against h. Out-of-memory and invalid-size
// failures are reported as steps; any other error aborts.
func demoSequence(h alloc.Heap) ([]demoStep, error) {
	var steps []demoStep
	allocate := func(size int, msg string) (alloc.Ptr, error) {
		p, err := h.Allocate(size)
		if err != nil && !errors.Is(err, alloc.ErrOutOfMemory) && !errors.Is(err, alloc.ErrInvalidSize) {
			return alloc.Null, err
		}
		step := demoStep{Op: "allocate", Size: size, Ptr: p, OK: err == nil}
		if err == nil {
			step.Message = msg
		}
		steps = append(steps, step)
		return p, nil
	}
	free := func(p alloc.Ptr, msg string) error {
		if err := h.Deallocate(p); err != nil {
			return err
		}
		steps = append(steps, demoStep{Op: "deallocate", Ptr: p, OK: true, Message: msg})
		return nil
	}

	var mem [3]alloc.Ptr
	var err error
	for i, size := range []int{128, 1024, 4096} {
		if mem[i], err = allocate(size, ""); err != nil {
			return nil, err
		}
	}
	// Announced after all three, matching the walkthrough's output order.
	for i, size := range []int{128, 1024, 4096} {
		if mem[i] != alloc.Null {
			steps[i].Message = fmt.Sprintf("mem[%d] allocated %d bytes", i, size)
		}
	}

	if err := free(mem[1], "mem[1] deallocated"); err != nil {
		return nil, err
	}
	if mem[1], err = allocate(512, "mem[1] re-allocated 512 bytes"); err != nil {
		return nil, err
	}

	maxMem, err := allocate(100000, "Allocated nearly entire memory (100000 bytes)")
	if err != nil {
		return nil, err
	}
	if maxMem == alloc.Null {
		steps[len(steps)-1].Message = "Failed to allocate max memory (100000 bytes)"
		return steps, nil
	}
	if err := free(maxMem, "Deallocated max memory"); err != nil {
		return nil, err
	}
	return steps, nil
}
