package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fixheap/alloc"
	"github.com/joshuapare/fixheap/internal/config"
	"github.com/joshuapare/fixheap/internal/logger"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	configPath string

	// cfg is replaced by the loaded configuration before any command runs.
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Create and inspect fixed-capacity first-fit heaps",
	Long: `heapctl drives a first-fit heap allocator over a fixed buffer.
Heaps can live in memory (demo) or in a memory-mapped file that keeps its
block list between runs.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", config.DefaultPath(), "Config file (YAML)")
}

// setup loads configuration and initializes logging.
func setup(_ *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = *c

	level := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	return logger.Init(logger.Options{
		Enabled: verbose || cfg.LogFile != "",
		File:    cfg.LogFile,
		Level:   level,
	})
}

func execute() {
	err := rootCmd.Execute()
	if cerr := logger.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// allocOptions returns allocator options from the loaded configuration.
func allocOptions() *alloc.Options {
	return cfg.AllocOptions(logger.L)
}

// openHeap opens an existing heap file.
func openHeap(path string) (*alloc.FileArena, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open heap: %w", err)
	}
	printVerbose("Opening heap: %s\n", path)
	h, err := alloc.OpenFile(path, 0, allocOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open heap: %w", err)
	}
	logger.Debug("heap opened", "path", path, "capacity", h.Capacity())
	return h, nil
}

// closeHeap closes h, keeping the first error.
func closeHeap(h *alloc.FileArena, err *error) {
	if cerr := h.Close(); *err == nil && cerr != nil {
		*err = fmt.Errorf("failed to close heap: %w", cerr)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
