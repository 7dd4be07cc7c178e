package alloc

import (
	"fmt"
	"log/slog"
	"os"
)

// Runtime debug flag for allocation logging - controlled by FIXHEAP_LOG_ALLOC env var.
var logAlloc = os.Getenv("FIXHEAP_LOG_ALLOC") != ""

// FreePolicy selects how Deallocate treats pointers that fail validation.
type FreePolicy int

const (
	// FreeStrict rejects invalid pointers with ErrInvalidFree.
	FreeStrict FreePolicy = iota

	// FreeIgnore logs invalid pointers at WARN and returns nil.
	FreeIgnore
)

func (p FreePolicy) String() string {
	switch p {
	case FreeStrict:
		return "strict"
	case FreeIgnore:
		return "ignore"
	default:
		return fmt.Sprintf("FreePolicy(%d)", int(p))
	}
}

// ParseFreePolicy maps "strict" or "ignore" to a FreePolicy.
func ParseFreePolicy(s string) (FreePolicy, error) {
	switch s {
	case "strict", "":
		return FreeStrict, nil
	case "ignore":
		return FreeIgnore, nil
	default:
		return FreeStrict, fmt.Errorf("alloc: unknown free policy %q", s)
	}
}

// Options configures an Allocator.
//
// Use DefaultOptions() for the standard behaviour; a nil *Options means the same.
type Options struct {
	// FreePolicy decides what Deallocate does with an invalid pointer.
	// Default: FreeStrict
	FreePolicy FreePolicy

	// Logger receives DEBUG records for splits, merges and failed allocations
	// and WARN records for ignored frees.
	// Default: discard, or stderr at DEBUG when FIXHEAP_LOG_ALLOC is set.
	Logger *slog.Logger
}

// DefaultOptions returns the default allocator options.
func DefaultOptions() Options {
	return Options{
		FreePolicy: FreeStrict,
		Logger:     defaultLogger(),
	}
}

func defaultLogger() *slog.Logger {
	if logAlloc {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.DiscardHandler)
}

func resolveOptions(opts *Options) Options {
	if opts == nil {
		return DefaultOptions()
	}
	o := *opts
	if o.Logger == nil {
		o.Logger = defaultLogger()
	}
	return o
}
