package alloc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshuapare/fixheap/internal/buf"
	"github.com/joshuapare/fixheap/internal/format"
)

// Allocator is a first-fit heap over one fixed-capacity buffer.
// - Block headers are stored in the buffer; the list head is always offset 0
// - Allocation scans the list in address order and splits oversized blocks
// - Deallocation coalesces runs of adjacent free blocks in one pass
//
// The zero value is not usable; construct with New, Format or Attach.
type Allocator struct {
	buf    []byte
	policy FreePolicy
	log    *slog.Logger

	// Statistics for testing and instrumentation
	stats allocatorStats
}

// allocatorStats holds operation counters.
type allocatorStats struct {
	AllocCalls   int // Successful Allocate() calls
	FailedAllocs int // Allocate() calls that returned an error
	FreeCalls    int // Blocks returned by Deallocate()
	InvalidFrees int // Deallocate() calls rejected or ignored by validation
	Splits       int // Blocks split during allocation
	Merges       int // Headers absorbed during coalescing
}

// New allocates a buffer of capacity bytes and formats it as a single free block.
func New(capacity int, opts *Options) (*Allocator, error) {
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	return Format(make([]byte, capacity), opts)
}

// Format takes ownership of data and formats it as a single free block. Any
// previous contents are discarded.
func Format(data []byte, opts *Options) (*Allocator, error) {
	if err := checkCapacity(len(data)); err != nil {
		return nil, err
	}
	a := newAllocator(data, opts)
	a.initialize()
	return a, nil
}

// Attach takes ownership of a buffer that already holds a block list, such as
// one written by a previous Allocator, and verifies it before use.
func Attach(data []byte, opts *Options) (*Allocator, error) {
	if err := checkCapacity(len(data)); err != nil {
		return nil, err
	}
	a := newAllocator(data, opts)
	if err := a.Verify(); err != nil {
		return nil, err
	}
	return a, nil
}

func newAllocator(data []byte, opts *Options) *Allocator {
	o := resolveOptions(opts)
	return &Allocator{
		buf:    data,
		policy: o.FreePolicy,
		log:    o.Logger,
	}
}

func checkCapacity(capacity int) error {
	if capacity <= HeaderSize || capacity > MaxCapacity {
		return fmt.Errorf("capacity %d outside (%d, %d]: %w", capacity, HeaderSize, MaxCapacity, ErrBadCapacity)
	}
	return nil
}

// initialize installs one free block spanning the whole buffer.
func (a *Allocator) initialize() {
	clear(a.buf)
	format.PutHeader(a.buf, format.Header{
		Offset: 0,
		Size:   uint32(len(a.buf) - HeaderSize),
		Free:   true,
		Next:   format.NoNext,
	})
}

// Reset discards every allocation and counter, leaving one free block.
func (a *Allocator) Reset() {
	a.initialize()
	a.stats = allocatorStats{}
}

// Capacity returns the buffer size in bytes, headers included.
func (a *Allocator) Capacity() int {
	return len(a.buf)
}

// Allocate reserves size bytes using first fit and returns the payload pointer.
// On failure it returns Null with ErrInvalidSize or ErrOutOfMemory and the
// block list is left untouched.
func (a *Allocator) Allocate(size int) (Ptr, error) {
	if size <= 0 || size > len(a.buf) {
		a.stats.FailedAllocs++
		return Null, fmt.Errorf("allocate %d bytes: %w", size, ErrInvalidSize)
	}

	h, ok := a.findFit(size)
	if !ok {
		a.stats.FailedAllocs++
		if a.log.Enabled(context.Background(), slog.LevelDebug) {
			a.log.Debug("alloc: no fit", "size", size, "largest_free", a.largestFree())
		}
		return Null, fmt.Errorf("allocate %d bytes: %w", size, ErrOutOfMemory)
	}

	if int(h.Size) > size+HeaderSize {
		a.split(h, size)
	} else {
		format.SetFree(a.buf, h.Offset, false)
	}
	a.stats.AllocCalls++
	return Ptr(h.PayloadOffset()), nil
}

// findFit returns the first free block with at least size payload bytes.
func (a *Allocator) findFit(size int) (format.Header, bool) {
	off := 0
	for {
		h := format.Peek(a.buf, off)
		if h.Free && int(h.Size) >= size {
			return h, true
		}
		if !h.HasNext() {
			return format.Header{}, false
		}
		off = int(h.Next)
	}
}

// split carves h into an allocated block of size bytes followed by a free
// remainder. The caller guarantees h.Size > size + HeaderSize.
func (a *Allocator) split(h format.Header, size int) {
	tail := format.Header{
		Offset: h.Offset + HeaderSize + size,
		Size:   h.Size - uint32(size) - HeaderSize,
		Free:   true,
		Next:   h.Next,
	}
	format.PutHeader(a.buf, tail)

	h.Size = uint32(size)
	h.Free = false
	h.Next = uint32(tail.Offset)
	format.PutHeader(a.buf, h)

	a.stats.Splits++
	a.log.Debug("alloc: split", "block", h.Offset, "size", size, "remainder", tail.Size)
}

// Deallocate marks the block behind p free and coalesces adjacent free blocks.
// Deallocate(Null) is a no-op. A pointer that is not the payload of an
// allocated block is handled according to the configured FreePolicy.
func (a *Allocator) Deallocate(p Ptr) error {
	if p == Null {
		return nil
	}

	h, reason := a.lookup(p)
	if reason != "" {
		a.stats.InvalidFrees++
		if a.policy == FreeIgnore {
			a.log.Warn("alloc: ignoring invalid free", "ptr", uint32(p), "reason", reason)
			return nil
		}
		return fmt.Errorf("deallocate %d: %s: %w", p, reason, ErrInvalidFree)
	}

	format.SetFree(a.buf, h.Offset, true)
	a.stats.FreeCalls++
	a.mergeFreeBlocks()
	return nil
}

// mergeFreeBlocks walks the list from the head and absorbs every free
// successor of a free block. current is re-checked after each merge so runs
// of three or more free blocks collapse into one.
func (a *Allocator) mergeFreeBlocks() {
	cur := format.Peek(a.buf, 0)
	for cur.HasNext() {
		next := format.Peek(a.buf, int(cur.Next))
		if cur.Free && next.Free {
			cur.Size += HeaderSize + next.Size
			cur.Next = next.Next
			format.PutHeader(a.buf, cur)
			format.ClearHeader(a.buf, next.Offset)
			a.stats.Merges++
			a.log.Debug("alloc: merge", "block", cur.Offset, "absorbed", next.Offset, "size", cur.Size)
			continue
		}
		cur = next
	}
}

// lookup finds the allocated block whose payload starts at p. It returns a
// non-empty reason when p is not such a payload.
func (a *Allocator) lookup(p Ptr) (format.Header, string) {
	off := int(p) - HeaderSize
	// A payload needs at least one byte after its header.
	if !buf.Has(a.buf, off, HeaderSize+1) {
		return format.Header{}, "outside buffer"
	}
	cur := 0
	for {
		h := format.Peek(a.buf, cur)
		if h.Offset == off {
			if h.Free {
				return format.Header{}, "block already free"
			}
			return h, ""
		}
		if h.Offset > off || !h.HasNext() {
			return format.Header{}, "not a block payload"
		}
		cur = int(h.Next)
	}
}

// Bytes returns the payload of the allocated block at p. The slice length is
// the block size, which can exceed the requested size when a tight fit was
// handed out whole; its capacity stops at the next header.
func (a *Allocator) Bytes(p Ptr) ([]byte, error) {
	h, reason := a.lookup(p)
	if reason != "" {
		return nil, fmt.Errorf("bytes %d: %s: %w", p, reason, ErrBadPtr)
	}
	start, end := h.PayloadOffset(), h.End()
	return a.buf[start:end:end], nil
}

// SizeOf returns the usable payload size of the allocated block at p.
func (a *Allocator) SizeOf(p Ptr) (int, error) {
	h, reason := a.lookup(p)
	if reason != "" {
		return 0, fmt.Errorf("size of %d: %s: %w", p, reason, ErrBadPtr)
	}
	return int(h.Size), nil
}

func (a *Allocator) largestFree() int {
	largest := 0
	a.Walk(func(b Block) bool {
		if b.Free && b.Size > largest {
			largest = b.Size
		}
		return true
	})
	return largest
}
