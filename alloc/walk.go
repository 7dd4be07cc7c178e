package alloc

import (
	"fmt"

	"github.com/joshuapare/fixheap/internal/buf"
	"github.com/joshuapare/fixheap/internal/format"
)

// Walk calls fn for every block in address order until fn returns false.
func (a *Allocator) Walk(fn func(Block) bool) {
	off := 0
	for {
		h := format.Peek(a.buf, off)
		if !fn(blockFromHeader(h)) || !h.HasNext() {
			return
		}
		off = int(h.Next)
	}
}

// Blocks returns a snapshot of the block list in address order.
func (a *Allocator) Blocks() []Block {
	var blocks []Block
	a.Walk(func(b Block) bool {
		blocks = append(blocks, b)
		return true
	})
	return blocks
}

// Verify checks the block list against the layout invariants:
//   - every header decodes and its payload fits in the buffer
//   - each next offset is exactly where the previous payload ends
//   - the last payload ends at the buffer end, so sizes plus headers sum to capacity
//   - no two neighbouring blocks are both free
//
// Violations are reported wrapped in ErrCorrupt.
func (a *Allocator) Verify() error {
	total := 0
	prevFree := false
	off := 0
	// Every block consumes at least one header, which bounds the walk even on
	// a corrupted buffer.
	for n := 0; n <= len(a.buf)/HeaderSize; n++ {
		h, err := format.ParseHeader(a.buf, off)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		end, ok := buf.End(len(a.buf), h.PayloadOffset(), int(h.Size))
		if !ok {
			return fmt.Errorf("%w: block at %d ends at %d past capacity %d", ErrCorrupt, off, h.End(), len(a.buf))
		}
		if prevFree && h.Free {
			return fmt.Errorf("%w: adjacent free blocks ending at %d", ErrCorrupt, off)
		}
		total += HeaderSize + int(h.Size)
		if !h.HasNext() {
			if total != len(a.buf) {
				return fmt.Errorf("%w: blocks cover %d of %d bytes", ErrCorrupt, total, len(a.buf))
			}
			return nil
		}
		if int(h.Next) != end {
			return fmt.Errorf("%w: block at %d links to %d, want %d", ErrCorrupt, off, h.Next, end)
		}
		prevFree = h.Free
		off = end
	}
	return fmt.Errorf("%w: block list does not terminate", ErrCorrupt)
}
