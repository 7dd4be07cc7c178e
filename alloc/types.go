package alloc

import "github.com/joshuapare/fixheap/internal/format"

// Ptr is a payload offset into the allocator's buffer.
type Ptr uint32

// Null is the empty pointer. No payload ever starts at offset 0 because the
// first header occupies it.
const Null Ptr = 0

const (
	// HeaderSize is the per-block overhead in bytes.
	HeaderSize = format.HeaderSize

	// DefaultCapacity is the buffer size used when none is configured (100 KiB).
	DefaultCapacity = 102400

	// MaxCapacity is the largest supported buffer.
	MaxCapacity = format.MaxBufferSize
)

// Heap is the allocate/deallocate contract shared by Allocator and Locked.
type Heap interface {
	// Allocate reserves size bytes and returns the payload pointer.
	Allocate(size int) (Ptr, error)

	// Deallocate returns a block to the heap. Deallocate(Null) is a no-op.
	Deallocate(p Ptr) error
}

// Block describes one entry of the block list.
type Block struct {
	Offset int  `json:"offset"` // Header offset
	Ptr    Ptr  `json:"ptr"`    // Payload offset
	Size   int  `json:"size"`   // Payload size
	Free   bool `json:"free"`
	Next   int  `json:"next"` // Next header offset, -1 for the last block
}

func blockFromHeader(h format.Header) Block {
	next := -1
	if h.HasNext() {
		next = int(h.Next)
	}
	return Block{
		Offset: h.Offset,
		Ptr:    Ptr(h.PayloadOffset()),
		Size:   int(h.Size),
		Free:   h.Free,
		Next:   next,
	}
}
