// Package alloc provides a fixed-size heap allocator over a single byte buffer.
//
// # Overview
//
// An Allocator owns one buffer of fixed capacity and threads an address-ordered
// list of block headers through it. Every header is immediately followed by its
// payload, and the payload is immediately followed by the next header, so the
// blocks tile the buffer with no gaps:
//
//	+--------+-----------+--------+-----------+-----+--------+-----------+
//	| header | payload 0 | header | payload 1 | ... | header | payload n |
//	+--------+-----------+--------+-----------+-----+--------+-----------+
//	0                                                              capacity
//
// Headers are 16 bytes (see internal/format). Pointers handed to callers are
// payload offsets (Ptr); the header of a pointer is always at p - HeaderSize.
//
// # Allocation
//
// Allocate uses first fit: the list is scanned from the head and the first free
// block large enough wins. When the chosen block exceeds the request by more
// than one header, it is split and the tail becomes a new free block. A tighter
// block is handed out whole.
//
// # Deallocation
//
// Deallocate marks the block free and runs a single coalescing pass from the
// head, merging every run of adjacent free blocks into one. After any
// Deallocate returns, no two neighbouring blocks are both free.
//
// Pointers are validated before they are freed. The FreePolicy option selects
// whether an invalid pointer is reported (FreeStrict, the default) or logged
// and ignored (FreeIgnore).
//
// # Concurrency
//
// Allocator is not safe for concurrent use. Wrap it in a Locked when several
// goroutines share one heap.
//
// # Usage Example
//
//	a, err := alloc.New(alloc.DefaultCapacity, nil)
//	if err != nil {
//	    return err
//	}
//
//	p, err := a.Allocate(128)
//	if err != nil {
//	    return err // ErrInvalidSize or ErrOutOfMemory
//	}
//	buf, _ := a.Bytes(p)
//	copy(buf, "hello")
//
//	err = a.Deallocate(p)
//
// # File-backed heaps
//
// OpenFile and CreateFile map a file read-write and manage its contents the
// same way. Because headers live inside the buffer, a file can be closed and
// reopened later with its block list intact.
package alloc
