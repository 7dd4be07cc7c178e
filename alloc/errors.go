package alloc

import "errors"

var (
	// ErrInvalidSize indicates a request that is non-positive or larger than the buffer.
	ErrInvalidSize = errors.New("alloc: invalid size")

	// ErrOutOfMemory indicates that no free block is large enough for the request.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrInvalidFree indicates a pointer that is not the payload of an allocated block.
	ErrInvalidFree = errors.New("alloc: invalid free")

	// ErrBadPtr indicates an accessor was given a pointer that is not an allocated payload.
	ErrBadPtr = errors.New("alloc: bad pointer")

	// ErrBadCapacity indicates a buffer too small to hold one block or too large to address.
	ErrBadCapacity = errors.New("alloc: bad capacity")

	// ErrCorrupt indicates a buffer whose block list violates the layout invariants.
	ErrCorrupt = errors.New("alloc: corrupt block list")
)
