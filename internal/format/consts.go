// Package format houses the on-buffer layout of fixheap block headers. Headers
// live inside the managed buffer itself, immediately before the payload they
// describe, so everything here works on a byte slice plus an offset.
package format

// BlockSignature is the two-byte tag at the start of every block header.
// Layout:
//
//	0x00  'b' 'k'
var BlockSignature = []byte{'b', 'k'}

const (
	// HeaderSize is the number of bytes consumed by a block header. It matches
	// the footprint of a {size, free, next} record on 64-bit platforms.
	HeaderSize = 16

	// SignatureSize is the length of BlockSignature.
	SignatureSize = 2

	// NoNext marks the last block in the list.
	NoNext = 0xFFFFFFFF

	// MaxBufferSize is the largest buffer addressable with 32-bit offsets
	// while keeping NoNext out of range.
	MaxBufferSize = 0x7FFFFFFF
)

// Block header layout (little-endian):
//
//	Offset  Size  Description
//	0x00    2     Signature "bk"
//	0x02    2     Flags (bit 0 set => free)
//	0x04    4     Payload size in bytes, header excluded
//	0x08    4     Offset of the next header, NoNext for the last block
//	0x0C    4     Reserved, always zero
const (
	BlockSignatureOffset = 0x00
	BlockFlagsOffset     = 0x02
	BlockSizeOffset      = 0x04
	BlockNextOffset      = 0x08
	BlockReservedOffset  = 0x0C
)

// FlagFree is set in the flags field while a block is available.
const FlagFree uint16 = 0x0001
