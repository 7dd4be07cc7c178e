package format

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/fixheap/internal/buf"
)

// Header is the decoded form of a block header.
type Header struct {
	Offset int    // Offset of the header within the buffer
	Size   uint32 // Payload size, header excluded
	Free   bool   // True while the payload is available
	Next   uint32 // Offset of the following header, NoNext for the last block
}

// PayloadOffset returns the offset of the first payload byte.
func (h Header) PayloadOffset() int {
	return h.Offset + HeaderSize
}

// End returns the offset one past the last payload byte. For a well-formed
// list this is where the next header starts.
func (h Header) End() int {
	return h.Offset + HeaderSize + int(h.Size)
}

// HasNext reports whether another block follows this one.
func (h Header) HasNext() bool {
	return h.Next != NoNext
}

// ParseHeader decodes the block header stored at off.
func ParseHeader(b []byte, off int) (Header, error) {
	raw, ok := buf.Slice(b, off, HeaderSize)
	if !ok {
		return Header{}, fmt.Errorf("block at %d: %w", off, ErrTruncated)
	}
	if !bytes.Equal(raw[BlockSignatureOffset:BlockSignatureOffset+SignatureSize], BlockSignature) {
		return Header{}, fmt.Errorf("block at %d: %w", off, ErrSignatureMismatch)
	}
	if ReadU32(raw, BlockReservedOffset) != 0 {
		return Header{}, fmt.Errorf("block at %d: %w", off, ErrReserved)
	}
	return Header{
		Offset: off,
		Size:   ReadU32(raw, BlockSizeOffset),
		Free:   ReadU16(raw, BlockFlagsOffset)&FlagFree != 0,
		Next:   ReadU32(raw, BlockNextOffset),
	}, nil
}

// PutHeader encodes h at h.Offset. The caller guarantees the header fits.
func PutHeader(b []byte, h Header) {
	off := h.Offset
	copy(b[off+BlockSignatureOffset:], BlockSignature)
	var flags uint16
	if h.Free {
		flags |= FlagFree
	}
	PutU16(b, off+BlockFlagsOffset, flags)
	PutU32(b, off+BlockSizeOffset, h.Size)
	PutU32(b, off+BlockNextOffset, h.Next)
	PutU32(b, off+BlockReservedOffset, 0)
}

// SetFree rewrites only the flags field of the header at off.
func SetFree(b []byte, off int, free bool) {
	flags := ReadU16(b, off+BlockFlagsOffset) &^ FlagFree
	if free {
		flags |= FlagFree
	}
	PutU16(b, off+BlockFlagsOffset, flags)
}

// ClearHeader zeroes the header bytes at off so a spliced-out header can no
// longer be mistaken for a live one.
func ClearHeader(b []byte, off int) {
	clear(b[off : off+HeaderSize])
}

// Peek decodes the header at off without validating it. Use it only on
// offsets reached by walking a verified list.
func Peek(b []byte, off int) Header {
	return Header{
		Offset: off,
		Size:   ReadU32(b, off+BlockSizeOffset),
		Free:   ReadU16(b, off+BlockFlagsOffset)&FlagFree != 0,
		Next:   ReadU32(b, off+BlockNextOffset),
	}
}
