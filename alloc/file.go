package alloc

import (
	"errors"
	"fmt"
	"os"

	"github.com/joshuapare/fixheap/internal/mmfile"
)

// FileArena is an Allocator whose buffer is a memory-mapped file.
type FileArena struct {
	*Allocator
	m *mmfile.Mapping
}

// CreateFile creates (or truncates) path to capacity bytes and formats it as
// an empty heap.
func CreateFile(path string, capacity int, opts *Options) (*FileArena, error) {
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	m, err := mmfile.Create(path, capacity)
	if err != nil {
		return nil, fmt.Errorf("create heap file: %w", err)
	}
	a, err := Format(m.Bytes(), opts)
	if err != nil {
		_ = m.Close()
		return nil, err
	}
	return &FileArena{Allocator: a, m: m}, nil
}

// OpenFile opens the heap stored at path. A missing or empty file is created
// with capacity bytes and formatted. An existing file is verified and its
// allocations are kept; capacity 0 accepts any file size, otherwise the file
// size must equal capacity.
func OpenFile(path string, capacity int, opts *Options) (*FileArena, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist), err == nil && info.Size() == 0:
		if capacity == 0 {
			capacity = DefaultCapacity
		}
		return CreateFile(path, capacity, opts)
	case err != nil:
		return nil, fmt.Errorf("open heap file: %w", err)
	}

	if capacity != 0 && info.Size() != int64(capacity) {
		return nil, fmt.Errorf("%s holds %d bytes, want %d: %w", path, info.Size(), capacity, ErrBadCapacity)
	}
	m, err := mmfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open heap file: %w", err)
	}
	a, err := Attach(m.Bytes(), opts)
	if err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &FileArena{Allocator: a, m: m}, nil
}

// Path returns the backing file's path.
func (f *FileArena) Path() string {
	return f.m.Path()
}

// Sync flushes the heap to its file.
func (f *FileArena) Sync() error {
	return f.m.Sync()
}

// Close flushes and unmaps the file. The arena must not be used afterwards.
func (f *FileArena) Close() error {
	return f.m.Close()
}
