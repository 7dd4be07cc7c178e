// Package mmfile provides read-write memory mappings of fixed-size files.
package mmfile

import (
	"errors"
	"fmt"
	"os"
)

// ErrEmpty indicates an attempt to map a zero-length file.
var ErrEmpty = errors.New("mmfile: empty file")

// Mapping is a writable view of a whole file. Writes to Bytes() reach the file
// after Sync or Close.
type Mapping struct {
	path   string
	data   []byte
	closed bool
}

// Create creates or truncates the file at path, fills it with size zero bytes and maps it.
func Create(path string, size int) (*Mapping, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mmfile: invalid size %d", size)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	defer f.Close() // safe before return; mapping keeps pages alive

	if err := f.Truncate(int64(size)); err != nil {
		return nil, err
	}
	data, err := mapFile(f, size)
	if err != nil {
		return nil, err
	}
	return &Mapping{path: path, data: data}, nil
}

// Open maps an existing file at its current size.
func Open(path string) (*Mapping, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	if size > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("mmfile: file too large to map (%d bytes)", size)
	}
	data, err := mapFile(f, int(size))
	if err != nil {
		return nil, err
	}
	return &Mapping{path: path, data: data}, nil
}

// Bytes returns the mapped contents. The slice is invalid after Close.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// Path returns the mapped file's path.
func (m *Mapping) Path() string {
	return m.path
}

// Sync flushes the mapping to the file.
func (m *Mapping) Sync() error {
	if m.closed {
		return nil
	}
	return flush(m.path, m.data)
}

// Close flushes and releases the mapping. Closing twice is a no-op.
func (m *Mapping) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	err := flush(m.path, m.data)
	if uerr := unmap(m.data); err == nil {
		err = uerr
	}
	m.data = nil
	return err
}
