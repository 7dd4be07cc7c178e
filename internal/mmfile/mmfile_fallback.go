//go:build !linux && !darwin && !freebsd

package mmfile

import (
	"io"
	"os"
)

// mapFile reads the file into memory when mmap is not available; flush writes
// it back.
func mapFile(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	return data, nil
}

func flush(path string, data []byte) error {
	if data == nil {
		return nil
	}
	return os.WriteFile(path, data, 0o644)
}

func unmap([]byte) error {
	return nil
}
