package alloc

import "sync"

// Locked serialises access to an Allocator with a mutex so it can be shared
// between goroutines. Slices returned by Bytes are not covered by the lock.
type Locked struct {
	mu sync.Mutex
	a  *Allocator
}

var (
	_ Heap = (*Allocator)(nil)
	_ Heap = (*Locked)(nil)
)

// NewLocked wraps a. The caller must not use a directly afterwards.
func NewLocked(a *Allocator) *Locked {
	return &Locked{a: a}
}

// Allocate is Allocator.Allocate under the lock.
func (l *Locked) Allocate(size int) (Ptr, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Allocate(size)
}

// Deallocate is Allocator.Deallocate under the lock.
func (l *Locked) Deallocate(p Ptr) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Deallocate(p)
}

// Bytes is Allocator.Bytes under the lock.
func (l *Locked) Bytes(p Ptr) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Bytes(p)
}

// SizeOf is Allocator.SizeOf under the lock.
func (l *Locked) SizeOf(p Ptr) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.SizeOf(p)
}

// Capacity returns the buffer size.
func (l *Locked) Capacity() int {
	return l.a.Capacity()
}

// Blocks is Allocator.Blocks under the lock.
func (l *Locked) Blocks() []Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Blocks()
}

// Stats is Allocator.Stats under the lock.
func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Stats()
}

// Verify is Allocator.Verify under the lock.
func (l *Locked) Verify() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Verify()
}

// Reset is Allocator.Reset under the lock.
func (l *Locked) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.Reset()
}
