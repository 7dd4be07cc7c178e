package alloc

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestAllocator returns a strict allocator with the given capacity.
func newTestAllocator(t testing.TB, capacity int) *Allocator {
	t.Helper()
	a, err := New(capacity, nil)
	require.NoError(t, err)
	return a
}

// mustAlloc allocates size bytes and fails the test on error.
func mustAlloc(t testing.TB, a *Allocator, size int) Ptr {
	t.Helper()
	p, err := a.Allocate(size)
	require.NoError(t, err, "Allocate(%d)", size)
	require.NotEqual(t, Null, p)
	return p
}

// requireInvariants checks the layout invariants and the byte accounting.
func requireInvariants(t testing.TB, a *Allocator) {
	t.Helper()
	require.NoError(t, a.Verify())

	s := a.Stats()
	require.Equal(t, a.Capacity(), s.UsedBytes+s.FreeBytes+s.OverheadBytes,
		"sizes plus headers must cover the buffer")

	blocks := a.Blocks()
	for i := 1; i < len(blocks); i++ {
		require.False(t, blocks[i-1].Free && blocks[i].Free,
			"blocks at %d and %d are both free", blocks[i-1].Offset, blocks[i].Offset)
	}
}

// captureLogger returns a logger writing text records at DEBUG into buf.
func captureLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
