package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The sequence below mirrors the demonstration program the allocator was
// designed around: 128, 1024 and 4096 byte blocks, free the middle one,
// reuse it for 512 bytes, then try to take nearly the whole heap.

func Test_Scenario_LargeRequestWhileBlocksLive(t *testing.T) {
	a := newTestAllocator(t, DefaultCapacity)

	p0 := mustAlloc(t, a, 128)
	p1 := mustAlloc(t, a, 1024)
	p2 := mustAlloc(t, a, 4096)
	require.Equal(t, Ptr(16), p0)
	require.Equal(t, Ptr(160), p1)
	require.Equal(t, Ptr(1200), p2)

	require.NoError(t, a.Deallocate(p1))
	blocks := a.Blocks()
	require.True(t, blocks[1].Free)
	require.Equal(t, 1024, blocks[1].Size)

	p1 = mustAlloc(t, a, 512)
	require.Equal(t, Ptr(160), p1, "first fit reuses the freed 1024-byte block")
	blocks = a.Blocks()
	require.Equal(t, Block{Offset: 672, Ptr: 688, Size: 496, Free: true, Next: 1184}, blocks[2])

	// The live blocks leave a 97088-byte tail, short of 100000.
	tail := blocks[len(blocks)-1]
	require.Equal(t, 97088, tail.Size)
	big, err := a.Allocate(100000)
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.Equal(t, Null, big)
	require.NoError(t, a.Deallocate(big), "deallocating the failed result is a no-op")
	requireInvariants(t, a)

	// Once everything is released the large request fits.
	require.NoError(t, a.Deallocate(p0))
	require.NoError(t, a.Deallocate(p1))
	require.NoError(t, a.Deallocate(p2))
	require.Len(t, a.Blocks(), 1)

	big = mustAlloc(t, a, 100000)
	require.Equal(t, Ptr(16), big)
	require.NoError(t, a.Deallocate(big))
	require.Len(t, a.Blocks(), 1)
	requireInvariants(t, a)
}

func Test_Scenario_LargeRequestOnFreshHeap(t *testing.T) {
	a := newTestAllocator(t, DefaultCapacity)

	big := mustAlloc(t, a, 100000)
	blocks := a.Blocks()
	require.Len(t, blocks, 2)
	require.Equal(t, DefaultCapacity-100000-2*HeaderSize, blocks[1].Size)

	// The small requests still fit in the remainder.
	p0 := mustAlloc(t, a, 128)
	p1 := mustAlloc(t, a, 1024)
	_, err := a.Allocate(4096)
	require.ErrorIs(t, err, ErrOutOfMemory)

	require.NoError(t, a.Deallocate(big))
	p2 := mustAlloc(t, a, 4096)
	require.Equal(t, Ptr(16), p2, "first fit takes the freed head block")

	for _, p := range []Ptr{p0, p1, p2} {
		require.NoError(t, a.Deallocate(p))
	}
	require.Len(t, a.Blocks(), 1)
	requireInvariants(t, a)
}
