package alloc

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

type liveBlock struct {
	size int
	fill byte
}

// Test_Property_RandomAllocFree drives random allocate/deallocate sequences and
// checks every invariant after each step: coverage of the buffer, no adjacent
// free blocks, disjoint live payloads and untouched payload contents.
func Test_Property_RandomAllocFree(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1337} {
		rng := rand.New(rand.NewSource(seed)) // Fixed seed for reproducibility
		a := newTestAllocator(t, 64*1024)
		live := make(map[Ptr]liveBlock)
		var order []Ptr

		for step := range 2000 {
			if len(order) == 0 || rng.Intn(100) < 55 {
				size := 1 + rng.Intn(3000)
				p, err := a.Allocate(size)
				if err != nil {
					require.ErrorIs(t, err, ErrOutOfMemory, "seed %d step %d", seed, step)
					require.Less(t, a.Stats().LargestFree, size,
						"seed %d step %d: out of memory with a fitting free block", seed, step)
					continue
				}
				fill := byte(rng.Intn(255) + 1)
				data, err := a.Bytes(p)
				require.NoError(t, err)
				require.GreaterOrEqual(t, len(data), size)
				for i := range data {
					data[i] = fill
				}
				live[p] = liveBlock{size: len(data), fill: fill}
				order = append(order, p)
			} else {
				i := rng.Intn(len(order))
				p := order[i]
				order[i] = order[len(order)-1]
				order = order[:len(order)-1]
				require.NoError(t, a.Deallocate(p), "seed %d step %d", seed, step)
				delete(live, p)
			}

			requireInvariants(t, a)
			if step%50 == 0 {
				requireLiveIntact(t, a, live)
			}
		}

		for _, p := range order {
			require.NoError(t, a.Deallocate(p))
		}
		require.Len(t, a.Blocks(), 1, "seed %d: heap must collapse to one block", seed)
	}
}

// requireLiveIntact checks that live payloads do not overlap and still hold
// their fill pattern.
func requireLiveIntact(t *testing.T, a *Allocator, live map[Ptr]liveBlock) {
	t.Helper()
	ptrs := make([]Ptr, 0, len(live))
	for p := range live {
		ptrs = append(ptrs, p)
	}
	sort.Slice(ptrs, func(i, j int) bool { return ptrs[i] < ptrs[j] })

	for i, p := range ptrs {
		lb := live[p]
		if i > 0 {
			prev := ptrs[i-1]
			require.LessOrEqual(t, int(prev)+live[prev].size+HeaderSize, int(p),
				"payloads at %d and %d overlap", prev, p)
		}
		data, err := a.Bytes(p)
		require.NoError(t, err)
		require.Len(t, data, lb.size)
		for j, v := range data {
			if v != lb.fill {
				require.Failf(t, "payload corrupted", "ptr %d byte %d: got 0x%x want 0x%x", p, j, v, lb.fill)
			}
		}
	}
}

func Test_Property_FailuresAreDeterministic(t *testing.T) {
	a := newTestAllocator(t, 2048)
	mustAlloc(t, a, 1000)
	mustAlloc(t, a, 900)

	for range 3 {
		_, err := a.Allocate(500)
		require.True(t, errors.Is(err, ErrOutOfMemory))
	}
	require.Equal(t, 3, a.Stats().FailedAllocs)
	requireInvariants(t, a)
}
