package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fixheap/internal/format"
)

func Test_Verify_DetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(buf []byte)
		want    string
	}{
		{
			name:    "bad signature",
			corrupt: func(buf []byte) { buf[116] = 'x' },
			want:    "signature",
		},
		{
			name:    "reserved field",
			corrupt: func(buf []byte) { format.PutU32(buf, format.BlockReservedOffset, 1) },
			want:    "reserved",
		},
		{
			name:    "link skips ahead",
			corrupt: func(buf []byte) { format.PutU32(buf, format.BlockNextOffset, 200) },
			want:    "links to 200",
		},
		{
			name:    "payload past capacity",
			corrupt: func(buf []byte) { format.PutU32(buf, 116+format.BlockSizeOffset, 5000) },
			want:    "past capacity",
		},
		{
			name:    "short coverage",
			corrupt: func(buf []byte) { format.PutU32(buf, 116+format.BlockSizeOffset, 800) },
			want:    "cover",
		},
		{
			name:    "adjacent free",
			corrupt: func(buf []byte) { format.SetFree(buf, 0, true) },
			want:    "adjacent free",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAllocator(t, 1024)
			mustAlloc(t, a, 100)
			require.NoError(t, a.Verify())

			tt.corrupt(a.buf)
			err := a.Verify()
			require.ErrorIs(t, err, ErrCorrupt)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func Test_Attach_AdoptsFormattedBuffer(t *testing.T) {
	a := newTestAllocator(t, 1024)
	p := mustAlloc(t, a, 100)
	mustAlloc(t, a, 50)
	require.NoError(t, a.Deallocate(p))

	buf := make([]byte, len(a.buf))
	copy(buf, a.buf)
	b, err := Attach(buf, nil)
	require.NoError(t, err)
	require.Equal(t, a.Blocks(), b.Blocks())

	q := mustAlloc(t, b, 100)
	require.Equal(t, p, q, "attached heap keeps first-fit order")
}

func Test_Attach_RejectsBadBuffers(t *testing.T) {
	_, err := Attach(make([]byte, 256), nil)
	require.ErrorIs(t, err, ErrCorrupt)

	_, err = Attach(make([]byte, 8), nil)
	require.ErrorIs(t, err, ErrBadCapacity)
}

func Test_Walk_StopsEarly(t *testing.T) {
	a := newTestAllocator(t, 1024)
	for range 5 {
		mustAlloc(t, a, 10)
	}
	seen := 0
	a.Walk(func(Block) bool {
		seen++
		return seen < 3
	})
	require.Equal(t, 3, seen)
	require.Len(t, a.Blocks(), 6)
}
