package heap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/provider"
)

func TestReallocateZeroSizeReleases(t *testing.T) {
	h := newTestHeap(t)

	ref, err := h.Allocate(32)
	require.NoError(t, err)

	got, err := h.Reallocate(ref, 0)
	require.NoError(t, err)
	require.Zero(t, got)
	require.NoError(t, h.Check(false))
}

func TestReallocateNilRefAllocates(t *testing.T) {
	h := newTestHeap(t)

	ref, err := h.Reallocate(0, 64)
	require.NoError(t, err)
	require.NotZero(t, ref)
	require.NoError(t, h.Check(false))
}

func TestReallocateShrinkKeepsPrefix(t *testing.T) {
	h := newTestHeap(t)

	ref, err := h.Allocate(128)
	require.NoError(t, err)
	src := h.Bytes(ref, 128)
	for i := range src {
		src[i] = byte(i)
	}

	shrunk, err := h.Reallocate(ref, 8)
	require.NoError(t, err)
	got := h.Bytes(shrunk, 8)
	for i := 0; i < 8; i++ {
		require.Equal(t, byte(i), got[i])
	}
	require.NoError(t, h.Check(false))
}

// TestReallocateGrowLargeBlockStopsAtRealPayload pins the large-block
// overhead Reallocate uses to size oldUsable: PayloadOffset's front gap
// plus the footer, not just header+footer. Bytes just past the real
// payload (in the footer's territory) are poisoned before the call; a
// Reallocate that miscomputes oldUsable by even 4 bytes would copy them
// into the new block as if they were data.
func TestReallocateGrowLargeBlockStopsAtRealPayload(t *testing.T) {
	p := provider.NewSlice(0)
	h, err := heap.New(p, heap.Config{})
	require.NoError(t, err)

	ref, err := h.Allocate(format.LargeThreshold)
	require.NoError(t, err)

	data := p.Bytes()
	hdr, isLarge := format.HeaderFromPayload(data, int(ref))
	require.True(t, isLarge)
	blockSize, _, _, _ := format.ReadHeader(data, hdr)
	oldUsable := blockSize - (format.PayloadOffset(hdr, isLarge) - hdr) - format.LargeFooterSize

	src := h.Bytes(ref, oldUsable)
	for i := range src {
		src[i] = byte(i)
	}
	poison := data[int(ref)+oldUsable : int(ref)+oldUsable+4]
	for i := range poison {
		poison[i] = 0xEE
	}

	shrunk, err := h.Reallocate(ref, oldUsable+4)
	require.NoError(t, err)
	require.NoError(t, h.Check(false))

	got := h.Bytes(shrunk, oldUsable+4)
	for i := 0; i < oldUsable; i++ {
		require.Equal(t, byte(i), got[i], "byte %d mismatch", i)
	}
	for i := oldUsable; i < oldUsable+4; i++ {
		require.NotEqual(t, byte(0xEE), got[i], "poisoned footer byte leaked into new block at %d", i)
	}
}
