package heap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
)

// allocateRun carves n adjacent same-size allocations off the wilderness so
// their release order can exercise every coalescing case deliberately.
func allocateRun(t *testing.T, h *heap.Heap, n, size int) []heap.Ref {
	t.Helper()
	refs := make([]heap.Ref, n)
	for i := range refs {
		ref, err := h.Allocate(size)
		require.NoError(t, err)
		refs[i] = ref
	}
	return refs
}

func TestCoalesceBothNeighborsAllocated(t *testing.T) {
	h := newTestHeap(t)
	refs := allocateRun(t, h, 3, 32)

	require.NoError(t, h.Release(refs[1]))
	require.NoError(t, h.Check(false))

	// The freed middle block should be reusable on its own, without having
	// merged into either neighbor (both stayed allocated).
	reused, err := h.Allocate(32)
	require.NoError(t, err)
	require.Equal(t, refs[1], reused)
}

func TestCoalesceNextFree(t *testing.T) {
	h := newTestHeap(t)
	refs := allocateRun(t, h, 3, 32)

	require.NoError(t, h.Release(refs[2]))
	require.NoError(t, h.Release(refs[1]))
	require.NoError(t, h.Check(false))

	// refs[1] and refs[2] merged into one free block; a request sized to
	// need both should land exactly on the merged block's start.
	merged, err := h.Allocate(64)
	require.NoError(t, err)
	require.Equal(t, refs[1], merged)
	require.NoError(t, h.Check(false))
}

func TestCoalescePrevFree(t *testing.T) {
	h := newTestHeap(t)
	refs := allocateRun(t, h, 3, 32)

	require.NoError(t, h.Release(refs[0]))
	require.NoError(t, h.Release(refs[1]))
	require.NoError(t, h.Check(false))
}

func TestCoalesceBothNeighborsFree(t *testing.T) {
	h := newTestHeap(t)
	refs := allocateRun(t, h, 3, 32)

	require.NoError(t, h.Release(refs[0]))
	require.NoError(t, h.Release(refs[2]))
	require.NoError(t, h.Release(refs[1]))
	require.NoError(t, h.Check(false))
}
