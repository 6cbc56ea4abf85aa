package heap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/provider"
)

func newTestHeap(t *testing.T) *heap.Heap {
	t.Helper()
	p := provider.NewSlice(0)
	h, err := heap.New(p, heap.Config{})
	require.NoError(t, err)
	return h
}

func TestNewHeapChecksOut(t *testing.T) {
	h := newTestHeap(t)
	require.NoError(t, h.Check(false))
}

func TestIndexOfMonotone(t *testing.T) {
	prev := -1
	for size := 16; size <= 1<<20; size += 8 {
		got := heap.IndexOf(size)
		require.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestIndexOfExactBinsAreSingleSize(t *testing.T) {
	require.Equal(t, 0, heap.IndexOf(16))
	require.Equal(t, 1, heap.IndexOf(24))
	require.Equal(t, 4, heap.IndexOf(48))
	require.NotEqual(t, heap.IndexOf(48), heap.IndexOf(56))
}
