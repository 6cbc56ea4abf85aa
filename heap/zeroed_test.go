package heap_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZeroedAllocateIsAllZero(t *testing.T) {
	h := newTestHeap(t)

	ref, err := h.ZeroedAllocate(10, 32)
	require.NoError(t, err)
	require.NotZero(t, ref)

	b := h.Bytes(ref, 320)
	for i, v := range b {
		require.Zerof(t, v, "byte %d not zero", i)
	}
}

func TestZeroedAllocateZerosPreviouslyDirtyMemory(t *testing.T) {
	h := newTestHeap(t)

	first, err := h.Allocate(64)
	require.NoError(t, err)
	dirty := h.Bytes(first, 64)
	for i := range dirty {
		dirty[i] = 0xFF
	}
	require.NoError(t, h.Release(first))

	second, err := h.ZeroedAllocate(8, 8)
	require.NoError(t, err)
	for _, v := range h.Bytes(second, 64) {
		require.Zero(t, v)
	}
}

func TestZeroedAllocateOverflowIsRejected(t *testing.T) {
	h := newTestHeap(t)

	_, err := h.ZeroedAllocate(1<<62, 1<<62)
	require.Error(t, err)
}
