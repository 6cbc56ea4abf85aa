package heap_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
)

// TestNoOverlap drives a mixed workload and checks that every pair of
// outstanding allocations' payload ranges is disjoint at each step.
func TestNoOverlap(t *testing.T) {
	h := newTestHeap(t)
	rng := rand.New(rand.NewPCG(1, 2))

	type live struct {
		ref  heap.Ref
		size int
	}
	var outstanding []live

	for i := 0; i < 2000; i++ {
		if len(outstanding) > 0 && rng.IntN(3) == 0 {
			idx := rng.IntN(len(outstanding))
			require.NoError(t, h.Release(outstanding[idx].ref))
			outstanding = append(outstanding[:idx], outstanding[idx+1:]...)
			continue
		}
		size := 8 + rng.IntN(200)
		ref, err := h.Allocate(size)
		require.NoError(t, err)
		outstanding = append(outstanding, live{ref, size})
	}

	for a := 0; a < len(outstanding); a++ {
		for b := a + 1; b < len(outstanding); b++ {
			aStart, aEnd := int(outstanding[a].ref), int(outstanding[a].ref)+outstanding[a].size
			bStart, bEnd := int(outstanding[b].ref), int(outstanding[b].ref)+outstanding[b].size
			overlap := aStart < bEnd && bStart < aEnd
			require.Falsef(t, overlap, "ranges [%d,%d) and [%d,%d) overlap", aStart, aEnd, bStart, bEnd)
		}
	}
	require.NoError(t, h.Check(false))
}
