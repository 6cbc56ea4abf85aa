package heap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/provider"
)

// Scenario 6: alternating allocate(40)/allocate(48), releasing every other
// one, over many iterations. The checker must pass after every step and
// utilization (live payload / heap size) at the end of the run must be
// above 0.5.
func TestScenarioAlternatingWorkloadStaysHealthy(t *testing.T) {
	p := provider.NewSlice(0)
	h, err := heap.New(p, heap.Config{})
	require.NoError(t, err)

	type live struct {
		ref  heap.Ref
		size int
	}
	var outstanding []live
	livePayload := 0
	const iterations = 10000

	for i := 0; i < iterations; i++ {
		size := 40
		if i%2 == 1 {
			size = 48
		}
		ref, err := h.Allocate(size)
		require.NoError(t, err)
		outstanding = append(outstanding, live{ref, size})
		livePayload += size
		require.NoError(t, h.Check(false))

		if i%2 == 1 {
			victim := outstanding[0]
			outstanding = outstanding[1:]
			livePayload -= victim.size
			require.NoError(t, h.Release(victim.ref))
			require.NoError(t, h.Check(false))
		}
	}

	utilization := float64(livePayload) / float64(len(p.Bytes()))
	require.Greaterf(t, utilization, 0.5, "utilization %.3f fell below 0.5 (live=%d heap=%d)", utilization, livePayload, len(p.Bytes()))
}
