package heap

import "github.com/joshuapare/heapkit/internal/format"

// coalesce merges the just-freed block at hdr (ALLOC already cleared) with
// any free neighbors, removing merged neighbors from their bins. It
// returns the header offset of the surviving block, which may be hdr, its
// predecessor, or (when both merge) still the predecessor.
func (h *Heap) coalesce(data []byte, hdr int) int {
	size, _, pAlloc, _ := format.ReadHeader(data, hdr)
	nextHdr := format.NextHeader(data, hdr)
	_, nextLarge, _, nextAlloc := format.ReadHeader(data, nextHdr)

	// The freed block's successor must now see PALLOC=0. When next is free
	// this gets overwritten by the merge below; when next is allocated this
	// is the only place that bit changes.
	format.SetPAlloc(data, nextHdr, false)

	nextFree := !nextAlloc
	prevFree := !pAlloc

	switch {
	case !prevFree && !nextFree:
		format.WriteHeader(data, hdr, size, false, pAlloc)
		format.WriteFooter(data, hdr, size, false, pAlloc)
		return hdr

	case !prevFree && nextFree:
		nextSize, _, _, _ := format.ReadHeader(data, nextHdr)
		if nextHdr != h.wilderness {
			h.freeRemove(data, nextHdr, nextLarge)
		}
		merged := size + nextSize
		format.WriteHeader(data, hdr, merged, false, pAlloc)
		format.WriteFooter(data, hdr, merged, false, pAlloc)
		if nextHdr == h.wilderness {
			h.wilderness = hdr
		}
		return hdr

	case prevFree && !nextFree:
		prevHdr := format.PrevHeader(data, hdr)
		prevSize, prevLarge, prevPAlloc, _ := format.ReadHeader(data, prevHdr)
		if prevHdr != h.wilderness {
			h.freeRemove(data, prevHdr, prevLarge)
		}
		merged := prevSize + size
		format.WriteHeader(data, prevHdr, merged, false, prevPAlloc)
		format.WriteFooter(data, prevHdr, merged, false, prevPAlloc)
		if hdr == h.wilderness {
			h.wilderness = prevHdr
		}
		return prevHdr

	default:
		prevHdr := format.PrevHeader(data, hdr)
		prevSize, prevLarge, prevPAlloc, _ := format.ReadHeader(data, prevHdr)
		nextSize, _, _, _ := format.ReadHeader(data, nextHdr)
		if prevHdr != h.wilderness {
			h.freeRemove(data, prevHdr, prevLarge)
		}
		if nextHdr != h.wilderness {
			h.freeRemove(data, nextHdr, nextLarge)
		}
		merged := prevSize + size + nextSize
		format.WriteHeader(data, prevHdr, merged, false, prevPAlloc)
		format.WriteFooter(data, prevHdr, merged, false, prevPAlloc)
		if hdr == h.wilderness || nextHdr == h.wilderness {
			h.wilderness = prevHdr
		}
		return prevHdr
	}
}
