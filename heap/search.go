package heap

import "github.com/joshuapare/heapkit/internal/format"

// findFit locates a host block of at least asize bytes, removing it from
// its bin if it came from one. It returns the header offset and whether
// the caller must treat it as the wilderness (not removed from any list).
// ok is false only when neither the bins nor the wilderness can satisfy
// the request.
func (h *Heap) findFit(data []byte, asize int) (hdr int, fromWilderness bool, ok bool) {
	for i := IndexOf(asize); i < format.NumSegLists; i++ {
		head := h.binHead(data, i)
		if head == format.NilOffset {
			continue
		}
		if i < 5 {
			// Exact-size bins: the head is guaranteed to fit.
			size, isLarge, _, _ := format.ReadHeader(data, head)
			if size < asize {
				continue
			}
			h.freeRemove(data, head, isLarge)
			return head, false, true
		}

		best := format.NilOffset
		bestLarge := false
		bestSlack := -1
		for cur := head; cur != format.NilOffset; {
			size, isLarge, _, _ := format.ReadHeader(data, cur)
			if size >= asize {
				slack := size - asize
				if bestSlack == -1 || slack < bestSlack {
					best, bestLarge, bestSlack = cur, isLarge, slack
				}
			}
			prevOff, _ := format.FreeLinkOffsets(cur, isLarge)
			cur = int(format.ReadU32(data, prevOff))
		}
		if best != format.NilOffset {
			h.freeRemove(data, best, bestLarge)
			return best, false, true
		}
	}

	if h.wilderness != format.NilOffset {
		wSize, _, _, _ := format.ReadHeader(data, h.wilderness)
		if wSize-format.MinBlockSize >= asize {
			return h.wilderness, true, true
		}
	}
	return format.NilOffset, false, false
}
