package heap

import "github.com/joshuapare/heapkit/internal/format"

// place carves an asize-byte allocated block out of the host block at hdr
// (already removed from its bin, or the wilderness). If the leftover slack
// meets MinBlockSize it becomes a new free block, otherwise the whole host
// is consumed.
func (h *Heap) place(data []byte, hdr int, asize int, fromWilderness bool) {
	csize, _, pAlloc, _ := format.ReadHeader(data, hdr)

	if csize-asize >= format.MinBlockSize {
		format.WriteHeader(data, hdr, asize, true, pAlloc)
		if format.HasFooter(true, format.IsLargeSize(asize)) {
			format.WriteFooter(data, hdr, asize, true, pAlloc)
		}

		tailHdr := hdr + asize
		tailSize := csize - asize
		tailLarge := format.IsLargeSize(tailSize)
		format.WriteHeader(data, tailHdr, tailSize, false, true)
		format.WriteFooter(data, tailHdr, tailSize, false, true)
		format.SetPAlloc(data, format.NextHeader(data, tailHdr), false)

		if fromWilderness {
			h.wilderness = tailHdr
		} else {
			h.freeInsert(data, tailHdr, tailLarge)
		}
		return
	}

	format.WriteHeader(data, hdr, csize, true, pAlloc)
	if format.HasFooter(true, format.IsLargeSize(csize)) {
		format.WriteFooter(data, hdr, csize, true, pAlloc)
	}
	format.SetPAlloc(data, format.NextHeader(data, hdr), true)
	if fromWilderness {
		// findFit only offers the wilderness when it has >= MinBlockSize
		// slack over asize, so this consumes it fully only under a
		// programming error upstream.
		h.wilderness = format.NilOffset
	}
}
