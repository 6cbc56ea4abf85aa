package heap

import "github.com/joshuapare/heapkit/internal/format"

// growHeap requests at least need bytes from the provider, folding the
// result into a single free block that replaces the old epilogue and
// becomes (or extends) the wilderness. It returns the offset of that
// block.
func (h *Heap) growHeap(need int) (int, error) {
	reqBytes := max(need, format.ChunkSize)
	reqBytes = format.AlignWord(reqBytes)

	oldLen := len(h.p.Bytes())
	newBlockHdr := oldLen - format.SentinelSize

	if _, err := h.p.Grow(reqBytes); err != nil {
		return format.NilOffset, ErrNoSpace
	}
	data := h.p.Bytes()

	var pAlloc bool
	if h.wilderness == format.NilOffset {
		pAlloc = true // predecessor is the prologue
	} else {
		_, _, _, wAlloc := format.ReadHeader(data, h.wilderness)
		pAlloc = wAlloc
	}

	format.WriteHeader(data, newBlockHdr, reqBytes, false, pAlloc)
	format.WriteFooter(data, newBlockHdr, reqBytes, false, pAlloc)

	epilogueOff := newBlockHdr + reqBytes
	format.WriteHeader(data, epilogueOff, 0, true, false)

	if h.wilderness != format.NilOffset && !pAlloc {
		// The old wilderness is never registered in a bin, so this is a
		// direct merge rather than a call into coalesce (which assumes
		// both sides are bin members or the wilderness).
		oldSize, _, oldPAlloc, _ := format.ReadHeader(data, h.wilderness)
		merged := oldSize + reqBytes
		format.WriteHeader(data, h.wilderness, merged, false, oldPAlloc)
		format.WriteFooter(data, h.wilderness, merged, false, oldPAlloc)
	} else {
		h.wilderness = newBlockHdr
	}

	if debugAlloc || logAlloc {
		debugLogf("grow: +%d bytes, wilderness now at %d", reqBytes, h.wilderness)
	}
	return h.wilderness, nil
}
