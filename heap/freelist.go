package heap

import "github.com/joshuapare/heapkit/internal/format"

// binHead reads the head offset of bin i (0 means empty).
func (h *Heap) binHead(data []byte, i int) int {
	return int(format.ReadU32(data, binHeadOffset(i)))
}

func (h *Heap) setBinHead(data []byte, i, off int) {
	format.PutU32(data, binHeadOffset(i), uint32(off))
}

// freeInsert pushes the free block at hdr onto the head of its bin. The
// bin head is always the most recently inserted node; prev_free walks
// toward older entries, next_free toward the head. See internal/format's
// block layout doc for where these links live in small vs large blocks.
func (h *Heap) freeInsert(data []byte, hdr int, isLarge bool) {
	size, _, _, _ := format.ReadHeader(data, hdr)
	bin := IndexOf(size)
	head := h.binHead(data, bin)

	prevOff, nextOff := format.FreeLinkOffsets(hdr, isLarge)
	format.PutU32(data, prevOff, uint32(head))
	format.PutU32(data, nextOff, uint32(format.NilOffset))

	if head != format.NilOffset {
		_, headLarge, _, _ := format.ReadHeader(data, head)
		_, headNextOff := format.FreeLinkOffsets(head, headLarge)
		format.PutU32(data, headNextOff, uint32(hdr))
	}
	h.setBinHead(data, bin, hdr)
}

// freeRemove unlinks the free block at hdr from whichever bin it lives in.
// hdr must not be the wilderness; the caller establishes that.
func (h *Heap) freeRemove(data []byte, hdr int, isLarge bool) {
	size, _, _, _ := format.ReadHeader(data, hdr)
	bin := IndexOf(size)

	prevOff, nextOff := format.FreeLinkOffsets(hdr, isLarge)
	prev := int(format.ReadU32(data, prevOff))
	next := int(format.ReadU32(data, nextOff))

	if next == format.NilOffset {
		h.setBinHead(data, bin, prev)
	} else {
		_, nextLarge, _, _ := format.ReadHeader(data, next)
		nextPrevOff, _ := format.FreeLinkOffsets(next, nextLarge)
		format.PutU32(data, nextPrevOff, uint32(prev))
	}
	if prev != format.NilOffset {
		_, prevLarge, _, _ := format.ReadHeader(data, prev)
		_, prevNextOff := format.FreeLinkOffsets(prev, prevLarge)
		format.PutU32(data, prevNextOff, uint32(next))
	}
}
