package heap

import (
	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// adjustedSize computes asize from a requested payload size, per the
// design notes: round up for header/footer/free-link room, then pad twice
// more for edge cases (very small requests, and the large encoding, which
// adds 2*WordSize = 16 bytes to cover its 4+4 bytes of size-extension
// words and the pad+echo gap before the exposed pointer). See DESIGN.md for
// how this formula's small-request overhead compares with the illustrative
// worked example.
func adjustedSize(size int) int {
	asize := format.AlignWord(size+1) + format.WordSize
	if size <= 6 {
		asize += format.WordSize
	}
	if asize >= format.LargeThreshold {
		asize += 2 * format.WordSize
	}
	return asize
}

// Allocate returns a Ref to size bytes of zero-initialized-or-not memory
// (matching malloc, contents are unspecified), or the zero Ref if size is
// zero. It fails with ErrNoSpace when the provider cannot grow far enough,
// and with ErrNotInitialized on a Heap not built by New.
func (h *Heap) Allocate(size int) (Ref, error) {
	if h.p == nil {
		return 0, ErrNotInitialized
	}
	if size <= 0 {
		return 0, nil
	}

	h.MustCheck(false)
	asize := adjustedSize(size)

	data := h.p.Bytes()
	hdr, fromWilderness, ok := h.findFit(data, asize)
	if !ok {
		wSize := 0
		if h.wilderness != format.NilOffset {
			wSize, _, _, _ = format.ReadHeader(data, h.wilderness)
		}
		extend := asize - (wSize - format.MinBlockSize)
		if extend <= 0 {
			extend = asize
		}
		if _, err := h.growHeap(extend); err != nil {
			return 0, err
		}
		data = h.p.Bytes()
		hdr, fromWilderness, ok = h.findFit(data, asize)
		if !ok {
			return 0, ErrNoSpace
		}
	}

	h.place(data, hdr, asize, fromWilderness)
	_, isLarge, _, _ := format.ReadHeader(data, hdr)
	ref := Ref(format.PayloadOffset(hdr, isLarge))
	h.MustCheck(false)
	debugLogf("allocate(%d) -> asize=%d ref=%d", size, asize, ref)
	return ref, nil
}

// refToHeader validates a caller-supplied ref before trusting it as an
// offset into data, then recovers its header. A ref is caller input (it
// crosses the public API boundary), so both the read HeaderFromPayload
// needs and the header it resolves to are bounds-checked with buf.Has
// rather than indexed directly.
func (h *Heap) refToHeader(data []byte, ref Ref) (hdr int, isLarge bool, ok bool) {
	payload := int(ref)
	if !buf.Has(data, payload-format.SmallHeaderSize, format.SmallHeaderSize) {
		return 0, false, false
	}
	hdr, isLarge = format.HeaderFromPayload(data, payload)
	if hdr < firstBlockOffset || !buf.Has(data, hdr, format.SmallHeaderSize) {
		return 0, false, false
	}
	return hdr, isLarge, true
}

// Release returns the block named by ref to the free pool. Releasing the
// zero Ref is a no-op.
func (h *Heap) Release(ref Ref) error {
	if h.p == nil {
		return ErrNotInitialized
	}
	if ref == 0 {
		return nil
	}
	h.MustCheck(false)

	data := h.p.Bytes()
	hdr, _, ok := h.refToHeader(data, ref)
	if !ok {
		return ErrBadRef
	}
	size, _, pAlloc, alloc := format.ReadHeader(data, hdr)
	if !alloc {
		return ErrBadRef
	}

	format.WriteHeader(data, hdr, size, false, pAlloc)
	merged := h.coalesce(data, hdr)
	if merged != h.wilderness {
		_, mLarge, _, _ := format.ReadHeader(data, merged)
		h.freeInsert(data, merged, mLarge)
	}

	debugLogf("release(%d) merged=%d", ref, merged)
	h.MustCheck(false)
	return nil
}

// Reallocate resizes the allocation at ref to size bytes, always by
// allocating fresh and copying, per the design notes' baseline semantics
// (in-place grow/shrink are noted as a possible optimization, not
// required). size=0 releases and returns the zero Ref; ref=0 behaves like
// Allocate.
func (h *Heap) Reallocate(ref Ref, size int) (Ref, error) {
	if h.p == nil {
		return 0, ErrNotInitialized
	}
	if size <= 0 {
		return 0, h.Release(ref)
	}
	if ref == 0 {
		return h.Allocate(size)
	}

	data := h.p.Bytes()
	hdr, isLarge, ok := h.refToHeader(data, ref)
	if !ok {
		return 0, ErrBadRef
	}
	oldBlockSize, _, _, alloc := format.ReadHeader(data, hdr)
	if !alloc {
		return 0, ErrBadRef
	}

	// Non-payload overhead: the front gap up to the payload anchor (2 bytes
	// for a small header, or SmallHeaderSize+LargeExposedGap for a large
	// one, per format.PayloadOffset) plus the footer, which a large block
	// always carries even while allocated.
	overhead := format.SmallHeaderSize
	if isLarge {
		overhead = (format.PayloadOffset(hdr, isLarge) - hdr) + format.LargeFooterSize
	}
	oldUsable := oldBlockSize - overhead

	newRef, err := h.Allocate(size)
	if err != nil {
		return 0, err
	}

	n := min(size, oldUsable)
	if n > 0 {
		copy(h.Bytes(newRef, n), h.Bytes(ref, n))
	}
	if err := h.Release(ref); err != nil {
		return 0, err
	}
	return newRef, nil
}

// ZeroedAllocate is Allocate(count*size) with the returned region zeroed,
// guarding the multiplication against overflow.
func (h *Heap) ZeroedAllocate(count, size int) (Ref, error) {
	total, ok := buf.MulOverflowSafe(count, size)
	if !ok {
		return 0, ErrNoSpace
	}
	ref, err := h.Allocate(total)
	if err != nil || ref == 0 {
		return ref, err
	}
	b := h.Bytes(ref, total)
	for i := range b {
		b[i] = 0
	}
	return ref, nil
}
