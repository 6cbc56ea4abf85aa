package heap

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Check walks the entire heap and every bin, verifying every invariant
// from the design notes. It is safe to call at any point between API
// calls; MustCheck wraps it for debug-build entry/exit assertions.
func (h *Heap) Check(verbose bool) error {
	if h.p == nil {
		return ErrNotInitialized
	}
	data := h.p.Bytes()

	freeOnWalk := 0
	prevAlloc := true // prologue
	hdr := firstBlockOffset
	epilogue := len(data) - format.SentinelSize

	for hdr < epilogue {
		size, isLarge, pAlloc, alloc := format.ReadHeader(data, hdr)
		if size < format.MinBlockSize || size%format.WordSize != 0 {
			return fmt.Errorf("%w: block at %d has illegal size %d", ErrCorrupt, hdr, size)
		}
		if pAlloc != prevAlloc {
			return fmt.Errorf("%w: block at %d PALLOC=%v but predecessor ALLOC=%v", ErrCorrupt, hdr, pAlloc, prevAlloc)
		}
		if format.HasFooter(alloc, isLarge) {
			fsize, fLarge, fPAlloc, fAlloc := format.ReadFooter(data, hdr, size, isLarge)
			if fsize != size || fLarge != isLarge || fPAlloc != pAlloc || fAlloc != alloc {
				return fmt.Errorf("%w: block at %d header/footer mismatch", ErrCorrupt, hdr)
			}
		}
		if !alloc {
			freeOnWalk++
			if !prevAlloc && hdr != firstBlockOffset {
				return fmt.Errorf("%w: adjacent free blocks at predecessor of %d", ErrCorrupt, hdr)
			}
		}
		if verbose {
			debugLogf("walk: hdr=%d size=%d large=%v palloc=%v alloc=%v", hdr, size, isLarge, pAlloc, alloc)
		}
		prevAlloc = alloc
		hdr = format.NextHeader(data, hdr)
	}
	if hdr != epilogue {
		return fmt.Errorf("%w: heap walk misaligned with epilogue (%d != %d)", ErrCorrupt, hdr, epilogue)
	}
	_, _, epPAlloc, epAlloc := format.ReadHeader(data, epilogue)
	if !epAlloc {
		return fmt.Errorf("%w: epilogue is not marked allocated", ErrCorrupt)
	}
	if epPAlloc != prevAlloc {
		return fmt.Errorf("%w: epilogue PALLOC does not match its predecessor", ErrCorrupt)
	}

	binCount := 0
	for i := 0; i < format.NumSegLists; i++ {
		count, err := h.checkBin(data, i)
		if err != nil {
			return err
		}
		binCount += count
	}

	if h.wilderness != format.NilOffset {
		binCount++ // the wilderness itself
	}
	if binCount != freeOnWalk {
		return fmt.Errorf("%w: free_count mismatch: walk=%d bins+wilderness=%d", ErrCorrupt, freeOnWalk, binCount)
	}
	return nil
}

func (h *Heap) checkBin(data []byte, bin int) (int, error) {
	count := 0
	newer := format.NilOffset // the node closer to the head than cur, or nil for the head itself
	for cur := h.binHead(data, bin); cur != format.NilOffset; {
		if cur < firstBlockOffset || cur >= len(data) {
			return 0, fmt.Errorf("%w: bin %d member %d out of range", ErrCorrupt, bin, cur)
		}
		size, isLarge, _, alloc := format.ReadHeader(data, cur)
		if alloc {
			return 0, fmt.Errorf("%w: bin %d member %d is marked allocated", ErrCorrupt, bin, cur)
		}
		if IndexOf(size) != bin {
			return 0, fmt.Errorf("%w: block %d of size %d belongs in bin %d, found in %d", ErrCorrupt, cur, size, IndexOf(size), bin)
		}
		prevOff, nextOff := format.FreeLinkOffsets(cur, isLarge)
		gotNext := int(format.ReadU32(data, nextOff))
		if gotNext != newer {
			return 0, fmt.Errorf("%w: bin %d member %d next_free=%d want %d", ErrCorrupt, bin, cur, gotNext, newer)
		}
		count++
		newer = cur
		cur = int(format.ReadU32(data, prevOff))
	}
	return count, nil
}

// MustCheck panics if Check fails. Intended for debug-build entry/exit
// assertions, gated the same way as debugAlloc.
func (h *Heap) MustCheck(verbose bool) {
	if !debugAlloc {
		return
	}
	if err := h.Check(verbose); err != nil {
		panic(err)
	}
}
