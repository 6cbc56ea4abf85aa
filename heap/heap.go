// Package heap implements the placement engine of a general-purpose
// allocator over a single contiguous, monotonically growing byte region:
// a 16-way segregated free-list structure with best-fit-within-bin, a
// wilderness block at the top of the heap, and header/footer block
// encoding (internal/format) that switches to an extended large-block
// layout at 64 KiB.
package heap

import (
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/provider"
)

// Config holds the small set of knobs New accepts: a literal struct rather
// than a long argument list or functional options, since there are only
// ever a couple of fields.
type Config struct {
	// InitialWilderness overrides the first grow request's size. Zero uses
	// format.ChunkSize, matching the design notes' 192-byte default.
	InitialWilderness int
}

// Ref identifies a live allocation as an offset into the provider's
// Bytes(), rather than a native pointer. Zero is never a valid Ref.
type Ref int

// Heap is one allocator instance: a provider plus the wilderness pointer.
// Bin heads and every block's metadata live in the provider's own bytes,
// per the on-heap layout in internal/format and heap/layout.go.
type Heap struct {
	p          provider.Provider
	wilderness int
}

// New builds the seg-list table, prologue, epilogue and initial wilderness
// over p, and returns a ready-to-use Heap.
func New(p provider.Provider, cfg Config) (*Heap, error) {
	if _, err := p.Grow(baseHeapBytes); err != nil {
		return nil, ErrNoSpace
	}
	data := p.Bytes()

	for i := 0; i < format.NumSegLists; i++ {
		format.PutU32(data, binHeadOffset(i), uint32(format.NilOffset))
	}

	format.WriteHeader(data, prologueHeaderOffset, 0, true, true)
	// The prologue footer is a fixed sentinel word, not the general
	// "footer ends at hdr+size" case (size 0 would land it before the
	// header); WriteHeader packs the identical word, which is what a
	// zero-size footer should contain anyway.
	format.WriteHeader(data, prologueFooterOffset, 0, true, true)
	format.WriteHeader(data, firstBlockOffset, 0, true, true) // placeholder epilogue until growHeap runs

	h := &Heap{p: p, wilderness: format.NilOffset}

	initial := cfg.InitialWilderness
	if initial <= 0 {
		initial = format.ChunkSize
	}
	if _, err := h.growHeap(initial); err != nil {
		return nil, err
	}
	return h, nil
}

// Bytes returns the live view of an allocation's payload, sized exactly as
// requested (not the possibly-larger internal block size).
func (h *Heap) Bytes(ref Ref, size int) []byte {
	data := h.p.Bytes()
	off := int(ref)
	return data[off : off+size]
}
