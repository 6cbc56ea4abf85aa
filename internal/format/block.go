package format

// Block header/footer codec.
//
// A block's header word packs three 1-bit flags into the low bits of a
// 16-bit size field (every real size is a multiple of WordSize, so those
// bits are otherwise unused):
//
//	bit 2  FlagLarge   this block uses the large (2+4 / 4+2) encoding
//	bit 1  FlagPAlloc  the block immediately before this one is allocated
//	bit 0  FlagAlloc   this block is allocated
//
// Small blocks store the true size directly in bits 15..3. Large blocks
// (total size >= LargeThreshold) instead write the reserved sentinel
// LargeSizeSentinel into those bits and carry the true 32-bit size in the
// word immediately following the header (and, mirrored, immediately before
// the footer). See DESIGN.md for the reasoning behind the exposed-pointer
// offset and the echo word below, which resolve an ambiguity in how the
// large encoding's payload anchor and the caller-visible pointer relate.
//
// Layout, header address hdr, block size sz:
//
//	small, allocated:  [hdr]header(2)[hdr+2]---- payload ----[hdr+sz]
//	small, free:       [hdr]header(2)[hdr+2]prev(4)next(4)..[hdr+sz-2]footer(2)[hdr+sz]
//	large, allocated:  [hdr]header(2)ext(4)[hdr+6]pad(2)echo(2)[hdr+10]-- payload --[hdr+sz-6]ext(4)footer(2)[hdr+sz]
//	large, free:       [hdr]header(2)ext(4)[hdr+6]prev(4)[hdr+10]next(4)..........[hdr+sz-6]ext(4)footer(2)[hdr+sz]
//
// The echo word at hdr+8 (2 bytes) is a read-only copy of the header word,
// present only so that a bare exposed pointer can be classified without
// external bookkeeping: for a small block, exposedPtr-2 already lands on
// the real header; for a large block it lands on the echo instead. Once a
// large block is freed the echo's two bytes become part of prev_free; it
// only needs to be valid while the block is allocated.

// HeaderSize returns the width in bytes of a block's header region.
func HeaderSize(isLarge bool) int {
	if isLarge {
		return LargeHeaderSize
	}
	return SmallHeaderSize
}

// FooterSize returns the width in bytes of a block's footer region, when
// present (see HasFooter).
func FooterSize(isLarge bool) int {
	if isLarge {
		return LargeFooterSize
	}
	return SmallFooterSize
}

// HasFooter reports whether a block of the given allocation state and
// encoding carries a footer at all. Small allocated blocks omit it.
func HasFooter(alloc, isLarge bool) bool {
	return !alloc || isLarge
}

// IsLargeSize reports whether a block of this size must use the large
// encoding.
func IsLargeSize(size int) bool {
	return size >= LargeThreshold
}

// ReadHeader decodes the header word at hdr, consulting the large-block
// extension word when present.
func ReadHeader(data []byte, hdr int) (size int, isLarge, pAlloc, alloc bool) {
	word := ReadU16(data, hdr)
	isLarge = word&FlagLarge != 0
	pAlloc = word&FlagPAlloc != 0
	alloc = word&FlagAlloc != 0
	if isLarge {
		size = int(ReadU32(data, hdr+SmallHeaderSize) & ^uint32(WordSizeMask))
		return
	}
	size = int(word & sizeFieldMask)
	return
}

// ReadFooter decodes the footer word ending at hdr+size, for a block whose
// caller has already established (via HasFooter) that one is present.
func ReadFooter(data []byte, hdr, size int, isLarge bool) (fsize int, fLarge, fPAlloc, fAlloc bool) {
	if isLarge {
		wordOff := hdr + size - SmallHeaderSize
		word := ReadU16(data, wordOff)
		fLarge = word&FlagLarge != 0
		fPAlloc = word&FlagPAlloc != 0
		fAlloc = word&FlagAlloc != 0
		fsize = int(ReadU32(data, wordOff-4) & ^uint32(WordSizeMask))
		return
	}
	wordOff := hdr + size - SmallFooterSize
	word := ReadU16(data, wordOff)
	fLarge = word&FlagLarge != 0
	fPAlloc = word&FlagPAlloc != 0
	fAlloc = word&FlagAlloc != 0
	fsize = int(word & sizeFieldMask)
	return
}

// WriteHeader packs and writes the header word (and, for large blocks, the
// size-extension word and, while allocated, the release()-time
// classification echo; a free large block's echo bytes belong to prev_free
// and are left alone).
func WriteHeader(data []byte, hdr, size int, alloc, pAlloc bool) {
	flags := packFlags(alloc, pAlloc)
	if IsLargeSize(size) {
		word := LargeSizeSentinel | flags | FlagLarge
		PutU16(data, hdr, word)
		PutU32(data, hdr+SmallHeaderSize, uint32(size))
		if alloc {
			PutU16(data, hdr+largeEchoOffset, word)
		}
		return
	}
	PutU16(data, hdr, uint16(size)|flags)
}

// WriteFooter packs and writes the footer for a block that HasFooter says
// carries one.
func WriteFooter(data []byte, hdr, size int, alloc, pAlloc bool) {
	flags := packFlags(alloc, pAlloc)
	if IsLargeSize(size) {
		word := LargeSizeSentinel | flags | FlagLarge
		wordOff := hdr + size - SmallHeaderSize
		PutU32(data, wordOff-4, uint32(size))
		PutU16(data, wordOff, word)
		return
	}
	wordOff := hdr + size - SmallFooterSize
	PutU16(data, wordOff, uint16(size)|flags)
}

// SetPAlloc rewrites only the PALLOC bit of a block's header (and footer,
// if it has one), leaving size, LARGE and ALLOC untouched. Used when a
// neighbor's allocation state changes underneath a block.
func SetPAlloc(data []byte, hdr int, pAlloc bool) {
	size, isLarge, _, alloc := ReadHeader(data, hdr)
	WriteHeader(data, hdr, size, alloc, pAlloc)
	if HasFooter(alloc, isLarge) {
		WriteFooter(data, hdr, size, alloc, pAlloc)
	}
}

// largeEchoOffset is where WriteHeader mirrors the header word so that
// HeaderFromPayload can classify a bare pointer; see the package doc.
const largeEchoOffset = SmallHeaderSize + 4 + 2 // hdr+8

// FreeLinkOffsets returns the heap-relative offsets of the prev_free and
// next_free links stored in a free block's body.
func FreeLinkOffsets(hdr int, isLarge bool) (prevOff, nextOff int) {
	base := hdr + SmallHeaderSize
	if isLarge {
		base += 4
	}
	return base, base + FreeLinkSize
}

// PayloadOffset returns the pointer handed back to callers for an
// allocated block at hdr.
func PayloadOffset(hdr int, isLarge bool) int {
	if isLarge {
		return hdr + SmallHeaderSize + LargeExposedGap
	}
	return hdr + SmallHeaderSize
}

// HeaderFromPayload reverses PayloadOffset: given a pointer previously
// returned to a caller, recovers the block's header address and whether it
// uses the large encoding, without any side-channel bookkeeping.
func HeaderFromPayload(data []byte, payload int) (hdr int, isLarge bool) {
	word := ReadU16(data, payload-SmallHeaderSize)
	if word&FlagLarge != 0 {
		return payload - SmallHeaderSize - LargeExposedGap, true
	}
	return payload - SmallHeaderSize, false
}

// NextHeader returns the header offset of the block immediately following
// the one at hdr.
func NextHeader(data []byte, hdr int) int {
	size, _, _, _ := ReadHeader(data, hdr)
	return hdr + size
}

// PrevHeader returns the header offset of the block immediately preceding
// the one at hdr, by reading the footer word that must sit at hdr-2. The
// caller is responsible for knowing that predecessor has a footer (it is
// free, or it is the prologue, which does).
func PrevHeader(data []byte, hdr int) int {
	word := ReadU16(data, hdr-SmallHeaderSize)
	if word&FlagLarge != 0 {
		size := int(ReadU32(data, hdr-SmallHeaderSize-4) & ^uint32(WordSizeMask))
		return hdr - size
	}
	size := int(word & sizeFieldMask)
	return hdr - size
}

func packFlags(alloc, pAlloc bool) uint16 {
	var flags uint16
	if alloc {
		flags |= FlagAlloc
	}
	if pAlloc {
		flags |= FlagPAlloc
	}
	return flags
}
