// Package format houses the low-level codec for the on-heap block encoding:
// packing and unpacking header/footer words, the large-block size extension,
// and the small set of alignment helpers everything else builds on. It stays
// allocation-free and independent of allocation policy so the heap package
// can orchestrate placement without knowing about bit layout.
package format

const (
	// WordSize is the granularity every block size is a multiple of.
	WordSize = 8

	// WordSizeMask is the bitmask used to align to WordSize (WordSize - 1).
	WordSizeMask = WordSize - 1

	// MinBlockSize is the smallest legal block size, header included.
	MinBlockSize = 16

	// ChunkSize is the minimum number of bytes requested from the heap
	// provider on a single growth call.
	ChunkSize = 192

	// LargeThreshold is the smallest total block size (payload plus
	// overhead) that must use the large encoding.
	LargeThreshold = 65536

	// SmallHeaderSize is the width in bytes of a small block's header word.
	SmallHeaderSize = 2

	// SmallFooterSize is the width in bytes of a small block's footer word
	// (present only while the block is free).
	SmallFooterSize = 2

	// LargeHeaderSize is the width in bytes of a large block's header: a
	// 2-byte packed word followed by a 4-byte size extension.
	LargeHeaderSize = 6

	// LargeFooterSize is the width in bytes of a large block's footer: a
	// 4-byte size extension followed by a 2-byte packed word.
	LargeFooterSize = 6

	// LargeExposedGap is the number of bytes between a large block's
	// internal payload anchor (header address + 2) and the pointer handed
	// back to the caller. See DESIGN.md for why this is 8, not 4.
	LargeExposedGap = 8

	// sizeFieldMask clears the low three bits (the packed flags) of a
	// header/footer word, leaving only the size field.
	sizeFieldMask = ^uint16(WordSizeMask)

	// LargeSizeSentinel is the reserved size-field value (0xFFF8) meaning
	// "large block; read the true size from the adjacent 32-bit word".
	LargeSizeSentinel = uint16(0xFFF8)

	// FlagLarge marks a block as using the large (2+4 / 4+2) encoding.
	FlagLarge = uint16(1 << 2)

	// FlagPAlloc records whether the block immediately preceding this one
	// (in address order) is allocated.
	FlagPAlloc = uint16(1 << 1)

	// FlagAlloc marks the block itself as allocated.
	FlagAlloc = uint16(1 << 0)

	flagMask = FlagLarge | FlagPAlloc | FlagAlloc

	// FreeLinkSize is the width in bytes of one heap-relative offset stored
	// in a free block's body (prev_free or next_free).
	FreeLinkSize = 4

	// NumSegLists is the number of segregated free-list bins.
	NumSegLists = 16

	// SegListBytes is the size in bytes of the on-heap segregated free-list
	// head table (NumSegLists 4-byte heap-relative offsets).
	SegListBytes = NumSegLists * FreeLinkSize

	// AlignPadBytes is the padding inserted after the seg-list table. With
	// an 8-byte-aligned heap base, seg-list (64 bytes) + pad (2) + prologue
	// header (2) + prologue footer (2) lands the first real block's header
	// at offset 6 (mod 8), which keeps every small block's payload pointer
	// 8-byte aligned; see block.go.
	AlignPadBytes = 2

	// SentinelSize is the width in bytes of the prologue and epilogue
	// sentinel headers (each a zero-size, allocated small block header).
	SentinelSize = SmallHeaderSize

	// NilOffset is the heap-relative offset used to represent "no block" in
	// a free-list link.
	NilOffset = 0
)
