package heap

import "github.com/joshuapare/heapkit/internal/format"

// Fixed offsets at the base of every heap this package manages. See
// internal/format/consts.go for the byte widths these are built from.
const (
	segListOffset        = 0
	prologueHeaderOffset = format.SegListBytes + format.AlignPadBytes
	prologueFooterOffset = prologueHeaderOffset + format.SmallHeaderSize
	firstBlockOffset     = prologueFooterOffset + format.SmallFooterSize
	baseHeapBytes        = firstBlockOffset + format.SentinelSize // room for prologue+epilogue, no wilderness yet
)

func binHeadOffset(i int) int {
	return segListOffset + i*format.FreeLinkSize
}
