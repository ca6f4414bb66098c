package hash

import (
	"math/bits"

	"github.com/kalbasit/cdc/width"
)

// PCIBuilder builds a rolling popcount sum over a window of bytes:
// ones_count += popcount(in) - popcount(out). Unlike every other hash in
// this package, PCI's split predicate compares this running sum against
// a threshold rather than masking it, so PCIBuilder's digest is not fed
// through a Builder-style mask at all — see chunker.PCIThresholdPredicate.
// Grounded on original_source/src/chunkers/ported/pci.rs.
type PCIBuilder struct {
	WindowSize int
}

func NewPCIBuilder(windowSize int) PCIBuilder {
	return PCIBuilder{WindowSize: windowSize}
}

func (b PCIBuilder) PrepareBytesCount() int { return b.WindowSize }

func (b PCIBuilder) New(prepare []byte) RollingHash[width.U32] {
	if len(prepare) != b.WindowSize {
		panic("hash: pci prepare buffer must equal the window size")
	}

	h := &pciHash{window: append([]byte(nil), prepare...), windowSize: b.WindowSize}

	for _, by := range prepare {
		h.ones += uint32(bits.OnesCount8(by))
	}

	return h
}

type pciHash struct {
	window     []byte
	windowSize int
	pos        int
	ones       uint32
}

func (h *pciHash) Roll(newByte byte) {
	old := h.window[h.pos]
	h.ones -= uint32(bits.OnesCount8(old))
	h.ones += uint32(bits.OnesCount8(newByte))

	h.window[h.pos] = newByte
	h.pos = (h.pos + 1) % h.windowSize
}

func (h *pciHash) Digest() width.U32 { return width.U32(h.ones) }
