package chunker

import (
	"crypto/sha256"
	"encoding/binary"
	"math/bits"

	"github.com/kalbasit/cdc"
)

// BuzHash32Reg is the "regression" BuzHash32 variant: instead of a fixed
// two-region mask split, it accepts a split at the first position whose
// digest clears the current mask and falls under a threshold derived
// from (avg - min). A position that clears the mask but misses the
// threshold becomes the fallback split (rc_len), and the mask moves to
// the bits above the digest's highest set bit. If no position is
// accepted, it returns the fallback, or len(buf) when there is none or
// the final digest clears the mask. This search strategy carries state (rc_len, rc_mask)
// across loop iterations in a way NormalizedChunker's fixed low/high
// regions cannot express, so it is kept as its own cdc.SplitFinder
// rather than squeezed into the generic type. Grounded on
// original_source/src/chunkers/custom/buzhash32_reg.rs.
type BuzHash32Reg struct {
	table      [256]uint32
	windowSize int
}

// NewBuzHash32Reg builds a BuzHash32Reg over a SHA-256-derived table —
// the same table buzhash32_reg.rs generates — at the given window size.
func NewBuzHash32Reg(windowSize int) *BuzHash32Reg {
	var table [256]uint32

	for i := range table {
		var seed [64]byte
		for j := range seed {
			seed[j] = byte(i)
		}

		digest := sha256.Sum256(seed[:])
		table[i] = binary.BigEndian.Uint32(digest[:4])
	}

	return &BuzHash32Reg{table: table, windowSize: windowSize}
}

func rol32(x uint32, i uint) uint32 { return bits.RotateLeft32(x, int(i%32)) }

// FindSplit implements cdc.SplitFinder.
func (b *BuzHash32Reg) FindSplit(buf []byte, sizes cdc.ChunkSizes) int {
	threshold := ^uint32(0) / (uint32(sizes.Avg) - uint32(sizes.Min) + 1)

	var digest uint32

	i := int(sizes.Min) - b.windowSize
	for i < int(sizes.Min) {
		digest = rol32(digest, 1) ^ b.table[buf[i]]
		i++
	}

	rcLen := len(buf)

	var rcMask uint32

	for i < len(buf) {
		if digest&rcMask == 0 {
			if digest <= threshold {
				return i
			}

			rcLen = i
			rcMask = ^uint32(0)

			for digest&rcMask > 0 {
				rcMask <<= 1
			}
		}

		newByte := buf[i]
		oldByte := buf[i-b.windowSize]
		digest = rol32(digest, 1) ^ rol32(b.table[oldByte], uint(b.windowSize)) ^ b.table[newByte]
		i++
	}

	if digest&rcMask > 0 {
		return rcLen
	}

	return i
}
