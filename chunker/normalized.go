// Package chunker implements the normalized chunker (spec.md §4.3), the
// generic split-point finder every published CDC algorithm in this
// module is expressed as a composition of: a rolling hash, a mask/
// threshold builder, a predicate, and a center finder. NormalizedChunker
// itself never names a specific algorithm; the named presets in
// presets.go wire concrete (hash, table, mask style, center, predicate)
// combinations into it.
//
// Grounded on original_source/src/chunkers/chunker_with_normalization.rs;
// the CenterFinder/Predicate injection points generalize that file's
// single hardcoded center/predicate pair, per spec.md §9's "strategy
// composition without inheritance" design note.
package chunker

import (
	"github.com/kalbasit/cdc"
	"github.com/kalbasit/cdc/hash"
	"github.com/kalbasit/cdc/mask"
	"github.com/kalbasit/cdc/width"
)

// CenterFinder splits a buffer of length bufLen into the low-probability
// region [sizes.Min, center) and the high-probability region [center,
// bufLen), given the active ChunkSizes.
type CenterFinder func(sizes cdc.ChunkSizes, bufLen int) int

// SimpleCenter is center = min(avg, bufLen), the default used by every
// preset except Ronomon (RonomonCenter) and BuzHash32Plain and Duplicacy
// (AtMin).
func SimpleCenter(sizes cdc.ChunkSizes, bufLen int) int {
	c := int(sizes.Avg)
	if c > bufLen {
		c = bufLen
	}

	return c
}

// RonomonCenter shifts the pivot earlier by the minimum-size policy:
// center = avg - (min + ceil(min/2)), clamped to [0, bufLen]. Grounded on
// original_source/src/chunkers/ported/ronomon.rs.
func RonomonCenter(sizes cdc.ChunkSizes, bufLen int) int {
	min := int64(sizes.Min)
	avg := int64(sizes.Avg)

	c := avg - (min + (min+1)/2)
	if c < 0 {
		c = 0
	}

	if c > int64(bufLen) {
		c = int64(bufLen)
	}

	return int(c)
}

// AtMin is a center finder that puts the entire search range in the
// high-probability region, by pinning center to sizes.Min. Combined with
// normalization level 0 (so mask_low == mask_high), this collapses
// NormalizedChunker to a single-mask, single-region search — the shape
// used by algorithms (Duplicacy, the plain BuzHash32 port) that predate
// two-region normalization.
func AtMin(sizes cdc.ChunkSizes, bufLen int) int {
	c := int(sizes.Min)
	if c > bufLen {
		c = bufLen
	}

	return c
}

// Predicate decides whether digest marks a split point against param (a
// mask for every preset but PCI, a popcount threshold for PCI).
type Predicate[T width.Unsigned[T]] func(digest, param T) bool

// MaskZeroPredicate is the standard CDC predicate: split when digest &
// mask == 0.
func MaskZeroPredicate[T width.Unsigned[T]](digest, mask T) bool {
	return digest.And(mask).IsZero()
}

// PCIThresholdPredicate is PCI's predicate: split when the rolling
// popcount sum (carried as digest) is no longer below the threshold.
// Grounded on original_source/src/chunkers/ported/pci.rs.
func PCIThresholdPredicate[T width.Unsigned[T]](digest, threshold T) bool {
	return !digest.Less(threshold)
}

// NormalizedChunker is the generic split-point finder of spec.md §4.3. It
// implements cdc.SplitFinder.
type NormalizedChunker[T width.Unsigned[T]] struct {
	builder     hash.RollingHashBuilder[T]
	maskBuilder mask.Builder[T]
	predicate   Predicate[T]
	center      CenterFinder
	level       uint8
}

// New builds a NormalizedChunker from its four injectable strategies and
// a normalization level. Most presets use MaskZeroPredicate and
// SimpleCenter; Ronomon substitutes RonomonCenter, PCI substitutes
// PCIThresholdPredicate.
func New[T width.Unsigned[T]](
	builder hash.RollingHashBuilder[T],
	maskBuilder mask.Builder[T],
	predicate Predicate[T],
	center CenterFinder,
	level uint8,
) *NormalizedChunker[T] {
	return &NormalizedChunker[T]{
		builder:     builder,
		maskBuilder: maskBuilder,
		predicate:   predicate,
		center:      center,
		level:       level,
	}
}

// FindSplit implements cdc.SplitFinder. It primes the rolling hash from
// the prepare_bytes_count bytes immediately before sizes.Min, then walks
// the low-probability region [min, center) against mask_low and the
// high-probability region [center, buf.len()) against mask_high,
// returning the first position either predicate accepts, or len(buf) if
// neither does.
func (c *NormalizedChunker[T]) FindSplit(buf []byte, sizes cdc.ChunkSizes) int {
	bits := mask.Log2Round(sizes.Avg)

	var zero T
	bitWidth := uint8(zero.Bits())

	lowBits := bits + c.level
	if lowBits >= bitWidth {
		lowBits = bitWidth - 1
	}

	highBits := uint8(0)
	if bits > c.level {
		highBits = bits - c.level
	}

	maskLow := c.maskBuilder(lowBits)
	maskHigh := c.maskBuilder(highBits)

	min := int(sizes.Min)
	w := c.builder.PrepareBytesCount()

	primeStart := min - w
	if primeStart < 0 {
		primeStart = 0
	}

	rh := c.builder.New(buf[primeStart:min])

	center := c.center(sizes, len(buf))
	if center < min {
		center = min
	}

	if center > len(buf) {
		center = len(buf)
	}

	for i := min; i < center; i++ {
		if c.predicate(rh.Digest(), maskLow) {
			return i
		}

		rh.Roll(buf[i])
	}

	for i := center; i < len(buf); i++ {
		if c.predicate(rh.Digest(), maskHigh) {
			return i
		}

		rh.Roll(buf[i])
	}

	return len(buf)
}
