package hash

import (
	"github.com/kalbasit/cdc/polynomial"
	"github.com/kalbasit/cdc/width"
)

// PolynomialBuilder builds the Polynomial (Rabin) rolling hash restic's
// chunker uses: digest ^= out_table[out]; index = digest >> shift;
// digest = ((digest<<8)|in) ^ mod_table[index]. Grounded on
// restic-restic/chunker/chunker.go's inlined digest update and
// original_source/src/hashes/polynomial_hash/mod.rs.
type PolynomialBuilder struct {
	Tables *polynomial.Tables
}

// NewPolynomialBuilder builds a PolynomialBuilder keyed on pol, using
// the process-wide table cache so repeated construction over the same
// polynomial is cheap.
func NewPolynomialBuilder(pol polynomial.Pol) PolynomialBuilder {
	return PolynomialBuilder{Tables: polynomial.DefaultCache().Get(pol)}
}

func (b PolynomialBuilder) PrepareBytesCount() int { return polynomial.WindowSize }

func (b PolynomialBuilder) New(prepare []byte) RollingHash[width.U64] {
	if len(prepare) != polynomial.WindowSize {
		panic("hash: polynomial prepare buffer must equal WindowSize")
	}

	h := &polynomialHash{
		tables:     b.Tables,
		window:     append([]byte(nil), prepare...),
		windowSize: polynomial.WindowSize,
	}

	for _, by := range prepare {
		index := h.digest >> b.Tables.Shift
		h.digest = (h.digest << 8) | uint64(by)
		h.digest ^= uint64(b.Tables.Mod[index])
	}

	return h
}

type polynomialHash struct {
	tables     *polynomial.Tables
	window     []byte
	windowSize int
	pos        int
	digest     uint64
}

// Roll cancels the byte sliding out of the 64-byte window via the Out
// table, then folds the new byte in and reduces via the Mod table —
// the same three-step update restic's Chunker.Next inlines for speed.
func (h *polynomialHash) Roll(newByte byte) {
	old := h.window[h.pos]

	h.digest ^= uint64(h.tables.Out[old])
	index := h.digest >> h.tables.Shift
	h.digest <<= 8
	h.digest |= uint64(newByte)
	h.digest ^= uint64(h.tables.Mod[index])

	h.window[h.pos] = newByte
	h.pos = (h.pos + 1) % h.windowSize
}

func (h *polynomialHash) Digest() width.U64 { return width.U64(h.digest) }
