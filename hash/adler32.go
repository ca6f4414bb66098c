package hash

import "github.com/kalbasit/cdc/width"

// adler32Mod is the largest prime below 2^16, the modulus the Adler-32
// checksum reduces both running sums by.
const adler32Mod = 65521

// Adler32Builder builds a standard rolling Adler-32 checksum over an
// explicit window, following the incremental-update formula used by
// rsync's own rolling checksum: on each step, a is adjusted by the byte
// entering and leaving the window, and b is adjusted by windowSize
// copies of the leaving byte plus the new a. Grounded on
// original_source/src/hashes/adler32.rs, which wraps an external crate
// implementing the same algorithm.
type Adler32Builder struct {
	WindowSize int
}

func NewAdler32Builder(windowSize int) Adler32Builder {
	return Adler32Builder{WindowSize: windowSize}
}

func (b Adler32Builder) PrepareBytesCount() int { return b.WindowSize }

func (b Adler32Builder) New(prepare []byte) RollingHash[width.U32] {
	if len(prepare) != b.WindowSize {
		panic("hash: adler32 prepare buffer must equal the window size")
	}

	h := &adler32Hash{
		window:     append([]byte(nil), prepare...),
		windowSize: b.WindowSize,
		a:          1,
		b:          0,
	}

	for _, by := range prepare {
		h.a = (h.a + uint32(by)) % adler32Mod
		h.b = (h.b + h.a) % adler32Mod
	}

	return h
}

type adler32Hash struct {
	window     []byte
	windowSize int
	pos        int
	a, b       uint32
}

func (h *adler32Hash) Roll(newByte byte) {
	old := uint32(h.window[h.pos])

	h.a = (h.a + adler32Mod - old + uint32(newByte)) % adler32Mod
	h.b = (h.b + adler32Mod - (uint32(h.windowSize)*old)%adler32Mod + h.a) % adler32Mod

	h.window[h.pos] = newByte
	h.pos = (h.pos + 1) % h.windowSize
}

func (h *adler32Hash) Digest() width.U32 {
	return width.U32((h.b << 16) | h.a)
}
