package hash

import "github.com/kalbasit/cdc/width"

// BuzHashBuilder builds a windowed, cyclic-polynomial rolling hash:
// digest = rotl(digest,1) ^ rotl(table[out],windowSize) ^ table[in].
// Grounded on original_source/src/hashes/buzhash.rs.
type BuzHashBuilder[T width.Unsigned[T]] struct {
	Table      [256]T
	WindowSize int
}

// NewBuzHashBuilder constructs a builder from a precomputed table (see
// package tables) and window size.
func NewBuzHashBuilder[T width.Unsigned[T]](table [256]T, windowSize int) BuzHashBuilder[T] {
	return BuzHashBuilder[T]{Table: table, WindowSize: windowSize}
}

func (b BuzHashBuilder[T]) PrepareBytesCount() int { return b.WindowSize }

func (b BuzHashBuilder[T]) New(prepare []byte) RollingHash[T] {
	if len(prepare) != b.WindowSize {
		panic("hash: buzhash prepare buffer must equal the window size")
	}

	var zero T

	h := &buzHash[T]{
		table:      b.Table,
		window:     append([]byte(nil), prepare...),
		windowSize: b.WindowSize,
		digest:     zero.Zero(),
	}

	for _, by := range prepare {
		h.digest = h.digest.RotateLeft(1).Xor(b.Table[by])
	}

	return h
}

type buzHash[T width.Unsigned[T]] struct {
	table      [256]T
	window     []byte
	windowSize int
	pos        int
	digest     T
}

func (h *buzHash[T]) Roll(b byte) {
	old := h.window[h.pos]
	h.digest = h.digest.RotateLeft(1).
		Xor(h.table[old].RotateLeft(uint(h.windowSize))).
		Xor(h.table[b])

	h.window[h.pos] = b
	h.pos = (h.pos + 1) % h.windowSize
}

func (h *buzHash[T]) Digest() T { return h.digest }
