// Package width supplies a uniform arithmetic capability over the
// unsigned-integer widths a rolling hash can be built on: 32, 64 and
// 128 bits. Generic code in hash, mask and chunker is parameterized over
// this capability instead of over a fixed machine word, so the same
// NormalizedChunker implementation drives BuzHash32, BuzHash64 and
// BuzHash128 alike.
package width

// Unsigned is the capability set a rolling-hash digest type must
// provide: bitwise combination, shifting, wrapping addition, rotation,
// width introspection, and lifting a single byte into the type. T is
// self-referential so that operations compose without boxing: x.Xor(y)
// returns a T, not an interface.
type Unsigned[T any] interface {
	comparable

	// Zero reports the additive identity, used as "no bits set".
	Zero() T

	// One reports the multiplicative identity, the value with only bit
	// 0 set.
	One() T

	Xor(T) T
	And(T) T
	Or(T) T

	// Shl and Shr shift left/right by n bits, discarding bits that fall
	// off either end.
	Shl(n uint) T
	Shr(n uint) T

	// Add is wrapping addition modulo 2^Bits().
	Add(T) T

	// RotateLeft rotates the bit pattern left by n, modulo Bits().
	RotateLeft(n uint) T

	// Bits reports the width in bits (32, 64 or 128).
	Bits() int

	// IsZero reports whether the value equals Zero().
	IsZero() bool

	// Less reports whether x is strictly less than y under the natural
	// unsigned ordering. Used only by predicates (e.g. PCI's popcount
	// threshold test) that compare a digest against a bound instead of
	// masking it.
	Less(y T) bool

	// FromByte lifts a single byte into the low 8 bits of T.
	FromByte(b byte) T
}
