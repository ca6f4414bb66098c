package width

import "math/bits"

// U128 is the Unsigned capability implemented over a Hi/Lo pair of
// uint64s. Go has no native 128-bit integer type, and nothing in the
// retrieval pack provides one either (see DESIGN.md), so this is built
// directly on math/bits. Hi holds the most-significant 64 bits.
type U128 struct {
	Hi, Lo uint64
}

func (U128) Zero() U128 { return U128{} }
func (U128) One() U128  { return U128{Lo: 1} }

func (x U128) Xor(y U128) U128 { return U128{x.Hi ^ y.Hi, x.Lo ^ y.Lo} }
func (x U128) And(y U128) U128 { return U128{x.Hi & y.Hi, x.Lo & y.Lo} }
func (x U128) Or(y U128) U128  { return U128{x.Hi | y.Hi, x.Lo | y.Lo} }

func (x U128) Shl(n uint) U128 {
	n %= 128
	switch {
	case n == 0:
		return x
	case n >= 64:
		return U128{Hi: x.Lo << (n - 64), Lo: 0}
	default:
		return U128{Hi: (x.Hi << n) | (x.Lo >> (64 - n)), Lo: x.Lo << n}
	}
}

func (x U128) Shr(n uint) U128 {
	n %= 128
	switch {
	case n == 0:
		return x
	case n >= 64:
		return U128{Hi: 0, Lo: x.Hi >> (n - 64)}
	default:
		return U128{Hi: x.Hi >> n, Lo: (x.Lo >> n) | (x.Hi << (64 - n))}
	}
}

func (x U128) Add(y U128) U128 {
	lo, carry := bits.Add64(x.Lo, y.Lo, 0)
	hi, _ := bits.Add64(x.Hi, y.Hi, carry)
	return U128{Hi: hi, Lo: lo}
}

func (x U128) RotateLeft(n uint) U128 {
	n %= 128
	if n == 0 {
		return x
	}
	return x.Shl(n).Or(x.Shr(128 - n))
}

func (U128) Bits() int { return 128 }

func (x U128) IsZero() bool { return x.Hi == 0 && x.Lo == 0 }

func (x U128) Less(y U128) bool {
	if x.Hi != y.Hi {
		return x.Hi < y.Hi
	}

	return x.Lo < y.Lo
}

// FromByte lifts b into the low byte of the Lo word.
func (U128) FromByte(b byte) U128 { return U128{Lo: uint64(b)} }
