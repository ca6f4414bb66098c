package width

import "math/bits"

// U32 is the Unsigned capability implemented over a plain uint32, used
// by algorithms whose digest fits in 32 bits (BuzHash32, Adler32, PCI,
// Borg).
type U32 uint32

func (U32) Zero() U32 { return 0 }
func (U32) One() U32  { return 1 }

func (x U32) Xor(y U32) U32 { return x ^ y }
func (x U32) And(y U32) U32 { return x & y }
func (x U32) Or(y U32) U32  { return x | y }

func (x U32) Shl(n uint) U32 { return x << n }
func (x U32) Shr(n uint) U32 { return x >> n }

func (x U32) Add(y U32) U32 { return x + y }

func (x U32) RotateLeft(n uint) U32 {
	return U32(bits.RotateLeft32(uint32(x), int(n)))
}

func (U32) Bits() int { return 32 }

func (x U32) IsZero() bool { return x == 0 }

func (x U32) Less(y U32) bool { return x < y }

// FromByte lifts b into the low 8 bits.
func (U32) FromByte(b byte) U32 { return U32(b) }
