package width

import "math/bits"

// U64 is the Unsigned capability implemented over a plain uint64, used
// by Gear, right-Gear/Ronomon, BuzHash64, Polynomial/Restic and Duplicacy.
type U64 uint64

func (U64) Zero() U64 { return 0 }
func (U64) One() U64  { return 1 }

func (x U64) Xor(y U64) U64 { return x ^ y }
func (x U64) And(y U64) U64 { return x & y }
func (x U64) Or(y U64) U64  { return x | y }

func (x U64) Shl(n uint) U64 { return x << n }
func (x U64) Shr(n uint) U64 { return x >> n }

func (x U64) Add(y U64) U64 { return x + y }

func (x U64) RotateLeft(n uint) U64 {
	return U64(bits.RotateLeft64(uint64(x), int(n)))
}

func (U64) Bits() int { return 64 }

func (x U64) IsZero() bool { return x == 0 }

func (x U64) Less(y U64) bool { return x < y }

// FromByte lifts b into the low 8 bits.
func (U64) FromByte(b byte) U64 { return U64(b) }
