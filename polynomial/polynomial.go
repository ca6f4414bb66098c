// Package polynomial implements arithmetic over GF(2)[x], the ring of
// polynomials with coefficients in the two-element field, represented as
// 64-bit words (bit i is the coefficient of x^i). This is the algebra
// behind the Polynomial/Rabin rolling hash used by the restic preset: a
// random irreducible polynomial of degree 53 keys the rolling-hash
// tables so that two independent chunkers never accidentally agree on
// where to split.
package polynomial

import (
	"crypto/rand"
	"encoding/binary"
	"math/bits"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Pol is a polynomial over GF(2), stored as a 64-bit bitmask of its
// coefficients. Pol(0) is the zero polynomial.
type Pol uint64

// Add returns a+b. Addition in GF(2) is XOR; there is no carry.
func (x Pol) Add(y Pol) Pol { return x ^ y }

func mulOverflows(x, y Pol) bool {
	if x == 0 || y == 0 {
		return false
	}

	d := x.Deg()
	for i := 0; i <= y.Deg(); i++ {
		if y&(1<<uint(i)) > 0 {
			if d+i >= 64 {
				return true
			}
		}
	}

	return false
}

// Mul returns x*y. It panics if the result would overflow 64 bits; the
// caller is expected to keep operands at or below degree 53 so this
// never happens in the restic preset's tables.
func (x Pol) Mul(y Pol) Pol {
	if x == 0 || y == 0 {
		return 0
	}

	if mulOverflows(x, y) {
		panic("multiplication would overflow uint64")
	}

	var res Pol
	for i := 0; i <= y.Deg(); i++ {
		if y&(1<<uint(i)) > 0 {
			res ^= x << uint(i)
		}
	}

	return res
}

// Deg returns the degree of the polynomial, or -1 for the zero
// polynomial.
func (x Pol) Deg() int {
	if x == 0 {
		return -1
	}

	return bits.Len64(uint64(x)) - 1
}

// String renders x as a sum of powers of x, e.g. "x^53+x^15+1".
func (x Pol) String() string {
	if x == 0 {
		return "0"
	}

	s := ""
	for i := x.Deg(); i > 1; i-- {
		if x&(1<<uint(i)) > 0 {
			s += "x^" + strconv.Itoa(i) + "+"
		}
	}

	if x&2 > 0 {
		s += "x+"
	}

	if x&1 > 0 {
		s += "1"
	}

	return strings.TrimSuffix(s, "+")
}

// DivMod returns the quotient and remainder of x/d. It panics if d is
// the zero polynomial.
func (x Pol) DivMod(d Pol) (Pol, Pol) {
	if d == 0 {
		panic("division by zero")
	}

	D := d.Deg()
	if x == 0 {
		return 0, 0
	}

	var q Pol
	for x.Deg() >= D {
		shift := uint(x.Deg() - D)
		q ^= 1 << shift
		x = x.Add(d << shift)
	}

	return q, x
}

// Div returns the quotient of x/d.
func (x Pol) Div(d Pol) Pol {
	q, _ := x.DivMod(d)
	return q
}

// Mod returns the remainder of x/d.
func (x Pol) Mod(d Pol) Pol {
	_, r := x.DivMod(d)
	return r
}

// GCD returns the greatest common divisor of x and y via the Euclidean
// algorithm specialized to GF(2)[x].
func (x Pol) GCD(y Pol) Pol {
	if x == 0 {
		return y
	}

	if y == 0 {
		return x
	}

	if x.Deg() < y.Deg() {
		x, y = y, x
	}

	return y.GCD(x.Mod(y))
}

// mulMod returns (x*y) mod g, doubling x and folding it back under g one
// bit of y at a time so intermediate values never overflow 64 bits.
func mulMod(x, y, g Pol) Pol {
	if x == 0 || y == 0 {
		return 0
	}

	var res Pol
	for i := 0; i <= y.Deg(); i++ {
		if y&(1<<uint(i)) > 0 {
			res = res.Add(x)
		}

		x <<= 1
		if x.Deg() == g.Deg() {
			x = x.Add(g)
		}
	}

	return res
}

// qp computes (x^(2^p) - x) mod g via repeated squaring, the quantity
// Ben Or's irreducibility test checks for a GCD of 1 with g.
func qp(p int, g Pol) Pol {
	num := Pol(2)

	for i := 0; i < p; i++ {
		num = mulMod(num, num, g)
	}

	return num.Add(2)
}

// Irreducible reports whether x is an irreducible polynomial over GF(2),
// using Ben Or's test: for i in 1..=deg(x)/2, gcd(x, qp(i,x)) must be 1.
func (x Pol) Irreducible() bool {
	for i := 1; i <= x.Deg()/2; i++ {
		if x.GCD(qp(i, x)) != 1 {
			return false
		}
	}

	return true
}

// ErrIrreducibilityExhausted is returned by RandomIrreducible when no
// irreducible polynomial of the requested shape was found within the
// search budget. This is a fatal, programming-bug-class condition per
// the core's error taxonomy, not something callers should retry on a
// tight loop.
var ErrIrreducibilityExhausted = errors.New("polynomial: unable to find an irreducible polynomial within the search budget")

const randPolMaxTries = 1_000_000

// RandomIrreducible draws 64-bit values from crypto/rand, masks them to
// 54 bits and forces bit 53 and bit 0, and returns the first one that
// passes Irreducible. This matches restic's own RandomPolynomial: degree
// exactly 53 (so the Rabin digest fits comfortably below 64 bits during
// rolling updates) and an odd constant term (so x is never a factor).
func RandomIrreducible() (Pol, error) {
	for i := 0; i < randPolMaxTries; i++ {
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, errors.Wrap(err, "polynomial: reading random bytes")
		}

		f := Pol(binary.LittleEndian.Uint64(buf[:]))
		f &= (1 << 54) - 1
		f |= 1 << 53
		f |= 1

		if f.Irreducible() {
			return f, nil
		}
	}

	return 0, ErrIrreducibilityExhausted
}
