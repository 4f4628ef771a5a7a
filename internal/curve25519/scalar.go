// Package curve25519 wraps filippo.io/edwards25519 with the Scalar/Point
// shapes this protocol needs: random generation, wide-reduction hashing to
// a scalar, and canonical 32-byte compressed encodings.
package curve25519

import (
	"fmt"
	"io"

	"filippo.io/edwards25519"
)

// Scalar is an element of Z/lZ, l the prime order of the Ed25519 subgroup.
type Scalar struct {
	s *edwards25519.Scalar
}

// RandomScalar draws a uniform scalar from rng via 64-byte wide reduction.
func RandomScalar(rng io.Reader) (*Scalar, error) {
	var buf [64]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return nil, fmt.Errorf("curve25519: read random bytes: %w", err)
	}
	s, err := edwards25519.NewScalar().SetUniformBytes(buf[:])
	if err != nil {
		return nil, fmt.Errorf("curve25519: wide-reduce random bytes: %w", err)
	}
	return &Scalar{s: s}, nil
}

// ScalarFromUniformBytes wide-reduces an arbitrary 64-byte hash output
// (e.g. a SHA-512/BLAKE3-512 digest) to a scalar. Used for Fiat-Shamir
// challenges and binding factors.
func ScalarFromUniformBytes(digest [64]byte) *Scalar {
	s, err := edwards25519.NewScalar().SetUniformBytes(digest[:])
	if err != nil {
		// SetUniformBytes only fails on inputs shorter than 64 bytes.
		panic("curve25519: wide reduction over a fixed 64-byte digest cannot fail")
	}
	return &Scalar{s: s}
}

// ScalarFromCanonicalBytes decodes a 32-byte little-endian scalar encoding.
func ScalarFromCanonicalBytes(b []byte) (*Scalar, error) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("curve25519: non-canonical scalar encoding: %w", err)
	}
	return &Scalar{s: s}, nil
}

// Bytes returns the 32-byte canonical little-endian encoding.
func (s *Scalar) Bytes() []byte {
	return s.s.Bytes()
}

// Add returns s + other.
func (s *Scalar) Add(other *Scalar) *Scalar {
	return &Scalar{s: edwards25519.NewScalar().Add(s.s, other.s)}
}

// Sub returns s - other.
func (s *Scalar) Sub(other *Scalar) *Scalar {
	return &Scalar{s: edwards25519.NewScalar().Subtract(s.s, other.s)}
}

// Mul returns s * other.
func (s *Scalar) Mul(other *Scalar) *Scalar {
	return &Scalar{s: edwards25519.NewScalar().Multiply(s.s, other.s)}
}

// Negate returns -s.
func (s *Scalar) Negate() *Scalar {
	return &Scalar{s: edwards25519.NewScalar().Negate(s.s)}
}

// Equal reports whether s and other encode the same scalar.
func (s *Scalar) Equal(other *Scalar) bool {
	return s.s.Equal(other.s) == 1
}

// ScalarBaseMult returns s*B for the fixed base point B.
func (s *Scalar) ScalarBaseMult() *Point {
	return &Point{p: edwards25519.NewIdentityPoint().ScalarBaseMult(s.s)}
}
