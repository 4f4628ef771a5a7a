package curve25519

import (
	"bytes"
	"fmt"

	"filippo.io/edwards25519"
)

// Point is an element of the prime-order subgroup G of the twisted-Edwards
// form of Curve25519, the subgroup Ed25519 signatures are defined over.
type Point struct {
	p *edwards25519.Point
}

// BasePoint returns the standard generator B.
func BasePoint() *Point {
	return &Point{p: edwards25519.NewGeneratorPoint()}
}

// DecompressPoint decodes a 32-byte compressed Edwards-y encoding.
//
// filippo.io/edwards25519 rejects a y that doesn't correspond to a curve
// point but accepts non-canonical encodings (an unreduced y, or x = 0 with
// the sign bit set); DecompressPoint additionally rejects those by
// requiring the decoded point to re-encode to exactly b. Points outside
// the prime-order subgroup are not rejected, so a torsion point decodes
// successfully here and fails downstream in whatever check consumes it.
func DecompressPoint(b []byte) (*Point, error) {
	p, err := edwards25519.NewIdentityPoint().SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("curve25519: invalid compressed point: %w", err)
	}
	if !bytes.Equal(p.Bytes(), b) {
		return nil, fmt.Errorf("curve25519: invalid compressed point: non-canonical encoding")
	}
	return &Point{p: p}, nil
}

// Bytes returns the 32-byte canonical compressed encoding.
func (p *Point) Bytes() []byte {
	return p.p.Bytes()
}

// Add returns p + other.
func (p *Point) Add(other *Point) *Point {
	return &Point{p: edwards25519.NewIdentityPoint().Add(p.p, other.p)}
}

// Sub returns p - other.
func (p *Point) Sub(other *Point) *Point {
	return &Point{p: edwards25519.NewIdentityPoint().Subtract(p.p, other.p)}
}

// ScalarMult returns s*p.
func (p *Point) ScalarMult(s *Scalar) *Point {
	return &Point{p: edwards25519.NewIdentityPoint().ScalarMult(s.s, p.p)}
}

// Equal reports whether p and other compress to the same bytes.
func (p *Point) Equal(other *Point) bool {
	return p.p.Equal(other.p) == 1
}
