// Package schnorr implements the non-interactive Schnorr proof of
// knowledge used to bind each party's round-1 DKG commitment to the secret
// scalar behind it (spec §4.1). Adapted from the teacher's
// internal/crypto/zk/schnorr package, rewritten over the Ed25519 subgroup
// and a caller-supplied domain tag instead of secp256k1 + sha256.
package schnorr

import (
	"fmt"
	"io"

	"github.com/smallyu/go-frost2p/internal/curve25519"
)

// Proof is a pair (R, mu) proving knowledge of the discrete log x of
// X = x*B, bound to a domain-separating tag and to X itself via the
// Fiat-Shamir challenge e = H(tag || compress(X) || compress(R)).
type Proof struct {
	R  *curve25519.Point
	Mu *curve25519.Scalar
}

// Prove generates a proof of knowledge of x under X = x*B.
func Prove(rng io.Reader, h curve25519.Hash, tag []byte, x *curve25519.Scalar, X *curve25519.Point) (*Proof, error) {
	k, err := curve25519.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("schnorr: draw nonce: %w", err)
	}
	R := k.ScalarBaseMult()

	e := challenge(h, tag, X, R)
	mu := k.Add(x.Mul(e))

	return &Proof{R: R, Mu: mu}, nil
}

// Verify checks mu*B == R + e*X, i.e. mu*B - e*X == R.
func (p *Proof) Verify(h curve25519.Hash, tag []byte, X *curve25519.Point) bool {
	e := challenge(h, tag, X, p.R)
	expectedR := p.Mu.ScalarBaseMult().Sub(X.ScalarMult(e))
	return expectedR.Equal(p.R)
}

func challenge(h curve25519.Hash, tag []byte, X, R *curve25519.Point) *curve25519.Scalar {
	return curve25519.HashToScalar(h, tag, X.Bytes(), R.Bytes())
}
