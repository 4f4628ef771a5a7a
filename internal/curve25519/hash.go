package curve25519

import (
	"crypto/sha512"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// Hash is the 512-bit extendable hash this protocol needs both for
// Fiat-Shamir challenges and for wide-reduction scalar derivation. It is a
// configuration knob fixed once per session (spec "Hash-context
// polymorphism" design note): callers pick one Hash implementation and pass
// it into every operation of a given DKG/signing session.
//
// Digest concatenates parts with no separator and no length prefix, exactly
// as the hash-input layouts in spec §6 require.
type Hash interface {
	Digest(parts ...[]byte) [64]byte
}

// HashToScalar hashes parts under h and wide-reduces the 64-byte digest to
// a scalar mod l.
func HashToScalar(h Hash, parts ...[]byte) *Scalar {
	return ScalarFromUniformBytes(h.Digest(parts...))
}

// SHA512 is the default Hash, matching Ed25519's own hash and the original
// crate's Sha512 instantiation.
var SHA512 Hash = sha512Hash{}

type sha512Hash struct{}

func (sha512Hash) Digest(parts ...[]byte) [64]byte {
	h := sha512.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out [64]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Blake3Hash is a Hash backed by BLAKE3 in its native extendable-output
// mode, truncated/extended to 64 bytes. An alternate instantiation of the
// Hash knob; not the default.
var Blake3Hash Hash = blake3Hash{}

type blake3Hash struct{}

func (blake3Hash) Digest(parts ...[]byte) [64]byte {
	h := blake3.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out [64]byte
	// Digest() exposes BLAKE3's XOF; Read never errors for an in-memory sponge.
	_, _ = h.Digest().Read(out[:])
	return out
}

// SHA3Hash is a Hash backed by SHA3-512. Another alternate instantiation of
// the Hash knob.
var SHA3Hash Hash = sha3Hash{}

type sha3Hash struct{}

func (sha3Hash) Digest(parts ...[]byte) [64]byte {
	h := sha3.New512()
	for _, p := range parts {
		h.Write(p)
	}
	var out [64]byte
	copy(out[:], h.Sum(nil))
	return out
}
