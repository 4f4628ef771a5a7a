package sign

import "github.com/smallyu/go-frost2p/internal/curve25519"

var (
	clientTag = []byte("client")
	serverTag = []byte("server")
)

// bindingFactor computes rho_x = H(tag || m || D_x || E_x), the per-party
// binding factor that ties each party's nonces to the message (spec §4.4
// step 1).
func bindingFactor(h curve25519.Hash, tag []byte, message []byte, D, E CompressedPoint) *curve25519.Scalar {
	return curve25519.HashToScalar(h, tag, message, D[:], E[:])
}

// jointChallenge computes c = H(compress(R) || m || compress(P_joint)),
// the Fiat-Shamir challenge shared by sign_r2 and combine (spec §4.4 step
// 4, §4.5).
func jointChallenge(h curve25519.Hash, R *curve25519.Point, message []byte, jointPublic CompressedPoint) *curve25519.Scalar {
	return curve25519.HashToScalar(h, R.Bytes(), message, jointPublic[:])
}

// partyNonceSum reconstructs D_x + rho_x * E_x for one party, decompressing
// both commitments from their wire form.
func partyNonceSum(h curve25519.Hash, tag []byte, message []byte, D, E CompressedPoint) (*curve25519.Point, error) {
	rho := bindingFactor(h, tag, message, D, E)
	Dp, err := D.Decompress()
	if err != nil {
		return nil, err
	}
	Ep, err := E.Decompress()
	if err != nil {
		return nil, err
	}
	return Dp.Add(Ep.ScalarMult(rho)), nil
}

// Verify checks sig against the standard Ed25519 verification equation
// z*B == R + c*P_joint, using this protocol's own challenge derivation.
// Spec §9 flags that combine's asymmetric p·c construction does not, in
// fact, satisfy this equation — Verify is provided so callers (and the
// end-to-end tests) can observe that directly instead of assuming it.
func Verify(h curve25519.Hash, jointPublic CompressedPoint, message []byte, sig Signature) (bool, error) {
	R, err := sig.R.Decompress()
	if err != nil {
		return false, err
	}
	P, err := jointPublic.Decompress()
	if err != nil {
		return false, err
	}
	c := jointChallenge(h, R, message, jointPublic)

	lhs := sig.Z.ScalarBaseMult()
	rhs := R.Add(P.ScalarMult(c))
	return lhs.Equal(rhs), nil
}
