package sign

import (
	"fmt"
	"io"

	"github.com/smallyu/go-frost2p/internal/curve25519"
)

// StartClientRound1 runs the Client's half of signing round 1 (sign_r1):
// draw fresh nonces (d, e) and publish their commitments (D, E).
func StartClientRound1(rng io.Reader) (*ClientRound1Output, error) {
	d, err := curve25519.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("sign: client round 1: %w", err)
	}
	e, err := curve25519.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("sign: client round 1: %w", err)
	}

	return &ClientRound1Output{
		SecretD: d,
		SecretE: e,
		Message: ClientRound1Message{D: compress(d.ScalarBaseMult()), E: compress(e.ScalarBaseMult())},
	}, nil
}

// ClientRound2 runs the Client's half of signing round 2 (sign_r2): derive
// the binding factors, reconstruct the joint nonce commitment R, and
// compute the Client's partial signature
//
//	z_client = d_client + e_client*rho_client + p_client*c.
//
// The positive p·c term (as opposed to the Server's negated one) is load
// bearing — see spec §4.4 step 5 and §4.5.
func ClientRound2(h curve25519.Hash, pClient *curve25519.Scalar, jointPublic CompressedPoint, message []byte, own *ClientRound1Output, peer ServerRound1Message) (*curve25519.Point, ClientRound2Message, error) {
	rhoClient := bindingFactor(h, clientTag, message, own.Message.D, own.Message.E)

	clientSum, err := partyNonceSum(h, clientTag, message, own.Message.D, own.Message.E)
	if err != nil {
		return nil, ClientRound2Message{}, err
	}
	serverSum, err := partyNonceSum(h, serverTag, message, peer.D, peer.E)
	if err != nil {
		return nil, ClientRound2Message{}, err
	}

	R := clientSum.Add(serverSum)
	c := jointChallenge(h, R, message, jointPublic)

	zClient := own.SecretD.Add(own.SecretE.Mul(rhoClient)).Add(pClient.Mul(c))

	return R, ClientRound2Message{Z: zClient}, nil
}

// CombineClient runs the Client's half of signing combine: reconstruct R,
// verify the Server's partial signature z_server against its nonce
// commitments and public share P_server, then sum the two partial
// signatures into the final (R_joint, z_joint).
func CombineClient(h curve25519.Hash, jointPublic, serverPublic CompressedPoint, message []byte, clientR1 ClientRound1Message, clientR2 ClientRound2Message, serverR1 ServerRound1Message, serverR2 ServerRound2Message) (*Signature, error) {
	Rclient, err := partyNonceSum(h, clientTag, message, clientR1.D, clientR1.E)
	if err != nil {
		return nil, err
	}
	Rserver, err := partyNonceSum(h, serverTag, message, serverR1.D, serverR1.E)
	if err != nil {
		return nil, err
	}

	R := Rclient.Add(Rserver)
	c := jointChallenge(h, R, message, jointPublic)

	PServer, err := serverPublic.Decompress()
	if err != nil {
		return nil, err
	}

	lhs := serverR2.Z.ScalarBaseMult()
	rhs := Rserver.Sub(PServer.ScalarMult(c))
	if !lhs.Equal(rhs) {
		return nil, ErrPartialSignatureVerification
	}

	zJoint := clientR2.Z.Add(serverR2.Z)
	return &Signature{R: compress(R), Z: zJoint}, nil
}
