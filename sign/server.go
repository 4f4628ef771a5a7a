package sign

import (
	"fmt"
	"io"

	"github.com/smallyu/go-frost2p/internal/curve25519"
)

// StartServerRound1 runs the Server's half of signing round 1 (sign_r1).
// Symmetric to StartClientRound1.
func StartServerRound1(rng io.Reader) (*ServerRound1Output, error) {
	d, err := curve25519.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("sign: server round 1: %w", err)
	}
	e, err := curve25519.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("sign: server round 1: %w", err)
	}

	return &ServerRound1Output{
		SecretD: d,
		SecretE: e,
		Message: ServerRound1Message{D: compress(d.ScalarBaseMult()), E: compress(e.ScalarBaseMult())},
	}, nil
}

// ServerRound2 runs the Server's half of signing round 2 (sign_r2):
//
//	z_server = d_server + e_server*rho_server - p_server*c.
//
// The negated p·c term is what CombineClient's check
// z_server*B == R_server - c*P_server expects — it must not be unified with
// ClientRound2's formula.
func ServerRound2(h curve25519.Hash, pServer *curve25519.Scalar, jointPublic CompressedPoint, message []byte, own *ServerRound1Output, peer ClientRound1Message) (*curve25519.Point, ServerRound2Message, error) {
	rhoServer := bindingFactor(h, serverTag, message, own.Message.D, own.Message.E)

	clientSum, err := partyNonceSum(h, clientTag, message, peer.D, peer.E)
	if err != nil {
		return nil, ServerRound2Message{}, err
	}
	serverSum, err := partyNonceSum(h, serverTag, message, own.Message.D, own.Message.E)
	if err != nil {
		return nil, ServerRound2Message{}, err
	}

	R := clientSum.Add(serverSum)
	c := jointChallenge(h, R, message, jointPublic)

	zServer := own.SecretD.Add(own.SecretE.Mul(rhoServer)).Sub(pServer.Mul(c))

	return R, ServerRound2Message{Z: zServer}, nil
}

// CombineServer runs the Server's half of signing combine: reconstruct R,
// verify the Client's partial signature z_client against its nonce
// commitments and public share P_client, then sum the two partial
// signatures into the final (R_joint, z_joint).
func CombineServer(h curve25519.Hash, jointPublic, clientPublic CompressedPoint, message []byte, clientR1 ClientRound1Message, clientR2 ClientRound2Message, serverR1 ServerRound1Message, serverR2 ServerRound2Message) (*Signature, error) {
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

	PClient, err := clientPublic.Decompress()
	if err != nil {
		return nil, err
	}

	lhs := clientR2.Z.ScalarBaseMult()
	rhs := Rclient.Add(PClient.ScalarMult(c))
	if !lhs.Equal(rhs) {
		return nil, ErrPartialSignatureVerification
	}

	zJoint := clientR2.Z.Add(serverR2.Z)
	return &Signature{R: compress(R), Z: zJoint}, nil
}
