package dkg

import (
	"fmt"
	"io"

	"github.com/smallyu/go-frost2p/internal/curve25519"
	"github.com/smallyu/go-frost2p/internal/schnorr"
)

// StartServerRound1 runs the Server's half of DKG round 1 (dkg_start_r1).
// Symmetric to StartClientRound1 except for the "server" domain tag.
func StartServerRound1(rng io.Reader, h curve25519.Hash) (*ServerRound1Output, error) {
	s0, err := curve25519.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("dkg: server round 1: %w", err)
	}
	s1, err := curve25519.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("dkg: server round 1: %w", err)
	}

	S0 := s0.ScalarBaseMult()
	S1 := s1.ScalarBaseMult()

	proof, err := schnorr.Prove(rng, h, serverTag, s0, S0)
	if err != nil {
		return nil, fmt.Errorf("dkg: server round 1 proof: %w", err)
	}

	return &ServerRound1Output{
		Secret0: s0,
		Secret1: s1,
		Commit0: S0,
		Commit1: S1,
		Message: ServerRound1Message{
			S0: compress(S0),
			S1: compress(S1),
			R:  compress(proof.R),
			Mu: proof.Mu,
		},
	}, nil
}

// FinalizeServerRound1 runs the Server's half of DKG round 1 finalization
// (dkg_finalize_r1): verify the Client's proof of knowledge of c0 under C0.
func FinalizeServerRound1(h curve25519.Hash, clientMsg ClientRound1Message) error {
	C0, err := clientMsg.C0.Decompress()
	if err != nil {
		return err
	}
	R, err := clientMsg.R.Decompress()
	if err != nil {
		return err
	}

	proof := &schnorr.Proof{R: R, Mu: clientMsg.Mu}
	if !proof.Verify(h, clientTag, C0) {
		return ErrProofOfKnowledge
	}
	return nil
}

// StartServerRound2 runs the Server's half of DKG round 2 (dkg_start_r2):
// retain s_server = s0 - s1, send s_client = s0 + s1 to the Client.
func StartServerRound2(r1 *ServerRound1Output) *ServerRound2Output {
	sServer := r1.Secret0.Sub(r1.Secret1)
	sClient := r1.Secret0.Add(r1.Secret1)
	return &ServerRound2Output{
		ServerSum: sServer,
		Message:   ServerRound2Message{SClient: sClient},
	}
}

// FinalizeServerRound2 runs the Server's half of DKG round 2 finalization
// (dkg_finalize_r2): check the Client's claimed c_server against its
// round-1 commitments, then derive the Server's key share.
func FinalizeServerRound2(r1 *ServerRound1Output, r2 *ServerRound2Output, clientR1 ClientRound1Message, clientR2 ClientRound2Message) (*KeyShare, error) {
	C0, err := clientR1.C0.Decompress()
	if err != nil {
		return nil, err
	}
	C1, err := clientR1.C1.Decompress()
	if err != nil {
		return nil, err
	}

	expectedCServer := clientR2.CServer.ScalarBaseMult()
	actualCServer := C0.Sub(C1)
	if !actualCServer.Equal(expectedCServer) {
		return nil, ErrShareVerification
	}

	pServer := clientR2.CServer.Add(r2.ServerSum)
	PServer := pServer.ScalarBaseMult()
	PClient := C0.Add(C1).Add(r1.Commit0).Add(r1.Commit1)
	PJoint := PClient.Add(PServer)

	return &KeyShare{
		Share:       pServer,
		Public:      PServer,
		PeerPublic:  PClient,
		JointPublic: PJoint,
	}, nil
}
