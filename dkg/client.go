package dkg

import (
	"fmt"
	"io"

	"github.com/smallyu/go-frost2p/internal/curve25519"
	"github.com/smallyu/go-frost2p/internal/schnorr"
)

var (
	clientTag = []byte("client")
	serverTag = []byte("server")
)

// StartClientRound1 runs the Client's half of DKG round 1 (dkg_start_r1):
// sample two secret scalars, commit to both, and prove knowledge of the
// first under a Schnorr proof tagged "client".
func StartClientRound1(rng io.Reader, h curve25519.Hash) (*ClientRound1Output, error) {
	c0, err := curve25519.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("dkg: client round 1: %w", err)
	}
	c1, err := curve25519.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("dkg: client round 1: %w", err)
	}

	C0 := c0.ScalarBaseMult()
	C1 := c1.ScalarBaseMult()

	proof, err := schnorr.Prove(rng, h, clientTag, c0, C0)
	if err != nil {
		return nil, fmt.Errorf("dkg: client round 1 proof: %w", err)
	}

	return &ClientRound1Output{
		Secret0: c0,
		Secret1: c1,
		Commit0: C0,
		Commit1: C1,
		Message: ClientRound1Message{
			C0: compress(C0),
			C1: compress(C1),
			R:  compress(proof.R),
			Mu: proof.Mu,
		},
	}, nil
}

// FinalizeClientRound1 runs the Client's half of DKG round 1 finalization
// (dkg_finalize_r1): verify the Server's proof of knowledge of s0 under S0.
// Note S1 is not bound by this proof — its consistency is checked
// implicitly by FinalizeClientRound2's share check.
func FinalizeClientRound1(h curve25519.Hash, serverMsg ServerRound1Message) error {
	S0, err := serverMsg.S0.Decompress()
	if err != nil {
		return err
	}
	R, err := serverMsg.R.Decompress()
	if err != nil {
		return err
	}

	proof := &schnorr.Proof{R: R, Mu: serverMsg.Mu}
	if !proof.Verify(h, serverTag, S0) {
		return ErrProofOfKnowledge
	}
	return nil
}

// StartClientRound2 runs the Client's half of DKG round 2 (dkg_start_r2):
// retain c_client = c0 + c1, send c_server = c0 - c1 to the Server. The
// asymmetry (Client sends the difference, Server sends the sum) is load
// bearing — see spec §4.2.
func StartClientRound2(r1 *ClientRound1Output) *ClientRound2Output {
	cClient := r1.Secret0.Add(r1.Secret1)
	cServer := r1.Secret0.Sub(r1.Secret1)
	return &ClientRound2Output{
		ClientSum: cClient,
		Message:   ClientRound2Message{CServer: cServer},
	}
}

// FinalizeClientRound2 runs the Client's half of DKG round 2 finalization
// (dkg_finalize_r2): check the Server's claimed s_client against its
// round-1 commitments, then derive the Client's key share.
func FinalizeClientRound2(r1 *ClientRound1Output, r2 *ClientRound2Output, serverR1 ServerRound1Message, serverR2 ServerRound2Message) (*KeyShare, error) {
	S0, err := serverR1.S0.Decompress()
	if err != nil {
		return nil, err
	}
	S1, err := serverR1.S1.Decompress()
	if err != nil {
		return nil, err
	}

	expectedSClient := serverR2.SClient.ScalarBaseMult()
	actualSClient := S0.Add(S1)
	if !actualSClient.Equal(expectedSClient) {
		return nil, ErrShareVerification
	}

	pClient := r2.ClientSum.Add(serverR2.SClient)
	PClient := pClient.ScalarBaseMult()
	PServer := r1.Commit0.Sub(r1.Commit1).Add(S0).Sub(S1)
	PJoint := PClient.Add(PServer)

	return &KeyShare{
		Share:       pClient,
		Public:      PClient,
		PeerPublic:  PServer,
		JointPublic: PJoint,
	}, nil
}
