// Package dkg implements the two-party distributed key generation half of
// the protocol (spec §4.1–§4.2): Client and Server each hold symmetric
// round-1/round-2 operations that jointly derive p_client, p_server and a
// shared P_joint without either side learning the other's share.
package dkg

import "github.com/smallyu/go-frost2p/internal/curve25519"

// CompressedPoint is the 32-byte canonical Edwards-y encoding a point
// arrives as over the wire. Decompress may fail — spec §3.
type CompressedPoint [32]byte

// Decompress decodes c into a curve point, or ErrDecompression wrapped with
// the underlying reason if c is not a valid encoding.
func (c CompressedPoint) Decompress() (*curve25519.Point, error) {
	p, err := curve25519.DecompressPoint(c[:])
	if err != nil {
		return nil, errDecompression(err)
	}
	return p, nil
}

func compress(p *curve25519.Point) CompressedPoint {
	var c CompressedPoint
	copy(c[:], p.Bytes())
	return c
}

// ClientRound1Message is the wire form of the Client's round-1 output:
// two Pedersen-style commitments and a Schnorr proof of knowledge of the
// scalar behind C0.
type ClientRound1Message struct {
	C0 CompressedPoint
	C1 CompressedPoint
	R  CompressedPoint
	Mu *curve25519.Scalar
}

// ServerRound1Message is the Server's round-1 analogue of ClientRound1Message.
type ServerRound1Message struct {
	S0 CompressedPoint
	S1 CompressedPoint
	R  CompressedPoint
	Mu *curve25519.Scalar
}

// ClientRound2Message carries the Client's round-2 share, c_server = c0 - c1.
type ClientRound2Message struct {
	CServer *curve25519.Scalar
}

// ServerRound2Message carries the Server's round-2 share, s_client = s0 + s1.
type ServerRound2Message struct {
	SClient *curve25519.Scalar
}

// ClientRound1Output bundles what the Client must retain across round 1
// (its two secret scalars and their commitments) with the message to send
// the Server.
type ClientRound1Output struct {
	Secret0 *curve25519.Scalar // c0
	Secret1 *curve25519.Scalar // c1
	Commit0 *curve25519.Point  // C0 = c0*B
	Commit1 *curve25519.Point  // C1 = c1*B
	Message ClientRound1Message
}

// ServerRound1Output is the Server's analogue of ClientRound1Output.
type ServerRound1Output struct {
	Secret0 *curve25519.Scalar // s0
	Secret1 *curve25519.Scalar // s1
	Commit0 *curve25519.Point  // S0 = s0*B
	Commit1 *curve25519.Point  // S1 = s1*B
	Message ServerRound1Message
}

// ClientRound2Output bundles the Client's retained c_client sum with the
// message to send the Server.
type ClientRound2Output struct {
	ClientSum *curve25519.Scalar // c_client = c0 + c1
	Message   ClientRound2Message
}

// ServerRound2Output is the Server's analogue of ClientRound2Output.
type ServerRound2Output struct {
	ServerSum *curve25519.Scalar // s_server = s0 - s1
	Message   ServerRound2Message
}

// KeyShare is a party's long-lived DKG output: its own secret share and
// public key, the peer's public key, and the joint public key. Share is
// the only value that must be kept confidential across signing sessions.
type KeyShare struct {
	Share       *curve25519.Scalar
	Public      *curve25519.Point
	PeerPublic  *curve25519.Point
	JointPublic *curve25519.Point
}
