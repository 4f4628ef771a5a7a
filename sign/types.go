// Package sign implements the two-party signing half of the protocol
// (spec §4.3–§4.5): given previously-established DKG shares and a message,
// Client and Server each run one round of nonce commitment and one round
// of partial signing to jointly produce a single Ed25519-shaped signature.
package sign

import (
	"fmt"

	"github.com/smallyu/go-frost2p/internal/curve25519"
)

// CompressedPoint is the 32-byte canonical Edwards-y encoding a nonce
// commitment or R arrives as over the wire.
type CompressedPoint [32]byte

// Decompress decodes c into a curve point, or ErrDecompression wrapped
// with the underlying reason if c is not a valid encoding.
func (c CompressedPoint) Decompress() (*curve25519.Point, error) {
	p, err := curve25519.DecompressPoint(c[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	return p, nil
}

func compress(p *curve25519.Point) CompressedPoint {
	var c CompressedPoint
	copy(c[:], p.Bytes())
	return c
}

// ClientRound1Message carries the Client's nonce commitments (D, E).
type ClientRound1Message struct {
	D CompressedPoint
	E CompressedPoint
}

// ServerRound1Message carries the Server's nonce commitments (D, E).
type ServerRound1Message struct {
	D CompressedPoint
	E CompressedPoint
}

// ClientRound2Message carries the Client's partial signature z_client.
type ClientRound2Message struct {
	Z *curve25519.Scalar
}

// ServerRound2Message carries the Server's partial signature z_server.
type ServerRound2Message struct {
	Z *curve25519.Scalar
}

// ClientRound1Output bundles the Client's retained nonce scalars (d, e)
// with the message to send the Server. The nonces must never be reused
// across signing sessions.
type ClientRound1Output struct {
	SecretD *curve25519.Scalar
	SecretE *curve25519.Scalar
	Message ClientRound1Message
}

// ServerRound1Output is the Server's analogue of ClientRound1Output.
type ServerRound1Output struct {
	SecretD *curve25519.Scalar
	SecretE *curve25519.Scalar
	Message ServerRound1Message
}

// Signature is the final Ed25519-shaped output: (R_joint, z_joint).
type Signature struct {
	R CompressedPoint
	Z *curve25519.Scalar
}
