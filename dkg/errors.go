package dkg

import (
	"errors"
	"fmt"
)

// The DKG error taxonomy from spec §7, disjoint from sign's. All three
// errors are session-fatal: a failed verification is treated as adversarial and the
// session must be discarded rather than retried with the same inputs.
var (
	// ErrDecompression means a peer sent a byte string that does not
	// decode to a valid curve point.
	ErrDecompression = errors.New("dkg: peer point failed to decompress")
	// ErrProofOfKnowledge means the peer's round-1 Schnorr proof did not
	// verify.
	ErrProofOfKnowledge = errors.New("dkg: proof of knowledge failed to verify")
	// ErrShareVerification means the peer's round-2 share is inconsistent
	// with its round-1 commitments.
	ErrShareVerification = errors.New("dkg: share verification failed")
)

func errDecompression(cause error) error {
	return fmt.Errorf("%w: %v", ErrDecompression, cause)
}
