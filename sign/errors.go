package sign

import "errors"

// The signing error taxonomy from spec §7, disjoint from dkg's.
var (
	// ErrDecompression means a peer sent a byte string that does not
	// decode to a valid curve point.
	ErrDecompression = errors.New("sign: peer point failed to decompress")
	// ErrPartialSignatureVerification means the peer's z does not match
	// its nonce commitments and public share under the recomputed
	// challenge.
	ErrPartialSignatureVerification = errors.New("sign: partial signature failed to verify")
)
