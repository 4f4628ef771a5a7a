package sign

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-frost2p/dkg"
	"github.com/smallyu/go-frost2p/internal/curve25519"
)

// toSignPoint re-encodes a dkg-package compressed point as this package's
// CompressedPoint. The two types share a representation but not an
// identity, since dkg and sign are independent pure-function packages.
func toSignPoint(p *curve25519.Point) CompressedPoint {
	var c CompressedPoint
	copy(c[:], p.Bytes())
	return c
}

func runHonestDKG(t *testing.T) (clientShare, serverShare *dkg.KeyShare) {
	t.Helper()

	clientR1, err := dkg.StartClientRound1(rand.Reader, curve25519.SHA512)
	require.NoError(t, err)
	serverR1, err := dkg.StartServerRound1(rand.Reader, curve25519.SHA512)
	require.NoError(t, err)

	require.NoError(t, dkg.FinalizeServerRound1(curve25519.SHA512, clientR1.Message))
	require.NoError(t, dkg.FinalizeClientRound1(curve25519.SHA512, serverR1.Message))

	clientR2 := dkg.StartClientRound2(clientR1)
	serverR2 := dkg.StartServerRound2(serverR1)

	clientShare, err = dkg.FinalizeClientRound2(clientR1, clientR2, serverR1.Message, serverR2.Message)
	require.NoError(t, err)
	serverShare, err = dkg.FinalizeServerRound2(serverR1, serverR2, clientR1.Message, clientR2.Message)
	require.NoError(t, err)

	return clientShare, serverShare
}

func runHonestSigningSession(t *testing.T, clientShare, serverShare *dkg.KeyShare, message []byte) *Signature {
	t.Helper()

	jointPublic := toSignPoint(clientShare.JointPublic)
	clientPublic := toSignPoint(clientShare.Public)
	serverPublic := toSignPoint(serverShare.Public)

	clientR1, err := StartClientRound1(rand.Reader)
	require.NoError(t, err)
	serverR1, err := StartServerRound1(rand.Reader)
	require.NoError(t, err)

	_, clientR2, err := ClientRound2(curve25519.SHA512, clientShare.Share, jointPublic, message, clientR1, serverR1.Message)
	require.NoError(t, err)
	_, serverR2, err := ServerRound2(curve25519.SHA512, serverShare.Share, jointPublic, message, serverR1, clientR1.Message)
	require.NoError(t, err)

	sigFromClient, err := CombineClient(curve25519.SHA512, jointPublic, serverPublic, message, clientR1.Message, clientR2, serverR1.Message, serverR2)
	require.NoError(t, err)
	sigFromServer, err := CombineServer(curve25519.SHA512, jointPublic, clientPublic, message, clientR1.Message, clientR2, serverR1.Message, serverR2)
	require.NoError(t, err)

	assert.Equal(t, sigFromClient.Bytes(), sigFromServer.Bytes())
	return sigFromClient
}

func TestHonestSigningProducesAgreeingSignatures(t *testing.T) {
	clientShare, serverShare := runHonestDKG(t)
	sig := runHonestSigningSession(t, clientShare, serverShare, []byte("two-party frost message"))
	require.NotNil(t, sig)
	assert.Len(t, sig.Bytes(), 64)
}

// TestCombineSignatureDoesNotSatisfyStandardEd25519Verification documents
// the asymmetric p·c construction's known departure from the standard
// Ed25519 verification equation (spec §9): combine's z_joint is not, in
// general, a valid Schnorr response for P_joint under this protocol's own
// challenge derivation. Verify is provided precisely so this can be
// observed rather than silently assumed away.
func TestCombineSignatureDoesNotSatisfyStandardEd25519Verification(t *testing.T) {
	clientShare, serverShare := runHonestDKG(t)
	jointPublic := toSignPoint(clientShare.JointPublic)
	message := []byte("documenting the known discrepancy")

	sig := runHonestSigningSession(t, clientShare, serverShare, message)

	ok, err := Verify(curve25519.SHA512, jointPublic, message, *sig)
	require.NoError(t, err)
	assert.False(t, ok, "combine's z_joint was not expected to satisfy the standard verification equation")
}

func TestSigningEmptyMessageSucceeds(t *testing.T) {
	clientShare, serverShare := runHonestDKG(t)
	sig := runHonestSigningSession(t, clientShare, serverShare, []byte{})
	require.NotNil(t, sig)
	assert.Len(t, sig.Bytes(), 64)
}

func TestTwoSigningSessionsOverSameSharesProduceDifferentNonces(t *testing.T) {
	clientShare, serverShare := runHonestDKG(t)
	message := []byte("same message, two sessions")

	first := runHonestSigningSession(t, clientShare, serverShare, message)
	second := runHonestSigningSession(t, clientShare, serverShare, message)

	assert.NotEqual(t, first.R, second.R)
	assert.False(t, first.Z.Equal(second.Z))
}

func TestTamperedPartialSignatureIsRejected(t *testing.T) {
	clientShare, serverShare := runHonestDKG(t)
	message := []byte("tamper target")

	jointPublic := toSignPoint(clientShare.JointPublic)
	serverPublic := toSignPoint(serverShare.Public)

	clientR1, err := StartClientRound1(rand.Reader)
	require.NoError(t, err)
	serverR1, err := StartServerRound1(rand.Reader)
	require.NoError(t, err)

	_, clientR2, err := ClientRound2(curve25519.SHA512, clientShare.Share, jointPublic, message, clientR1, serverR1.Message)
	require.NoError(t, err)
	_, serverR2, err := ServerRound2(curve25519.SHA512, serverShare.Share, jointPublic, message, serverR1, clientR1.Message)
	require.NoError(t, err)

	bogus, err := curve25519.RandomScalar(rand.Reader)
	require.NoError(t, err)
	serverR2.Z = bogus

	_, err = CombineClient(curve25519.SHA512, jointPublic, serverPublic, message, clientR1.Message, clientR2, serverR1.Message, serverR2)
	assert.ErrorIs(t, err, ErrPartialSignatureVerification)
}

func TestMalformedPointIsRejectedDuringRound2(t *testing.T) {
	clientShare, serverShare := runHonestDKG(t)
	message := []byte("malformed point target, round 2")

	jointPublic := toSignPoint(clientShare.JointPublic)

	serverR1, err := StartServerRound1(rand.Reader)
	require.NoError(t, err)

	tampered := serverR1.Message
	for i := range tampered.D {
		tampered.D[i] = 0xFF
	}

	_, _, err = ServerRound2(curve25519.SHA512, serverShare.Share, jointPublic, message, serverR1, ClientRound1Message{D: tampered.D, E: tampered.E})
	assert.ErrorIs(t, err, ErrDecompression)
}

func TestMalformedPointIsRejectedDuringCombine(t *testing.T) {
	clientShare, serverShare := runHonestDKG(t)
	message := []byte("malformed point target, combine")

	jointPublic := toSignPoint(clientShare.JointPublic)
	clientPublic := toSignPoint(clientShare.Public)

	clientR1, err := StartClientRound1(rand.Reader)
	require.NoError(t, err)
	serverR1, err := StartServerRound1(rand.Reader)
	require.NoError(t, err)

	_, clientR2, err := ClientRound2(curve25519.SHA512, clientShare.Share, jointPublic, message, clientR1, serverR1.Message)
	require.NoError(t, err)
	_, serverR2, err := ServerRound2(curve25519.SHA512, serverShare.Share, jointPublic, message, serverR1, clientR1.Message)
	require.NoError(t, err)

	for i := range clientR1.Message.D {
		clientR1.Message.D[i] = 0xFF
	}

	_, err = CombineServer(curve25519.SHA512, jointPublic, clientPublic, message, clientR1.Message, clientR2, serverR1.Message, serverR2)
	assert.ErrorIs(t, err, ErrDecompression)
}

func TestRound1MessageBinaryRoundTrip(t *testing.T) {
	clientR1, err := StartClientRound1(rand.Reader)
	require.NoError(t, err)

	encoded := clientR1.Message.Bytes()
	require.Len(t, encoded, 64)

	decoded, err := ParseClientRound1Message(encoded)
	require.NoError(t, err)
	assert.Equal(t, clientR1.Message, decoded)
}

func TestRound1MessageCBORRoundTrip(t *testing.T) {
	serverR1, err := StartServerRound1(rand.Reader)
	require.NoError(t, err)

	data, err := serverR1.Message.MarshalCBOR()
	require.NoError(t, err)

	var decoded ServerRound1Message
	require.NoError(t, decoded.UnmarshalCBOR(data))
	assert.Equal(t, serverR1.Message.Bytes(), decoded.Bytes())
}

func TestRound2MessageDisplayDecodesBack(t *testing.T) {
	clientShare, _ := runHonestDKG(t)
	message := []byte("display round trip")
	jointPublic := toSignPoint(clientShare.JointPublic)

	clientR1, err := StartClientRound1(rand.Reader)
	require.NoError(t, err)
	serverR1, err := StartServerRound1(rand.Reader)
	require.NoError(t, err)

	_, clientR2, err := ClientRound2(curve25519.SHA512, clientShare.Share, jointPublic, message, clientR1, serverR1.Message)
	require.NoError(t, err)

	displayed := clientR2.String()
	assert.Len(t, displayed, 44)

	decodedBytes, err := base64.StdEncoding.DecodeString(displayed)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(decodedBytes, clientR2.Bytes()))
}
