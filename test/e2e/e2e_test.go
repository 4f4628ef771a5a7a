package e2e_test

import (
	"crypto/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smallyu/go-frost2p/dkg"
	"github.com/smallyu/go-frost2p/internal/curve25519"
	"github.com/smallyu/go-frost2p/sign"
)

func runDKG() (*dkg.KeyShare, *dkg.KeyShare) {
	h := curve25519.SHA512

	clientR1, err := dkg.StartClientRound1(rand.Reader, h)
	Expect(err).NotTo(HaveOccurred())
	serverR1, err := dkg.StartServerRound1(rand.Reader, h)
	Expect(err).NotTo(HaveOccurred())

	Expect(dkg.FinalizeServerRound1(h, clientR1.Message)).To(Succeed())
	Expect(dkg.FinalizeClientRound1(h, serverR1.Message)).To(Succeed())

	clientR2 := dkg.StartClientRound2(clientR1)
	serverR2 := dkg.StartServerRound2(serverR1)

	clientShare, err := dkg.FinalizeClientRound2(clientR1, clientR2, serverR1.Message, serverR2.Message)
	Expect(err).NotTo(HaveOccurred())
	serverShare, err := dkg.FinalizeServerRound2(serverR1, serverR2, clientR1.Message, clientR2.Message)
	Expect(err).NotTo(HaveOccurred())

	return clientShare, serverShare
}

func compressPoint(p *curve25519.Point) sign.CompressedPoint {
	var c sign.CompressedPoint
	copy(c[:], p.Bytes())
	return c
}

func runSigningSession(clientShare, serverShare *dkg.KeyShare, message []byte) *sign.Signature {
	h := curve25519.SHA512
	jointPublic := compressPoint(clientShare.JointPublic)
	clientPublic := compressPoint(clientShare.Public)
	serverPublic := compressPoint(serverShare.Public)

	clientR1, err := sign.StartClientRound1(rand.Reader)
	Expect(err).NotTo(HaveOccurred())
	serverR1, err := sign.StartServerRound1(rand.Reader)
	Expect(err).NotTo(HaveOccurred())

	_, clientR2, err := sign.ClientRound2(h, clientShare.Share, jointPublic, message, clientR1, serverR1.Message)
	Expect(err).NotTo(HaveOccurred())
	_, serverR2, err := sign.ServerRound2(h, serverShare.Share, jointPublic, message, serverR1, clientR1.Message)
	Expect(err).NotTo(HaveOccurred())

	sigFromClient, err := sign.CombineClient(h, jointPublic, serverPublic, message, clientR1.Message, clientR2, serverR1.Message, serverR2)
	Expect(err).NotTo(HaveOccurred())
	sigFromServer, err := sign.CombineServer(h, jointPublic, clientPublic, message, clientR1.Message, clientR2, serverR1.Message, serverR2)
	Expect(err).NotTo(HaveOccurred())
	Expect(sigFromClient.Bytes()).To(Equal(sigFromServer.Bytes()))

	return sigFromClient
}

var _ = Describe("Two-Party DKG and Signing", func() {
	Describe("Honest Flow", func() {
		It("produces matching key shares and agreeing signatures", func() {
			clientShare, serverShare := runDKG()

			By("both parties deriving the same joint public key")
			Expect(clientShare.JointPublic.Bytes()).To(Equal(serverShare.JointPublic.Bytes()))

			By("each party's public share matching the other's view of its peer")
			Expect(clientShare.Public.Bytes()).To(Equal(serverShare.PeerPublic.Bytes()))
			Expect(serverShare.Public.Bytes()).To(Equal(clientShare.PeerPublic.Bytes()))

			By("signing a message and both parties combining to the same signature")
			sig := runSigningSession(clientShare, serverShare, []byte("e2e honest flow message"))
			Expect(sig.Bytes()).To(HaveLen(64))
		})

		It("does not satisfy the standard Ed25519 verification equation", func() {
			// This is an intentional, documented property (spec §9): the
			// asymmetric p·c construction in combine does not reduce to
			// z*B == R + c*P_joint. Verify exists precisely so this can be
			// asserted instead of silently assumed.
			clientShare, serverShare := runDKG()
			message := []byte("documenting the known discrepancy")
			sig := runSigningSession(clientShare, serverShare, message)

			jointPublic := compressPoint(clientShare.JointPublic)
			ok, err := sign.Verify(curve25519.SHA512, jointPublic, message, *sig)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("succeeds and produces an agreed 64-byte signature for an empty message", func() {
			clientShare, serverShare := runDKG()
			sig := runSigningSession(clientShare, serverShare, []byte{})
			Expect(sig.Bytes()).To(HaveLen(64))
		})

		It("produces different nonce commitments across two sessions over the same shares", func() {
			clientShare, serverShare := runDKG()
			message := []byte("same message, repeated session")

			first := runSigningSession(clientShare, serverShare, message)
			second := runSigningSession(clientShare, serverShare, message)

			Expect(first.R).NotTo(Equal(second.R))
		})
	})

	Describe("Adversarial Inputs", func() {
		It("rejects a tampered proof of knowledge with ErrProofOfKnowledge", func() {
			serverR1, err := dkg.StartServerRound1(rand.Reader, curve25519.SHA512)
			Expect(err).NotTo(HaveOccurred())

			tampered := serverR1.Message
			muBytes := tampered.Mu.Bytes()
			muBytes[len(muBytes)-1] ^= 0x01
			corrupted, err := curve25519.ScalarFromCanonicalBytes(muBytes)
			Expect(err).NotTo(HaveOccurred())
			tampered.Mu = corrupted

			err = dkg.FinalizeClientRound1(curve25519.SHA512, tampered)
			Expect(err).To(MatchError(dkg.ErrProofOfKnowledge))
		})

		It("rejects a tampered DKG share with ErrShareVerification", func() {
			clientR1, err := dkg.StartClientRound1(rand.Reader, curve25519.SHA512)
			Expect(err).NotTo(HaveOccurred())
			serverR1, err := dkg.StartServerRound1(rand.Reader, curve25519.SHA512)
			Expect(err).NotTo(HaveOccurred())
			Expect(dkg.FinalizeServerRound1(curve25519.SHA512, clientR1.Message)).To(Succeed())
			Expect(dkg.FinalizeClientRound1(curve25519.SHA512, serverR1.Message)).To(Succeed())

			clientR2 := dkg.StartClientRound2(clientR1)
			serverR2 := dkg.StartServerRound2(serverR1)

			bogus, err := curve25519.RandomScalar(rand.Reader)
			Expect(err).NotTo(HaveOccurred())
			serverR2.Message.SClient = bogus

			_, err = dkg.FinalizeClientRound2(clientR1, clientR2, serverR1.Message, serverR2.Message)
			Expect(err).To(MatchError(dkg.ErrShareVerification))
		})

		It("rejects a tampered partial signature with ErrPartialSignatureVerification", func() {
			clientShare, serverShare := runDKG()
			message := []byte("tamper the partial signature")
			h := curve25519.SHA512
			jointPublic := compressPoint(clientShare.JointPublic)
			serverPublic := compressPoint(serverShare.Public)

			clientR1, err := sign.StartClientRound1(rand.Reader)
			Expect(err).NotTo(HaveOccurred())
			serverR1, err := sign.StartServerRound1(rand.Reader)
			Expect(err).NotTo(HaveOccurred())

			_, clientR2, err := sign.ClientRound2(h, clientShare.Share, jointPublic, message, clientR1, serverR1.Message)
			Expect(err).NotTo(HaveOccurred())
			_, serverR2, err := sign.ServerRound2(h, serverShare.Share, jointPublic, message, serverR1, clientR1.Message)
			Expect(err).NotTo(HaveOccurred())

			bogus, err := curve25519.RandomScalar(rand.Reader)
			Expect(err).NotTo(HaveOccurred())
			serverR2.Z = bogus

			_, err = sign.CombineClient(h, jointPublic, serverPublic, message, clientR1.Message, clientR2, serverR1.Message, serverR2)
			Expect(err).To(MatchError(sign.ErrPartialSignatureVerification))
		})

		It("rejects a malformed curve point with ErrDecompression", func() {
			serverR1, err := dkg.StartServerRound1(rand.Reader, curve25519.SHA512)
			Expect(err).NotTo(HaveOccurred())

			tampered := serverR1.Message
			for i := range tampered.S0 {
				tampered.S0[i] = 0xFF
			}

			err = dkg.FinalizeClientRound1(curve25519.SHA512, tampered)
			Expect(err).To(MatchError(dkg.ErrDecompression))
		})
	})
})
