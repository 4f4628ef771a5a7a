//go:build js && wasm

package main

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/smallyu/go-frost2p/dkg"
	"github.com/smallyu/go-frost2p/internal/curve25519"
	"github.com/smallyu/go-frost2p/sign"
)

// Unlike the teacher's stateful session map, every protocol operation here
// is a pure function: each JS call takes a full JSON request and returns a
// full JSON response, with no server-side session state to track or leak.
// Values a party must retain between its own calls (round-1 secrets, round-2
// sums) travel back out in the response and back in on the next request —
// the caller is the only place state lives.

func main() {
	c := make(chan struct{}, 0)

	fmt.Println("go-frost2p WASM initialized")

	js.Global().Set("GoFrost2p", map[string]interface{}{
		"dkgStartR1":    js.FuncOf(wrap(dkgStartR1)),
		"dkgFinalizeR1": js.FuncOf(wrap(dkgFinalizeR1)),
		"dkgStartR2":    js.FuncOf(wrap(dkgStartR2)),
		"dkgFinalizeR2": js.FuncOf(wrap(dkgFinalizeR2)),
		"signR1":        js.FuncOf(wrap(signR1)),
		"signR2":        js.FuncOf(wrap(signR2)),
		"signCombine":   js.FuncOf(wrap(signCombine)),
		"signVerify":    js.FuncOf(wrap(signVerify)),
	})

	<-c
}

// wrap adapts a (json-in, json-out-or-error) Go function to the
// js.Func(this, args) signature, taking args[0] as the single JSON request
// string and returning either the JSON response string or an
// "error: ..." string JS code can check for with a prefix test.
func wrap(fn func(req string) (string, error)) func(this js.Value, args []js.Value) interface{} {
	return func(this js.Value, args []js.Value) interface{} {
		if len(args) != 1 {
			return "error: expected 1 argument (jsonRequest)"
		}
		resp, err := fn(args[0].String())
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		return resp
	}
}

// Every scalar, point and message field below carries the base64 of its
// binary wire encoding (message bytes to sign are base64 as well), so
// requests/responses round-trip through JSON without custom marshaling for
// the curve types.

type dkgStartR1Response struct {
	Client dkgRound1State `json:"client"`
	Server dkgRound1State `json:"server"`
}

type dkgRound1State struct {
	Secret0 string `json:"secret0"`
	Secret1 string `json:"secret1"`
	Message string `json:"message"` // base64 wire form
}

// dkgStartR1 runs both StartClientRound1 and StartServerRound1, since a
// single-page WASM demo typically drives both sides locally.
func dkgStartR1(req string) (string, error) {
	clientR1, err := dkg.StartClientRound1(rand.Reader, curve25519.SHA512)
	if err != nil {
		return "", err
	}
	serverR1, err := dkg.StartServerRound1(rand.Reader, curve25519.SHA512)
	if err != nil {
		return "", err
	}

	resp := dkgStartR1Response{
		Client: dkgRound1State{
			Secret0: b64(clientR1.Secret0.Bytes()),
			Secret1: b64(clientR1.Secret1.Bytes()),
			Message: b64(clientR1.Message.Bytes()),
		},
		Server: dkgRound1State{
			Secret0: b64(serverR1.Secret0.Bytes()),
			Secret1: b64(serverR1.Secret1.Bytes()),
			Message: b64(serverR1.Message.Bytes()),
		},
	}
	return marshal(resp)
}

type dkgFinalizeR1Request struct {
	Role        string `json:"role"` // "client" or "server"
	PeerMessage string `json:"peerMessage"`
}

func dkgFinalizeR1(req string) (string, error) {
	var in dkgFinalizeR1Request
	if err := json.Unmarshal([]byte(req), &in); err != nil {
		return "", err
	}
	peer, err := base64.StdEncoding.DecodeString(in.PeerMessage)
	if err != nil {
		return "", err
	}

	switch in.Role {
	case "client":
		msg, err := dkg.ParseServerRound1Message(peer)
		if err != nil {
			return "", err
		}
		if err := dkg.FinalizeClientRound1(curve25519.SHA512, msg); err != nil {
			return "", err
		}
	case "server":
		msg, err := dkg.ParseClientRound1Message(peer)
		if err != nil {
			return "", err
		}
		if err := dkg.FinalizeServerRound1(curve25519.SHA512, msg); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unknown role %q", in.Role)
	}
	return `{"ok":true}`, nil
}

type dkgStartR2Request struct {
	Role    string `json:"role"`
	Secret0 string `json:"secret0"`
	Secret1 string `json:"secret1"`
}

type dkgStartR2Response struct {
	Message string `json:"message"`
}

func dkgStartR2(req string) (string, error) {
	var in dkgStartR2Request
	if err := json.Unmarshal([]byte(req), &in); err != nil {
		return "", err
	}
	s0, err := scalarFromB64(in.Secret0)
	if err != nil {
		return "", err
	}
	s1, err := scalarFromB64(in.Secret1)
	if err != nil {
		return "", err
	}

	switch in.Role {
	case "client":
		r2 := dkg.StartClientRound2(&dkg.ClientRound1Output{Secret0: s0, Secret1: s1})
		return marshal(dkgStartR2Response{Message: b64(r2.Message.Bytes())})
	case "server":
		r2 := dkg.StartServerRound2(&dkg.ServerRound1Output{Secret0: s0, Secret1: s1})
		return marshal(dkgStartR2Response{Message: b64(r2.Message.Bytes())})
	default:
		return "", fmt.Errorf("unknown role %q", in.Role)
	}
}

type keyShareResponse struct {
	Share       string `json:"share"`
	Public      string `json:"public"`
	PeerPublic  string `json:"peerPublic"`
	JointPublic string `json:"jointPublic"`
}

func marshalKeyShare(ks *dkg.KeyShare) (string, error) {
	return marshal(keyShareResponse{
		Share:       b64(ks.Share.Bytes()),
		Public:      b64(ks.Public.Bytes()),
		PeerPublic:  b64(ks.PeerPublic.Bytes()),
		JointPublic: b64(ks.JointPublic.Bytes()),
	})
}

// dkgFinalizeR2Request carries the caller's own round-1 secrets (Commit0/
// Commit1 and the round-2 sum are rederived from them, since both are pure
// functions of Secret0/Secret1) plus the peer's round-1 and round-2
// messages, exactly the arguments FinalizeClientRound2/FinalizeServerRound2
// take.
type dkgFinalizeR2Request struct {
	Role              string `json:"role"`
	OwnSecret0        string `json:"ownSecret0"`
	OwnSecret1        string `json:"ownSecret1"`
	PeerRound1Message string `json:"peerRound1Message"`
	PeerRound2Message string `json:"peerRound2Message"`
}

func dkgFinalizeR2(req string) (string, error) {
	var in dkgFinalizeR2Request
	if err := json.Unmarshal([]byte(req), &in); err != nil {
		return "", err
	}
	s0, err := scalarFromB64(in.OwnSecret0)
	if err != nil {
		return "", err
	}
	s1, err := scalarFromB64(in.OwnSecret1)
	if err != nil {
		return "", err
	}
	peerR1, err := base64.StdEncoding.DecodeString(in.PeerRound1Message)
	if err != nil {
		return "", err
	}
	peerR2, err := base64.StdEncoding.DecodeString(in.PeerRound2Message)
	if err != nil {
		return "", err
	}

	switch in.Role {
	case "client":
		r1 := &dkg.ClientRound1Output{Secret0: s0, Secret1: s1, Commit0: s0.ScalarBaseMult(), Commit1: s1.ScalarBaseMult()}
		r2 := dkg.StartClientRound2(r1)
		serverR1, err := dkg.ParseServerRound1Message(peerR1)
		if err != nil {
			return "", err
		}
		serverR2, err := dkg.ParseServerRound2Message(peerR2)
		if err != nil {
			return "", err
		}
		share, err := dkg.FinalizeClientRound2(r1, r2, serverR1, serverR2)
		if err != nil {
			return "", err
		}
		return marshalKeyShare(share)
	case "server":
		r1 := &dkg.ServerRound1Output{Secret0: s0, Secret1: s1, Commit0: s0.ScalarBaseMult(), Commit1: s1.ScalarBaseMult()}
		r2 := dkg.StartServerRound2(r1)
		clientR1, err := dkg.ParseClientRound1Message(peerR1)
		if err != nil {
			return "", err
		}
		clientR2, err := dkg.ParseClientRound2Message(peerR2)
		if err != nil {
			return "", err
		}
		share, err := dkg.FinalizeServerRound2(r1, r2, clientR1, clientR2)
		if err != nil {
			return "", err
		}
		return marshalKeyShare(share)
	default:
		return "", fmt.Errorf("unknown role %q", in.Role)
	}
}

type signR1Response struct {
	Client signRound1State `json:"client"`
	Server signRound1State `json:"server"`
}

type signRound1State struct {
	SecretD string `json:"secretD"`
	SecretE string `json:"secretE"`
	D       string `json:"d"`
	E       string `json:"e"`
}

func signR1(req string) (string, error) {
	clientR1, err := sign.StartClientRound1(rand.Reader)
	if err != nil {
		return "", err
	}
	serverR1, err := sign.StartServerRound1(rand.Reader)
	if err != nil {
		return "", err
	}
	return marshal(signR1Response{
		Client: signRound1State{
			SecretD: b64(clientR1.SecretD.Bytes()),
			SecretE: b64(clientR1.SecretE.Bytes()),
			D:       b64(clientR1.Message.D[:]),
			E:       b64(clientR1.Message.E[:]),
		},
		Server: signRound1State{
			SecretD: b64(serverR1.SecretD.Bytes()),
			SecretE: b64(serverR1.SecretE.Bytes()),
			D:       b64(serverR1.Message.D[:]),
			E:       b64(serverR1.Message.E[:]),
		},
	})
}

// signR2Request carries the caller's own share scalar and round-1 nonce
// state plus the peer's round-1 (D, E) message, exactly the arguments
// ClientRound2/ServerRound2 take.
type signR2Request struct {
	Role        string `json:"role"`
	OwnShare    string `json:"ownShare"`
	JointPublic string `json:"jointPublic"`
	Message     string `json:"message"` // base64 of the arbitrary message bytes to sign
	OwnSecretD  string `json:"ownSecretD"`
	OwnSecretE  string `json:"ownSecretE"`
	OwnD        string `json:"ownD"`
	OwnE        string `json:"ownE"`
	PeerD       string `json:"peerD"`
	PeerE       string `json:"peerE"`
}

type signR2Response struct {
	Z string `json:"z"`
}

func signR2(req string) (string, error) {
	var in signR2Request
	if err := json.Unmarshal([]byte(req), &in); err != nil {
		return "", err
	}
	ownShare, err := scalarFromB64(in.OwnShare)
	if err != nil {
		return "", err
	}
	jointPublic, err := signPointFromB64(in.JointPublic)
	if err != nil {
		return "", err
	}
	message, err := base64.StdEncoding.DecodeString(in.Message)
	if err != nil {
		return "", err
	}
	ownSecretD, err := scalarFromB64(in.OwnSecretD)
	if err != nil {
		return "", err
	}
	ownSecretE, err := scalarFromB64(in.OwnSecretE)
	if err != nil {
		return "", err
	}
	ownD, err := signPointFromB64(in.OwnD)
	if err != nil {
		return "", err
	}
	ownE, err := signPointFromB64(in.OwnE)
	if err != nil {
		return "", err
	}
	peerD, err := signPointFromB64(in.PeerD)
	if err != nil {
		return "", err
	}
	peerE, err := signPointFromB64(in.PeerE)
	if err != nil {
		return "", err
	}

	switch in.Role {
	case "client":
		own := &sign.ClientRound1Output{SecretD: ownSecretD, SecretE: ownSecretE, Message: sign.ClientRound1Message{D: ownD, E: ownE}}
		peer := sign.ServerRound1Message{D: peerD, E: peerE}
		_, msg, err := sign.ClientRound2(curve25519.SHA512, ownShare, jointPublic, message, own, peer)
		if err != nil {
			return "", err
		}
		return marshal(signR2Response{Z: b64(msg.Z.Bytes())})
	case "server":
		own := &sign.ServerRound1Output{SecretD: ownSecretD, SecretE: ownSecretE, Message: sign.ServerRound1Message{D: ownD, E: ownE}}
		peer := sign.ClientRound1Message{D: peerD, E: peerE}
		_, msg, err := sign.ServerRound2(curve25519.SHA512, ownShare, jointPublic, message, own, peer)
		if err != nil {
			return "", err
		}
		return marshal(signR2Response{Z: b64(msg.Z.Bytes())})
	default:
		return "", fmt.Errorf("unknown role %q", in.Role)
	}
}

// signCombineRequest carries both parties' round-1 (D, E) messages and
// round-2 z values, plus whichever public key combine needs to verify the
// peer's partial signature — exactly the arguments CombineClient/
// CombineServer take.
type signCombineRequest struct {
	Role        string `json:"role"`
	JointPublic string `json:"jointPublic"`
	PeerPublic  string `json:"peerPublic"`
	Message     string `json:"message"`
	ClientD     string `json:"clientD"`
	ClientE     string `json:"clientE"`
	ClientZ     string `json:"clientZ"`
	ServerD     string `json:"serverD"`
	ServerE     string `json:"serverE"`
	ServerZ     string `json:"serverZ"`
}

type signatureResponse struct {
	R string `json:"r"`
	Z string `json:"z"`
}

func signCombine(req string) (string, error) {
	var in signCombineRequest
	if err := json.Unmarshal([]byte(req), &in); err != nil {
		return "", err
	}
	jointPublic, err := signPointFromB64(in.JointPublic)
	if err != nil {
		return "", err
	}
	peerPublic, err := signPointFromB64(in.PeerPublic)
	if err != nil {
		return "", err
	}
	message, err := base64.StdEncoding.DecodeString(in.Message)
	if err != nil {
		return "", err
	}
	clientD, err := signPointFromB64(in.ClientD)
	if err != nil {
		return "", err
	}
	clientE, err := signPointFromB64(in.ClientE)
	if err != nil {
		return "", err
	}
	clientZ, err := scalarFromB64(in.ClientZ)
	if err != nil {
		return "", err
	}
	serverD, err := signPointFromB64(in.ServerD)
	if err != nil {
		return "", err
	}
	serverE, err := signPointFromB64(in.ServerE)
	if err != nil {
		return "", err
	}
	serverZ, err := scalarFromB64(in.ServerZ)
	if err != nil {
		return "", err
	}

	clientR1 := sign.ClientRound1Message{D: clientD, E: clientE}
	clientR2 := sign.ClientRound2Message{Z: clientZ}
	serverR1 := sign.ServerRound1Message{D: serverD, E: serverE}
	serverR2 := sign.ServerRound2Message{Z: serverZ}

	var sig *sign.Signature
	switch in.Role {
	case "client":
		sig, err = sign.CombineClient(curve25519.SHA512, jointPublic, peerPublic, message, clientR1, clientR2, serverR1, serverR2)
	case "server":
		sig, err = sign.CombineServer(curve25519.SHA512, jointPublic, peerPublic, message, clientR1, clientR2, serverR1, serverR2)
	default:
		return "", fmt.Errorf("unknown role %q", in.Role)
	}
	if err != nil {
		return "", err
	}

	return marshal(signatureResponse{R: b64(sig.R[:]), Z: b64(sig.Z.Bytes())})
}

func signVerify(req string) (string, error) {
	var in struct {
		JointPublic string `json:"jointPublic"`
		Message     string `json:"message"`
		R           string `json:"r"`
		Z           string `json:"z"`
	}
	if err := json.Unmarshal([]byte(req), &in); err != nil {
		return "", err
	}
	jp, err := base64.StdEncoding.DecodeString(in.JointPublic)
	if err != nil {
		return "", err
	}
	msg, err := base64.StdEncoding.DecodeString(in.Message)
	if err != nil {
		return "", err
	}
	r, err := base64.StdEncoding.DecodeString(in.R)
	if err != nil {
		return "", err
	}
	z, err := scalarFromB64(in.Z)
	if err != nil {
		return "", err
	}

	var jointPublic sign.CompressedPoint
	copy(jointPublic[:], jp)
	var sigR sign.CompressedPoint
	copy(sigR[:], r)

	ok, err := sign.Verify(curve25519.SHA512, jointPublic, msg, sign.Signature{R: sigR, Z: z})
	if err != nil {
		return "", err
	}
	return marshal(map[string]bool{"valid": ok})
}

func b64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

func scalarFromB64(s string) (*curve25519.Scalar, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return curve25519.ScalarFromCanonicalBytes(b)
}

func signPointFromB64(s string) (sign.CompressedPoint, error) {
	var c sign.CompressedPoint
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return c, err
	}
	if len(b) != len(c) {
		return c, fmt.Errorf("expected %d bytes, got %d", len(c), len(b))
	}
	copy(c[:], b)
	return c, nil
}

func marshal(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
