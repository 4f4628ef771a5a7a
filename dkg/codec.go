package dkg

import (
	"encoding/base64"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/smallyu/go-frost2p/internal/curve25519"
)

// Bytes returns the binary wire encoding: 32·C0 ‖ 32·C1 ‖ 32·R ‖ 32·mu.
func (m ClientRound1Message) Bytes() []byte {
	return concat(m.C0[:], m.C1[:], m.R[:], m.Mu.Bytes())
}

// String returns the debug/display form: base64(C0) ‖ base64(C1) ‖
// base64(R) ‖ base64(mu), with no separators, per spec §4.6.
func (m ClientRound1Message) String() string {
	return b64(m.C0[:]) + b64(m.C1[:]) + b64(m.R[:]) + b64(m.Mu.Bytes())
}

// ParseClientRound1Message decodes the binary wire form produced by Bytes.
func ParseClientRound1Message(b []byte) (ClientRound1Message, error) {
	if len(b) != 128 {
		return ClientRound1Message{}, fmt.Errorf("dkg: client round 1 message must be 128 bytes, got %d", len(b))
	}
	mu, err := curve25519.ScalarFromCanonicalBytes(b[96:128])
	if err != nil {
		return ClientRound1Message{}, fmt.Errorf("dkg: client round 1 message: %w", err)
	}
	var msg ClientRound1Message
	copy(msg.C0[:], b[0:32])
	copy(msg.C1[:], b[32:64])
	copy(msg.R[:], b[64:96])
	msg.Mu = mu
	return msg, nil
}

type clientRound1DTO struct {
	C0 []byte `cbor:"c0"`
	C1 []byte `cbor:"c1"`
	R  []byte `cbor:"r"`
	Mu []byte `cbor:"mu"`
}

// MarshalCBOR encodes the message as a CBOR map, a structured alternative
// to the raw binary/base64 wire surface.
func (m ClientRound1Message) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(clientRound1DTO{C0: m.C0[:], C1: m.C1[:], R: m.R[:], Mu: m.Mu.Bytes()})
}

// UnmarshalCBOR decodes a message produced by MarshalCBOR.
func (m *ClientRound1Message) UnmarshalCBOR(data []byte) error {
	var dto clientRound1DTO
	if err := cbor.Unmarshal(data, &dto); err != nil {
		return fmt.Errorf("dkg: unmarshal client round 1 cbor: %w", err)
	}
	parsed, err := ParseClientRound1Message(concat(dto.C0, dto.C1, dto.R, dto.Mu))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Bytes returns the binary wire encoding: 32·S0 ‖ 32·S1 ‖ 32·R ‖ 32·mu.
func (m ServerRound1Message) Bytes() []byte {
	return concat(m.S0[:], m.S1[:], m.R[:], m.Mu.Bytes())
}

// String returns the debug/display form, analogous to ClientRound1Message.
func (m ServerRound1Message) String() string {
	return b64(m.S0[:]) + b64(m.S1[:]) + b64(m.R[:]) + b64(m.Mu.Bytes())
}

// ParseServerRound1Message decodes the binary wire form produced by Bytes.
func ParseServerRound1Message(b []byte) (ServerRound1Message, error) {
	if len(b) != 128 {
		return ServerRound1Message{}, fmt.Errorf("dkg: server round 1 message must be 128 bytes, got %d", len(b))
	}
	mu, err := curve25519.ScalarFromCanonicalBytes(b[96:128])
	if err != nil {
		return ServerRound1Message{}, fmt.Errorf("dkg: server round 1 message: %w", err)
	}
	var msg ServerRound1Message
	copy(msg.S0[:], b[0:32])
	copy(msg.S1[:], b[32:64])
	copy(msg.R[:], b[64:96])
	msg.Mu = mu
	return msg, nil
}

type serverRound1DTO struct {
	S0 []byte `cbor:"s0"`
	S1 []byte `cbor:"s1"`
	R  []byte `cbor:"r"`
	Mu []byte `cbor:"mu"`
}

// MarshalCBOR encodes the message as a CBOR map.
func (m ServerRound1Message) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(serverRound1DTO{S0: m.S0[:], S1: m.S1[:], R: m.R[:], Mu: m.Mu.Bytes()})
}

// UnmarshalCBOR decodes a message produced by MarshalCBOR.
func (m *ServerRound1Message) UnmarshalCBOR(data []byte) error {
	var dto serverRound1DTO
	if err := cbor.Unmarshal(data, &dto); err != nil {
		return fmt.Errorf("dkg: unmarshal server round 1 cbor: %w", err)
	}
	parsed, err := ParseServerRound1Message(concat(dto.S0, dto.S1, dto.R, dto.Mu))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Bytes returns the binary wire encoding: 32·c_server.
func (m ClientRound2Message) Bytes() []byte {
	return m.CServer.Bytes()
}

// String returns the debug/display form: base64(c_server).
func (m ClientRound2Message) String() string {
	return b64(m.CServer.Bytes())
}

// ParseClientRound2Message decodes the binary wire form produced by Bytes.
func ParseClientRound2Message(b []byte) (ClientRound2Message, error) {
	if len(b) != 32 {
		return ClientRound2Message{}, fmt.Errorf("dkg: client round 2 message must be 32 bytes, got %d", len(b))
	}
	cServer, err := curve25519.ScalarFromCanonicalBytes(b)
	if err != nil {
		return ClientRound2Message{}, fmt.Errorf("dkg: client round 2 message: %w", err)
	}
	return ClientRound2Message{CServer: cServer}, nil
}

type round2DTO struct {
	Value []byte `cbor:"value"`
}

// MarshalCBOR encodes the message as a CBOR map.
func (m ClientRound2Message) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(round2DTO{Value: m.CServer.Bytes()})
}

// UnmarshalCBOR decodes a message produced by MarshalCBOR.
func (m *ClientRound2Message) UnmarshalCBOR(data []byte) error {
	var dto round2DTO
	if err := cbor.Unmarshal(data, &dto); err != nil {
		return fmt.Errorf("dkg: unmarshal client round 2 cbor: %w", err)
	}
	parsed, err := ParseClientRound2Message(dto.Value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Bytes returns the binary wire encoding: 32·s_client.
func (m ServerRound2Message) Bytes() []byte {
	return m.SClient.Bytes()
}

// String returns the debug/display form: base64(s_client).
func (m ServerRound2Message) String() string {
	return b64(m.SClient.Bytes())
}

// ParseServerRound2Message decodes the binary wire form produced by Bytes.
func ParseServerRound2Message(b []byte) (ServerRound2Message, error) {
	if len(b) != 32 {
		return ServerRound2Message{}, fmt.Errorf("dkg: server round 2 message must be 32 bytes, got %d", len(b))
	}
	sClient, err := curve25519.ScalarFromCanonicalBytes(b)
	if err != nil {
		return ServerRound2Message{}, fmt.Errorf("dkg: server round 2 message: %w", err)
	}
	return ServerRound2Message{SClient: sClient}, nil
}

// MarshalCBOR encodes the message as a CBOR map.
func (m ServerRound2Message) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(round2DTO{Value: m.SClient.Bytes()})
}

// UnmarshalCBOR decodes a message produced by MarshalCBOR.
func (m *ServerRound2Message) UnmarshalCBOR(data []byte) error {
	var dto round2DTO
	if err := cbor.Unmarshal(data, &dto); err != nil {
		return fmt.Errorf("dkg: unmarshal server round 2 cbor: %w", err)
	}
	parsed, err := ParseServerRound2Message(dto.Value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func b64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
