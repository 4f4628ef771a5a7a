package sign

import (
	"encoding/base64"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/smallyu/go-frost2p/internal/curve25519"
)

// Bytes returns the binary wire encoding: 32·D ‖ 32·E.
func (m ClientRound1Message) Bytes() []byte { return concat(m.D[:], m.E[:]) }

// String returns the debug/display form: base64(D) ‖ base64(E).
func (m ClientRound1Message) String() string { return b64(m.D[:]) + b64(m.E[:]) }

// ParseClientRound1Message decodes the binary wire form produced by Bytes.
func ParseClientRound1Message(b []byte) (ClientRound1Message, error) {
	if len(b) != 64 {
		return ClientRound1Message{}, fmt.Errorf("sign: client round 1 message must be 64 bytes, got %d", len(b))
	}
	var msg ClientRound1Message
	copy(msg.D[:], b[0:32])
	copy(msg.E[:], b[32:64])
	return msg, nil
}

// Bytes returns the binary wire encoding: 32·D ‖ 32·E.
func (m ServerRound1Message) Bytes() []byte { return concat(m.D[:], m.E[:]) }

// String returns the debug/display form: base64(D) ‖ base64(E).
func (m ServerRound1Message) String() string { return b64(m.D[:]) + b64(m.E[:]) }

// ParseServerRound1Message decodes the binary wire form produced by Bytes.
func ParseServerRound1Message(b []byte) (ServerRound1Message, error) {
	if len(b) != 64 {
		return ServerRound1Message{}, fmt.Errorf("sign: server round 1 message must be 64 bytes, got %d", len(b))
	}
	var msg ServerRound1Message
	copy(msg.D[:], b[0:32])
	copy(msg.E[:], b[32:64])
	return msg, nil
}

// Bytes returns the binary wire encoding: 32·z.
func (m ClientRound2Message) Bytes() []byte { return m.Z.Bytes() }

// String returns the debug/display form: base64(z).
func (m ClientRound2Message) String() string { return b64(m.Z.Bytes()) }

// ParseClientRound2Message decodes the binary wire form produced by Bytes.
func ParseClientRound2Message(b []byte) (ClientRound2Message, error) {
	z, err := curve25519.ScalarFromCanonicalBytes(b)
	if err != nil {
		return ClientRound2Message{}, fmt.Errorf("sign: client round 2 message: %w", err)
	}
	return ClientRound2Message{Z: z}, nil
}

// Bytes returns the binary wire encoding: 32·z.
func (m ServerRound2Message) Bytes() []byte { return m.Z.Bytes() }

// String returns the debug/display form: base64(z).
func (m ServerRound2Message) String() string { return b64(m.Z.Bytes()) }

// ParseServerRound2Message decodes the binary wire form produced by Bytes.
func ParseServerRound2Message(b []byte) (ServerRound2Message, error) {
	z, err := curve25519.ScalarFromCanonicalBytes(b)
	if err != nil {
		return ServerRound2Message{}, fmt.Errorf("sign: server round 2 message: %w", err)
	}
	return ServerRound2Message{Z: z}, nil
}

// Bytes returns the final Ed25519-compatible wire encoding: 32·R_joint ‖
// 32·z_joint.
func (s Signature) Bytes() []byte { return concat(s.R[:], s.Z.Bytes()) }

// String returns the debug/display form: base64(R_joint) ‖ base64(z_joint).
func (s Signature) String() string { return b64(s.R[:]) + b64(s.Z.Bytes()) }

// ParseSignature decodes the binary wire form produced by Bytes.
func ParseSignature(b []byte) (Signature, error) {
	if len(b) != 64 {
		return Signature{}, fmt.Errorf("sign: signature must be 64 bytes, got %d", len(b))
	}
	z, err := curve25519.ScalarFromCanonicalBytes(b[32:64])
	if err != nil {
		return Signature{}, fmt.Errorf("sign: signature: %w", err)
	}
	var sig Signature
	copy(sig.R[:], b[0:32])
	sig.Z = z
	return sig, nil
}

type round1DTO struct {
	D []byte `cbor:"d"`
	E []byte `cbor:"e"`
}

// MarshalCBOR encodes the message as a CBOR map, a structured alternative
// to the raw binary/base64 wire surface.
func (m ClientRound1Message) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(round1DTO{D: m.D[:], E: m.E[:]})
}

// UnmarshalCBOR decodes a message produced by MarshalCBOR.
func (m *ClientRound1Message) UnmarshalCBOR(data []byte) error {
	var dto round1DTO
	if err := cbor.Unmarshal(data, &dto); err != nil {
		return fmt.Errorf("sign: unmarshal client round 1 cbor: %w", err)
	}
	parsed, err := ParseClientRound1Message(concat(dto.D, dto.E))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalCBOR encodes the message as a CBOR map.
func (m ServerRound1Message) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(round1DTO{D: m.D[:], E: m.E[:]})
}

// UnmarshalCBOR decodes a message produced by MarshalCBOR.
func (m *ServerRound1Message) UnmarshalCBOR(data []byte) error {
	var dto round1DTO
	if err := cbor.Unmarshal(data, &dto); err != nil {
		return fmt.Errorf("sign: unmarshal server round 1 cbor: %w", err)
	}
	parsed, err := ParseServerRound1Message(concat(dto.D, dto.E))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

type round2DTO struct {
	Value []byte `cbor:"value"`
}

// MarshalCBOR encodes the message as a CBOR map.
func (m ClientRound2Message) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(round2DTO{Value: m.Z.Bytes()})
}

// UnmarshalCBOR decodes a message produced by MarshalCBOR.
func (m *ClientRound2Message) UnmarshalCBOR(data []byte) error {
	var dto round2DTO
	if err := cbor.Unmarshal(data, &dto); err != nil {
		return fmt.Errorf("sign: unmarshal client round 2 cbor: %w", err)
	}
	parsed, err := ParseClientRound2Message(dto.Value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalCBOR encodes the message as a CBOR map.
func (m ServerRound2Message) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(round2DTO{Value: m.Z.Bytes()})
}

// UnmarshalCBOR decodes a message produced by MarshalCBOR.
func (m *ServerRound2Message) UnmarshalCBOR(data []byte) error {
	var dto round2DTO
	if err := cbor.Unmarshal(data, &dto); err != nil {
		return fmt.Errorf("sign: unmarshal server round 2 cbor: %w", err)
	}
	parsed, err := ParseServerRound2Message(dto.Value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

type signatureDTO struct {
	R []byte `cbor:"r"`
	Z []byte `cbor:"z"`
}

// MarshalCBOR encodes the signature as a CBOR map.
func (s Signature) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(signatureDTO{R: s.R[:], Z: s.Z.Bytes()})
}

// UnmarshalCBOR decodes a signature produced by MarshalCBOR.
func (s *Signature) UnmarshalCBOR(data []byte) error {
	var dto signatureDTO
	if err := cbor.Unmarshal(data, &dto); err != nil {
		return fmt.Errorf("sign: unmarshal signature cbor: %w", err)
	}
	parsed, err := ParseSignature(concat(dto.R, dto.Z))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func b64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

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
