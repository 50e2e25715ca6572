package rsp

import (
	"encoding/hex"
	"fmt"
	"strconv"
)

// Encoder produces reply payloads from debug backend results. Register
// encoding depends on the target architecture descriptor; everything
// else is architecture independent.
type Encoder struct {
	// Arch describes the target's register layout and word rendering.
	Arch Arch

	// MaxPayload caps the size of an encoded reply. Zero means
	// MaxPayloadSize.
	MaxPayload int
}

// NewEncoder creates an encoder for the given target architecture with
// the default payload bound.
func NewEncoder(arch Arch) *Encoder {
	return &Encoder{Arch: arch, MaxPayload: MaxPayloadSize}
}

func (e *Encoder) maxPayload() int {
	if e.MaxPayload > 0 {
		return e.MaxPayload
	}
	return MaxPayloadSize
}

// StopReason encodes a stop reason as a reply payload: 'S' followed by
// the two-hex-digit signal number. Stop reasons other than a received
// signal are representable but not encodable; the encoder reports
// failure rather than inventing a reply.
func (e *Encoder) StopReason(r StopReason) ([]byte, error) {
	switch r.Kind {
	case StopSignal:
		return []byte(fmt.Sprintf("S%02x", r.Signal)), nil
	default:
		return nil, ErrUnencodableStop
	}
}

// Registers encodes a register snapshot as the 'g' reply payload: each
// register in the platform order, rendered as a fixed-width hex field
// whose bytes appear in the target byte order.
func (e *Encoder) Registers(snap RegisterSnapshot) ([]byte, error) {
	if len(snap) != e.Arch.RegisterCount() {
		return nil, ErrRegisterCount
	}
	if e.Arch.DumpLen() > e.maxPayload() {
		return nil, ErrReplyTooLarge
	}

	raw := make([]byte, 0, len(snap)*e.Arch.WordSize)
	for _, v := range snap {
		raw = e.Arch.putWord(raw, v)
	}
	return hexEncode(raw), nil
}

// Memory encodes raw memory bytes as the 'm' reply payload, two hex
// digits per byte in source order. Encoding fails when the hex text
// would not fit in a single frame.
func (e *Encoder) Memory(data []byte) ([]byte, error) {
	if len(data)*2 > e.maxPayload() {
		return nil, ErrReplyTooLarge
	}
	return hexEncode(data), nil
}

// ParseStopReason decodes an 'S' stop reply payload. It is the client
// side inverse of Encoder.StopReason.
func ParseStopReason(payload []byte) (StopReason, error) {
	if len(payload) != 3 || payload[0] != 'S' {
		return StopReason{}, ErrUnencodableStop
	}
	sig, err := strconv.ParseUint(string(payload[1:]), 16, 8)
	if err != nil {
		return StopReason{}, ErrUnencodableStop
	}
	return SignalStop(uint8(sig)), nil
}

// DecodeRegisters decodes a 'g' reply payload into a register snapshot
// for the given architecture.
func DecodeRegisters(arch Arch, payload []byte) (RegisterSnapshot, error) {
	if len(payload) != arch.DumpLen() {
		return nil, ErrRegisterCount
	}
	raw, err := hex.DecodeString(string(payload))
	if err != nil {
		return nil, ErrRegisterCount
	}

	snap := make(RegisterSnapshot, 0, arch.RegisterCount())
	for off := 0; off < len(raw); off += arch.WordSize {
		snap = append(snap, arch.word(raw[off:off+arch.WordSize]))
	}
	return snap, nil
}

// DecodeMemory decodes an 'm' reply payload into raw bytes.
func DecodeMemory(payload []byte) ([]byte, error) {
	return hex.DecodeString(string(payload))
}

func hexEncode(raw []byte) []byte {
	out := make([]byte, hex.EncodedLen(len(raw)))
	hex.Encode(out, raw)
	return out
}
