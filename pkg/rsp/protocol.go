package rsp

import "strings"

// Protocol constants matching the GDB Remote Serial Protocol.
const (
	// PacketStart marks the beginning of a framed packet.
	PacketStart = '$'

	// PacketEnd separates the payload from the two checksum digits.
	PacketEnd = '#'

	// Ack is the single-byte positive acknowledgment.
	Ack = '+'

	// Nak is the single-byte negative acknowledgment; the peer
	// retransmits its last frame on receipt.
	Nak = '-'

	// MaxPacketSize is the maximum size of a complete frame in bytes,
	// including the start marker, end marker, and checksum digits.
	MaxPacketSize = 0x4000

	// frameOverhead is the number of non-payload bytes in a frame:
	// '$', '#', and two checksum digits.
	frameOverhead = 4

	// MaxPayloadSize is the maximum payload length a frame can carry.
	MaxPayloadSize = MaxPacketSize - frameOverhead

	// Capabilities is the fixed reply to qSupported. It is sent
	// verbatim regardless of the features the client offers.
	Capabilities = "PacketSize=3fff;multiprocess+;vContSupported+"

	// CommandDelimiters are the bytes that may legally follow a
	// multi-letter command name inside a packet. End-of-packet also
	// terminates a name; see CommandMatches.
	CommandDelimiters = ":;?"
)

// Checksum returns the RSP checksum of a payload: the unsigned 8-bit
// sum of all payload bytes.
func Checksum(payload []byte) byte {
	var sum byte
	for _, b := range payload {
		sum += b
	}
	return sum
}

// CommandMatches reports whether payload begins with the command name.
// The comparison is byte-for-byte over the length of name. When the
// payload is longer than the name, the byte immediately after the
// matched prefix must be one of delims; this rejects accidental prefix
// collisions (a future "vContFoo" must not match "vCont"). A payload
// exactly equal to the name matches.
func CommandMatches(payload []byte, name, delims string) bool {
	if len(payload) < len(name) || string(payload[:len(name)]) != name {
		return false
	}
	if len(payload) == len(name) {
		return true
	}
	return strings.IndexByte(delims, payload[len(name)]) >= 0
}
