// Package rsp implements the server side of the GDB Remote Serial
// Protocol (RSP) for a debug stub: packet framing and acknowledgment,
// command dispatch, and response encoding against a pluggable debug
// backend.
//
// Wire Format:
//
//	Packet:          $<payload>#<2 hex digit checksum>
//	Checksum:        unsigned byte-sum of the payload, mod 256
//	Acknowledgment:  single unframed byte, '+' (accepted) or '-' (rejected)
//
// A sender transmits a frame and blocks until it reads '+'; on anything
// else it retransmits the identical frame. A receiver accumulates bytes
// until '#', reads the two checksum digits, verifies them, and answers
// '+' or '-'. The protocol is synchronous with at most one packet in
// flight per direction.
//
// Supported Commands:
//
//	qSupported...              capability negotiation (fixed reply)
//	g                          read all registers
//	m<addr>,<len>              read memory (hex reply)
//	?                          query last stop reason (S<signal> reply)
//	vCont:<tid>[:<tid>...]     resume the listed threads
//	anything else              answered with an empty packet
//
// Example Session:
//
//	DBG: +
//	DBG: $qSupported:xmlRegisters=i386#c1  SRV: +
//	SRV: $PacketSize=3fff;multiprocess+;vContSupported+#5b  DBG: +
//	DBG: $m1000,4#8e                       SRV: +
//	SRV: $deadbeef#20                      DBG: +
//
// The engine serves one connection at a time and performs no internal
// concurrency; all reads and writes block the calling goroutine.
package rsp
