package rsp

import (
	"errors"
	"fmt"
)

// Sentinel errors for the protocol engine.
var (
	// ErrChecksumMismatch indicates a received frame's checksum digits
	// did not match the payload. The receiver answers with a nak and
	// the sender is expected to retransmit.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrMalformedPacket indicates a frame that did not begin with the
	// packet start marker.
	ErrMalformedPacket = errors.New("malformed packet")

	// ErrPacketTooLarge indicates a frame whose payload exceeded
	// MaxPayloadSize before the end marker was seen.
	ErrPacketTooLarge = errors.New("packet too large")

	// ErrReplyTooLarge indicates a reply payload that cannot fit in a
	// single frame.
	ErrReplyTooLarge = errors.New("reply too large")

	// ErrRetriesExhausted indicates Send gave up after the configured
	// number of unacknowledged transmissions.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrUnsupportedCommand indicates a received command that matched
	// no known pattern. Per the wire convention it is answered with an
	// empty packet; it is not fatal to the connection.
	ErrUnsupportedCommand = errors.New("unsupported command")

	// ErrUnencodableStop indicates a stop reason variant the encoder
	// cannot express as a reply payload.
	ErrUnencodableStop = errors.New("unencodable stop reason")

	// ErrRegisterCount indicates a register snapshot whose length does
	// not match the target architecture descriptor.
	ErrRegisterCount = errors.New("register count mismatch")
)

// ParseError represents a command whose arguments did not match the
// expected grammar. The connection stays alive; the command is answered
// with an empty packet.
type ParseError struct {
	Kind  ParseErrorKind
	Value string // the offending input fragment
}

// ParseErrorKind categorizes command parsing errors.
type ParseErrorKind int

const (
	// ErrKindMissingDelimiter indicates a required delimiter (such as
	// the ':' after vCont) was absent.
	ErrKindMissingDelimiter ParseErrorKind = iota
	// ErrKindInvalidThreadID indicates a thread-id field that is not
	// valid hex or consumed no digits.
	ErrKindInvalidThreadID
	// ErrKindTooManyThreads indicates a vCont thread list exceeding
	// the engine's upper bound.
	ErrKindTooManyThreads
	// ErrKindInvalidAddress indicates a malformed memory address.
	ErrKindInvalidAddress
	// ErrKindInvalidLength indicates a malformed memory length.
	ErrKindInvalidLength
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrKindMissingDelimiter:
		return fmt.Sprintf("missing delimiter in %q", e.Value)
	case ErrKindInvalidThreadID:
		return fmt.Sprintf("invalid thread id %q", e.Value)
	case ErrKindTooManyThreads:
		return fmt.Sprintf("too many thread ids in %q", e.Value)
	case ErrKindInvalidAddress:
		return fmt.Sprintf("invalid address %q", e.Value)
	case ErrKindInvalidLength:
		return fmt.Sprintf("invalid length %q", e.Value)
	default:
		return fmt.Sprintf("parse error in %q", e.Value)
	}
}

func newMissingDelimiterError(v string) error {
	return &ParseError{Kind: ErrKindMissingDelimiter, Value: v}
}

func newInvalidThreadIDError(v string) error {
	return &ParseError{Kind: ErrKindInvalidThreadID, Value: v}
}

func newTooManyThreadsError(v string) error {
	return &ParseError{Kind: ErrKindTooManyThreads, Value: v}
}

func newInvalidAddressError(v string) error {
	return &ParseError{Kind: ErrKindInvalidAddress, Value: v}
}

func newInvalidLengthError(v string) error {
	return &ParseError{Kind: ErrKindInvalidLength, Value: v}
}

// TransportError represents an I/O failure on the underlying byte
// stream. It is fatal to the current connection.
type TransportError struct {
	Op    string // "read", "write", "ack"
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s failed: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// NewTransportError creates a transport error for the given operation.
func NewTransportError(op string, cause error) error {
	return &TransportError{Op: op, Cause: cause}
}

// Recoverable reports whether a receive error leaves the connection
// usable: framing and checksum failures were already answered with a
// nak and the peer will retransmit; everything else ends the session.
func Recoverable(err error) bool {
	return errors.Is(err, ErrChecksumMismatch) ||
		errors.Is(err, ErrMalformedPacket) ||
		errors.Is(err, ErrPacketTooLarge)
}
