package rsp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// RetryPolicy bounds the send loop's retransmissions. The zero value
// retries forever, which is the wire-faithful behavior: the protocol
// itself defines no timeout or retry limit.
type RetryPolicy struct {
	// MaxAttempts is the total number of transmissions Send may make
	// before giving up with ErrRetriesExhausted. Zero means unbounded.
	MaxAttempts int
}

// Codec frames, checksums, and acknowledges RSP packets over a raw
// byte stream. It owns the read side of the stream (reads are
// buffered); callers must not read from the stream directly once a
// Codec is attached.
//
// A Codec is not safe for concurrent use. The protocol is synchronous
// with at most one packet in flight, so a single goroutine drives it.
type Codec struct {
	w  io.Writer
	br *bufio.Reader

	retry RetryPolicy
}

// NewCodec creates a codec over the given byte stream.
func NewCodec(rw io.ReadWriter) *Codec {
	return &Codec{
		w:  rw,
		br: bufio.NewReader(rw),
	}
}

// SetRetryPolicy configures the send loop's retransmission bound.
func (c *Codec) SetRetryPolicy(p RetryPolicy) {
	c.retry = p
}

// frame builds a complete wire frame for a payload:
// '$' + payload + '#' + two lowercase hex checksum digits.
func frame(payload []byte) []byte {
	f := make([]byte, 0, len(payload)+frameOverhead)
	f = append(f, PacketStart)
	f = append(f, payload...)
	f = append(f, PacketEnd)
	return append(f, fmt.Sprintf("%02x", Checksum(payload))...)
}

// Send frames the payload and transmits it, blocking until the peer
// acknowledges with '+'. On a nak, a garbled acknowledgment byte, or an
// acknowledgment read failure, the identical frame is retransmitted.
// The retry loop is unbounded unless a RetryPolicy says otherwise.
//
// A write that does not cover the whole frame is a hard failure: the
// stream is in an unknown state and no retry is attempted.
func (c *Codec) Send(payload []byte) error {
	if len(payload) > MaxPayloadSize {
		return ErrReplyTooLarge
	}
	f := frame(payload)

	for attempt := 0; c.retry.MaxAttempts == 0 || attempt < c.retry.MaxAttempts; attempt++ {
		n, err := c.w.Write(f)
		if err != nil {
			return NewTransportError("write", err)
		}
		if n != len(f) {
			return NewTransportError("write", io.ErrShortWrite)
		}

		b, err := c.br.ReadByte()
		if err == nil && b == Ack {
			return nil
		}
		if err == io.EOF {
			return NewTransportError("ack", err)
		}
		// Nak, garbage, or a transient read failure: retransmit.
	}
	return ErrRetriesExhausted
}

// Receive reads one frame from the stream, verifies its checksum, and
// acknowledges it. The returned payload excludes all framing bytes.
//
// A frame that does not start with '$', exceeds MaxPayloadSize before
// '#', or fails checksum verification is answered with a nak and
// reported as the corresponding sentinel error; the connection remains
// usable and the peer is expected to retransmit. Stream failures are
// answered with a best-effort nak and returned as a TransportError.
func (c *Codec) Receive() ([]byte, error) {
	b, err := c.br.ReadByte()
	if err != nil {
		return nil, NewTransportError("read", err)
	}
	if b != PacketStart {
		c.sendAck(Nak)
		return nil, ErrMalformedPacket
	}

	payload := make([]byte, 0, 64)
	for {
		b, err = c.br.ReadByte()
		if err != nil {
			c.sendAck(Nak)
			return nil, NewTransportError("read", err)
		}
		if b == PacketEnd {
			break
		}
		if len(payload) >= MaxPayloadSize {
			c.sendAck(Nak)
			return nil, ErrPacketTooLarge
		}
		payload = append(payload, b)
	}

	// The two checksum digits follow '#' unconditionally.
	var digits [2]byte
	if _, err := io.ReadFull(c.br, digits[:]); err != nil {
		c.sendAck(Nak)
		return nil, NewTransportError("read", err)
	}
	want, err := strconv.ParseUint(string(digits[:]), 16, 8)
	if err != nil || byte(want) != Checksum(payload) {
		c.sendAck(Nak)
		return nil, ErrChecksumMismatch
	}

	if err := c.sendAck(Ack); err != nil {
		return nil, err
	}
	return payload, nil
}

// AwaitAck blocks until an acknowledgment byte arrives, discarding
// anything else. Debugger clients send a bare '+' when they connect;
// the server waits for it before serving commands.
func (c *Codec) AwaitAck() error {
	for {
		b, err := c.br.ReadByte()
		if err != nil {
			return NewTransportError("ack", err)
		}
		if b == Ack {
			return nil
		}
	}
}

// SendAck writes a bare acknowledgment byte outside of any frame.
func (c *Codec) SendAck() error {
	return c.sendAck(Ack)
}

func (c *Codec) sendAck(b byte) error {
	if _, err := c.w.Write([]byte{b}); err != nil {
		return NewTransportError("ack", err)
	}
	return nil
}
