package rsp

import (
	"errors"
	"io"
	"net"
)

// Client is the debugger side of the protocol: it frames commands,
// waits for the stub's acknowledgment and reply, and decodes reply
// payloads. It exists for the monitor tool and for end-to-end tests;
// the stub itself never uses it.
//
// A Client is synchronous and not safe for concurrent use: RSP allows
// one outstanding command, so callers issue one request at a time.
type Client struct {
	codec *Codec
	arch  Arch

	conn net.Conn // non-nil only when the client dialed the connection
}

// NewClient creates a client over an existing byte stream and sends
// the initial acknowledgment the stub waits for on attach.
func NewClient(rw io.ReadWriter, arch Arch) (*Client, error) {
	c := &Client{codec: NewCodec(rw), arch: arch}
	if err := c.codec.SendAck(); err != nil {
		return nil, err
	}
	return c, nil
}

// Dial connects to a stub over TCP and performs the attach handshake.
func Dial(addr string, arch Arch) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, NewTransportError("dial", err)
	}
	c, err := NewClient(conn, arch)
	if err != nil {
		conn.Close()
		return nil, err
	}
	c.conn = conn
	return c, nil
}

// Close closes the underlying connection when the client owns it.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// roundTrip sends one command payload and returns the reply payload.
func (c *Client) roundTrip(payload []byte) ([]byte, error) {
	if err := c.codec.Send(payload); err != nil {
		return nil, err
	}
	return c.codec.Receive()
}

// SendRaw sends an arbitrary command payload and returns the raw reply
// payload. It bypasses the typed command constructors; the monitor's
// raw mode and tests use it to poke at the wire directly.
func (c *Client) SendRaw(payload string) (string, error) {
	reply, err := c.roundTrip([]byte(payload))
	if err != nil {
		return "", err
	}
	return string(reply), nil
}

// QuerySupported performs capability negotiation and returns the
// stub's capability string.
func (c *Client) QuerySupported() (string, error) {
	reply, err := c.roundTrip([]byte(NewQuerySupportedCommand().Format()))
	if err != nil {
		return "", err
	}
	return string(reply), nil
}

// ReadRegisters fetches and decodes the full register file.
func (c *Client) ReadRegisters() (RegisterSnapshot, error) {
	reply, err := c.roundTrip([]byte(NewRegisterReadCommand().Format()))
	if err != nil {
		return nil, err
	}
	return DecodeRegisters(c.arch, reply)
}

// ReadMemory fetches length bytes of target memory at address. An
// empty reply to a non-empty request means the stub could not serve
// the range; a zero-length read of mapped memory legitimately answers
// empty and succeeds.
func (c *Client) ReadMemory(address, length uint64) ([]byte, error) {
	reply, err := c.roundTrip([]byte(NewMemoryReadCommand(address, length).Format()))
	if err != nil {
		return nil, err
	}
	if len(reply) == 0 && length != 0 {
		return nil, ErrMemoryUnmapped
	}
	return DecodeMemory(reply)
}

// StopReason asks why the target last stopped.
func (c *Client) StopReason() (StopReason, error) {
	reply, err := c.roundTrip([]byte(NewQueryStopReasonCommand().Format()))
	if err != nil {
		return StopReason{}, err
	}
	return ParseStopReason(reply)
}

// Continue resumes the given threads and blocks until the stub reports
// the next stop. At least one thread id is required; the vCont wire
// form has no "all threads" spelling in this subset.
func (c *Client) Continue(threadIDs []uint32) (StopReason, error) {
	if len(threadIDs) == 0 {
		return StopReason{}, errors.New("continue requires at least one thread id")
	}
	reply, err := c.roundTrip([]byte(NewContinueCommand(threadIDs).Format()))
	if err != nil {
		return StopReason{}, err
	}
	return ParseStopReason(reply)
}
