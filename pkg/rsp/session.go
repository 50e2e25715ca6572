package rsp

import (
	"errors"
	"io"
)

// Session serves the RSP command loop for a single connection: it
// receives packets, dispatches them, consults the debug backend, and
// transmits the encoded replies. The model is single-threaded and
// blocking; one Session owns its byte stream exclusively.
type Session struct {
	codec   *Codec
	parser  *CommandParser
	enc     *Encoder
	backend Backend
}

// NewSession creates a session over the given byte stream against the
// given backend and target architecture.
func NewSession(rw io.ReadWriter, backend Backend, arch Arch) *Session {
	return &Session{
		codec:   NewCodec(rw),
		parser:  NewCommandParser(),
		enc:     NewEncoder(arch),
		backend: backend,
	}
}

// SetRetryPolicy bounds retransmissions on the session's send path.
func (s *Session) SetRetryPolicy(p RetryPolicy) {
	s.codec.SetRetryPolicy(p)
}

// Serve waits for the client's initial acknowledgment, then runs the
// command loop until the stream fails or the peer disconnects. A clean
// disconnect (EOF between packets) returns nil.
func (s *Session) Serve() error {
	if err := s.codec.AwaitAck(); err != nil {
		return err
	}
	for {
		err := s.serveOne()
		switch {
		case err == nil || Recoverable(err):
			continue
		case errors.Is(err, io.EOF):
			return nil
		default:
			return err
		}
	}
}

// serveOne handles a single request/reply exchange.
//
// Framing and checksum failures have already been nak'd by the codec
// and propagate as recoverable errors so Serve stays in its loop.
// Parse failures, unsupported commands, and backend failures are
// answered with an empty packet, the wire's "not implemented" reply,
// and keep the connection alive.
func (s *Session) serveOne() error {
	payload, err := s.codec.Receive()
	if err != nil {
		return err
	}

	cmd, err := s.parser.Parse(payload)
	if err != nil {
		return s.codec.Send(nil)
	}

	reply, err := s.execute(cmd)
	if err != nil {
		return s.codec.Send(nil)
	}
	return s.codec.Send(reply)
}

// execute runs one command against the backend and encodes its reply
// payload. Commands the dispatcher resolved by itself never reach the
// backend.
func (s *Session) execute(cmd Command) ([]byte, error) {
	switch cmd.Type {
	case CmdQuerySupported:
		return []byte(Capabilities), nil

	case CmdUnsupported:
		return nil, nil

	case CmdRegisterRead:
		return s.enc.Registers(s.backend.Registers())

	case CmdMemoryRead:
		data, err := s.backend.ReadMemory(cmd.Address, cmd.Length)
		if err != nil {
			return nil, err
		}
		return s.enc.Memory(data)

	case CmdQueryStopReason:
		return s.enc.StopReason(s.backend.StopReason())

	case CmdContinue:
		// Resume blocks until the target stops again; the stop reply
		// is the answer the client is waiting for.
		if err := s.backend.Resume(cmd.ThreadIDs); err != nil {
			return nil, err
		}
		return s.enc.StopReason(s.backend.StopReason())

	default:
		return nil, ErrUnsupportedCommand
	}
}
