package rsp

import (
	"errors"
	"net"
)

// Server accepts debugger connections and serves each one with a
// Session. Connections are served strictly one at a time: the protocol
// admits a single client, so the next connection is not accepted until
// the current session ends.
type Server struct {
	ln      net.Listener
	backend Backend
	arch    Arch
	retry   RetryPolicy
}

// Listen binds a TCP listener on addr and returns a server that will
// drive the given backend. The listener is owned by the server and
// closed by Close.
func Listen(addr string, backend Backend, arch Arch) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, NewTransportError("listen", err)
	}
	return &Server{ln: ln, backend: backend, arch: arch}, nil
}

// SetRetryPolicy bounds retransmissions for all future sessions.
func (s *Server) SetRetryPolicy(p RetryPolicy) {
	s.retry = p
}

// Addr returns the listener's address, useful when listening on an
// ephemeral port.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// ServeOne accepts a single connection, serves it to completion, and
// returns the session's outcome. A clean client disconnect returns
// nil.
func (s *Server) ServeOne() error {
	conn, err := s.ln.Accept()
	if err != nil {
		return NewTransportError("accept", err)
	}
	defer conn.Close()

	sess := NewSession(conn, s.backend, s.arch)
	sess.SetRetryPolicy(s.retry)
	return sess.Serve()
}

// Serve accepts and serves connections until the listener is closed.
// Session errors end only that session; the next client can attach.
func (s *Server) Serve() error {
	for {
		err := s.ServeOne()
		if err == nil {
			continue
		}
		var terr *TransportError
		if errors.As(err, &terr) && terr.Op == "accept" {
			return err
		}
	}
}

// Close shuts the listener down. A Serve loop blocked in Accept
// returns once the listener is closed.
func (s *Server) Close() error {
	return s.ln.Close()
}
