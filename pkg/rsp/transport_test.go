package rsp

import (
	"bytes"
	"io"
)

// scriptedStream is a test double for the byte stream: reads come from
// a fixed script and every Write call is recorded as its own chunk, so
// tests can count transmissions and inspect exact wire bytes.
type scriptedStream struct {
	in     *bytes.Reader
	writes [][]byte
}

func newScriptedStream(script string) *scriptedStream {
	return &scriptedStream{in: bytes.NewReader([]byte(script))}
}

func (s *scriptedStream) Read(p []byte) (int, error) {
	return s.in.Read(p)
}

func (s *scriptedStream) Write(p []byte) (int, error) {
	buf := make([]byte, len(p))
	copy(buf, p)
	s.writes = append(s.writes, buf)
	return len(p), nil
}

// written returns everything the codec wrote, concatenated.
func (s *scriptedStream) written() string {
	var all []byte
	for _, w := range s.writes {
		all = append(all, w...)
	}
	return string(all)
}

// frames returns only the packet-sized writes, skipping bare
// acknowledgment bytes.
func (s *scriptedStream) frames() []string {
	var out []string
	for _, w := range s.writes {
		if len(w) > 1 {
			out = append(out, string(w))
		}
	}
	return out
}

// shortWriter wraps a stream and truncates every write, simulating a
// transport that cannot take a whole frame at once.
type shortWriter struct {
	*scriptedStream
}

func (s shortWriter) Write(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:len(p)-1]
	}
	return s.scriptedStream.Write(p)
}

var _ io.ReadWriter = (*scriptedStream)(nil)
