package rsp

import "errors"

// Memory read failures a backend must distinguish.
var (
	// ErrMemoryUnmapped indicates the requested range is not mapped or
	// not accessible at all.
	ErrMemoryUnmapped = errors.New("memory unmapped")

	// ErrMemoryTruncated indicates the range starts in mapped memory
	// but could not be read in full.
	ErrMemoryTruncated = errors.New("memory read truncated")
)

// RegisterSnapshot is an ordered capture of the target's machine
// registers, one word per register in the Arch's fixed platform order.
type RegisterSnapshot []uint64

// StopReasonKind tags the cause of the target's most recent halt.
type StopReasonKind int

const (
	// StopSignal means the target received a signal. This is the only
	// stop reason the response encoder can express today.
	StopSignal StopReasonKind = iota
	// StopExited means the target process exited. Representable but
	// not yet encodable; the encoder reports failure for it.
	StopExited
)

// StopReason describes why the target last stopped.
type StopReason struct {
	Kind StopReasonKind

	// Signal is the signal number for StopSignal.
	Signal uint8

	// Status is the exit status for StopExited.
	Status int
}

// SignalStop returns a StopReason for a received signal.
func SignalStop(signal uint8) StopReason {
	return StopReason{Kind: StopSignal, Signal: signal}
}

// ExitedStop returns a StopReason for a process exit.
func ExitedStop(status int) StopReason {
	return StopReason{Kind: StopExited, Status: status}
}

// Backend supplies target state to the protocol engine and carries out
// execution control. Implementations produce fresh snapshots and
// memory buffers per call; the engine consumes them immediately and
// retains nothing across requests.
//
// The engine calls a Backend from a single goroutine per connection
// and never concurrently with itself.
type Backend interface {
	// Resume resumes execution, restricting continuation to the given
	// threads when the list is non-empty. It returns once the target
	// has stopped again; the engine then reports StopReason to the
	// client.
	Resume(threadIDs []uint32) error

	// Registers captures the full register file in the fixed platform
	// order of the target's Arch.
	Registers() RegisterSnapshot

	// ReadMemory reads length bytes starting at address. It must fail
	// with ErrMemoryUnmapped for inaccessible ranges and
	// ErrMemoryTruncated for partial reads; it never returns a short
	// buffer alongside a nil error.
	ReadMemory(address, length uint64) ([]byte, error)

	// StopReason reports why the target last stopped.
	StopReason() StopReason
}
