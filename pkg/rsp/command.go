package rsp

import (
	"fmt"
	"strings"
)

// CommandType represents the type of a decoded RSP command.
type CommandType int

const (
	// CmdContinue resumes execution of the listed threads (vCont).
	CmdContinue CommandType = iota
	// CmdRegisterRead reads the full register file (g).
	CmdRegisterRead
	// CmdMemoryRead reads a range of target memory (m).
	CmdMemoryRead
	// CmdQueryStopReason asks why the target last stopped (?).
	CmdQueryStopReason
	// CmdQuerySupported negotiates capabilities (qSupported). It is
	// resolved entirely by the dispatcher and never reaches the
	// debug backend.
	CmdQuerySupported
	// CmdUnsupported is any command matching no known pattern; the
	// wire convention answers it with an empty packet.
	CmdUnsupported
)

// maxResumeThreads bounds the vCont thread-id list. Inputs beyond it
// are rejected as a parse error rather than truncated.
const maxResumeThreads = 1024

// Command represents a parsed RSP command with its arguments. Only the
// fields relevant to the command type are populated. Use the
// constructor functions to create Command values.
type Command struct {
	Type CommandType

	// ThreadIDs is the ordered thread selection for CmdContinue. An
	// empty list means "all threads".
	ThreadIDs []uint32

	// Address and Length describe the range for CmdMemoryRead.
	Address uint64
	Length  uint64
}

// NewContinueCommand creates a resume command for the given threads.
func NewContinueCommand(threadIDs []uint32) Command {
	return Command{Type: CmdContinue, ThreadIDs: threadIDs}
}

// NewRegisterReadCommand creates a full register read command.
func NewRegisterReadCommand() Command {
	return Command{Type: CmdRegisterRead}
}

// NewMemoryReadCommand creates a memory read command for the range
// [address, address+length).
func NewMemoryReadCommand(address, length uint64) Command {
	return Command{Type: CmdMemoryRead, Address: address, Length: length}
}

// NewQueryStopReasonCommand creates a stop-reason query command.
func NewQueryStopReasonCommand() Command {
	return Command{Type: CmdQueryStopReason}
}

// NewQuerySupportedCommand creates a capability negotiation command.
func NewQuerySupportedCommand() Command {
	return Command{Type: CmdQuerySupported}
}

// NewUnsupportedCommand creates the catch-all command value.
func NewUnsupportedCommand() Command {
	return Command{Type: CmdUnsupported}
}

// Format returns the command's wire payload text, as a debugger client
// would transmit it. The result does not include packet framing.
func (c Command) Format() string {
	switch c.Type {
	case CmdContinue:
		var sb strings.Builder
		sb.WriteString("vCont")
		for _, tid := range c.ThreadIDs {
			fmt.Fprintf(&sb, ":%08x", tid)
		}
		return sb.String()
	case CmdRegisterRead:
		return "g"
	case CmdMemoryRead:
		return fmt.Sprintf("m%x,%x", c.Address, c.Length)
	case CmdQueryStopReason:
		return "?"
	case CmdQuerySupported:
		return "qSupported"
	default:
		return ""
	}
}
