package rsp

import (
	"strconv"
	"strings"
)

// CommandParser matches decoded payloads against the supported command
// grammar and extracts command-specific arguments.
//
// Dispatch is driven by the first payload byte: 'v' introduces the
// multi-letter commands, 'q'/'Q' the queries, and the single-letter
// commands stand alone. Queries are resolved here without touching the
// debug backend: qSupported maps to CmdQuerySupported (answered with
// the fixed capability string) and every other query maps to
// CmdUnsupported (answered with an empty packet, per the wire
// convention for unrecognized queries).
type CommandParser struct{}

// NewCommandParser creates a new command parser.
func NewCommandParser() *CommandParser {
	return &CommandParser{}
}

// Parse decodes one packet payload into a Command.
//
// A payload that matches no known pattern yields CmdUnsupported
// together with ErrUnsupportedCommand; an unrecognized query yields
// CmdUnsupported with a nil error because the empty reply is the
// protocol-defined answer, not a failure. Argument grammar violations
// yield a *ParseError.
func (p *CommandParser) Parse(payload []byte) (Command, error) {
	if len(payload) == 0 {
		return NewUnsupportedCommand(), ErrUnsupportedCommand
	}

	switch payload[0] {
	case 'v':
		if CommandMatches(payload, "vCont", CommandDelimiters) {
			return p.parseContinue(payload)
		}
		return NewUnsupportedCommand(), ErrUnsupportedCommand

	case 'q', 'Q':
		if CommandMatches(payload, "qSupported", CommandDelimiters) {
			return NewQuerySupportedCommand(), nil
		}
		return NewUnsupportedCommand(), nil

	case 'g':
		return NewRegisterReadCommand(), nil

	case 'm':
		return p.parseMemoryRead(payload)

	case '?':
		return NewQueryStopReasonCommand(), nil

	default:
		return NewUnsupportedCommand(), ErrUnsupportedCommand
	}
}

// parseContinue extracts the thread-id list from a vCont payload. A
// ':' must immediately follow the command name; each thread id is a
// run of hex digits read as a big-endian hex number. The list grows as
// needed but is capped at maxResumeThreads.
func (p *CommandParser) parseContinue(payload []byte) (Command, error) {
	cur := len("vCont")
	if cur >= len(payload) || payload[cur] != ':' {
		return Command{}, newMissingDelimiterError(string(payload))
	}

	var tids []uint32
	for cur < len(payload) && payload[cur] == ':' {
		cur++
		start := cur
		for cur < len(payload) && isHexDigit(payload[cur]) {
			cur++
		}
		// A field that consumes no digits cannot be told apart from a
		// missing id, so it is rejected outright. A literal "0" still
		// parses: it consumes a digit.
		if cur == start {
			return Command{}, newInvalidThreadIDError(string(payload))
		}
		tid, err := strconv.ParseUint(string(payload[start:cur]), 16, 32)
		if err != nil {
			return Command{}, newInvalidThreadIDError(string(payload[start:cur]))
		}
		if len(tids) >= maxResumeThreads {
			return Command{}, newTooManyThreadsError(string(payload[:len("vCont")]))
		}
		tids = append(tids, uint32(tid))
	}

	return NewContinueCommand(tids), nil
}

// parseMemoryRead extracts the address/length pair from an m payload:
// two hex numbers separated by ',' after the command marker.
func (p *CommandParser) parseMemoryRead(payload []byte) (Command, error) {
	body := string(payload[1:])
	comma := strings.IndexByte(body, ',')
	if comma < 0 {
		return Command{}, newMissingDelimiterError(string(payload))
	}

	addr, err := strconv.ParseUint(body[:comma], 16, 64)
	if err != nil {
		return Command{}, newInvalidAddressError(body[:comma])
	}
	length, err := strconv.ParseUint(body[comma+1:], 16, 64)
	if err != nil {
		return Command{}, newInvalidLengthError(body[comma+1:])
	}

	return NewMemoryReadCommand(addr, length), nil
}

func isHexDigit(b byte) bool {
	return b >= '0' && b <= '9' ||
		b >= 'a' && b <= 'f' ||
		b >= 'A' && b <= 'F'
}
