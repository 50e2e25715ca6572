// Package target provides a self-contained, in-memory debug target for
// exercising the RSP protocol engine. It is a protocol test fixture,
// not an execution engine: memory is a set of mapped byte regions,
// registers are plain words, and resuming records the request and
// leaves the stop state wherever it was pointed.
package target

import (
	"fmt"
	"sort"
	"sync"

	"github.com/idkwim/drdbg/pkg/rsp"
)

// region is one mapped span of target memory.
type region struct {
	base uint64
	data []byte
}

func (r region) end() uint64 { return r.base + uint64(len(r.data)) }

// Target is an in-memory implementation of rsp.Backend. The zero
// value is not usable; create targets with New.
//
// A Target is safe for concurrent use so tests and tooling can inspect
// it while a session drives it.
type Target struct {
	mu sync.Mutex

	arch    rsp.Arch
	regs    rsp.RegisterSnapshot
	regions []region // sorted by base, non-overlapping
	stop    rsp.StopReason
	resumed [][]uint32
}

// defaultSignal is the stop signal a fresh target reports: SIGTRAP,
// what a real stub reports after hitting a trap.
const defaultSignal = 5

// New creates a target for the given architecture with zeroed
// registers, no mapped memory, and a SIGTRAP stop reason.
func New(arch rsp.Arch) *Target {
	return &Target{
		arch: arch,
		regs: make(rsp.RegisterSnapshot, arch.RegisterCount()),
		stop: rsp.SignalStop(defaultSignal),
	}
}

// Arch returns the target's architecture descriptor.
func (t *Target) Arch() rsp.Arch {
	return t.arch
}

// Map copies data into target memory at base, replacing any previous
// mapping that overlaps the new range.
func (t *Target) Map(base uint64, data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)

	kept := t.regions[:0]
	for _, r := range t.regions {
		if r.base < base+uint64(len(buf)) && base < r.end() {
			continue
		}
		kept = append(kept, r)
	}
	t.regions = append(kept, region{base: base, data: buf})
	sort.Slice(t.regions, func(i, j int) bool {
		return t.regions[i].base < t.regions[j].base
	})
}

// SetRegister sets a register by its platform name.
func (t *Target) SetRegister(name string, value uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, reg := range t.arch.Registers {
		if reg == name {
			t.regs[i] = value
			return nil
		}
	}
	return fmt.Errorf("unknown register %q on %s", name, t.arch.Name)
}

// SetStopReason points the target's stop state at a new reason.
func (t *Target) SetStopReason(r rsp.StopReason) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stop = r
}

// Resume records the requested thread selection and returns
// immediately; the sample target has nothing to actually run.
func (t *Target) Resume(threadIDs []uint32) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tids := make([]uint32, len(threadIDs))
	copy(tids, threadIDs)
	t.resumed = append(t.resumed, tids)
	return nil
}

// ResumeLog returns the thread selections passed to Resume, in order.
func (t *Target) ResumeLog() [][]uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()

	log := make([][]uint32, len(t.resumed))
	copy(log, t.resumed)
	return log
}

// Registers returns a fresh copy of the register file.
func (t *Target) Registers() rsp.RegisterSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := make(rsp.RegisterSnapshot, len(t.regs))
	copy(snap, t.regs)
	return snap
}

// ReadMemory reads length bytes at address. Ranges that start outside
// any mapping fail with rsp.ErrMemoryUnmapped; ranges that start in a
// mapping but run off its end fail with rsp.ErrMemoryTruncated.
func (t *Target) ReadMemory(address, length uint64) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, r := range t.regions {
		if address < r.base || address >= r.end() {
			continue
		}
		off := address - r.base
		// Compare by subtraction: off < len(data) here, so the right
		// side cannot underflow, and a huge length cannot wrap the way
		// off+length would.
		if length > uint64(len(r.data))-off {
			return nil, rsp.ErrMemoryTruncated
		}
		buf := make([]byte, length)
		copy(buf, r.data[off:off+length])
		return buf, nil
	}
	return nil, rsp.ErrMemoryUnmapped
}

// StopReason reports the target's current stop state.
func (t *Target) StopReason() rsp.StopReason {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop
}
