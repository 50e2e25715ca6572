package rsp

import "encoding/binary"

// Arch describes how a target renders its register file on the wire:
// which registers exist, in what order, how wide a machine word is, and
// in which byte order a word's bytes appear inside its hex field. The
// descriptor is a data table; nothing else in the engine branches on
// the target architecture.
type Arch struct {
	// Name identifies the target, e.g. "amd64".
	Name string

	// WordSize is the width of one register in bytes (4 or 8).
	WordSize int

	// ByteOrder is the order in which a register's bytes appear in its
	// hex field. GDB expects target memory order, which is
	// little-endian for the x86 family.
	ByteOrder binary.ByteOrder

	// Registers lists the register names in the fixed platform order
	// used by the 'g' reply.
	Registers []string
}

// AMD64 describes the 64-bit x86 register file: the eight legacy
// general-purpose registers, the extended r8-r15 set, the instruction
// pointer, and the flags word.
var AMD64 = Arch{
	Name:      "amd64",
	WordSize:  8,
	ByteOrder: binary.LittleEndian,
	Registers: []string{
		"rax", "rbx", "rcx", "rdx", "rsi", "rdi", "rbp", "rsp",
		"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
		"rip", "eflags",
	},
}

// I386 describes the 32-bit x86 register file. There is no extended
// register set on 32-bit targets.
var I386 = Arch{
	Name:      "i386",
	WordSize:  4,
	ByteOrder: binary.LittleEndian,
	Registers: []string{
		"eax", "ebx", "ecx", "edx", "esi", "edi", "ebp", "esp",
		"eip", "eflags",
	},
}

// LookupArch returns the descriptor for a target name, or false when
// the name is unknown.
func LookupArch(name string) (Arch, bool) {
	switch name {
	case AMD64.Name:
		return AMD64, true
	case I386.Name:
		return I386, true
	default:
		return Arch{}, false
	}
}

// RegisterCount returns the number of registers in the dump order.
func (a Arch) RegisterCount() int {
	return len(a.Registers)
}

// DumpLen returns the length in hex characters of a full register
// dump: two digits per byte, WordSize bytes per register.
func (a Arch) DumpLen() int {
	return len(a.Registers) * a.WordSize * 2
}

// putWord appends one register value to dst as WordSize bytes in the
// target byte order.
func (a Arch) putWord(dst []byte, v uint64) []byte {
	var buf [8]byte
	if a.WordSize == 8 {
		a.ByteOrder.PutUint64(buf[:8], v)
		return append(dst, buf[:8]...)
	}
	a.ByteOrder.PutUint32(buf[:4], uint32(v))
	return append(dst, buf[:4]...)
}

// word decodes one register value from WordSize bytes in the target
// byte order.
func (a Arch) word(src []byte) uint64 {
	if a.WordSize == 8 {
		return a.ByteOrder.Uint64(src)
	}
	return uint64(a.ByteOrder.Uint32(src))
}
