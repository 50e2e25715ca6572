package rsp

import (
	"bytes"
	"testing"
)

func TestLookupArch(t *testing.T) {
	tests := []struct {
		name  string
		found bool
		regs  int
	}{
		{"amd64", true, 18},
		{"i386", true, 10},
		{"arm64", false, 0},
		{"", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arch, ok := LookupArch(tt.name)
			if ok != tt.found {
				t.Fatalf("LookupArch(%q) found = %v, want %v", tt.name, ok, tt.found)
			}
			if tt.found && arch.RegisterCount() != tt.regs {
				t.Errorf("register count %d, want %d", arch.RegisterCount(), tt.regs)
			}
		})
	}
}

func TestArchDumpLen(t *testing.T) {
	if got := AMD64.DumpLen(); got != 288 {
		t.Errorf("amd64 dump length %d, want 288", got)
	}
	if got := I386.DumpLen(); got != 80 {
		t.Errorf("i386 dump length %d, want 80", got)
	}
}

func TestArchWordByteOrder(t *testing.T) {
	got := AMD64.putWord(nil, 0x0102030405060708)
	want := []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("amd64 word bytes % x, want % x", got, want)
	}

	got = I386.putWord(nil, 0xdeadbeef)
	want = []byte{0xef, 0xbe, 0xad, 0xde}
	if !bytes.Equal(got, want) {
		t.Errorf("i386 word bytes % x, want % x", got, want)
	}

	// putWord appends; earlier content survives.
	got = I386.putWord([]byte{0xaa}, 0x01)
	want = []byte{0xaa, 0x01, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("appended word bytes % x, want % x", got, want)
	}
}

func TestArchWordRoundTrip(t *testing.T) {
	for _, arch := range []Arch{AMD64, I386} {
		t.Run(arch.Name, func(t *testing.T) {
			want := uint64(0x01020304)
			buf := arch.putWord(nil, want)
			if len(buf) != arch.WordSize {
				t.Fatalf("word length %d, want %d", len(buf), arch.WordSize)
			}
			if got := arch.word(buf); got != want {
				t.Errorf("got %#x, want %#x", got, want)
			}
		})
	}
}
