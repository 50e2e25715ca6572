package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestParseArgumentsDefaults(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"drdbg-mon"}
	args := parseArguments()

	if args.connectAddr != "127.0.0.1:1234" {
		t.Errorf("connectAddr = %q, want 127.0.0.1:1234", args.connectAddr)
	}
	if args.archName != "amd64" {
		t.Errorf("archName = %q, want amd64", args.archName)
	}
	if args.showHelp || args.showVersion {
		t.Error("boolean flags should default to false")
	}
}

func TestParseArgumentsFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"drdbg-mon", "--connect", "10.0.0.5:4444", "--arch", "i386"}
	args := parseArguments()

	if args.connectAddr != "10.0.0.5:4444" {
		t.Errorf("connectAddr = %q, want 10.0.0.5:4444", args.connectAddr)
	}
	if args.archName != "i386" {
		t.Errorf("archName = %q, want i386", args.archName)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{"1000", 0x1000, false},
		{"0x1000", 0x1000, false},
		{"deadbeef", 0xdeadbeef, false},
		{"0", 0, false},
		{"zz", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseHex(%q) = %#x, want %#x", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexDumpFullRow(t *testing.T) {
	var buf bytes.Buffer
	hexDump(&buf, 0x1000, []byte("Hello, world!\x00\x01\x02"))

	want := "0000000000001000  48 65 6c 6c 6f 2c 20 77  6f 72 6c 64 21 00 01 02  |Hello, world!...|\n"
	if got := buf.String(); got != want {
		t.Errorf("hexDump output:\n%q\nwant:\n%q", got, want)
	}
}

func TestHexDumpPartialRow(t *testing.T) {
	var buf bytes.Buffer
	hexDump(&buf, 0x2000, []byte{0xde, 0xad})

	got := buf.String()
	if !strings.HasPrefix(got, "0000000000002000  de ad ") {
		t.Errorf("unexpected dump prefix: %q", got)
	}
	if !strings.HasSuffix(got, "|..|\n") {
		t.Errorf("unexpected dump suffix: %q", got)
	}
	if strings.Count(got, "\n") != 1 {
		t.Errorf("expected a single line, got %q", got)
	}
}

func TestHexDumpEmpty(t *testing.T) {
	var buf bytes.Buffer
	hexDump(&buf, 0, nil)

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestHexDumpMultipleRows(t *testing.T) {
	var buf bytes.Buffer
	hexDump(&buf, 0x1000, make([]byte, 33))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "0000000000001010  ") {
		t.Errorf("second row address wrong: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "0000000000001020  ") {
		t.Errorf("third row address wrong: %q", lines[2])
	}
}
