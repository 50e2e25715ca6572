package main

import (
	"os"
	"testing"

	"github.com/idkwim/drdbg/pkg/rsp"
)

func TestParseArgumentsDefaults(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"drdbg-stub"}
	args := parseArguments()

	if args.listenAddr != "127.0.0.1:1234" {
		t.Errorf("listenAddr = %q, want 127.0.0.1:1234", args.listenAddr)
	}
	if args.archName != "amd64" {
		t.Errorf("archName = %q, want amd64", args.archName)
	}
	if args.imagePath != "" {
		t.Errorf("imagePath = %q, want empty", args.imagePath)
	}
	if args.stopSignal != 5 {
		t.Errorf("stopSignal = %d, want 5", args.stopSignal)
	}
	if args.maxRetries != 0 {
		t.Errorf("maxRetries = %d, want 0", args.maxRetries)
	}
	if args.once || args.showHelp || args.showVersion {
		t.Error("boolean flags should default to false")
	}
}

func TestParseArgumentsFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{
		"drdbg-stub",
		"--listen", ":4444",
		"--arch", "i386",
		"--image", "boot.bin",
		"--base", "0x1000",
		"--signal", "11",
		"--max-retries", "3",
		"--once",
	}
	args := parseArguments()

	if args.listenAddr != ":4444" {
		t.Errorf("listenAddr = %q, want :4444", args.listenAddr)
	}
	if args.archName != "i386" {
		t.Errorf("archName = %q, want i386", args.archName)
	}
	if args.imagePath != "boot.bin" {
		t.Errorf("imagePath = %q, want boot.bin", args.imagePath)
	}
	if args.base != 0x1000 {
		t.Errorf("base = %#x, want 0x1000", args.base)
	}
	if args.stopSignal != 11 {
		t.Errorf("stopSignal = %d, want 11", args.stopSignal)
	}
	if args.maxRetries != 3 {
		t.Errorf("maxRetries = %d, want 3", args.maxRetries)
	}
	if !args.once {
		t.Error("once should be set")
	}
}

func TestParseArgumentsHelpAndVersion(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"drdbg-stub", "-h"}
	if !parseArguments().showHelp {
		t.Error("-h should set showHelp")
	}

	os.Args = []string{"drdbg-stub", "-v"}
	if !parseArguments().showVersion {
		t.Error("-v should set showVersion")
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		bits    int
		want    uint64
		wantErr bool
	}{
		{"1234", 64, 1234, false},
		{"0x1000", 64, 0x1000, false},
		{"0xdeadbeef", 64, 0xdeadbeef, false},
		{"0", 8, 0, false},
		{"256", 8, 0, true},
		{"0x", 64, 0, true},
		{"abc", 64, 0, true},
		{"", 64, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseNumber(tt.in, tt.bits)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseNumber(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseNumber(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestProgramCounter(t *testing.T) {
	if got := programCounter(rsp.AMD64); got != "rip" {
		t.Errorf("amd64 program counter %q, want rip", got)
	}
	if got := programCounter(rsp.I386); got != "eip" {
		t.Errorf("i386 program counter %q, want eip", got)
	}
}
