// Command drdbg-stub serves the GDB remote serial protocol over TCP
// against a self-contained in-memory target. It exists to give debugger
// frontends and protocol tooling a stub to talk to without attaching to
// a live process: map an image into target memory, point a debugger at
// the listen address, and inspect what the stub reports.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/idkwim/drdbg/pkg/rsp"
	"github.com/idkwim/drdbg/pkg/target"
)

const version = "0.1.0"

// arguments holds the parsed command-line arguments.
type arguments struct {
	// listenAddr is the TCP address the stub accepts debuggers on.
	listenAddr string

	// archName selects the register file the stub reports.
	archName string

	// imagePath is a file whose bytes are mapped into target memory at
	// base. Empty means no mapping.
	imagePath string

	// base is the load address for imagePath.
	base uint64

	// stopSignal is the signal number reported in stop replies.
	stopSignal uint8

	// maxRetries bounds packet retransmissions on the send path.
	// Zero keeps the wire-faithful unbounded behavior.
	maxRetries int

	// once serves a single connection and exits instead of looping.
	once bool

	// showHelp causes usage information to be printed and the program to exit.
	showHelp bool

	// showVersion causes version information to be printed and the program to exit.
	showVersion bool
}

// parseArguments parses command-line arguments.
//
// A hand-written parser: there are only a handful of flags and no
// subcommands, so a flag framework would be over-engineering.
func parseArguments() arguments {
	args := arguments{
		listenAddr: "127.0.0.1:1234",
		archName:   "amd64",
		stopSignal: 5,
	}

	remaining := os.Args[1:]
	for len(remaining) > 0 {
		arg := remaining[0]
		remaining = remaining[1:]

		takeValue := func() string {
			if len(remaining) == 0 {
				printError(fmt.Sprintf("%s requires a value", arg))
				os.Exit(1)
			}
			v := remaining[0]
			remaining = remaining[1:]
			return v
		}

		switch arg {
		case "--listen":
			args.listenAddr = takeValue()

		case "--arch":
			args.archName = takeValue()

		case "--image":
			args.imagePath = takeValue()

		case "--base":
			base, err := parseNumber(takeValue(), 64)
			if err != nil {
				printError(fmt.Sprintf("invalid --base: %v", err))
				os.Exit(1)
			}
			args.base = base

		case "--signal":
			sig, err := parseNumber(takeValue(), 8)
			if err != nil {
				printError(fmt.Sprintf("invalid --signal: %v", err))
				os.Exit(1)
			}
			args.stopSignal = uint8(sig)

		case "--max-retries":
			n, err := parseNumber(takeValue(), 31)
			if err != nil {
				printError(fmt.Sprintf("invalid --max-retries: %v", err))
				os.Exit(1)
			}
			args.maxRetries = int(n)

		case "--once":
			args.once = true

		case "--help", "-h":
			args.showHelp = true

		case "--version", "-v":
			args.showVersion = true

		default:
			printError(fmt.Sprintf("Unknown argument: %s", arg))
			printUsage()
			os.Exit(1)
		}
	}

	return args
}

// parseNumber reads a decimal number, or a hex one with an 0x prefix.
func parseNumber(s string, bits int) (uint64, error) {
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		return strconv.ParseUint(rest, 16, bits)
	}
	return strconv.ParseUint(s, 10, bits)
}

// printUsage prints usage information to stdout.
func printUsage() {
	fmt.Print(`USAGE: drdbg-stub [options]

OPTIONS:
  --listen <addr>      TCP listen address (default 127.0.0.1:1234)
  --arch <name>        Target architecture: amd64 or i386 (default amd64)
  --image <path>       Map the file's bytes into target memory
  --base <addr>        Load address for --image (default 0; 0x prefix for hex)
  --signal <n>         Signal number reported in stop replies (default 5)
  --max-retries <n>    Bound packet retransmissions (default 0 = unbounded)
  --once               Serve a single connection, then exit
  --help, -h           Show this help
  --version, -v        Show version

EXAMPLES:
  drdbg-stub                                  Serve an empty amd64 target
  drdbg-stub --image boot.bin --base 0x1000   Map boot.bin at 0x1000
  drdbg-stub --arch i386 --listen :4444       32-bit target on port 4444

Point a debugger at the listen address, e.g.:
  gdb -ex 'target remote 127.0.0.1:1234'
`)
}

// printVersion prints version information to stdout.
func printVersion() {
	fmt.Printf("drdbg-stub %s\n", version)
}

// printError prints an error message to stderr.
func printError(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}

// setupSignalHandler installs a handler that runs cleanup and exits
// when the process receives SIGINT or SIGTERM.
func setupSignalHandler(cleanup func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println()
		cleanup()
		os.Exit(0)
	}()
}

// programCounter names the instruction pointer register for an
// architecture so a mapped image can be pointed at.
func programCounter(arch rsp.Arch) string {
	if arch.Name == rsp.I386.Name {
		return "eip"
	}
	return "rip"
}

func main() {
	log.SetFlags(0)
	log.SetPrefix(filepath.Base(os.Args[0]) + ": ")
	log.SetOutput(os.Stderr)

	args := parseArguments()

	if args.showHelp {
		printUsage()
		return
	}
	if args.showVersion {
		printVersion()
		return
	}

	arch, ok := rsp.LookupArch(args.archName)
	if !ok {
		log.Fatalf("unknown architecture %q (supported: amd64, i386)", args.archName)
	}

	tgt := target.New(arch)
	tgt.SetStopReason(rsp.SignalStop(args.stopSignal))

	if args.imagePath != "" {
		data, err := os.ReadFile(args.imagePath)
		if err != nil {
			log.Fatalf("load image: %v", err)
		}
		tgt.Map(args.base, data)
		if err := tgt.SetRegister(programCounter(arch), args.base); err != nil {
			log.Fatalf("set program counter: %v", err)
		}
		log.Printf("mapped %d bytes at %#x", len(data), args.base)
	}

	server, err := rsp.Listen(args.listenAddr, tgt, arch)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	server.SetRetryPolicy(rsp.RetryPolicy{MaxAttempts: args.maxRetries})

	setupSignalHandler(func() {
		server.Close()
	})

	log.Printf("serving %s target on %s", arch.Name, server.Addr())

	if args.once {
		err = server.ServeOne()
	} else {
		err = server.Serve()
	}
	if err != nil {
		log.Fatal(err)
	}
}
