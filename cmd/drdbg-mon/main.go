// Command drdbg-mon is an interactive monitor for remote debug stubs.
// It connects to a stub over TCP and exposes the protocol's operations
// as a small REPL: register dumps, memory reads, stop state, resuming,
// and raw packet injection for poking at a stub by hand.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/idkwim/drdbg/pkg/rsp"
)

const version = "0.1.0"

// arguments holds the parsed command-line arguments.
type arguments struct {
	// connectAddr is the TCP address of the stub to attach to.
	connectAddr string

	// archName selects the register file used to decode dumps. It must
	// match what the stub serves.
	archName string

	// showHelp causes usage information to be printed and the program to exit.
	showHelp bool

	// showVersion causes version information to be printed and the program to exit.
	showVersion bool
}

// parseArguments parses command-line arguments. Hand-written for the
// same reason as the stub's parser: two flags do not need a framework.
func parseArguments() arguments {
	args := arguments{
		connectAddr: "127.0.0.1:1234",
		archName:    "amd64",
	}

	remaining := os.Args[1:]
	for len(remaining) > 0 {
		arg := remaining[0]
		remaining = remaining[1:]

		switch arg {
		case "--connect":
			if len(remaining) == 0 {
				printError("--connect requires an address argument")
				os.Exit(1)
			}
			args.connectAddr = remaining[0]
			remaining = remaining[1:]

		case "--arch":
			if len(remaining) == 0 {
				printError("--arch requires a name argument")
				os.Exit(1)
			}
			args.archName = remaining[0]
			remaining = remaining[1:]

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

// printUsage prints usage information to stdout.
func printUsage() {
	fmt.Print(`USAGE: drdbg-mon [options]

OPTIONS:
  --connect <addr>     Stub address to attach to (default 127.0.0.1:1234)
  --arch <name>        Target architecture: amd64 or i386 (default amd64)
  --help, -h           Show this help
  --version, -v        Show version

COMMANDS (at the prompt):
  regs                 Dump the register file
  mem <addr> <len>     Read target memory (hex numbers, 0x prefix optional)
  stop                 Report why the target is stopped
  cont [tid ...]       Resume threads and wait for the next stop
  caps                 Show the stub's capability string
  raw <payload>        Send a raw packet payload and print the reply
  help                 Show command help
  quit                 Leave the monitor

EXAMPLES:
  drdbg-mon                             Attach to a local stub
  drdbg-mon --connect 10.0.0.5:4444     Attach to a remote stub
`)
}

// printVersion prints version information to stdout.
func printVersion() {
	fmt.Printf("drdbg-mon %s\n", version)
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

	client, err := rsp.Dial(args.connectAddr, arch)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}

	editor := NewLineEditor()

	cleanup := func() {
		editor.Close()
		client.Close()
	}
	setupSignalHandler(cleanup)

	if editor.IsInteractive() {
		fmt.Printf("drdbg-mon %s attached to %s (%s)\n", version, args.connectAddr, arch.Name)
		fmt.Println(`Type "help" for commands, "quit" to leave.`)
	}

	runREPL(client, arch, editor)

	cleanup()
}
