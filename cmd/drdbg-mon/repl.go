package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/idkwim/drdbg/pkg/rsp"
)

const prompt = "(drdbg) "

// runREPL reads monitor commands and drives the protocol client until
// input runs out or the user quits.
func runREPL(client *rsp.Client, arch rsp.Arch, editor *LineEditor) {
	for {
		line, err := editor.GetLine(prompt)
		if err != nil {
			if err != io.EOF {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			fmt.Println()
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", ".quit", "exit":
			return

		case "help", ".help":
			printCommandHelp()

		case "regs":
			cmdRegs(client, arch)

		case "mem":
			cmdMem(client, fields[1:])

		case "stop":
			cmdStop(client)

		case "cont":
			cmdCont(client, fields[1:])

		case "caps":
			cmdCaps(client)

		case "raw":
			cmdRaw(client, line)

		default:
			fmt.Fprintf(os.Stderr, "Error: unknown command %q (try \"help\")\n", fields[0])
		}
	}
}

func printCommandHelp() {
	fmt.Print(`Commands:
  regs                 Dump the register file
  mem <addr> <len>     Read target memory (hex numbers, 0x prefix optional)
  stop                 Report why the target is stopped
  cont [tid ...]       Resume threads and wait for the next stop
  caps                 Show the stub's capability string
  raw <payload>        Send a raw packet payload and print the reply
  help                 Show this help
  quit                 Leave the monitor
`)
}

func cmdRegs(client *rsp.Client, arch rsp.Arch) {
	regs, err := client.ReadRegisters()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	width := arch.WordSize * 2
	for i, name := range arch.Registers {
		fmt.Printf("%-8s 0x%0*x", name, width, regs[i])
		if i%2 == 1 || i == len(arch.Registers)-1 {
			fmt.Println()
		} else {
			fmt.Print("   ")
		}
	}
}

func cmdMem(client *rsp.Client, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Error: usage: mem <addr> <len>")
		return
	}
	addr, err := parseHex(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid address %q\n", args[0])
		return
	}
	length, err := parseHex(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid length %q\n", args[1])
		return
	}

	data, err := client.ReadMemory(addr, length)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	hexDump(os.Stdout, addr, data)
}

func cmdStop(client *rsp.Client) {
	stop, err := client.StopReason()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("Target stopped with signal %d\n", stop.Signal)
}

func cmdCont(client *rsp.Client, args []string) {
	// With no explicit selection, resume thread 1.
	tids := []uint32{1}
	if len(args) > 0 {
		tids = tids[:0]
		for _, a := range args {
			tid, err := parseHex(a)
			if err != nil || tid > 0xffffffff {
				fmt.Fprintf(os.Stderr, "Error: invalid thread id %q\n", a)
				return
			}
			tids = append(tids, uint32(tid))
		}
	}

	stop, err := client.Continue(tids)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("Target stopped with signal %d\n", stop.Signal)
}

func cmdCaps(client *rsp.Client) {
	caps, err := client.QuerySupported()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(caps)
}

// cmdRaw forwards everything after the command word verbatim, so
// payloads may contain spaces.
func cmdRaw(client *rsp.Client, line string) {
	payload := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "raw"))
	if payload == "" {
		fmt.Fprintln(os.Stderr, "Error: usage: raw <payload>")
		return
	}

	reply, err := client.SendRaw(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if reply == "" {
		fmt.Println("(empty reply)")
		return
	}
	fmt.Println(reply)
}

// parseHex reads a hex number with or without an 0x prefix. Monitor
// numbers are hex by convention, matching the wire format.
func parseHex(s string) (uint64, error) {
	s = strings.TrimPrefix(s, "0x")
	return strconv.ParseUint(s, 16, 64)
}

// hexDump writes data as 16-byte lines with an address column and an
// ASCII gutter.
func hexDump(w io.Writer, addr uint64, data []byte) {
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		row := data[off:end]

		fmt.Fprintf(w, "%016x  ", addr+uint64(off))
		for i := 0; i < 16; i++ {
			if i < len(row) {
				fmt.Fprintf(w, "%02x ", row[i])
			} else {
				fmt.Fprint(w, "   ")
			}
			if i == 7 {
				fmt.Fprint(w, " ")
			}
		}

		fmt.Fprint(w, " |")
		for _, b := range row {
			if b >= 0x20 && b < 0x7f {
				fmt.Fprintf(w, "%c", b)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w, "|")
	}
}
