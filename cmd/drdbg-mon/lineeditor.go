package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"golang.org/x/term"
)

const (
	// historyFileName is the name of the history file in the user's
	// home directory.
	historyFileName = ".drdbg_history"

	// historySize is the maximum number of history entries to retain.
	historySize = 500
)

// LineEditor wraps line editing with dual-mode operation.
//
// In interactive mode, it uses ergochat/readline for rich line editing
// with Emacs keybindings, history file persistence, and Ctrl-R history
// search. In non-interactive mode (piped input), it falls back to
// bufio.Scanner for simple line reading.
type LineEditor struct {
	// interactive is true when stdin is a TTY and false when stdin is
	// piped.
	interactive bool

	// rl is the readline instance used in interactive mode; nil
	// otherwise.
	rl *readline.Instance

	// scanner reads lines from stdin in non-interactive mode; nil
	// otherwise.
	scanner *bufio.Scanner
}

// NewLineEditor creates a LineEditor with automatic mode detection.
// When readline initialization fails, the editor degrades to
// non-interactive mode instead of aborting.
func NewLineEditor() *LineEditor {
	isInteractive := term.IsTerminal(int(os.Stdin.Fd()))

	if !isInteractive {
		return &LineEditor{
			interactive: false,
			scanner:     bufio.NewScanner(os.Stdin),
		}
	}

	rl, err := readline.NewFromConfig(&readline.Config{
		HistoryFile:  historyPath(),
		HistoryLimit: historySize,

		// History is saved manually per line so empty lines stay out
		// of the history file.
		DisableAutoSaveHistory: true,

		// The prompt is set before each read.
		Prompt: "",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: readline init failed (%v), using basic input\n", err)
		return &LineEditor{
			interactive: false,
			scanner:     bufio.NewScanner(os.Stdin),
		}
	}

	return &LineEditor{
		interactive: true,
		rl:          rl,
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFileName)
}

// GetLine reads one line of input, displaying the given prompt.
// It returns io.EOF when the input is exhausted or the user asks to
// leave (Ctrl-D, Ctrl-C).
func (le *LineEditor) GetLine(prompt string) (string, error) {
	if le.interactive {
		return le.getInteractiveLine(prompt)
	}
	return le.getNonInteractiveLine(prompt)
}

func (le *LineEditor) getInteractiveLine(prompt string) (string, error) {
	le.rl.SetPrompt(prompt)

	line, err := le.rl.Readline()
	if err != nil {
		// Ctrl-C reads as ErrInterrupt; treat it like Ctrl-D so both
		// leave the REPL cleanly.
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}
		return "", err
	}

	if trimmed := strings.TrimSpace(line); trimmed != "" {
		le.rl.SaveToHistory(trimmed)
	}

	return line, nil
}

func (le *LineEditor) getNonInteractiveLine(prompt string) (string, error) {
	// The prompt still matters with piped input: tools driving the
	// monitor match on it to find where their input begins.
	fmt.Print(prompt)

	if !le.scanner.Scan() {
		if err := le.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return le.scanner.Text(), nil
}

// Close releases the readline instance, persisting history.
func (le *LineEditor) Close() {
	if le.rl != nil {
		le.rl.Close()
		le.rl = nil
	}
}

// IsInteractive reports whether the editor reads from a terminal.
func (le *LineEditor) IsInteractive() bool {
	return le.interactive
}
