package main

import (
	"io"
	"os"
	"strings"
	"testing"
)

// withStdinPipe redirects os.Stdin to a pipe carrying the given input
// and restores it when the test ends.
func withStdinPipe(t *testing.T, input string) {
	t.Helper()

	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	oldStdin := os.Stdin
	os.Stdin = reader
	t.Cleanup(func() {
		os.Stdin = oldStdin
		reader.Close()
	})

	go func() {
		io.WriteString(writer, input)
		writer.Close()
	}()
}

func TestNewLineEditorNonInteractive(t *testing.T) {
	withStdinPipe(t, "")

	editor := NewLineEditor()
	defer editor.Close()

	if editor.IsInteractive() {
		t.Error("editor should be non-interactive when stdin is a pipe")
	}
	if editor.scanner == nil {
		t.Error("non-interactive editor should have a scanner")
	}
	if editor.rl != nil {
		t.Error("non-interactive editor should not have a readline instance")
	}
}

func TestGetLineReadsFromPipe(t *testing.T) {
	withStdinPipe(t, "regs\nmem 1000 10\n")

	editor := NewLineEditor()
	defer editor.Close()

	line, err := editor.GetLine(prompt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "regs" {
		t.Errorf("first line = %q, want regs", line)
	}

	line, err = editor.GetLine(prompt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "mem 1000 10" {
		t.Errorf("second line = %q, want mem 1000 10", line)
	}
}

func TestGetLineReturnsEOFOnEmptyPipe(t *testing.T) {
	withStdinPipe(t, "")

	editor := NewLineEditor()
	defer editor.Close()

	if _, err := editor.GetLine(prompt); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	withStdinPipe(t, "")

	editor := NewLineEditor()
	editor.Close()
	editor.Close()
}

func TestHistoryPathConstruction(t *testing.T) {
	path := historyPath()
	if path == "" {
		t.Skip("no home directory in test environment")
	}
	if !strings.HasSuffix(path, historyFileName) {
		t.Errorf("history path %q does not end with %q", path, historyFileName)
	}
}
