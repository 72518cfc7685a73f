//go:build linux

package proc

import (
	"os"
	"testing"
)

func TestCmdlineSelf(t *testing.T) {
	cmdline, err := Cmdline(uint32(os.Getpid()))
	if err != nil {
		t.Fatalf("Cmdline(self): %v", err)
	}
	if cmdline == "" {
		t.Fatal("expected a non-empty command line for the test binary")
	}
	if cmdline[len(cmdline)-1] == ' ' || cmdline[len(cmdline)-1] == 0 {
		t.Fatalf("command line not trimmed: %q", cmdline)
	}
}

func TestCmdlineMissingProcess(t *testing.T) {
	// PID 0 has no /proc entry.
	if _, err := Cmdline(0); err == nil {
		t.Fatal("expected an error for a nonexistent process")
	}
}
