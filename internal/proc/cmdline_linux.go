//go:build linux

// Package proc reads process details the bus cannot answer itself.
package proc

import (
	"fmt"
	"os"
	"strings"
)

// Cmdline returns the command line of pid with the NUL separators
// replaced by spaces and trailing whitespace trimmed.
func Cmdline(pid uint32) (string, error) {
	raw, err := os.ReadFile(fmt.Sprintf("/proc/%d/cmdline", pid))
	if err != nil {
		return "", err
	}
	cmdline := strings.TrimSpace(strings.ReplaceAll(string(raw), "\x00", " "))
	return cmdline, nil
}
