//go:build !linux

package proc

import "errors"

// Cmdline is only implemented on Linux, where the bus daemon lives.
func Cmdline(pid uint32) (string, error) {
	return "", errors.New("process command lines are not readable on this platform")
}
