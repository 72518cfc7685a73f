package app

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"dbusls/internal/proc"
)

// fakeBus serves canned answers for every bus operation and records
// which objects were introspected.
type fakeBus struct {
	names          []string
	namesErr       error
	activatable    []string
	activatableErr error
	pids           map[string]uint32
	docs           map[string]map[string]string
	introspected   []string
}

func (f *fakeBus) ListNames() ([]string, error) {
	return f.names, f.namesErr
}

func (f *fakeBus) ListActivatableNames() ([]string, error) {
	return f.activatable, f.activatableErr
}

func (f *fakeBus) ProcessID(name string) (uint32, error) {
	pid, ok := f.pids[name]
	if !ok {
		return 0, errors.New("org.freedesktop.DBus.Error.NameHasNoOwner")
	}
	return pid, nil
}

func (f *fakeBus) Introspect(service, path string) (string, error) {
	f.introspected = append(f.introspected, service+" "+path)
	doc, ok := f.docs[service][path]
	if !ok {
		return "", errors.New("org.freedesktop.DBus.Error.NoReply")
	}
	return doc, nil
}

// stubCmdline replaces the /proc reader for the duration of a test.
func stubCmdline(t *testing.T, cmdlines map[uint32]string) {
	t.Helper()
	readCmdline = func(pid uint32) (string, error) {
		cmdline, ok := cmdlines[pid]
		if !ok {
			return "", fmt.Errorf("open /proc/%d/cmdline: no such process", pid)
		}
		return cmdline, nil
	}
	t.Cleanup(func() { readCmdline = proc.Cmdline })
}

func newTestApp(bus Bus) *App {
	return New(Options{Bus: bus, Logger: log.New(io.Discard)})
}
