package app

import (
	"fmt"
	"strings"

	"dbusls/internal/object"
)

// EnumerateOptions selects which names the run probes.
type EnumerateOptions struct {
	// IncludePrivate also records unique names (":X.Y").
	IncludePrivate bool
	// Wakeup probes activatable names that are not running. Probing
	// makes the bus start them as a side effect.
	Wakeup bool
}

// Enumerate lists the bus names and builds one Service per name, in
// bus enumeration order. Only an unreachable bus is an error; every
// per-service failure degrades to unknown fields.
func (a *App) Enumerate(opts EnumerateOptions) ([]*Service, error) {
	names, err := a.bus.ListNames()
	if err != nil {
		return nil, fmt.Errorf("enumerate bus names: %w", err)
	}

	activatable, err := a.bus.ListActivatableNames()
	if err != nil {
		a.logger.Warn("could not list activatable names", "err", err)
		activatable = nil
	}

	connected := make(map[string]bool, len(names))
	services := make([]*Service, 0, len(names))
	for _, name := range names {
		connected[name] = true
		if strings.HasPrefix(name, ":") && !opts.IncludePrivate {
			continue
		}
		services = append(services, a.probe(name, true))
	}

	for _, name := range activatable {
		if connected[name] {
			continue
		}
		if opts.Wakeup {
			a.logger.Info("waking up service", "name", name)
		}
		services = append(services, a.probe(name, opts.Wakeup))
	}

	return services, nil
}

// probe builds one Service record. With active false the name is only
// recorded: walking it would make the bus start the service.
func (a *App) probe(name string, active bool) *Service {
	svc := &Service{
		Name:      name,
		Activated: active,
		Objects:   make(map[string][]string),
	}
	if !active {
		return svc
	}

	root := object.Walk(a.bus, name, a.maxDepth)
	if root.Failed() {
		// Covers vanished services as well as activation failures
		// under Wakeup; either way the tree stays empty.
		a.logger.Warn("failed to introspect service", "name", name)
	}
	svc.Objects = root.Flatten()

	pid, err := a.bus.ProcessID(name)
	if err != nil {
		return svc
	}
	svc.Pid, svc.HasPid = pid, true

	cmdline, err := readCmdline(pid)
	if err != nil {
		return svc
	}
	svc.Executable, svc.HasExecutable = cmdline, true
	return svc
}
