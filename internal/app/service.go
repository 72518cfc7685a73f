package app

import (
	"dbusls/internal/match"
)

// Service is one bus name and everything discovered about it.
type Service struct {
	// Name is the bus name, well-known or unique (":X.Y").
	Name string
	// Activated is false for an activatable name that was recorded
	// without being started; such a service is never probed.
	Activated bool
	// Pid is the owning process, valid only when HasPid is set.
	Pid    uint32
	HasPid bool
	// Executable is the owning process's command line, valid only
	// when HasExecutable is set.
	Executable    string
	HasExecutable bool
	// Objects maps each discoverable object path to the interface
	// names declared on it.
	Objects map[string][]string
	// Processed marks a service already printed as part of another
	// service's alias block during a reporting pass.
	Processed bool
}

// HasObject reports whether any discovered object path matches the
// pattern. An empty pattern means no filter and always passes.
func (s *Service) HasObject(pattern string) bool {
	if pattern == "" {
		return true
	}
	for path := range s.Objects {
		if match.Match(pattern, path) {
			return true
		}
	}
	return false
}

// HasInterface reports whether any interface on any discovered object
// matches the pattern. An empty pattern always passes.
func (s *Service) HasInterface(pattern string) bool {
	if pattern == "" {
		return true
	}
	for _, ifaces := range s.Objects {
		if match.AnyMatch(pattern, ifaces) {
			return true
		}
	}
	return false
}

// SamePid reports whether two services resolve to the same process.
// Two services whose pid could not be resolved compare equal, so all
// unresolved services share one alias group.
func (s *Service) SamePid(other *Service) bool {
	if s.HasPid != other.HasPid {
		return false
	}
	return !s.HasPid || s.Pid == other.Pid
}
